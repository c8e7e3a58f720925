package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salesdojo/callcoach/internal/playlist"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "List the training playlist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%3s  %-14s  %-44s  %8s\n", "#", "Module", "Title", "Duration")
		fmt.Fprintln(out, strings.Repeat("─", 74))

		for i, t := range env.pack.Tracks {
			title := t.Title
			if len(title) > 44 {
				title = title[:41] + "..."
			}
			fmt.Fprintf(out, "%3d  %-14s  %-44s  %8s\n", i+1, t.ModuleKey, title, t.DisplayDuration)
		}

		fmt.Fprintf(out, "\n%d tracks, %s total\n",
			len(env.pack.Tracks), playlist.FormatTime(float64(playlist.TotalDuration(env.pack.Tracks))))
		if verbose, _ := cmd.Flags().GetBool("sources"); verbose {
			fmt.Fprintln(out)
			for _, t := range env.pack.Tracks {
				fmt.Fprintf(out, "%-14s  %s\n", t.ModuleKey, env.resolver.Resolve(t))
			}
		}
		return nil
	},
}

func init() {
	tracksCmd.Flags().Bool("sources", false, "Also print each track's resolved audio source")
}
