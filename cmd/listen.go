package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdojo/callcoach/internal/app"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Open the training audio player",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		start, err := startTrack(cmd, env)
		if err != nil {
			return err
		}
		autoplay, _ := cmd.Flags().GetBool("autoplay")

		s, err := env.listenFunc(cmd.Context(), autoplay)(start)
		if err != nil {
			return err
		}
		return app.Run(s)
	},
}

// startTrack resolves --track (1-based) or --module to a playlist index.
func startTrack(cmd *cobra.Command, env *environment) (int, error) {
	track, _ := cmd.Flags().GetInt("track")
	module, _ := cmd.Flags().GetString("module")

	switch {
	case track != 0 && module != "":
		return 0, fmt.Errorf("use --track or --module, not both")
	case module != "":
		idx, ok := env.pack.TrackIndex(module)
		if !ok {
			return 0, fmt.Errorf("no track for module %q (see callcoach tracks)", module)
		}
		return idx, nil
	case track != 0:
		if track < 1 || track > len(env.pack.Tracks) {
			return 0, fmt.Errorf("--track must be between 1 and %d", len(env.pack.Tracks))
		}
		return track - 1, nil
	}
	return 0, nil
}

func init() {
	listenCmd.Flags().Int("track", 0, "Start at track N (1-based)")
	listenCmd.Flags().String("module", "", "Start at the track for a module key (e.g. INTRO)")
	listenCmd.Flags().Bool("autoplay", false, "Start playing immediately")
}
