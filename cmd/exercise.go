package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salesdojo/callcoach/internal/app"
	"github.com/salesdojo/callcoach/internal/screens/practice"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise [id]",
	Short: "Run a practice exercise (lists them without an id)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		opts := env.practiceOptions()
		if seed, _ := cmd.Flags().GetUint64("seed"); seed != 0 {
			opts.Seed = seed
		}

		if len(args) == 0 {
			out := cmd.OutOrStdout()
			for _, ex := range env.catalog.List() {
				fmt.Fprintf(out, "%-24s  %s\n", ex.ID, ex.Summary)
			}
			fmt.Fprintf(out, "%-24s  %s\n", practice.DecisionTreeID, env.pack.DecisionTree.Summary)
			return nil
		}

		s, err := practice.Open(opts, args[0])
		if err != nil {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(opts.IDs(), ", "))
		}
		return app.Run(s)
	},
}

func init() {
	exerciseCmd.Flags().Uint64("seed", 0, "Fix the shuffle of unplaced items (overrides exercises.seed)")
}
