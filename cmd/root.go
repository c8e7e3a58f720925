package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salesdojo/callcoach/internal/app"
	"github.com/salesdojo/callcoach/internal/screens/home"
)

var rootCmd = &cobra.Command{
	Use:   "callcoach",
	Short: "Sales call training in the terminal",
	Long: "CallCoach is a terminal trainer for sales reps: listen to the training recordings, " +
		"read the call script, and practice with drag-sort exercises and flashcards.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		return app.Run(home.New(home.Deps{
			Pack:     env.pack,
			Practice: env.practiceOptions(),
			Listen:   env.listenFunc(cmd.Context(), false),
			Logger:   env.log,
		}))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (skips the user and project files)")
	rootCmd.PersistentFlags().String("content", "", "Directory whose files override the built-in content (overrides CALLCOACH_CONTENT_DIR)")
	rootCmd.PersistentFlags().String("backend", "", "Audio backend: simulated or mpv (overrides CALLCOACH_MEDIA_BACKEND)")

	rootCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(tracksCmd)
	rootCmd.AddCommand(flashcardsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
