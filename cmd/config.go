package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salesdojo/callcoach/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		if path == "" {
			p, err := config.UserConfigPath()
			if err != nil {
				return err
			}
			path = p
		}
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		if err := config.EnsureConfigDir(path); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show where configuration is read from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := config.UserConfigPath()
		if err != nil {
			return err
		}
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, p := range []struct{ label, path string }{
			{"user", user},
			{"project", config.ProjectConfigPath(cwd)},
			{"dotenv", config.DotEnvPath(cwd)},
		} {
			state := "missing"
			if _, err := os.Stat(p.path); err == nil {
				state = "found"
			}
			fmt.Fprintf(out, "%-8s %s (%s)\n", p.label, p.path, state)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-8s %s\n", "log", cfg.Log.File)
		return nil
	},
}

func init() {
	configInitCmd.Flags().String("path", "", "Write here instead of the user config path")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
