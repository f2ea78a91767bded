package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mechmind-dwv/mcalc/internal/config"
)

func newConfigCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the mcalc config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write a default config file. The existing file is not read, so
--force also repairs a config that no longer parses.`,
		Args:        exactArgs(0),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check config: %w", err)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Long: `Print the effective configuration as JSON, after applying the
config file and any command line overrides.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{
				"path":    opts.configPath,
				"version": opts.cfg.Version,
				"mode":    opts.cfg.Mode,
				"format":  opts.cfg.Format,
				"checked": opts.cfg.IsChecked(),
				"color":   opts.cfg.UseColor(),
			}
			return writeJSON(cmd.OutOrStdout(), payload)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
