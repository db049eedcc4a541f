// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/amalgamate/amalgamate/internal/config"
	"github.com/amalgamate/amalgamate/internal/issue"
	"github.com/amalgamate/amalgamate/pkg/types"

	"github.com/spf13/cobra"
)

const (
	formatCUE  = "cue"
	formatTOML = "toml"
)

// newConfigCommand creates the `amalgamate config` command tree.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage amalgamate configuration",
		Long: `Manage amalgamate configuration.

Configuration is stored in:
  - Linux: ~/.config/amalgamate/config.cue
  - macOS: ~/Library/Application Support/amalgamate/config.cue
  - Windows: %APPDATA%\amalgamate\config.cue

An amalgamate.cue file in the working directory is used when the
platform file is absent. AMALGAMATE_* environment variables override both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app, flags, format)
		},
	}
	showCmd.Flags().StringVar(&format, "format", formatCUE, "output format (cue or toml)")
	cfgCmd.AddCommand(showCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, flags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app, flags)
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, flags *rootFlags, format string) error {
	cfg, err := loadConfig(cmd.Context(), app, flags)
	if err != nil {
		return renderServiceError(app.stderr, newServiceError(err, issue.ConfigLoadFailedId, types.ExitUsage), flags.verbose, string(config.ColorSchemeAuto))
	}

	switch format {
	case formatCUE:
		fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
	case formatTOML:
		out, err := config.GenerateTOML(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(app.stdout, out)
	default:
		return fmt.Errorf("unknown format %q (valid: %s, %s)", format, formatCUE, formatTOML)
	}
	return nil
}

func initConfig(app *App, flags *rootFlags) error {
	path, created, err := config.CreateDefaultConfig("")
	if err != nil {
		return renderServiceError(app.stderr, newServiceError(err, issue.ConfigLoadFailedId, types.ExitFailure), flags.verbose, string(config.ColorSchemeAuto))
	}
	if !created {
		fmt.Fprintln(app.stdout, WarningStyle.Render("Config file already exists: ")+PathStyle.Render(path))
		return nil
	}
	fmt.Fprintln(app.stdout, SuccessStyle.Render("Created config file: ")+PathStyle.Render(path))
	return nil
}

func showConfigPath(app *App, flags *rootFlags) error {
	path, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: types.FilesystemPath(flags.configPath)})
	if err != nil {
		return renderServiceError(app.stderr, newServiceError(err, issue.ConfigLoadFailedId, types.ExitUsage), flags.verbose, string(config.ColorSchemeAuto))
	}
	if path != "" {
		fmt.Fprintln(app.stdout, path)
		return nil
	}

	defaultPath, err := config.DefaultConfigPath("")
	if err != nil {
		return err
	}
	fmt.Fprintln(app.stdout, defaultPath)
	fmt.Fprintln(app.stderr, SubtitleStyle.Render("(file does not exist, defaults are in effect)"))
	return nil
}
