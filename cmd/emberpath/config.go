// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/invowk/emberpath/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `emberpath config` command tree.
func newConfigCommand(app *App, flags *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage emberpath configuration",
		Long: `Manage emberpath configuration.

Configuration is read from emberpath.cue or emberpath.toml in:
  - the file given with --config
  - Linux: ~/.config/emberpath/
  - macOS: ~/Library/Application Support/emberpath/
  - Windows: %APPDATA%\emberpath\
  - the working directory

EMBERPATH_* environment variables override file values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: app.runE(flags, func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), flags)
			if err != nil {
				return err
			}
			showConfig(app, cfg)
			return nil
		}),
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE or TOML",
		Args:  cobra.NoArgs,
		RunE: app.runE(flags, func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), flags)
			if err != nil {
				return err
			}
			switch format {
			case config.ConfigFileExt:
				fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			case config.ConfigFileExtTOML:
				out, err := config.GenerateTOML(cfg)
				if err != nil {
					return err
				}
				fmt.Fprint(app.stdout, out)
			default:
				return fmt.Errorf("unknown format %q (expected cue or toml)", format)
			}
			return nil
		}),
	}
	dumpCmd.Flags().StringVar(&format, "format", config.ConfigFileExt, "output format: cue or toml")
	cfgCmd.AddCommand(dumpCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: app.runE(flags, func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Configuration file:"), path)
			return nil
		}),
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the path of the default configuration file",
		Args:  cobra.NoArgs,
		RunE: app.runE(flags, func(cmd *cobra.Command, args []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		}),
	})

	return cfgCmd
}

func showConfig(app *App, cfg *config.Config) {
	keyStyle := KeyStyle
	valueStyle := SuccessStyle
	none := SubtitleStyle.Render("(none)")

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	if cfg.Source != "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), cfg.Source)
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.stdout)

	root := valueStyle.Render(cfg.Root)
	if cfg.Root == "" {
		root = SubtitleStyle.Render("(working directory)")
	}
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("root"), root)

	ignore := none
	if len(cfg.Ignore) > 0 {
		ignore = valueStyle.Render(strings.Join(cfg.IgnoreStrings(), ", "))
	}
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("ignore"), ignore)

	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("addon_keyword"), valueStyle.Render(cfg.AddonKeyword))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("app_dependency"), valueStyle.Render(cfg.AppDependency))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("fallback"), valueStyle.Render(cfg.Fallback.String()))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("cache_size"), valueStyle.Render(fmt.Sprintf("%d", int(cfg.CacheSize))))
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("log_level"), valueStyle.Render(cfg.LogLevel.String()))
}
