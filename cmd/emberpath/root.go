// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/invowk/emberpath/internal/issue"
	"github.com/invowk/emberpath/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the emberpath command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "emberpath",
		Short: "Map files in an Ember workspace to their module paths",
		Long: TitleStyle.Render("emberpath") + SubtitleStyle.Render(" - Map files in an Ember workspace to their module paths") + `

emberpath scans a workspace for package.json manifests, classifies each
package as an addon or an app, and tells you the module path under which a
source file is importable at runtime.

` + SubtitleStyle.Render("Examples:") + `
  emberpath resolve app/components/foo.js    Print the module path of a file
  emberpath roots                            List addon and app roots
  emberpath config show                      Show the effective configuration
  emberpath explain                          Describe every known problem`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.config/emberpath/emberpath.cue)")
	rootCmd.PersistentFlags().StringVar(&flags.root, "root", "", "workspace root to scan (default is the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flags.passthrough, "passthrough", false, "return the extension-stripped input path for every file")

	rootCmd.AddCommand(newResolveCommand(app, flags))
	rootCmd.AddCommand(newRootsCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))
	rootCmd.AddCommand(newExplainCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the code carried by the returned error.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})

	// fang overrides rootCmd.Version, so the version is passed explicitly.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(int(exitCodeOf(err)))
	}
}

// exitCodeOf maps an error returned by a command to a process exit code.
func exitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors use their Format method; in verbose mode the full chain
// is shown.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
