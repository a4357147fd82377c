// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/invowk/emberpath/internal/config"
	"github.com/invowk/emberpath/internal/issue"
	"github.com/invowk/emberpath/internal/registry"
	"github.com/invowk/emberpath/internal/resolver"
	"github.com/invowk/emberpath/pkg/fspath"
	"github.com/invowk/emberpath/pkg/manifest"
	"github.com/invowk/emberpath/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// defaultIssueStyle is the glamour style used for catalog entries.
const defaultIssueStyle = "dark"

type (
	// ConfigProvider loads configuration for a command invocation.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// App wires CLI services and shared dependencies. Every Cobra handler
	// receives an App and writes through its streams.
	App struct {
		Config     ConfigProvider
		stdout     io.Writer
		stderr     io.Writer
		issueStyle string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
		// IssueStyle is a glamour style name or JSON style path.
		IssueStyle string
	}

	// globalFlags holds the persistent flags of the root command.
	globalFlags struct {
		configPath  string
		root        string
		verbose     bool
		passthrough bool
	}

	// session is the state shared by commands that resolve files: the
	// effective configuration, a logger and the registry built from it.
	session struct {
		cfg      *config.Config
		logger   *log.Logger
		root     types.FilesystemPath
		registry *registry.Registry
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:     deps.Config,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		issueStyle: deps.IssueStyle,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	if app.issueStyle == "" {
		app.issueStyle = defaultIssueStyle
	}
	return app
}

// loadConfig loads the configuration and applies flag overrides on top.
func (a *App) loadConfig(ctx context.Context, flags *globalFlags) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(flags.configPath)})
	if err != nil {
		return nil, err
	}

	if flags.root != "" {
		cfg.Root = flags.root
	}
	if flags.passthrough {
		cfg.Fallback = config.FallbackPassThrough
	}
	if flags.verbose {
		cfg.LogLevel = config.LogLevelDebug
	}
	return cfg, nil
}

// newLogger creates the stderr logger for the configured level.
func (a *App) newLogger(level config.LogLevel) *log.Logger {
	lvl, err := log.ParseLevel(level.String())
	if err != nil {
		lvl = log.WarnLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  lvl,
	})
}

// newSession loads the configuration and scans the workspace.
func (a *App) newSession(ctx context.Context, flags *globalFlags) (*session, error) {
	cfg, err := a.loadConfig(ctx, flags)
	if err != nil {
		return nil, err
	}
	logger := a.newLogger(cfg.LogLevel)

	root := types.FilesystemPath(cfg.Root)
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = types.FilesystemPath(wd)
	}
	root, err = fspath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}

	reg, err := registry.Build(ctx, root, registry.Options{
		Ignore: cfg.IgnoreStrings(),
		Rules: manifest.Rules{
			AddonKeyword:  cfg.AddonKeyword,
			AppDependency: cfg.AppDependency,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, logger: logger, root: root, registry: reg}, nil
}

// newResolver creates a resolver for the session registry.
func (s *session) newResolver() (*resolver.Resolver, error) {
	policy, err := resolver.ParseFallbackPolicy(s.cfg.Fallback.String())
	if err != nil {
		return nil, err
	}
	return resolver.New(s.registry,
		resolver.WithFallback(policy),
		resolver.WithCache(int(s.cfg.CacheSize)),
	)
}

// renderIssue writes the catalog entry linked to err, if any, to stderr.
func (a *App) renderIssue(err error) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	a.renderCatalogEntry(ae.CatalogIssue())
}

func (a *App) renderCatalogEntry(entry *issue.Issue) {
	if entry == nil {
		return
	}
	rendered, err := entry.Render(a.issueStyle)
	if err != nil {
		a.newLogger(config.LogLevelWarn).Warn("failed to render issue catalog entry", "issue", entry.Id(), "error", err)
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// runE adapts a handler so that, before the error reaches fang, verbose runs
// print the full error chain and any linked catalog entry is rendered.
func (a *App) runE(flags *globalFlags, fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}
		if flags.verbose {
			fmt.Fprintln(a.stderr, formatErrorForDisplay(err, true))
		}
		a.renderIssue(err)
		return err
	}
}
