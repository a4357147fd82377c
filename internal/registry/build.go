// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/invowk/emberpath/internal/issue"
	"github.com/invowk/emberpath/pkg/fspath"
	"github.com/invowk/emberpath/pkg/manifest"
	"github.com/invowk/emberpath/pkg/types"

	"github.com/charmbracelet/log"
)

// defaultIgnores excludes build output and installed dependencies. Patterns
// are doublestar globs matched against the slash-separated path relative to
// the workspace root.
var defaultIgnores = []string{
	"**/tmp/**",
	"**/node_modules/**",
}

// Options configures Build.
type Options struct {
	// Ignore lists additional doublestar patterns to exclude. They are merged
	// with DefaultIgnores.
	Ignore []string

	// Rules decides how manifests are classified. Empty fields fall back to
	// manifest.DefaultRules.
	Rules manifest.Rules

	// Logger receives scan progress. nil discards output.
	Logger *log.Logger
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}

// Build scans root for package manifests and classifies their directories.
//
// The first manifest that cannot be read or parsed aborts the build and is
// reported as an *issue.ActionableError.
func Build(ctx context.Context, root types.FilesystemPath, opts Options) (*Registry, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	absRoot, err := fspath.Abs(root)
	if err != nil {
		return nil, rootError(root, err)
	}
	info, err := os.Stat(string(absRoot))
	if err != nil {
		return nil, rootError(absRoot, err)
	}
	if !info.IsDir() {
		return nil, rootError(absRoot, fmt.Errorf("%s is not a directory", absRoot))
	}

	ignores := append(DefaultIgnores(), opts.Ignore...)
	if err := validatePatterns(ignores); err != nil {
		return nil, err
	}
	paths, err := findManifests(ctx, absRoot, ignores)
	if err != nil {
		return nil, issue.WrapWithContext(err, "scan workspace", absRoot.String())
	}
	logger.Debug("found package manifests", "root", absRoot, "count", len(paths))

	reg := &Registry{addons: Roots{}, apps: Roots{}}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("registry build canceled: %w", err)
		}

		m, err := manifest.ParseFile(p)
		if err != nil {
			return nil, manifestError(p, err)
		}

		dir := fspath.Dir(p)
		switch m.Classify(opts.Rules) {
		case manifest.ClassificationAddon:
			reg.addons[dir] = m.Name
			logger.Debug("registered addon", "dir", dir, "name", m.Name)
		case manifest.ClassificationApp:
			reg.apps[dir] = m.Name
			logger.Debug("registered app", "dir", dir, "name", m.Name)
		default:
			continue
		}
		if err := m.Name.Validate(); err != nil {
			logger.Warn("package root has no usable name", "dir", dir, "error", err)
		}
	}

	logger.Info("workspace scanned", "root", absRoot, "addons", len(reg.addons), "apps", len(reg.apps))
	return reg, nil
}

func rootError(root types.FilesystemPath, err error) error {
	return issue.NewErrorContext().
		WithOperation("open workspace root").
		WithResource(root.String()).
		WithSuggestion("Check that the directory exists and is readable").
		WithIssue(issue.WorkspaceRootNotFoundId).
		Wrap(err).
		BuildError()
}

func manifestError(path types.FilesystemPath, err error) error {
	ctx := issue.NewErrorContext().WithResource(path.String()).Wrap(err)
	if errors.Is(err, manifest.ErrParse) {
		return ctx.WithOperation("parse package manifest").
			WithSuggestion("Fix the JSON syntax of the file").
			WithSuggestion("Exclude generated packages with an ignore pattern").
			WithIssue(issue.ManifestParseErrorId).
			BuildError()
	}
	return ctx.WithOperation("read package manifest").
		WithSuggestion("Check the file permissions").
		WithIssue(issue.ManifestReadErrorId).
		BuildError()
}
