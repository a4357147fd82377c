// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sync"

	"github.com/invowk/emberpath/pkg/manifest"
	"github.com/invowk/emberpath/pkg/types"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// findManifests lists every manifest file below root whose root-relative
// path matches none of the ignore patterns. Ignored directories are not
// descended into. The result is sorted so builds are deterministic.
func findManifests(ctx context.Context, root types.FilesystemPath, ignores []string) ([]types.FilesystemPath, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		found []types.FilesystemPath
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, string(root), func(p string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(string(root), p)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if isIgnored(ignores, rel) || isIgnored(ignores, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Name() != manifest.FileName || isIgnored(ignores, rel) {
			return nil
		}

		mu.Lock()
		found = append(found, types.FilesystemPath(p))
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	slices.Sort(found)
	return found, nil
}

// isIgnored reports whether rel matches any pattern.
func isIgnored(patterns []string, rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range patterns {
		if matched, matchErr := doublestar.Match(pat, normalized); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// validatePatterns checks that every pattern is a valid doublestar glob.
func validatePatterns(patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("invalid ignore pattern %q: %w", pat, doublestar.ErrBadPattern)
		}
	}
	return nil
}
