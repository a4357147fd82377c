// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"path/filepath"
	"strings"

	"github.com/invowk/emberpath/internal/registry"
	"github.com/invowk/emberpath/pkg/fspath"
	"github.com/invowk/emberpath/pkg/types"
)

const (
	segApp              = "app"
	segTests            = "tests"
	segAddon            = "addon"
	segAddonTestSupport = "addon-test-support"

	// testSupportPath is where addon-test-support files are importable
	// below the addon module root.
	testSupportPath = "test-support"
)

type (
	// Result describes the resolution of a single file.
	Result struct {
		// File is the path that was resolved.
		File types.FilesystemPath
		// ModulePath is set when OK is true.
		ModulePath types.ModulePath
		// OK reports whether a module path was produced.
		OK bool
		// Kind tells which branch produced the result.
		Kind Kind
		// Root is the package root that decided the result; empty for
		// fallback results and unmatched files.
		Root types.FilesystemPath
	}

	// match is the deepest root of one category containing a file.
	match struct {
		root types.FilesystemPath
		name types.PackageName
		rel  types.FilesystemPath
		ok   bool
	}
)

// Resolve maps filePath to its module path using the given addon and app
// roots. The boolean is false when the file has no module path; that is an
// expected outcome, not an error.
//
// Resolve performs no I/O and does not modify its inputs.
func Resolve(filePath types.FilesystemPath, addonRoots, appRoots registry.Roots, policy FallbackPolicy) (types.ModulePath, bool) {
	r := resolve(filePath, addonRoots, appRoots, policy)
	return r.ModulePath, r.OK
}

func resolve(file types.FilesystemPath, addonRoots, appRoots registry.Roots, policy FallbackPolicy) Result {
	res := Result{File: file}
	if file == "" {
		return res
	}

	addon := longestMatch(file, addonRoots)
	app := longestMatch(file, appRoots)

	// Ties, including "neither matched", go to the addon side.
	isApp := len(app.root) > len(addon.root)
	chosen := addon
	if isApp {
		chosen = app
	}

	if policy == FallbackPassThrough || (chosen.rel == "" && policy == FallbackUnmatched) {
		res.ModulePath = types.ModulePath(fspath.TrimExt(file))
		res.OK = true
		res.Kind = KindFallback
		return res
	}
	if chosen.rel == "" {
		return res
	}

	segs := fspath.Segments(chosen.rel)
	first, rest := segs[0], segs[1:]

	var (
		mp types.ModulePath
		ok bool
	)
	if isApp {
		switch first {
		case segApp:
			mp, ok = join(app.name, rest), true
		case segTests:
			mp, ok = join(app.name, segs), true
		}
		res.Kind = KindApp
	} else {
		switch {
		case first == segAddonTestSupport:
			mp, ok = join(addon.name+"/"+testSupportPath, rest), true
		case first == segAddon:
			mp, ok = join(addon.name, rest), true
		case first == segApp && app.ok && app.name != "":
			mp, ok = join(app.name, rest), true
		}
		res.Kind = KindAddon
	}

	if !ok {
		res.Kind = KindNone
		return res
	}
	res.ModulePath = mp
	res.OK = true
	res.Root = chosen.root
	return res
}

// longestMatch returns the deepest root in roots that contains file, with
// file's path relative to it minus the final extension.
func longestMatch(file types.FilesystemPath, roots registry.Roots) match {
	var best match
	for root, name := range roots {
		if len(root) <= len(best.root) || !fspath.HasPathPrefix(file, root) {
			continue
		}
		best = match{root: root, name: name, ok: true}
	}
	if best.ok {
		rel := strings.TrimLeft(string(file)[len(best.root):], "/"+string(filepath.Separator))
		best.rel = fspath.TrimExt(types.FilesystemPath(rel))
	}
	return best
}

// join appends segments to a module root with '/' separators.
func join[N ~string](root N, segs []string) types.ModulePath {
	if len(segs) == 0 {
		return types.ModulePath(root)
	}
	return types.ModulePath(string(root) + "/" + strings.Join(segs, "/"))
}
