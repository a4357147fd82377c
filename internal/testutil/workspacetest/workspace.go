// SPDX-License-Identifier: MPL-2.0

// Package workspacetest builds throwaway on-disk Ember workspaces for tests.
//
// Usage:
//
//	ws := workspacetest.New(t)
//	ws.App("app", "my-app")
//	ws.Addon("lib/ui", "ui-kit", workspacetest.WithKeywords("ember-addon", "ui"))
//	file := ws.File("app/app/router.js")
package workspacetest

import (
	"path/filepath"
	"testing"

	"github.com/invowk/emberpath/internal/testutil"

	"github.com/bytedance/sonic"
)

type (
	// Workspace is a temporary directory tree holding package manifests.
	Workspace struct {
		t    testing.TB
		root string
	}

	// PackageOption configures a manifest written by Workspace.
	PackageOption func(map[string]any)
)

// New creates an empty workspace under t.TempDir(). The root is resolved
// through symlinks so that it matches what the registry scan reports.
func New(t testing.TB) *Workspace {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	return &Workspace{t: t, root: root}
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string { return w.root }

// Path joins slash-separated rel onto the workspace root.
func (w *Workspace) Path(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

// Addon writes an addon manifest (carrying the ember-addon keyword) in rel
// and returns the package directory.
func (w *Workspace) Addon(rel, name string, opts ...PackageOption) string {
	w.t.Helper()
	return w.Package(rel, name, append([]PackageOption{WithKeywords("ember-addon")}, opts...)...)
}

// App writes an application manifest (depending on ember-cli through
// devDependencies) in rel and returns the package directory.
func (w *Workspace) App(rel, name string, opts ...PackageOption) string {
	w.t.Helper()
	return w.Package(rel, name, append([]PackageOption{WithDevDependency("ember-cli", "~5.4.0")}, opts...)...)
}

// Package writes a package.json with the given name in rel and returns the
// package directory.
func (w *Workspace) Package(rel, name string, opts ...PackageOption) string {
	w.t.Helper()
	doc := map[string]any{"name": name, "version": "0.0.0"}
	for _, opt := range opts {
		opt(doc)
	}
	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		w.t.Fatalf("failed to encode manifest: %v", err)
	}
	dir := w.Path(rel)
	testutil.MustWriteFile(w.t, filepath.Join(dir, "package.json"), string(data))
	return dir
}

// RawManifest writes content verbatim as rel/package.json.
func (w *Workspace) RawManifest(rel, content string) string {
	w.t.Helper()
	dir := w.Path(rel)
	testutil.MustWriteFile(w.t, filepath.Join(dir, "package.json"), content)
	return dir
}

// File creates an empty file at rel and returns its absolute path.
func (w *Workspace) File(rel string) string {
	w.t.Helper()
	p := w.Path(rel)
	testutil.MustWriteFile(w.t, p, "")
	return p
}

// --- Package Options ---

// WithKeywords appends to the manifest keywords.
func WithKeywords(kws ...string) PackageOption {
	return func(doc map[string]any) {
		existing, _ := doc["keywords"].([]string)
		doc["keywords"] = append(existing, kws...)
	}
}

// WithDependency adds an entry to dependencies.
func WithDependency(name, version string) PackageOption {
	return withDep("dependencies", name, version)
}

// WithDevDependency adds an entry to devDependencies.
func WithDevDependency(name, version string) PackageOption {
	return withDep("devDependencies", name, version)
}

func withDep(field, name, version string) PackageOption {
	return func(doc map[string]any) {
		deps, _ := doc[field].(map[string]string)
		if deps == nil {
			deps = map[string]string{}
		}
		deps[name] = version
		doc[field] = deps
	}
}
