// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"cmp"
	"maps"
	"slices"

	"github.com/invowk/emberpath/pkg/manifest"
	"github.com/invowk/emberpath/pkg/types"
)

type (
	// Roots maps an absolute package directory to its manifest name.
	Roots map[types.FilesystemPath]types.PackageName

	// Root is one classified package directory.
	Root struct {
		Dir            types.FilesystemPath
		Name           types.PackageName
		Classification manifest.Classification
	}

	// Registry holds the addon and app roots of a workspace.
	Registry struct {
		addons Roots
		apps   Roots
	}
)

// New creates a Registry from explicit maps. Both maps are copied, so later
// changes by the caller are not observed. A directory present in both maps is
// kept as an addon only.
func New(addonRoots, appRoots Roots) *Registry {
	r := &Registry{
		addons: maps.Clone(addonRoots),
		apps:   maps.Clone(appRoots),
	}
	if r.addons == nil {
		r.addons = Roots{}
	}
	if r.apps == nil {
		r.apps = Roots{}
	}
	for dir := range r.addons {
		delete(r.apps, dir)
	}
	return r
}

// AddonRoots returns a copy of the addon directory -> name map.
func (r *Registry) AddonRoots() Roots { return maps.Clone(r.addons) }

// AppRoots returns a copy of the app directory -> name map.
func (r *Registry) AppRoots() Roots { return maps.Clone(r.apps) }

// Len returns the number of classified roots.
func (r *Registry) Len() int { return len(r.addons) + len(r.apps) }

// Lookup returns the classified root registered for dir, if any.
func (r *Registry) Lookup(dir types.FilesystemPath) (Root, bool) {
	if name, ok := r.addons[dir]; ok {
		return Root{Dir: dir, Name: name, Classification: manifest.ClassificationAddon}, true
	}
	if name, ok := r.apps[dir]; ok {
		return Root{Dir: dir, Name: name, Classification: manifest.ClassificationApp}, true
	}
	return Root{}, false
}

// Roots returns every classified root ordered by directory.
func (r *Registry) Roots() []Root {
	out := make([]Root, 0, r.Len())
	for dir, name := range r.addons {
		out = append(out, Root{Dir: dir, Name: name, Classification: manifest.ClassificationAddon})
	}
	for dir, name := range r.apps {
		out = append(out, Root{Dir: dir, Name: name, Classification: manifest.ClassificationApp})
	}
	slices.SortFunc(out, func(a, b Root) int {
		return cmp.Compare(a.Dir, b.Dir)
	})
	return out
}
