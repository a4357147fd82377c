// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"fmt"

	"github.com/invowk/emberpath/internal/registry"
	"github.com/invowk/emberpath/pkg/types"

	lru "github.com/hashicorp/golang-lru/v2"
)

type (
	// Resolver resolves files against one registry with a fixed fallback
	// policy. It is safe for concurrent use.
	Resolver struct {
		addons registry.Roots
		apps   registry.Roots
		policy FallbackPolicy
		cache  *lru.Cache[types.FilesystemPath, Result]
	}

	// Option configures a Resolver.
	Option func(*options)

	options struct {
		policy    FallbackPolicy
		cacheSize int
	}
)

// WithFallback sets the fallback policy. The default is FallbackNone.
func WithFallback(p FallbackPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithCache memoizes up to size results. Zero disables caching.
func WithCache(size int) Option {
	return func(o *options) { o.cacheSize = size }
}

// New creates a Resolver for reg.
func New(reg *registry.Registry, opts ...Option) (*Resolver, error) {
	if reg == nil {
		return nil, fmt.Errorf("resolver: nil registry")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.policy.Validate(); err != nil {
		return nil, err
	}
	if o.cacheSize < 0 {
		return nil, fmt.Errorf("resolver: cache size must not be negative, got %d", o.cacheSize)
	}

	r := &Resolver{
		addons: reg.AddonRoots(),
		apps:   reg.AppRoots(),
		policy: o.policy,
	}
	if o.cacheSize > 0 {
		cache, err := lru.New[types.FilesystemPath, Result](o.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("resolver: create cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

// Policy returns the fallback policy of r.
func (r *Resolver) Policy() FallbackPolicy { return r.policy }

// Resolve returns the module path of file, or false when it has none.
func (r *Resolver) Resolve(file types.FilesystemPath) (types.ModulePath, bool) {
	res := r.Lookup(file)
	return res.ModulePath, res.OK
}

// Lookup resolves file and reports how the result was reached.
func (r *Resolver) Lookup(file types.FilesystemPath) Result {
	if r.cache != nil {
		if res, ok := r.cache.Get(file); ok {
			return res
		}
	}
	res := resolve(file, r.addons, r.apps, r.policy)
	if r.cache != nil {
		r.cache.Add(file, res)
	}
	return res
}

// ResolveAll resolves files in order.
func (r *Resolver) ResolveAll(files []types.FilesystemPath) []Result {
	out := make([]Result, len(files))
	for i, f := range files {
		out[i] = r.Lookup(f)
	}
	return out
}
