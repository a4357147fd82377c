// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"errors"
	"sync"
	"testing"

	"github.com/invowk/emberpath/internal/registry"
	"github.com/invowk/emberpath/pkg/types"
)

func newTestRegistry() *registry.Registry {
	return registry.New(
		registry.Roots{"/ws/pkg/lib": "my-lib", "/ws/addon-pkg": "my-addon"},
		registry.Roots{"/ws/pkg": "my-app"},
	)
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	if _, err := New(nil); err == nil {
		t.Error("New(nil) returned nil error")
	}
	if _, err := New(newTestRegistry(), WithCache(-1)); err == nil {
		t.Error("New() with negative cache size returned nil error")
	}
	_, err := New(newTestRegistry(), WithFallback(FallbackPolicy(9)))
	if !errors.Is(err, ErrInvalidFallbackPolicy) {
		t.Errorf("New() with bad policy error = %v, want ErrInvalidFallbackPolicy", err)
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	r, err := New(newTestRegistry())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if r.Policy() != FallbackNone {
		t.Errorf("Policy() = %v, want none", r.Policy())
	}

	got, ok := r.Resolve("/ws/pkg/lib/addon/foo.js")
	if !ok || got != "my-lib/foo" {
		t.Errorf("Resolve() = %q, %v; want my-lib/foo, true", got, ok)
	}

	if got, ok := r.Resolve("/outside/x.js"); ok {
		t.Errorf("Resolve(outside) = %q, true; want no result", got)
	}
}

func TestResolver_PassThrough(t *testing.T) {
	t.Parallel()

	r, err := New(newTestRegistry(), WithFallback(FallbackPassThrough))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, ok := r.Resolve("/outside/fixtures/basic.input.js")
	if !ok || got != "/outside/fixtures/basic.input" {
		t.Errorf("Resolve() = %q, %v; want /outside/fixtures/basic.input, true", got, ok)
	}
}

func TestResolver_ResolveAll(t *testing.T) {
	t.Parallel()

	r, err := New(newTestRegistry())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	files := []types.FilesystemPath{
		"/ws/pkg/app/router.js",
		"/ws/addon-pkg/addon-test-support/index.js",
		"/nowhere.js",
	}
	results := r.ResolveAll(files)
	if len(results) != len(files) {
		t.Fatalf("ResolveAll() returned %d results, want %d", len(results), len(files))
	}

	want := []struct {
		mp   types.ModulePath
		ok   bool
		kind Kind
	}{
		{"my-app/router", true, KindApp},
		{"my-addon/test-support/index", true, KindAddon},
		{"", false, KindNone},
	}
	for i, w := range want {
		res := results[i]
		if res.File != files[i] {
			t.Errorf("results[%d].File = %q, want %q", i, res.File, files[i])
		}
		if res.ModulePath != w.mp || res.OK != w.ok || res.Kind != w.kind {
			t.Errorf("results[%d] = %+v, want %q/%v/%v", i, res, w.mp, w.ok, w.kind)
		}
	}
}

func TestResolver_RegistryIsSnapshotted(t *testing.T) {
	t.Parallel()

	addons := registry.Roots{"/ws/lib": "lib"}
	reg := registry.New(addons, nil)
	r, err := New(reg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	addons["/ws/other"] = "other"
	if _, ok := r.Resolve("/ws/other/addon/x.js"); ok {
		t.Error("resolver observed a mutation of the caller's map")
	}
}

func TestResolver_CacheConsistent(t *testing.T) {
	t.Parallel()

	cached, err := New(newTestRegistry(), WithCache(2))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	plain, err := New(newTestRegistry())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	files := []types.FilesystemPath{
		"/ws/pkg/app/a.js",
		"/ws/pkg/tests/b-test.js",
		"/ws/pkg/lib/addon/c.js",
		"/ws/pkg/app/a.js",
		"/nowhere.js",
		"/nowhere.js",
	}
	for _, f := range files {
		if got, want := cached.Lookup(f), plain.Lookup(f); got != want {
			t.Errorf("cached Lookup(%q) = %+v, want %+v", f, got, want)
		}
	}
}

func TestResolver_ConcurrentUse(t *testing.T) {
	t.Parallel()

	r, err := New(newTestRegistry(), WithCache(8))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if got, ok := r.Resolve("/ws/pkg/app/components/x.js"); !ok || got != "my-app/components/x" {
					errs <- string(got)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent Resolve() = %q, want my-app/components/x", got)
	}
}
