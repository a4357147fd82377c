// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"errors"
	"fmt"
)

const (
	// FallbackNone reports unresolvable files as having no module path.
	FallbackNone FallbackPolicy = iota
	// FallbackUnmatched returns the input path without its extension for
	// files that have no path inside any package root.
	FallbackUnmatched
	// FallbackPassThrough returns the input path without its extension for
	// every file, even those inside a package root. It is meant for fixtures
	// that live outside any real workspace.
	FallbackPassThrough
)

const (
	// KindNone means no module path was produced.
	KindNone Kind = iota
	// KindApp means an app root rewrite produced the module path.
	KindApp
	// KindAddon means an addon root rewrite produced the module path.
	KindAddon
	// KindFallback means the extension-stripped input path was returned.
	KindFallback
)

// ErrInvalidFallbackPolicy is the sentinel error wrapped by InvalidFallbackPolicyError.
var ErrInvalidFallbackPolicy = errors.New("invalid fallback policy")

type (
	// FallbackPolicy decides what happens when a file cannot be mapped
	// through the registry.
	FallbackPolicy int

	// InvalidFallbackPolicyError is returned for unknown policy values or names.
	InvalidFallbackPolicyError struct {
		Value string
	}

	// Kind tells which branch produced a Result.
	Kind int
)

// ParseFallbackPolicy converts a configuration name ("none", "unmatched",
// "passthrough") to a FallbackPolicy. The empty string means FallbackNone.
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch s {
	case "", "none":
		return FallbackNone, nil
	case "unmatched":
		return FallbackUnmatched, nil
	case "passthrough":
		return FallbackPassThrough, nil
	default:
		return FallbackNone, &InvalidFallbackPolicyError{Value: s}
	}
}

// String returns the configuration name of the policy.
func (p FallbackPolicy) String() string {
	switch p {
	case FallbackNone:
		return "none"
	case FallbackUnmatched:
		return "unmatched"
	case FallbackPassThrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// Validate returns an error if p is not a known policy.
func (p FallbackPolicy) Validate() error {
	switch p {
	case FallbackNone, FallbackUnmatched, FallbackPassThrough:
		return nil
	default:
		return &InvalidFallbackPolicyError{Value: fmt.Sprintf("%d", int(p))}
	}
}

// Error implements the error interface.
func (e *InvalidFallbackPolicyError) Error() string {
	return fmt.Sprintf("invalid fallback policy %q (expected none, unmatched or passthrough)", e.Value)
}

// Unwrap returns ErrInvalidFallbackPolicy for errors.Is() compatibility.
func (e *InvalidFallbackPolicyError) Unwrap() error { return ErrInvalidFallbackPolicy }

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindApp:
		return "app"
	case KindAddon:
		return "addon"
	case KindFallback:
		return "fallback"
	default:
		return "unknown"
	}
}
