// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidModulePath is the sentinel error wrapped by InvalidModulePathError.
var ErrInvalidModulePath = errors.New("invalid module path")

type (
	// ModulePath is the runtime import specifier of a file, e.g.
	// "my-app/components/button". Segments are always separated by '/',
	// independent of the host OS.
	ModulePath string

	// InvalidModulePathError is returned when a ModulePath is empty or
	// contains an empty segment.
	InvalidModulePathError struct {
		Value  ModulePath
		Reason string
	}
)

// String returns the string representation of the ModulePath.
func (m ModulePath) String() string { return string(m) }

// Segments returns the non-empty '/'-separated segments of the ModulePath.
func (m ModulePath) Segments() []string {
	parts := strings.Split(string(m), "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate returns an error if the ModulePath is empty or has an empty
// interior segment. A single leading '/' is accepted because pass-through
// resolution yields absolute paths.
func (m ModulePath) Validate() error {
	s := strings.TrimPrefix(string(m), "/")
	if s == "" {
		return &InvalidModulePathError{Value: m, Reason: "must be non-empty"}
	}
	for seg := range strings.SplitSeq(s, "/") {
		if seg == "" {
			return &InvalidModulePathError{Value: m, Reason: "must not contain empty segments"}
		}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidModulePathError) Error() string {
	return fmt.Sprintf("invalid module path %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidModulePath for errors.Is() compatibility.
func (e *InvalidModulePathError) Unwrap() error { return ErrInvalidModulePath }
