// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPackageName is the sentinel error wrapped by InvalidPackageNameError.
var ErrInvalidPackageName = errors.New("invalid package name")

type (
	// PackageName is the `name` field of a package manifest. It doubles as the
	// module root under which a classified package's files are importable.
	PackageName string

	// InvalidPackageNameError is returned when a PackageName is empty or
	// carries leading/trailing whitespace.
	InvalidPackageNameError struct {
		Value PackageName
	}
)

// String returns the string representation of the PackageName.
func (n PackageName) String() string { return string(n) }

// Validate returns an error if the PackageName is empty or not trimmed.
func (n PackageName) Validate() error {
	s := string(n)
	if s == "" || strings.TrimSpace(s) != s {
		return &InvalidPackageNameError{Value: n}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidPackageNameError) Error() string {
	return fmt.Sprintf("invalid package name %q: must be non-empty without surrounding whitespace", e.Value)
}

// Unwrap returns ErrInvalidPackageName for errors.Is() compatibility.
func (e *InvalidPackageNameError) Unwrap() error { return ErrInvalidPackageName }
