// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
)

const (
	// ClassificationNone is a package that is neither an addon nor an app.
	ClassificationNone Classification = iota
	// ClassificationAddon is a reusable Ember addon.
	ClassificationAddon
	// ClassificationApp is an Ember application.
	ClassificationApp
)

// ErrInvalidClassification is the sentinel error wrapped by InvalidClassificationError.
var ErrInvalidClassification = errors.New("invalid classification")

type (
	// Classification is the category of a package root.
	Classification int

	// InvalidClassificationError is returned for values outside the known set.
	InvalidClassificationError struct {
		Value Classification
	}
)

// String returns a human-readable classification name.
func (c Classification) String() string {
	switch c {
	case ClassificationNone:
		return "none"
	case ClassificationAddon:
		return "addon"
	case ClassificationApp:
		return "app"
	default:
		return "unknown"
	}
}

// Validate returns an error if c is not a known classification.
func (c Classification) Validate() error {
	switch c {
	case ClassificationNone, ClassificationAddon, ClassificationApp:
		return nil
	default:
		return &InvalidClassificationError{Value: c}
	}
}

// Error implements the error interface.
func (e *InvalidClassificationError) Error() string {
	return fmt.Sprintf("invalid classification %d", int(e.Value))
}

// Unwrap returns ErrInvalidClassification for errors.Is() compatibility.
func (e *InvalidClassificationError) Unwrap() error { return ErrInvalidClassification }
