// SPDX-License-Identifier: MPL-2.0

// Package registry builds the table of Ember package roots in a workspace.
//
// Build walks the workspace once, reads every package.json outside the
// ignored trees and files the containing directory under one of two maps:
// addon roots (manifest keywords contain "ember-addon") and app roots
// (manifest depends on "ember-cli"). Other manifests are skipped. A manifest
// that cannot be parsed aborts the build; there is no partial registry.
//
// A Registry never changes after construction and is safe to share between
// goroutines.
package registry
