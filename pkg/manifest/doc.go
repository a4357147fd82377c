// SPDX-License-Identifier: MPL-2.0

// Package manifest reads the few package.json fields needed to tell Ember
// addons from Ember applications.
//
// Only `name`, `keywords`, `dependencies` and `devDependencies` are decoded;
// the rest of the document is ignored and never validated.
package manifest
