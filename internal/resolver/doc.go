// SPDX-License-Identifier: MPL-2.0

// Package resolver maps on-disk file paths to Ember module paths.
//
// Resolution looks for the deepest addon root and the deepest app root that
// contain the file. The app root is used only when it is strictly deeper than
// the addon root; otherwise the addon root decides, including the case where
// neither matched. The first segment of the file's path inside the chosen
// root selects the rewrite:
//
//	app root:    app/...                -> <app>/...
//	             tests/...              -> <app>/tests/...
//	addon root:  addon-test-support/... -> <addon>/test-support/...
//	             addon/...              -> <addon>/...
//	             app/...                -> <app>/...  (needs an enclosing app)
//
// Anything else has no module path. The only extension removed is the last
// one: "x-test.js" becomes "x-test" and "foo.test.js" becomes "foo.test".
package resolver
