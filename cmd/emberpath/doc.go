// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for emberpath.
//
// The Cobra command tree is built around an App, the composition root that
// owns the configuration provider and the output streams. Commands load the
// configuration, build the package registry and hand files to the resolver.
package cmd
