// SPDX-License-Identifier: MPL-2.0

// Package platform names the operating systems emberpath treats differently,
// for comparisons against runtime.GOOS.
package platform
