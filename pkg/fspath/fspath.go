// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath functions that
// accept and return types.FilesystemPath, plus the segment-level helpers used
// when mapping on-disk files to module paths.
package fspath

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/invowk/emberpath/pkg/types"
)

// Join wraps filepath.Join, accepting and returning types.FilesystemPath.
func Join(elem ...types.FilesystemPath) types.FilesystemPath {
	strs := make([]string, len(elem))
	for i, e := range elem {
		strs[i] = string(e)
	}
	return types.FilesystemPath(filepath.Join(strs...))
}

// JoinStr wraps filepath.Join, accepting a typed base path and raw string
// segments (e.g. "package.json" or names from os.ReadDir).
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir for FilesystemPath.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Abs wraps filepath.Abs for FilesystemPath. Returns an error if the
// underlying OS call fails.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// Clean wraps filepath.Clean for FilesystemPath.
func Clean(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Clean(string(p)))
}

// Rel wraps filepath.Rel for FilesystemPath.
func Rel(base, target types.FilesystemPath) (types.FilesystemPath, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", fmt.Errorf("computing relative path: %w", err)
	}
	return types.FilesystemPath(rel), nil
}

// IsAbs wraps filepath.IsAbs for FilesystemPath.
func IsAbs(p types.FilesystemPath) bool {
	return filepath.IsAbs(string(p))
}

// HasPathPrefix reports whether root is p itself or one of its ancestor
// directories. The comparison is segment aware: "/ws/app" is not a prefix
// of "/ws/application/x.js".
func HasPathPrefix(p, root types.FilesystemPath) bool {
	ps, rs := string(p), string(root)
	if rs == "" || !strings.HasPrefix(ps, rs) {
		return false
	}
	if len(ps) == len(rs) {
		return true
	}
	if isSeparator(rs[len(rs)-1]) {
		return true
	}
	return isSeparator(ps[len(rs)])
}

// TrimExt removes the final extension of the last path element and leaves
// everything else untouched: "foo.test.js" becomes "foo.test". A leading dot
// (".eslintrc") or a trailing dot ("foo.") does not start an extension.
func TrimExt(p types.FilesystemPath) types.FilesystemPath {
	s := string(p)
	base := s
	if i := strings.LastIndexFunc(s, func(r rune) bool { return r < 0x80 && isSeparator(byte(r)) }); i >= 0 {
		base = s[i+1:]
	}
	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 || dot == len(base)-1 {
		return p
	}
	return types.FilesystemPath(s[:len(s)-(len(base)-dot)])
}

// Segments splits a relative path into its non-empty elements. Both the OS
// separator and '/' are accepted.
func Segments(p types.FilesystemPath) []string {
	return strings.FieldsFunc(string(p), func(r rune) bool {
		return r < 0x80 && isSeparator(byte(r))
	})
}

func isSeparator(c byte) bool {
	return c == '/' || c == filepath.Separator
}
