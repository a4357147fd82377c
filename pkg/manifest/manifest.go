// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/invowk/emberpath/pkg/types"

	"github.com/bytedance/sonic"
)

const (
	// FileName is the manifest file looked up in every package root.
	FileName = "package.json"

	// DefaultAddonKeyword marks a package as an Ember addon.
	DefaultAddonKeyword = "ember-addon"
	// DefaultAppDependency marks a package as an Ember application.
	DefaultAppDependency = "ember-cli"

	// maxFileSize bounds how much of a single manifest is read.
	maxFileSize = 5 * 1024 * 1024
)

// ErrParse is wrapped by every decoding failure returned from Parse and ParseFile.
var ErrParse = errors.New("invalid package manifest")

type (
	// Manifest is the subset of package.json inspected for classification.
	Manifest struct {
		Name            types.PackageName
		Keywords        []string
		Dependencies    map[string]string
		DevDependencies map[string]string
	}

	// document mirrors the JSON shape loosely: a field of an unexpected type
	// is dropped instead of failing the whole manifest.
	document struct {
		Name            any `json:"name"`
		Keywords        any `json:"keywords"`
		Dependencies    any `json:"dependencies"`
		DevDependencies any `json:"devDependencies"`
	}

	// Rules holds the markers used by Classify.
	Rules struct {
		// AddonKeyword must appear in `keywords` for a package to be an addon.
		AddonKeyword string
		// AppDependency must be a key of `dependencies` or `devDependencies`
		// for a package to be an application.
		AppDependency string
	}
)

// DefaultRules returns the Ember CLI conventions.
func DefaultRules() Rules {
	return Rules{
		AddonKeyword:  DefaultAddonKeyword,
		AppDependency: DefaultAppDependency,
	}
}

// withDefaults fills empty markers from DefaultRules.
func (r Rules) withDefaults() Rules {
	d := DefaultRules()
	if r.AddonKeyword == "" {
		r.AddonKeyword = d.AddonKeyword
	}
	if r.AppDependency == "" {
		r.AppDependency = d.AppDependency
	}
	return r
}

// Parse decodes manifest content. Only malformed JSON is an error; fields
// holding unexpected types are treated as absent.
func Parse(data []byte) (*Manifest, error) {
	var doc document
	if err := sonic.ConfigStd.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	m := &Manifest{
		Dependencies:    stringMap(doc.Dependencies),
		DevDependencies: stringMap(doc.DevDependencies),
	}
	if name, ok := doc.Name.(string); ok {
		m.Name = types.PackageName(name)
	}
	if kws, ok := doc.Keywords.([]any); ok {
		for _, kw := range kws {
			if s, ok := kw.(string); ok {
				m.Keywords = append(m.Keywords, s)
			}
		}
	}
	return m, nil
}

// stringMap keeps every key of a JSON object; non-string values map to "".
func stringMap(v any) map[string]string {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(obj))
	for k, val := range obj {
		s, _ := val.(string)
		out[k] = s
	}
	return out
}

// ParseFile reads and decodes the manifest at path.
func ParseFile(path types.FilesystemPath) (*Manifest, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("%s: %w: file size %d bytes exceeds maximum %d bytes", path, ErrParse, len(data), maxFileSize)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// HasKeyword reports whether kw is listed in `keywords`.
func (m *Manifest) HasKeyword(kw string) bool {
	return slices.Contains(m.Keywords, kw)
}

// DependsOn reports whether name is a key of `dependencies` or
// `devDependencies`. Version specs are never inspected.
func (m *Manifest) DependsOn(name string) bool {
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	_, ok := m.DevDependencies[name]
	return ok
}

// Classify applies rules to the manifest. The addon keyword is checked
// first, so a package carrying both markers is an addon.
func (m *Manifest) Classify(rules Rules) Classification {
	if m == nil {
		return ClassificationNone
	}
	rules = rules.withDefaults()
	switch {
	case m.HasKeyword(rules.AddonKeyword):
		return ClassificationAddon
	case m.DependsOn(rules.AppDependency):
		return ClassificationApp
	default:
		return ClassificationNone
	}
}
