// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds the size of a CUE file accepted for decoding.
const DefaultMaxFileSize int64 = 1 << 20

// DecodeMap compiles schema, unifies data with the definition at defPath and
// decodes the result into a generic map. Fields may stay non-concrete, so an
// empty document is valid and yields an empty map.
func DecodeMap(schema string, data []byte, defPath, filename string) (map[string]any, error) {
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()
	def, err := lookupDefinition(ctx, schema, defPath)
	if err != nil {
		return nil, err
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	unified := def.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, FormatError(err, filename)
	}

	values := map[string]any{}
	if err := unified.Decode(&values); err != nil {
		return nil, FormatError(err, filename)
	}

	return values, nil
}

// ValidateMap checks values decoded from another format (TOML, JSON)
// against the definition at defPath.
func ValidateMap(schema string, values map[string]any, defPath, filename string) error {
	if filename == "" {
		filename = "<input>"
	}
	if values == nil {
		values = map[string]any{}
	}

	ctx := cuecontext.New()
	def, err := lookupDefinition(ctx, schema, defPath)
	if err != nil {
		return err
	}

	userValue := ctx.Encode(values)
	if userValue.Err() != nil {
		return FormatError(userValue.Err(), filename)
	}

	if err := def.Unify(userValue).Validate(cue.Concrete(false)); err != nil {
		return FormatError(err, filename)
	}
	return nil
}

func lookupDefinition(ctx *cue.Context, schema, defPath string) (cue.Value, error) {
	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	def := schemaValue.LookupPath(cue.ParsePath(defPath))
	if def.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", defPath, def.Err())
	}
	return def, nil
}
