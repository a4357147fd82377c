// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds the CUE helpers used to read configuration files.
//
// Decoding is a three step flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with a schema definition
//  3. Validate and decode the unified value
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema string
//
//	values, err := cueutil.DecodeMap(schema, data, "#Config", "emberpath.cue")
//	if err != nil {
//	    return err // includes the CUE path of the offending field
//	}
package cueutil
