// SPDX-License-Identifier: MPL-2.0

// Package config loads emberpath settings using Viper.
//
// Settings come from emberpath.cue (validated against the embedded
// config_schema.cue) or emberpath.toml, looked up in an explicit path, then
// the platform config directory (~/.config/emberpath on Linux,
// ~/Library/Application Support/emberpath on macOS, %APPDATA%\emberpath on
// Windows), then the working directory. EMBERPATH_* environment variables
// override file values.
package config
