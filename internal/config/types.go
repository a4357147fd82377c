// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// FallbackNone reports files outside every package root as unresolved.
	// Defined locally to avoid coupling config to internal/resolver; the CLI
	// converts with resolver.ParseFallbackPolicy at the boundary.
	FallbackNone FallbackMode = "none"
	// FallbackUnmatched returns the extension-stripped input for files that
	// have no path inside a package root.
	FallbackUnmatched FallbackMode = "unmatched"
	// FallbackPassThrough returns the extension-stripped input for every file.
	FallbackPassThrough FallbackMode = "passthrough"

	// LogLevelDebug logs every classified package root.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs registry summaries.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs suspicious manifests only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs failures only.
	LogLevelError LogLevel = "error"

	// DefaultAddonKeyword marks a manifest as an addon.
	DefaultAddonKeyword = "ember-addon"
	// DefaultAppDependency marks a manifest as an app.
	DefaultAppDependency = "ember-cli"
	// DefaultCacheSize is the resolver memo cache capacity.
	DefaultCacheSize CacheSize = 256
)

var (
	// ErrInvalidFallbackMode is returned when a FallbackMode value is not recognized.
	ErrInvalidFallbackMode = errors.New("invalid fallback mode")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidIgnorePattern is returned when an IgnorePattern is not a valid glob.
	ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")
	// ErrInvalidCacheSize is returned for negative cache sizes.
	ErrInvalidCacheSize = errors.New("invalid cache size")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// FallbackMode selects the resolver behavior for files the registry
	// cannot map.
	FallbackMode string

	// InvalidFallbackModeError is returned when a FallbackMode value is not recognized.
	// It wraps ErrInvalidFallbackMode for errors.Is() compatibility.
	InvalidFallbackModeError struct {
		Value FallbackMode
	}

	// LogLevel is the minimum level written by the CLI logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// IgnorePattern is a doublestar glob matched against root-relative
	// slash paths of directories skipped during the manifest scan.
	IgnorePattern string

	// InvalidIgnorePatternError is returned for malformed glob patterns.
	InvalidIgnorePatternError struct {
		Value IgnorePattern
	}

	// CacheSize is the capacity of the resolver memo cache. Zero disables it.
	CacheSize int

	// InvalidCacheSizeError is returned for negative cache sizes.
	InvalidCacheSizeError struct {
		Value CacheSize
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Root is the workspace root to scan; empty means the working directory.
		Root string `json:"root" toml:"root" mapstructure:"root"`
		// Ignore lists extra glob patterns appended to the built-in ignores.
		Ignore []IgnorePattern `json:"ignore" toml:"ignore" mapstructure:"ignore"`
		// AddonKeyword is the manifest keyword that marks an addon.
		AddonKeyword string `json:"addon_keyword" toml:"addon_keyword" mapstructure:"addon_keyword"`
		// AppDependency is the dependency name that marks an app.
		AppDependency string `json:"app_dependency" toml:"app_dependency" mapstructure:"app_dependency"`
		// Fallback selects the behavior for files the registry cannot map.
		Fallback FallbackMode `json:"fallback" toml:"fallback" mapstructure:"fallback"`
		// CacheSize bounds the resolver memo cache; 0 disables it.
		CacheSize CacheSize `json:"cache_size" toml:"cache_size" mapstructure:"cache_size"`
		// LogLevel is the minimum CLI log level.
		LogLevel LogLevel `json:"log_level" toml:"log_level" mapstructure:"log_level"`

		// Source is the file the configuration was read from, empty for defaults.
		Source string `json:"-" toml:"-" mapstructure:"-"`
	}
)

// String returns the string representation of the FallbackMode.
func (m FallbackMode) String() string { return string(m) }

// Validate returns an error if the FallbackMode is not one of the defined modes.
func (m FallbackMode) Validate() error {
	switch m {
	case FallbackNone, FallbackUnmatched, FallbackPassThrough:
		return nil
	default:
		return &InvalidFallbackModeError{Value: m}
	}
}

// Error implements the error interface.
func (e *InvalidFallbackModeError) Error() string {
	return fmt.Sprintf("invalid fallback mode %q (valid: none, unmatched, passthrough)", e.Value)
}

// Unwrap returns ErrInvalidFallbackMode for errors.Is() compatibility.
func (e *InvalidFallbackModeError) Unwrap() error { return ErrInvalidFallbackMode }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// Validate returns an error if the LogLevel is not one of the defined levels.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the IgnorePattern.
func (p IgnorePattern) String() string { return string(p) }

// Validate returns an error if the pattern is blank or not a valid glob.
func (p IgnorePattern) Validate() error {
	if strings.TrimSpace(string(p)) == "" || !doublestar.ValidatePattern(string(p)) {
		return &InvalidIgnorePatternError{Value: p}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidIgnorePatternError) Error() string {
	return fmt.Sprintf("invalid ignore pattern %q", e.Value)
}

// Unwrap returns ErrInvalidIgnorePattern for errors.Is() compatibility.
func (e *InvalidIgnorePatternError) Unwrap() error { return ErrInvalidIgnorePattern }

// Validate returns an error if the size is negative.
func (s CacheSize) Validate() error {
	if s < 0 {
		return &InvalidCacheSizeError{Value: s}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidCacheSizeError) Error() string {
	return fmt.Sprintf("invalid cache size %d: must not be negative", int(e.Value))
}

// Unwrap returns ErrInvalidCacheSize for errors.Is() compatibility.
func (e *InvalidCacheSizeError) Unwrap() error { return ErrInvalidCacheSize }

// Validate checks every field and collects all failures into an
// InvalidConfigError.
func (c Config) Validate() error {
	var errs []error
	if c.Root != "" && strings.TrimSpace(c.Root) == "" {
		errs = append(errs, fmt.Errorf("root %q: must not be whitespace-only", c.Root))
	}
	for _, p := range c.Ignore {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if strings.TrimSpace(c.AddonKeyword) == "" {
		errs = append(errs, errors.New("addon_keyword must not be empty"))
	}
	if strings.TrimSpace(c.AppDependency) == "" {
		errs = append(errs, errors.New("app_dependency must not be empty"))
	}
	if err := c.Fallback.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.CacheSize.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.LogLevel.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IgnoreStrings returns the ignore patterns as plain strings.
func (c Config) IgnoreStrings() []string {
	out := make([]string, len(c.Ignore))
	for i, p := range c.Ignore {
		out[i] = string(p)
	}
	return out
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Root:          "",
		Ignore:        []IgnorePattern{},
		AddonKeyword:  DefaultAddonKeyword,
		AppDependency: DefaultAppDependency,
		Fallback:      FallbackNone,
		CacheSize:     DefaultCacheSize,
		LogLevel:      LogLevelWarn,
	}
}
