// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/invowk/emberpath/internal/issue"
	"github.com/invowk/emberpath/pkg/cueutil"
	"github.com/invowk/emberpath/pkg/platform"
	"github.com/invowk/emberpath/pkg/types"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "emberpath"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "emberpath"
	// ConfigFileExt is the preferred config file extension.
	ConfigFileExt = "cue"
	// ConfigFileExtTOML is the alternative config file extension.
	ConfigFileExtTOML = "toml"
	// EnvPrefix prefixes environment variable overrides (EMBERPATH_FALLBACK).
	EnvPrefix = "EMBERPATH"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the emberpath configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. Precedence, lowest first: defaults, config file,
// EMBERPATH_* environment variables.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("root", defaults.Root)
	v.SetDefault("ignore", defaults.IgnoreStrings())
	v.SetDefault("addon_keyword", defaults.AddonKeyword)
	v.SetDefault("app_dependency", defaults.AppDependency)
	v.SetDefault("fallback", string(defaults.Fallback))
	v.SetDefault("cache_size", int(defaults.CacheSize))
	v.SetDefault("log_level", string(defaults.LogLevel))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		path := string(opts.ConfigFilePath)
		if !fileExists(path) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'emberpath config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		if err := loadFileIntoViper(v, path); err != nil {
			return nil, loadError(path, err)
		}
		resolvedPath = path
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, err
		}

		baseDir := string(opts.BaseDir)
		for _, dir := range []string{cfgDir, baseDir} {
			path, ok := findConfigFile(dir)
			if !ok {
				continue
			}
			if err := loadFileIntoViper(v, path); err != nil {
				return nil, loadError(path, err)
			}
			resolvedPath = path
			break
		}
		// No config file found: defaults and environment apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Source = resolvedPath

	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Check EMBERPATH_* environment variables for typos").
			WithSuggestion("Valid fallback modes are none, unmatched and passthrough").
			Wrap(err).
			BuildError()
	}

	return &cfg, nil
}

func loadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithIssue(issue.ConfigLoadFailedId).
		WithSuggestion("Check that the file contains valid CUE or TOML syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("See 'emberpath config --help' for configuration options").
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath types.FilesystemPath) (string, error) {
	if configDirPath != "" {
		return string(configDirPath), nil
	}

	return ConfigDir()
}

// findConfigFile returns the first config file present in dir, CUE first.
// An empty dir means the working directory.
func findConfigFile(dir string) (string, bool) {
	for _, ext := range []string{ConfigFileExt, ConfigFileExtTOML} {
		path := ConfigFileName + "." + ext
		if dir != "" {
			path = filepath.Join(dir, path)
		}
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// loadFileIntoViper decodes a CUE or TOML config file (chosen by extension),
// validates it against the #Config schema and merges it into Viper.
func loadFileIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var configMap map[string]any
	switch strings.TrimPrefix(filepath.Ext(path), ".") {
	case ConfigFileExtTOML:
		configMap, err = decodeTOML(data, path)
	default:
		configMap, err = cueutil.DecodeMap(configSchema, data, "#Config", path)
	}
	if err != nil {
		return err
	}

	// Merge preserves defaults and leaves env overrides on top.
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// decodeTOML reads a TOML document and checks it against the same CUE
// schema as native config files.
func decodeTOML(data []byte, path string) (map[string]any, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}

	configMap := map[string]any{}
	if err := toml.Unmarshal(data, &configMap); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cueutil.ValidateMap(configSchema, configMap, "#Config", path); err != nil {
		return nil, err
	}
	return configMap, nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// CreateDefaultConfig writes the default configuration to the config
// directory unless a file already exists there. It returns the file path.
func CreateDefaultConfig() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// emberpath configuration file\n\n")

	if cfg.Root != "" {
		fmt.Fprintf(&sb, "root: %q\n", cfg.Root)
	}

	if len(cfg.Ignore) > 0 {
		sb.WriteString("ignore: [\n")
		for _, p := range cfg.Ignore {
			fmt.Fprintf(&sb, "\t%q,\n", string(p))
		}
		sb.WriteString("]\n")
	}

	fmt.Fprintf(&sb, "addon_keyword: %q\n", cfg.AddonKeyword)
	fmt.Fprintf(&sb, "app_dependency: %q\n", cfg.AppDependency)
	fmt.Fprintf(&sb, "fallback: %q\n", string(cfg.Fallback))
	fmt.Fprintf(&sb, "cache_size: %d\n", int(cfg.CacheSize))
	fmt.Fprintf(&sb, "log_level: %q\n", string(cfg.LogLevel))

	return sb.String()
}

// GenerateTOML generates a TOML representation of the configuration.
func GenerateTOML(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return string(data), nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
