// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/shapehash/lib/fingerprint"
	"github.com/bureau-foundation/shapehash/lib/shapehash"
)

// EnvVar names the environment variable Load reads the config path from.
const EnvVar = "SHAPEHASH_CONFIG"

// Environment represents where the tool is running.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// CI is for continuous integration. Checks are strict by default.
	CI Environment = "ci"
)

// Config is the configuration for the shapehash tool.
type Config struct {
	// Environment identifies where the tool runs (development, ci).
	Environment Environment `yaml:"environment"`

	// Hash configures digest computation.
	Hash HashConfig `yaml:"hash"`

	// Check configures manifest checking.
	Check CheckConfig `yaml:"check"`

	// Paths configures file locations.
	Paths PathsConfig `yaml:"paths"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	CI          *ConfigOverrides `yaml:"ci,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Hash  *HashConfig  `yaml:"hash,omitempty"`
	Check *CheckConfig `yaml:"check,omitempty"`
	Paths *PathsConfig `yaml:"paths,omitempty"`
	Log   *LogConfig   `yaml:"log,omitempty"`
}

// HashConfig configures digest computation.
type HashConfig struct {
	// Algorithm names the hash algorithm: blake3, sha256, xxh3, or
	// fnv1a64.
	// Default: blake3
	Algorithm string `yaml:"algorithm"`

	// Describe records a shape description next to each digest in
	// manifests, so a mismatch can be explained without the source.
	// Default: true
	Describe bool `yaml:"describe"`
}

// CheckConfig configures manifest checking.
type CheckConfig struct {
	// Strict fails a check when a pinned type is missing from the
	// manifest or a manifest entry has no pin.
	// Default: false (development), true (ci)
	Strict bool `yaml:"strict"`
}

// PathsConfig configures file locations.
type PathsConfig struct {
	// Root is the base directory that relative paths are resolved
	// against in ${SHAPEHASH_ROOT} expansions.
	Root string `yaml:"root"`

	// Manifest is the default manifest file. A .zst or .lz4 suffix
	// selects compression.
	Manifest string `yaml:"manifest"`

	// Pins is the default hand-written pin file (JSONC).
	Pins string `yaml:"pins"`
}

// LogConfig configures diagnostic output.
type LogConfig struct {
	// Level is the minimum slog level: debug, info, warn, or error.
	// Default: warn
	Level string `yaml:"level"`

	// Format selects the handler: auto (text on a terminal, JSON
	// otherwise), text, or json.
	// Default: auto
	Format string `yaml:"format"`
}

// Default returns the default configuration. These defaults are used
// as a base before loading the config file.
func Default() *Config {
	return &Config{
		Environment: Development,
		Hash: HashConfig{
			Algorithm: shapehash.DefaultAlgorithmName,
			Describe:  true,
		},
		Paths: PathsConfig{
			Root:     ".",
			Manifest: filepath.Join("${SHAPEHASH_ROOT}", "shapes.cbor"),
			Pins:     filepath.Join("${SHAPEHASH_ROOT}", "shapes.jsonc"),
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "auto",
		},
	}
}

// Load loads configuration from the SHAPEHASH_CONFIG environment
// variable. If it is not set, this fails; there is no discovery.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your shapehash.yaml config file, or use --config flag", EnvVar)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables
// do not override config values; the only expansion performed is
// ${VAR} substitution in paths.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// Resolve returns the finished configuration for a command: the file
// named by flagPath if set, else the file named by SHAPEHASH_CONFIG if
// set, else Default with variables expanded.
func Resolve(flagPath string) (*Config, error) {
	if flagPath != "" {
		return LoadFile(flagPath)
	}
	if os.Getenv(EnvVar) != "" {
		return Load()
	}
	cfg := Default()
	cfg.expandVariables()
	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case CI:
		overrides = c.CI
		// CI defaults: unpinned or missing types fail the build.
		if overrides == nil {
			overrides = &ConfigOverrides{
				Check: &CheckConfig{Strict: true},
				Log:   &LogConfig{Format: "json"},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Hash != nil {
		if overrides.Hash.Algorithm != "" {
			c.Hash.Algorithm = overrides.Hash.Algorithm
		}
		// Describe is a bool, so we always apply it from overrides.
		c.Hash.Describe = overrides.Hash.Describe
	}

	if overrides.Check != nil {
		c.Check.Strict = overrides.Check.Strict
	}

	if overrides.Paths != nil {
		if overrides.Paths.Root != "" {
			c.Paths.Root = overrides.Paths.Root
		}
		if overrides.Paths.Manifest != "" {
			c.Paths.Manifest = overrides.Paths.Manifest
		}
		if overrides.Paths.Pins != "" {
			c.Paths.Pins = overrides.Paths.Pins
		}
	}

	if overrides.Log != nil {
		if overrides.Log.Level != "" {
			c.Log.Level = overrides.Log.Level
		}
		if overrides.Log.Format != "" {
			c.Log.Format = overrides.Log.Format
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"SHAPEHASH_ROOT": c.Paths.Root,
		"HOME":           os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["SHAPEHASH_ROOT"] = c.Paths.Root // Update for dependent paths.

	c.Paths.Manifest = expandVars(c.Paths.Manifest, vars)
	c.Paths.Pins = expandVars(c.Paths.Pins, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != CI {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if _, err := shapehash.AlgorithmByName(c.Hash.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("hash.algorithm: %w", err))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	formats := []string{"auto", "text", "json"}
	if !slices.Contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Algorithm returns the configured hash algorithm.
func (c *Config) Algorithm() (shapehash.Algorithm, error) {
	return shapehash.AlgorithmByName(c.Hash.Algorithm)
}

// ManifestOptions returns the options a manifest generator should pass
// to fingerprint.Build, and that a manifest read back is expected to
// have been built with.
func (c *Config) ManifestOptions() fingerprint.Options {
	return fingerprint.Options{Algorithm: c.Hash.Algorithm, Describe: c.Hash.Describe}
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
