// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bureau-foundation/shapehash/lib/fingerprint"
	"github.com/bureau-foundation/shapehash/lib/shapehash"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "shapehash.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}

	if cfg.Hash.Algorithm != "blake3" {
		t.Errorf("expected algorithm=blake3, got %s", cfg.Hash.Algorithm)
	}

	if !cfg.Hash.Describe {
		t.Error("expected describe=true")
	}

	if cfg.Check.Strict {
		t.Error("expected strict=false for development")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoad_RequiresConfigEnv(t *testing.T) {
	t.Setenv(EnvVar, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when SHAPEHASH_CONFIG not set, got nil")
	}

	expectedMsg := "SHAPEHASH_CONFIG environment variable not set"
	if !strings.HasPrefix(err.Error(), expectedMsg) {
		t.Errorf("expected error message to start with %q, got %q", expectedMsg, err.Error())
	}
}

func TestLoad_WithConfigEnv(t *testing.T) {
	configPath := writeConfig(t, `
hash:
  algorithm: xxh3
paths:
  root: /test/root
`)
	t.Setenv(EnvVar, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Hash.Algorithm != "xxh3" {
		t.Errorf("expected algorithm=xxh3, got %s", cfg.Hash.Algorithm)
	}

	if cfg.Paths.Manifest != "/test/root/shapes.cbor" {
		t.Errorf("expected manifest=/test/root/shapes.cbor, got %s", cfg.Paths.Manifest)
	}
}

func TestLoadFile(t *testing.T) {
	configPath := writeConfig(t, `
hash:
  algorithm: sha256
  describe: false

check:
  strict: true

paths:
  manifest: /custom/shapes.cbor.zst
  pins: /custom/pins.jsonc

log:
  level: debug
  format: text
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Hash.Algorithm != "sha256" {
		t.Errorf("expected algorithm=sha256, got %s", cfg.Hash.Algorithm)
	}
	if cfg.Hash.Describe {
		t.Error("expected describe=false")
	}
	if !cfg.Check.Strict {
		t.Error("expected strict=true")
	}
	if cfg.Paths.Manifest != "/custom/shapes.cbor.zst" {
		t.Errorf("expected manifest=/custom/shapes.cbor.zst, got %s", cfg.Paths.Manifest)
	}
	if cfg.Paths.Pins != "/custom/pins.jsonc" {
		t.Errorf("expected pins=/custom/pins.jsonc, got %s", cfg.Paths.Pins)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		t.Fatalf("LogLevel: %v", err)
	}
	if level != slog.LevelDebug {
		t.Errorf("expected level=debug, got %s", level)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	configPath := writeConfig(t, "hash: [not, a, mapping]\n")
	if _, err := LoadFile(configPath); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	configPath := writeConfig(t, `
environment: development

hash:
  algorithm: blake3

development:
  hash:
    algorithm: fnv1a64
    describe: false
  log:
    level: debug
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Hash.Algorithm != "fnv1a64" {
		t.Errorf("expected algorithm=fnv1a64 from override, got %s", cfg.Hash.Algorithm)
	}
	if cfg.Hash.Describe {
		t.Error("expected describe=false from override")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected level=debug from override, got %s", cfg.Log.Level)
	}
}

func TestCIDefaults(t *testing.T) {
	configPath := writeConfig(t, "environment: ci\n")

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if !cfg.Check.Strict {
		t.Error("expected strict=true for ci")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected format=json for ci, got %s", cfg.Log.Format)
	}
}

func TestEnvVarsDoNotOverride(t *testing.T) {
	// The config file is the single source of truth; only ${VAR}
	// references inside it see the environment.
	t.Setenv("SHAPEHASH_ALGORITHM", "sha256")
	t.Setenv("SHAPEHASH_ROOT", "/env/root")

	configPath := writeConfig(t, `
paths:
  root: /file/root
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Hash.Algorithm != "blake3" {
		t.Errorf("expected algorithm=blake3 from defaults, got %s (env vars should not override)", cfg.Hash.Algorithm)
	}
	if cfg.Paths.Root != "/file/root" {
		t.Errorf("expected root=/file/root from file, got %s (env vars should not override)", cfg.Paths.Root)
	}
	if cfg.Paths.Pins != "/file/root/shapes.jsonc" {
		t.Errorf("expected pins under /file/root, got %s", cfg.Paths.Pins)
	}
}

func TestResolve(t *testing.T) {
	flagPath := writeConfig(t, "hash:\n  algorithm: xxh3\n")
	envPath := writeConfig(t, "hash:\n  algorithm: sha256\n")
	t.Setenv(EnvVar, envPath)

	cfg, err := Resolve(flagPath)
	if err != nil {
		t.Fatalf("Resolve(flag): %v", err)
	}
	if cfg.Hash.Algorithm != "xxh3" {
		t.Errorf("--config should win over %s: got %s", EnvVar, cfg.Hash.Algorithm)
	}

	cfg, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve(env): %v", err)
	}
	if cfg.Hash.Algorithm != "sha256" {
		t.Errorf("expected algorithm from %s, got %s", EnvVar, cfg.Hash.Algorithm)
	}

	t.Setenv(EnvVar, "")
	cfg, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve(default): %v", err)
	}
	if cfg.Paths.Manifest != "./shapes.cbor" {
		t.Errorf("expected default manifest ./shapes.cbor, got %s", cfg.Paths.Manifest)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/shapes",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/shapes",
		},
		{
			input:    "${SHAPEHASH_TEST_MISSING:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid environment",
			modify: func(c *Config) {
				c.Environment = "production"
			},
			wantErr: true,
		},
		{
			name: "unknown algorithm",
			modify: func(c *Config) {
				c.Hash.Algorithm = "md5"
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Log.Level = "loud"
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			modify: func(c *Config) {
				c.Log.Format = "xml"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type sample struct {
	ID   uint64
	Name string
}

func TestManifestOptions(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
hash:
  algorithm: xxh3
  describe: false
`))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	options := cfg.ManifestOptions()
	if options.Algorithm != "xxh3" || options.Describe {
		t.Errorf("ManifestOptions() = %+v, want xxh3 without descriptions", options)
	}

	manifest, err := fingerprint.Build(shapehash.NewRegistry(nil), options, reflect.TypeFor[sample]())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if manifest.Algorithm != "xxh3" || manifest.Entries[0].Shape != nil {
		t.Errorf("manifest built with %s, shape %v; want xxh3 and no shape", manifest.Algorithm, manifest.Entries[0].Shape)
	}

	algorithm, err := cfg.Algorithm()
	if err != nil {
		t.Fatalf("Algorithm: %v", err)
	}
	shape, err := shapehash.NewRegistry(nil).ShapeOf(reflect.TypeFor[sample]())
	if err != nil {
		t.Fatalf("ShapeOf: %v", err)
	}
	if !shapehash.Sum(shape, algorithm).Equal(manifest.Entries[0].Digest) {
		t.Error("Algorithm() disagrees with the manifest digest")
	}
}
