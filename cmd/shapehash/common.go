// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/shapehash/cmd/shapehash/cli"
	"github.com/bureau-foundation/shapehash/lib/config"
	"github.com/bureau-foundation/shapehash/lib/fingerprint"
)

// commonFlags are accepted by every command that reads files.
type commonFlags struct {
	configPath string
	logLevel   string
}

func (c *commonFlags) add(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.configPath, "config", "", "path to shapehash.yaml (default: $"+config.EnvVar+")")
	flagSet.StringVar(&c.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
}

// load resolves the configuration and builds the command logger.
func (c *commonFlags) load(command string, stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Resolve(c.configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, cli.NotFound("loading config: %w", err)
		}
		return nil, nil, cli.Validation("loading config: %w", err)
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, cli.Validation("invalid configuration: %w", err)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, cli.Validation("%w", err)
	}
	logger := cli.NewCommandLogger(stderr, level, cfg.Log.Format).With("command", command)
	logger.Debug("configuration loaded",
		"environment", string(cfg.Environment),
		"algorithm", cfg.Hash.Algorithm,
		"strict", cfg.Check.Strict,
	)
	return cfg, logger, nil
}

// readManifest reads a manifest, categorizing the failure, and warns
// when it was not built the way the configuration asks.
func readManifest(cfg *config.Config, logger *slog.Logger, path string) (*fingerprint.Manifest, error) {
	manifest, err := fingerprint.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("%w", err).
				WithHint("Manifests are written by fingerprint.WriteFile from the project that owns the types.")
		}
		return nil, cli.Internal("%w", err)
	}
	logger.Debug("manifest loaded",
		"path", path,
		"algorithm", manifest.Algorithm,
		"entries", len(manifest.Entries),
		"compression", fingerprint.CompressionFor(path).String(),
	)
	warnUnexpectedBuild(logger, path, manifest, cfg.ManifestOptions())
	return manifest, nil
}

// warnUnexpectedBuild logs a warning for each way manifest differs from
// what a generator using options would have written.
func warnUnexpectedBuild(logger *slog.Logger, path string, manifest *fingerprint.Manifest, options fingerprint.Options) {
	if manifest.Algorithm != options.Algorithm {
		logger.Warn("manifest algorithm differs from hash.algorithm",
			"path", path, "manifest", manifest.Algorithm, "configured", options.Algorithm)
	}
	if !options.Describe {
		return
	}
	undescribed := 0
	for _, entry := range manifest.Entries {
		if entry.Shape == nil {
			undescribed++
		}
	}
	if undescribed > 0 {
		logger.Warn("manifest entries lack shape descriptions although hash.describe is set",
			"path", path, "entries", undescribed)
	}
}

// pathArg returns the single optional positional argument, or fallback.
func pathArg(args []string, fallback string) (string, error) {
	switch len(args) {
	case 0:
		return fallback, nil
	case 1:
		return args[0], nil
	default:
		return "", cli.Validation("unexpected argument: %s", args[1])
	}
}
