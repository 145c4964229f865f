// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"io"
	"io/fs"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/shapehash/cmd/shapehash/cli"
	"github.com/bureau-foundation/shapehash/lib/fingerprint"
)

func checkCommand(stdout, stderr io.Writer) *cli.Command {
	var common commonFlags
	var pinsPath string
	var strict bool
	var flagSet *pflag.FlagSet

	return &cli.Command{
		Name:    "check",
		Summary: "Check a manifest against a pin file",
		Usage:   "shapehash check [flags] [manifest]",
		Description: `Check a manifest against a hand-maintained JSONC pin file. A pinned
type whose digest changed always fails the check. With --strict (the
default in the ci environment), a pinned type missing from the manifest
or a manifest entry without a pin also fails.

The manifest and pin file default to paths.manifest and paths.pins from
the configuration.

Exits 0 when the check passes and 1 when it fails.`,
		Examples: []cli.Example{
			{Description: "Check the build manifest in CI", Command: "SHAPEHASH_CONFIG=ci/shapehash.yaml shapehash check build/shapes.cbor.zst"},
			{Description: "Check leniently against a specific pin file", Command: "shapehash check --strict=false --pins wire.jsonc shapes.cbor"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = pflag.NewFlagSet("check", pflag.ContinueOnError)
			common.add(flagSet)
			flagSet.StringVar(&pinsPath, "pins", "", "pin file (default: paths.pins)")
			flagSet.BoolVar(&strict, "strict", false, "fail on missing and unpinned types (default: check.strict)")
			return flagSet
		},
		Run: func(args []string) error {
			cfg, logger, err := common.load("check", stderr)
			if err != nil {
				return err
			}
			manifestPath, err := pathArg(args, cfg.Paths.Manifest)
			if err != nil {
				return err
			}
			if pinsPath == "" {
				pinsPath = cfg.Paths.Pins
			}
			if !flagSet.Changed("strict") {
				strict = cfg.Check.Strict
			}

			manifest, err := readManifest(cfg, logger, manifestPath)
			if err != nil {
				return err
			}
			pins, err := fingerprint.ReadPins(pinsPath)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return cli.NotFound("%w", err).
						WithHint("Generate a pin file with 'shapehash pin " + manifestPath + "'.")
				}
				return cli.Validation("%w", err)
			}

			comparison, err := fingerprint.Check(manifest, pins)
			if err != nil {
				return cli.Validation("%w", err)
			}
			logComparison(logger.With("pins", pinsPath, "strict", strict), comparison)
			writeComparison(stdout, comparison, nil, manifest)
			if !comparison.Passes(strict) {
				return cli.Mismatch()
			}
			return nil
		},
	}
}
