// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/shapehash/cmd/shapehash/cli"
	"github.com/bureau-foundation/shapehash/lib/fingerprint"
)

func pinCommand(stdout, stderr io.Writer) *cli.Command {
	var common commonFlags
	var output string

	return &cli.Command{
		Name:    "pin",
		Summary: "Write a pin file for every entry of a manifest",
		Usage:   "shapehash pin [flags] [manifest]",
		Description: `Write a JSONC pin file pinning every entry of a manifest at its current
digest. Entries with a recorded shape get it as a comment above the pin,
so a reviewer can see what a changed pin means. Edit the result freely:
comments and trailing commas are allowed.`,
		Examples: []cli.Example{
			{Description: "Pin the current build", Command: "shapehash pin --output shapes.jsonc build/shapes.cbor"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("pin", pflag.ContinueOnError)
			common.add(flagSet)
			flagSet.StringVarP(&output, "output", "o", "-", "file to write, or - for standard output")
			return flagSet
		},
		Run: func(args []string) error {
			cfg, logger, err := common.load("pin", stderr)
			if err != nil {
				return err
			}
			path, err := pathArg(args, cfg.Paths.Manifest)
			if err != nil {
				return err
			}
			manifest, err := readManifest(cfg, logger, path)
			if err != nil {
				return err
			}

			if output == "-" {
				if err := fingerprint.WritePins(stdout, manifest); err != nil {
					return cli.Internal("writing pins: %w", err)
				}
				return nil
			}

			var buffer bytes.Buffer
			if err := fingerprint.WritePins(&buffer, manifest); err != nil {
				return cli.Internal("writing pins: %w", err)
			}
			if err := os.WriteFile(output, buffer.Bytes(), 0o644); err != nil {
				return cli.Internal("writing pins: %w", err)
			}
			logger.Info("pins written", "path", output, "entries", len(manifest.Entries))
			return nil
		},
	}
}
