// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/shapehash/cmd/shapehash/cli"
	"github.com/bureau-foundation/shapehash/lib/fingerprint"
)

func compareCommand(stdout, stderr io.Writer) *cli.Command {
	var common commonFlags
	var quiet bool

	return &cli.Command{
		Name:    "compare",
		Summary: "Compare two manifests",
		Usage:   "shapehash compare [flags] <want> <got>",
		Description: `Compare two manifests built with the same algorithm. Every type
whose digest changed, or that appears in only one manifest, is listed.
When both manifests carry shape descriptions, changed types show both
shapes.

Exits 0 when the manifests agree on every type and 1 otherwise.`,
		Examples: []cli.Example{
			{Description: "Compare the released manifest with the current build", Command: "shapehash compare release/shapes.cbor build/shapes.cbor"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("compare", pflag.ContinueOnError)
			common.add(flagSet)
			flagSet.BoolVarP(&quiet, "quiet", "q", false, "print nothing; report through the exit status only")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return cli.Validation("compare takes exactly two manifests, got %d arguments", len(args))
			}
			cfg, logger, err := common.load("compare", stderr)
			if err != nil {
				return err
			}
			want, err := readManifest(cfg, logger, args[0])
			if err != nil {
				return err
			}
			got, err := readManifest(cfg, logger, args[1])
			if err != nil {
				return err
			}

			comparison, err := fingerprint.Compare(want, got)
			if err != nil {
				return cli.Validation("%w", err).
					WithHint("Both manifests must be built with the same hash algorithm.")
			}
			logComparison(logger, comparison)
			if !quiet {
				writeComparison(stdout, comparison, want, got)
			}
			if !comparison.Equal() {
				return cli.Mismatch()
			}
			return nil
		},
	}
}

// writeComparison prints every result that is not a match, then a
// summary line. want and got supply shape descriptions when present;
// either may be nil.
func writeComparison(w io.Writer, comparison *fingerprint.Comparison, want, got *fingerprint.Manifest) {
	for _, result := range comparison.Results {
		if result.Status == fingerprint.Match {
			continue
		}
		fmt.Fprintf(w, "%-8s %s\n", result.Status, result.Type)
		if result.Want != nil {
			fmt.Fprintf(w, "    want %s%s\n", result.Want, describedShape(want, result.Type))
		}
		if result.Got != nil {
			fmt.Fprintf(w, "    got  %s%s\n", result.Got, describedShape(got, result.Type))
		}
	}
	fmt.Fprintf(w, "%d match, %d changed, %d missing, %d added\n",
		comparison.Count(fingerprint.Match),
		comparison.Count(fingerprint.Changed),
		comparison.Count(fingerprint.Missing),
		comparison.Count(fingerprint.Added),
	)
}

func describedShape(manifest *fingerprint.Manifest, key string) string {
	if manifest == nil {
		return ""
	}
	entry, ok := manifest.Lookup(key)
	if !ok || entry.Shape == nil {
		return ""
	}
	return "  " + entry.Shape.String()
}

func logComparison(logger *slog.Logger, comparison *fingerprint.Comparison) {
	logger.Info("comparison complete",
		"algorithm", comparison.Algorithm,
		"match", comparison.Count(fingerprint.Match),
		"changed", comparison.Count(fingerprint.Changed),
		"missing", comparison.Count(fingerprint.Missing),
		"added", comparison.Count(fingerprint.Added),
	)
}
