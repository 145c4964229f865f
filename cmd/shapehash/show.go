// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/shapehash/cmd/shapehash/cli"
	"github.com/bureau-foundation/shapehash/lib/codec"
	"github.com/bureau-foundation/shapehash/lib/fingerprint"
	"github.com/bureau-foundation/shapehash/lib/shapehash"
)

// manifestView is the JSON and YAML rendering of a manifest, with
// digests as hex.
type manifestView struct {
	Algorithm string      `json:"algorithm" yaml:"algorithm"`
	Generator string      `json:"generator,omitempty" yaml:"generator,omitempty"`
	Entries   []entryView `json:"entries" yaml:"entries"`
}

type entryView struct {
	Type   string                 `json:"type" yaml:"type"`
	Digest string                 `json:"digest" yaml:"digest"`
	Shape  *shapehash.Description `json:"shape,omitempty" yaml:"shape,omitempty"`
}

func showCommand(stdout, stderr io.Writer) *cli.Command {
	var common commonFlags
	var format string
	var types []string

	return &cli.Command{
		Name:    "show",
		Summary: "Print the entries of a manifest",
		Usage:   "shapehash show [flags] [manifest]",
		Description: `Print the entries of a manifest: one line per type with its digest,
followed by the recorded shape if the manifest has descriptions.

The manifest defaults to paths.manifest from the configuration.`,
		Examples: []cli.Example{
			{Description: "Show two types as YAML", Command: "shapehash show --format yaml --type example.com/wire.Header --type example.com/wire.Frame shapes.cbor"},
			{Description: "Dump the raw CBOR structure", Command: "shapehash show --format diag shapes.cbor.zst"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			common.add(flagSet)
			flagSet.StringVar(&format, "format", "text", "output format: text, json, yaml, or diag")
			flagSet.StringArrayVar(&types, "type", nil, "only show this type key (repeatable)")
			return flagSet
		},
		Run: func(args []string) error {
			cfg, logger, err := common.load("show", stderr)
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
			if len(types) > 0 {
				manifest.Entries = slices.DeleteFunc(manifest.Entries, func(entry fingerprint.Entry) bool {
					return !slices.Contains(types, entry.Type)
				})
			}
			return writeManifest(stdout, manifest, format)
		},
	}
}

func writeManifest(w io.Writer, manifest *fingerprint.Manifest, format string) error {
	switch format {
	case "text":
		fmt.Fprintf(w, "# algorithm %s, %d entries", manifest.Algorithm, len(manifest.Entries))
		if manifest.Generator != "" {
			fmt.Fprintf(w, ", written by %s", manifest.Generator)
		}
		fmt.Fprintln(w)
		for _, entry := range manifest.Entries {
			fmt.Fprintf(w, "%s  %s\n", entry.Digest, entry.Type)
			if entry.Shape != nil {
				fmt.Fprintf(w, "    %s\n", entry.Shape)
			}
		}
		return nil

	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(newManifestView(manifest)); err != nil {
			return cli.Internal("encoding JSON: %w", err)
		}
		return nil

	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(newManifestView(manifest)); err != nil {
			return cli.Internal("encoding YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return cli.Internal("encoding YAML: %w", err)
		}
		return nil

	case "diag":
		data, err := fingerprint.Marshal(manifest)
		if err != nil {
			return cli.Internal("%w", err)
		}
		notation, err := codec.Diagnose(data)
		if err != nil {
			return cli.Internal("diagnosing CBOR: %w", err)
		}
		fmt.Fprintln(w, notation)
		return nil

	default:
		return cli.Validation("unknown format %q (want text, json, yaml, or diag)", format)
	}
}

func newManifestView(manifest *fingerprint.Manifest) manifestView {
	view := manifestView{
		Algorithm: manifest.Algorithm,
		Generator: manifest.Generator,
		Entries:   make([]entryView, 0, len(manifest.Entries)),
	}
	for _, entry := range manifest.Entries {
		view.Entries = append(view.Entries, entryView{
			Type:   entry.Type,
			Digest: entry.Digest.String(),
			Shape:  entry.Shape,
		})
	}
	return view
}
