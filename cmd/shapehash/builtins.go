// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/shapehash/cmd/shapehash/cli"
	"github.com/bureau-foundation/shapehash/lib/shapehash"
)

type builtinView struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Digest string `json:"digest"`
}

func builtinsCommand(stdout, stderr io.Writer) *cli.Command {
	var common commonFlags
	var algorithmName string
	var format string

	return &cli.Command{
		Name:    "builtins",
		Summary: "List the digests of the built-in shapes",
		Usage:   "shapehash builtins [flags]",
		Description: `List every built-in primitive shape and the string shape with its digest.
These digests are fixed: they change only if the algorithm changes.
Implementations in other languages can use them as test vectors.`,
		Examples: []cli.Example{
			{Description: "Test vectors for SHA-256 as JSON", Command: "shapehash builtins --algorithm sha256 --format json"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("builtins", pflag.ContinueOnError)
			common.add(flagSet)
			flagSet.StringVar(&algorithmName, "algorithm", "", "hash algorithm (default: hash.algorithm)")
			flagSet.StringVar(&format, "format", "text", "output format: text or json")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			cfg, logger, err := common.load("builtins", stderr)
			if err != nil {
				return err
			}
			if algorithmName != "" {
				cfg.Hash.Algorithm = algorithmName
			}
			algorithm, err := cfg.Algorithm()
			if err != nil {
				return cli.Validation("%w", err)
			}
			logger.Debug("listing builtin shapes", "algorithm", cfg.Hash.Algorithm)

			shapes := []shapehash.Shape{shapehash.String}
			for _, primitive := range shapehash.Primitives() {
				shapes = append(shapes, primitive)
			}

			views := make([]builtinView, 0, len(shapes))
			for _, shape := range shapes {
				views = append(views, builtinView{
					Name:   shape.Name(),
					Kind:   shape.Kind().String(),
					Digest: shapehash.Sum(shape, algorithm).String(),
				})
			}

			switch format {
			case "text":
				for _, view := range views {
					fmt.Fprintf(stdout, "%s  %-9s %s\n", view.Digest, view.Kind, view.Name)
				}
				return nil
			case "json":
				encoder := json.NewEncoder(stdout)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(views); err != nil {
					return cli.Internal("encoding JSON: %w", err)
				}
				return nil
			default:
				return cli.Validation("unknown format %q (want text or json)", format)
			}
		},
	}
}
