// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/shapehash/cmd/shapehash/cli"
	"github.com/bureau-foundation/shapehash/lib/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	// --version is handled before dispatch so it works without a subcommand.
	if len(args) > 0 && args[0] == "--version" {
		fmt.Fprintf(stdout, "shapehash %s\n", version.Info())
		return cli.ExitCodeOK
	}

	err := newRootCommand(stdout, stderr).Execute(args)
	code, printable := cli.ExitCodeOf(err)
	if printable {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return code
}

func newRootCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:       "shapehash",
		HelpOutput: stderr,
		Description: `shapehash inspects and checks fingerprint manifests.

A manifest records the structural shape digest of a set of Go types.
Two builds that agree on every digest agree on the in-memory shape of
every listed type.`,
		Subcommands: []*cli.Command{
			showCommand(stdout, stderr),
			compareCommand(stdout, stderr),
			checkCommand(stdout, stderr),
			pinCommand(stdout, stderr),
			builtinsCommand(stdout, stderr),
			{
				Name:    "version",
				Summary: "Print detailed version information",
				Run: func(args []string) error {
					if len(args) > 0 {
						return cli.Validation("unexpected argument: %s", args[0])
					}
					fmt.Fprintf(stdout, "shapehash %s\n", version.Full())
					return nil
				},
			},
		},
	}
}
