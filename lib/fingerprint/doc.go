// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fingerprint records shape digests for a set of Go types and
// compares them across builds.
//
// A [Manifest] maps each type's key (import path and name) to its shape
// digest under one algorithm, optionally with a [shapehash.Description]
// of the shape so that a mismatch can be explained without the source
// at hand. Manifests are written as deterministic CBOR (see lib/codec),
// optionally compressed: a path ending in ".zst" is zstd, ".lz4" is an
// LZ4 frame.
//
// The typical flow in a test or generator:
//
//	manifest, err := fingerprint.Build(registry, fingerprint.Options{Algorithm: "blake3"},
//	    reflect.TypeFor[wire.Header](),
//	    reflect.TypeFor[wire.Frame](),
//	)
//	err = fingerprint.WriteFile("shapes.cbor", manifest)
//
// Two manifests are compared with [Compare]. Hand-maintained
// expectations live in a JSONC pin file (JSON with comments and
// trailing commas) read by [ReadPins] and checked with [Check]:
//
//	{
//	  "algorithm": "blake3",
//	  "types": {
//	    // struct Header { Version: u8, Length: u32 }
//	    "example.com/wire.Header": "5f0c...",
//	  },
//	}
//
// Comparison is equality only. A changed digest says the shape changed,
// not how; the recorded descriptions are there for a human to read.
package fingerprint
