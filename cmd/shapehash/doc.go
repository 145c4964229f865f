// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// shapehash inspects and checks fingerprint manifests: files recording
// the structural shape digest of a set of Go types, written by the
// lib/fingerprint package from a test or generator in the project that
// owns the types.
//
// Commands:
//
//	show      print the entries of a manifest (text, json, yaml, or CBOR diagnostic)
//	compare   compare two manifests
//	check     check a manifest against a hand-maintained JSONC pin file
//	pin       write a pin file pinning every entry of a manifest
//	builtins  list the digests of the built-in primitive and string shapes
//	version   print detailed version information
//
// Exit status is 0 when fingerprints agree, 1 when they differ, and 2
// when the comparison could not be made (bad arguments, unreadable
// files, invalid configuration).
//
// Configuration comes from the file named by --config or the
// SHAPEHASH_CONFIG environment variable; see lib/config.
package main
