// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for shapehash packages.
//
// [RequireSameDigest] and [RequireDistinctDigest] state the two facts
// fingerprint tests care about: two shapes hash equal, or they do not.
// On failure they print both digests and the formatted shapes so that a
// mismatch can be read without a debugger.
//
// [RequireErrorIs] checks that shape construction failed for the
// expected reason.
//
// [WriteFile] writes a fixture into a per-test temporary directory and
// returns its path, for manifest, pin, and config file tests.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
