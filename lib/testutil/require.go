// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/shapehash/lib/shapehash"
)

// T is the subset of testing.TB the helpers need.
type T interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireSameDigest fails the test unless got and want are equal.
//
//	testutil.RequireSameDigest(t, digestA, digestB, "override restores %s", "A")
func RequireSameDigest(t T, got, want shapehash.Digest, msgAndArgs ...any) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("digests differ: %s != %s: %s", got, want, formatMessage(msgAndArgs))
	}
}

// RequireDistinctDigest fails the test if a and b are equal.
func RequireDistinctDigest(t T, a, b shapehash.Digest, msgAndArgs ...any) {
	t.Helper()
	if a.Equal(b) {
		t.Fatalf("digests unexpectedly equal (%s): %s", a, formatMessage(msgAndArgs))
	}
}

// RequireSameShape fails the test unless a and b hash equal under
// algorithm. The failure message includes both shapes.
func RequireSameShape(t T, a, b shapehash.Shape, algorithm shapehash.Algorithm) {
	t.Helper()
	if !shapehash.Sum(a, algorithm).Equal(shapehash.Sum(b, algorithm)) {
		t.Fatalf("shapes hash differently:\n  %s\n  %s", shapehash.Format(a), shapehash.Format(b))
	}
}

// RequireDistinctShape fails the test if a and b hash equal under
// algorithm.
func RequireDistinctShape(t T, a, b shapehash.Shape, algorithm shapehash.Algorithm) {
	t.Helper()
	if shapehash.Sum(a, algorithm).Equal(shapehash.Sum(b, algorithm)) {
		t.Fatalf("shapes hash equal:\n  %s\n  %s", shapehash.Format(a), shapehash.Format(b))
	}
}

// RequireErrorIs fails the test unless errors.Is(err, target).
func RequireErrorIs(t T, err, target error, msgAndArgs ...any) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil: %s", target, formatMessage(msgAndArgs))
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got %v: %s", target, err, formatMessage(msgAndArgs))
	}
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
