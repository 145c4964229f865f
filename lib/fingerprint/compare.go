// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprint

import (
	"fmt"
	"slices"

	"github.com/bureau-foundation/shapehash/lib/shapehash"
)

// Status is the outcome of comparing one type's digests.
type Status uint8

const (
	// Match means both sides have the type with equal digests.
	Match Status = iota

	// Changed means both sides have the type with different digests.
	Changed

	// Missing means only the expected side has the type.
	Missing

	// Added means only the actual side has the type.
	Added
)

func (s Status) String() string {
	switch s {
	case Match:
		return "match"
	case Changed:
		return "changed"
	case Missing:
		return "missing"
	case Added:
		return "added"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Result is the comparison of one type. Want is nil for Added, Got is
// nil for Missing.
type Result struct {
	Type   string
	Status Status
	Want   shapehash.Digest
	Got    shapehash.Digest
}

// Comparison is the outcome of comparing two digest sets, one Result
// per type in either set, sorted by type.
type Comparison struct {
	Algorithm string
	Results   []Result
}

// Equal reports whether both sides hold the same types with the same
// digests.
func (c *Comparison) Equal() bool {
	for _, result := range c.Results {
		if result.Status != Match {
			return false
		}
	}
	return true
}

// Passes reports whether no type changed. When strict, every type must
// also appear on both sides.
func (c *Comparison) Passes(strict bool) bool {
	if strict {
		return c.Equal()
	}
	return c.Count(Changed) == 0
}

// Count returns the number of results with status.
func (c *Comparison) Count(status Status) int {
	count := 0
	for _, result := range c.Results {
		if result.Status == status {
			count++
		}
	}
	return count
}

// Compare compares an expected manifest with an actual one. The
// manifests must use the same algorithm: digests under different
// algorithms are not comparable.
func Compare(want, got *Manifest) (*Comparison, error) {
	if want.Algorithm != got.Algorithm {
		return nil, fmt.Errorf("cannot compare manifests: algorithm %s vs %s", want.Algorithm, got.Algorithm)
	}
	return compareDigests(want.Algorithm, want.Digests(), got.Digests()), nil
}

func compareDigests(algorithm string, want, got map[string]shapehash.Digest) *Comparison {
	keys := make([]string, 0, len(want)+len(got))
	for key := range want {
		keys = append(keys, key)
	}
	for key := range got {
		if _, ok := want[key]; !ok {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	comparison := &Comparison{Algorithm: algorithm, Results: make([]Result, 0, len(keys))}
	for _, key := range keys {
		wantDigest, inWant := want[key]
		gotDigest, inGot := got[key]
		result := Result{Type: key, Want: wantDigest, Got: gotDigest}
		switch {
		case !inGot:
			result.Status = Missing
		case !inWant:
			result.Status = Added
		case wantDigest.Equal(gotDigest):
			result.Status = Match
		default:
			result.Status = Changed
		}
		comparison.Results = append(comparison.Results, result)
	}
	return comparison
}
