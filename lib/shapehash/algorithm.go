// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"hash/fnv"
	"sort"

	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
)

// Algorithm constructs a fresh streaming hash. Each digest computation
// calls it once, so an Algorithm must return a new, unshared instance on
// every call. Any deterministic hash.Hash works; seeded or keyed hashes
// are deterministic only if the caller fixes the seed or key.
type Algorithm func() hash.Hash

// Built-in algorithms.
var (
	// BLAKE3 produces 32-byte digests. It is the default.
	BLAKE3 Algorithm = func() hash.Hash { return blake3.New() }

	// SHA256 produces 32-byte digests.
	SHA256 Algorithm = sha256.New

	// XXH3 produces 8-byte digests. Fast, not collision resistant
	// against adversarial type authors.
	XXH3 Algorithm = func() hash.Hash { return xxh3.New() }

	// FNV1a64 produces 8-byte digests.
	FNV1a64 Algorithm = func() hash.Hash { return fnv.New64a() }
)

// DefaultAlgorithmName names the algorithm used when none is configured.
const DefaultAlgorithmName = "blake3"

var algorithms = map[string]Algorithm{
	"blake3":  BLAKE3,
	"sha256":  SHA256,
	"xxh3":    XXH3,
	"fnv1a64": FNV1a64,
}

// AlgorithmByName returns the built-in algorithm registered under name.
func AlgorithmByName(name string) (Algorithm, error) {
	algorithm, ok := algorithms[name]
	if !ok {
		return nil, fmt.Errorf("unknown hash algorithm %q (known: %v)", name, AlgorithmNames())
	}
	return algorithm, nil
}

// AlgorithmNames returns the names of the built-in algorithms, sorted.
func AlgorithmNames() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sum returns the digest of shape under algorithm. It cannot fail.
func Sum(shape Shape, algorithm Algorithm) Digest {
	sink := NewSink(algorithm())
	sink.WriteShape(shape)
	return sink.Sum()
}
