// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprint

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/bureau-foundation/shapehash/lib/shapehash"
	"github.com/bureau-foundation/shapehash/lib/version"
)

// FormatVersion is the manifest layout version written by this package.
// Decoding rejects other versions.
const FormatVersion = 1

// Manifest is a set of shape digests computed under one algorithm.
// Entries are sorted by Type and unique.
type Manifest struct {
	Version   int     `cbor:"version"`
	Algorithm string  `cbor:"algorithm"`
	Generator string  `cbor:"generator,omitempty"`
	Entries   []Entry `cbor:"entries"`
}

// Entry is the digest of one type.
type Entry struct {
	// Type is the key of the type, see Key.
	Type string `cbor:"type"`

	Digest shapehash.Digest `cbor:"digest"`

	// Shape describes the hashed shape, if the manifest was built
	// with Options.Describe.
	Shape *shapehash.Description `cbor:"shape,omitempty"`
}

// Options configures Build.
type Options struct {
	// Algorithm names the hash algorithm. Empty means the default.
	Algorithm string

	// Describe records a description of each shape.
	Describe bool
}

// Key returns the manifest key of t: the import path and name for named
// types, or the Go syntax of the type otherwise. Pointer types key as
// their element, since they share its shape.
func Key(t reflect.Type) string {
	for t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// Build computes the digest of each type through registry and returns
// the manifest. Two types with the same key are an error.
func Build(registry *shapehash.Registry, options Options, types ...reflect.Type) (*Manifest, error) {
	algorithmName := options.Algorithm
	if algorithmName == "" {
		algorithmName = shapehash.DefaultAlgorithmName
	}
	algorithm, err := shapehash.AlgorithmByName(algorithmName)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		Version:   FormatVersion,
		Algorithm: algorithmName,
		Generator: "shapehash " + version.Short(),
		Entries:   make([]Entry, 0, len(types)),
	}
	for _, t := range types {
		shape, err := registry.ShapeOf(t)
		if err != nil {
			return nil, fmt.Errorf("building manifest: %w", err)
		}
		entry := Entry{Type: Key(t), Digest: shapehash.Sum(shape, algorithm)}
		if options.Describe {
			description := shapehash.Describe(shape)
			entry.Shape = &description
		}
		manifest.Entries = append(manifest.Entries, entry)
	}

	slices.SortFunc(manifest.Entries, func(a, b Entry) int { return strings.Compare(a.Type, b.Type) })
	for index := 1; index < len(manifest.Entries); index++ {
		if manifest.Entries[index].Type == manifest.Entries[index-1].Type {
			return nil, fmt.Errorf("building manifest: type %s listed twice", manifest.Entries[index].Type)
		}
	}
	return manifest, nil
}

// Lookup returns the entry for key.
func (m *Manifest) Lookup(key string) (Entry, bool) {
	index, found := slices.BinarySearchFunc(m.Entries, key, func(entry Entry, key string) int {
		return strings.Compare(entry.Type, key)
	})
	if !found {
		return Entry{}, false
	}
	return m.Entries[index], true
}

// Digests returns the entries as a key to digest map.
func (m *Manifest) Digests() map[string]shapehash.Digest {
	digests := make(map[string]shapehash.Digest, len(m.Entries))
	for _, entry := range m.Entries {
		digests[entry.Type] = entry.Digest
	}
	return digests
}

// Validate checks the invariants Decode relies on: a known version and
// algorithm, sorted unique keys, and digests of the algorithm's width.
func (m *Manifest) Validate() error {
	var errs []error

	if m.Version != FormatVersion {
		errs = append(errs, fmt.Errorf("unsupported manifest version %d (want %d)", m.Version, FormatVersion))
	}

	width := 0
	if algorithm, err := shapehash.AlgorithmByName(m.Algorithm); err != nil {
		errs = append(errs, err)
	} else {
		width = algorithm().Size()
	}

	for index, entry := range m.Entries {
		if entry.Type == "" {
			errs = append(errs, fmt.Errorf("entry %d has no type", index))
		}
		if index > 0 && strings.Compare(m.Entries[index-1].Type, entry.Type) >= 0 {
			errs = append(errs, fmt.Errorf("entry %s is out of order or duplicated", entry.Type))
		}
		if width > 0 && len(entry.Digest) != width {
			errs = append(errs, fmt.Errorf("entry %s: digest is %d bytes, want %d", entry.Type, len(entry.Digest), width))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
