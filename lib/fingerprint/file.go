// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprint

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/shapehash/lib/codec"
)

// Encode writes manifest to w as deterministic CBOR.
func Encode(w io.Writer, manifest *Manifest) error {
	if err := manifest.Validate(); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := codec.NewEncoder(w).Encode(manifest); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return nil
}

// Decode reads one manifest from r and validates it.
func Decode(r io.Reader) (*Manifest, error) {
	var manifest Manifest
	if err := codec.NewDecoder(r).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return &manifest, nil
}

// Marshal returns the uncompressed CBOR encoding of manifest.
func Marshal(manifest *Manifest) ([]byte, error) {
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return codec.Marshal(manifest)
}

// WriteFile writes manifest to path, compressed according to the path's
// suffix. The file is replaced atomically: readers see the old manifest
// or the new one, never a partial write.
func WriteFile(path string, manifest *Manifest) (err error) {
	compression := CompressionFor(path)

	temporary, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	defer func() {
		if err != nil {
			temporary.Close()
			os.Remove(temporary.Name())
		}
	}()

	writer, err := compression.NewWriter(temporary)
	if err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	if err := Encode(writer, manifest); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	if err := temporary.Chmod(0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	if err := os.Rename(temporary.Name(), path); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// ReadFile reads and validates the manifest at path, decompressing
// according to the path's suffix.
func ReadFile(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	defer file.Close()

	reader, err := CompressionFor(path).NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	defer reader.Close()

	manifest, err := Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return manifest, nil
}
