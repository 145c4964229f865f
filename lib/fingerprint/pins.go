// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprint

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/shapehash/lib/shapehash"
)

// Pins are hand-maintained expected digests: the wire contract a
// project promises to keep.
type Pins struct {
	Algorithm string
	Types     map[string]shapehash.Digest
}

// pinsFile is the JSON layout of a pin file.
type pinsFile struct {
	Algorithm string            `json:"algorithm"`
	Types     map[string]string `json:"types"`
}

// ParsePins strips JSONC comments and trailing commas from data and
// parses the pins. Every digest must be hex of the algorithm's width.
func ParsePins(data []byte) (*Pins, error) {
	var file pinsFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return nil, fmt.Errorf("parsing pins: %w", err)
	}
	if file.Algorithm == "" {
		file.Algorithm = shapehash.DefaultAlgorithmName
	}
	algorithm, err := shapehash.AlgorithmByName(file.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("parsing pins: %w", err)
	}
	width := algorithm().Size()

	pins := &Pins{Algorithm: file.Algorithm, Types: make(map[string]shapehash.Digest, len(file.Types))}
	for key, hexDigest := range file.Types {
		digest, err := shapehash.ParseDigest(hexDigest, width)
		if err != nil {
			return nil, fmt.Errorf("parsing pins: %s: %w", key, err)
		}
		pins.Types[key] = digest
	}
	return pins, nil
}

// ReadPins reads a JSONC pin file from disk.
func ReadPins(path string) (*Pins, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	pins, err := ParsePins(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pins, nil
}

// Check compares the pins (expected) against a manifest (actual).
func Check(manifest *Manifest, pins *Pins) (*Comparison, error) {
	if manifest.Algorithm != pins.Algorithm {
		return nil, fmt.Errorf("cannot check manifest: manifest uses %s, pins use %s", manifest.Algorithm, pins.Algorithm)
	}
	return compareDigests(pins.Algorithm, pins.Types, manifest.Digests()), nil
}

// WritePins writes a pin file pinning every entry of manifest. Entries
// with a recorded shape get its one-line rendering as a comment, so
// that a reviewer sees what a changed pin means.
func WritePins(w io.Writer, manifest *Manifest) error {
	buffered := bufio.NewWriter(w)
	fmt.Fprintf(buffered, "{\n  \"algorithm\": %s,\n  \"types\": {\n", strconv.Quote(manifest.Algorithm))
	for _, entry := range manifest.Entries {
		if entry.Shape != nil {
			fmt.Fprintf(buffered, "    // %s\n", commentText(entry.Shape.String()))
		}
		fmt.Fprintf(buffered, "    %s: %q,\n", strconv.Quote(entry.Type), entry.Digest.String())
	}
	fmt.Fprintf(buffered, "  },\n}\n")
	return buffered.Flush()
}

// commentText escapes control characters in s so that it stays on one
// comment line. Names built through the manual API may contain them.
func commentText(s string) string {
	if !strings.ContainsFunc(s, unicode.IsControl) {
		return s
	}
	var builder strings.Builder
	for _, r := range s {
		if !unicode.IsControl(r) {
			builder.WriteRune(r)
			continue
		}
		quoted := strconv.QuoteRune(r)
		builder.WriteString(quoted[1 : len(quoted)-1])
	}
	return builder.String()
}
