// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprint_test

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/bureau-foundation/shapehash/lib/fingerprint"
	"github.com/bureau-foundation/shapehash/lib/shapehash"
	"github.com/bureau-foundation/shapehash/lib/testutil"
)

func TestParsePins(t *testing.T) {
	digest := shapehash.Sum(shapehash.U8, shapehash.BLAKE3)
	data := fmt.Sprintf(`{
  // expected wire shapes
  "algorithm": "blake3",
  "types": {
    /* the header */
    "example.com/wire.Header": %q,
  },
}`, digest.String())

	pins, err := fingerprint.ParsePins([]byte(data))
	if err != nil {
		t.Fatalf("ParsePins: %v", err)
	}
	if pins.Algorithm != "blake3" {
		t.Errorf("Algorithm = %q, want blake3", pins.Algorithm)
	}
	testutil.RequireSameDigest(t, pins.Types["example.com/wire.Header"], digest)
}

func TestParsePinsDefaultsAlgorithm(t *testing.T) {
	pins, err := fingerprint.ParsePins([]byte(`{"types": {}}`))
	if err != nil {
		t.Fatalf("ParsePins: %v", err)
	}
	if pins.Algorithm != shapehash.DefaultAlgorithmName {
		t.Errorf("Algorithm = %q, want %q", pins.Algorithm, shapehash.DefaultAlgorithmName)
	}
}

func TestParsePinsErrors(t *testing.T) {
	tests := map[string]string{
		"malformed":         `{"types": `,
		"unknown algorithm": `{"algorithm": "md5", "types": {}}`,
		"not hex":           `{"types": {"a.B": "zz"}}`,
		"wrong width":       `{"algorithm": "xxh3", "types": {"a.B": "00112233"}}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := fingerprint.ParsePins([]byte(data)); err == nil {
				t.Errorf("ParsePins(%s) succeeded", data)
			}
		})
	}
}

func TestReadPins(t *testing.T) {
	path := testutil.WriteFile(t, "pins.jsonc", []byte(`{"algorithm": "fnv1a64", "types": {"a.B": "0011223344556677",},}`))
	pins, err := fingerprint.ReadPins(path)
	if err != nil {
		t.Fatalf("ReadPins: %v", err)
	}
	if len(pins.Types) != 1 || pins.Types["a.B"].String() != "0011223344556677" {
		t.Errorf("Types = %v", pins.Types)
	}
}

func TestWritePinsRoundTrip(t *testing.T) {
	manifest := buildManifest(t, fingerprint.Options{Describe: true},
		reflect.TypeFor[Header](), reflect.TypeFor[Frame]())

	var buffer bytes.Buffer
	if err := fingerprint.WritePins(&buffer, manifest); err != nil {
		t.Fatalf("WritePins: %v", err)
	}
	if !strings.Contains(buffer.String(), "// struct Header { Version: u8, Length: u32 }") {
		t.Errorf("pin file lacks the shape comment:\n%s", buffer.String())
	}

	pins, err := fingerprint.ParsePins(buffer.Bytes())
	if err != nil {
		t.Fatalf("ParsePins of written pins: %v\n%s", err, buffer.String())
	}
	comparison, err := fingerprint.Check(manifest, pins)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !comparison.Equal() {
		t.Errorf("written pins do not match their manifest: %v", statuses(comparison))
	}
}

// Multiline has a canonical name no struct tag could give it.
type Multiline struct{}

func (Multiline) TypeShape(*shapehash.Resolver) (shapehash.Shape, error) {
	return shapehash.NewStruct("first\nsecond\r\x00", shapehash.Field("a\tb", shapehash.U8))
}

func TestWritePinsEscapesControlCharacters(t *testing.T) {
	manifest := buildManifest(t, fingerprint.Options{Describe: true}, reflect.TypeFor[Multiline]())

	var buffer bytes.Buffer
	if err := fingerprint.WritePins(&buffer, manifest); err != nil {
		t.Fatalf("WritePins: %v", err)
	}
	if !strings.Contains(buffer.String(), `// struct first\nsecond\r\x00 { a\tb: u8 }`) {
		t.Errorf("shape comment not escaped:\n%s", buffer.String())
	}

	pins, err := fingerprint.ParsePins(buffer.Bytes())
	if err != nil {
		t.Fatalf("ParsePins of written pins: %v\n%s", err, buffer.String())
	}
	comparison, err := fingerprint.Check(manifest, pins)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !comparison.Equal() {
		t.Errorf("written pins do not match their manifest: %v", statuses(comparison))
	}
}

func TestCheck(t *testing.T) {
	manifest := buildManifest(t, fingerprint.Options{}, reflect.TypeFor[Header](), reflect.TypeFor[Pong]())
	header, _ := manifest.Lookup(pkg + ".Header")
	pins := &fingerprint.Pins{
		Algorithm: manifest.Algorithm,
		Types: map[string]shapehash.Digest{
			pkg + ".Header": header.Digest,
			pkg + ".Ping":   header.Digest,
		},
	}

	comparison, err := fingerprint.Check(manifest, pins)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	got := statuses(comparison)
	if got[pkg+".Header"] != "match" || got[pkg+".Ping"] != "missing" || got[pkg+".Pong"] != "added" {
		t.Errorf("statuses = %v", got)
	}
	if !comparison.Passes(false) || comparison.Passes(true) {
		t.Errorf("Passes(false)=%v Passes(true)=%v, want true false", comparison.Passes(false), comparison.Passes(true))
	}

	pins.Types[pkg+".Pong"] = header.Digest
	comparison, err = fingerprint.Check(manifest, pins)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if comparison.Passes(false) {
		t.Error("Passes(false) = true with a changed pin")
	}

	pins.Algorithm = "sha256"
	if _, err := fingerprint.Check(manifest, pins); err == nil {
		t.Error("Check accepted pins under a different algorithm")
	}
}
