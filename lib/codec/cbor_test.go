// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

// sampleEntry uses cbor struct tags (the convention for purely-internal
// types).
type sampleEntry struct {
	Type   string `cbor:"type"`
	Digest []byte `cbor:"digest"`
	Note   string `cbor:"note,omitempty"`
}

// sampleDualEntry uses json struct tags (the convention for types that
// serve both JSON and CBOR, relying on fxamacker's fallback).
type sampleDualEntry struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleEntry{
		Type:   "example.com/wire.Header",
		Digest: []byte{0xde, 0xad, 0xbe, 0xef},
		Note:   "v2",
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleEntry
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.Type != original.Type || decoded.Note != original.Note || !bytes.Equal(decoded.Digest, original.Digest) {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	// Map iteration order is random; the encoding must not be.
	entries := map[string][]byte{
		"a.Alpha":   {1},
		"b.Bravo":   {2},
		"c.Charlie": {3},
		"d.Delta":   {4},
	}

	first, err := Marshal(entries)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	for range 10 {
		again, err := Marshal(entries)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic encoding violated: %x != %x", first, again)
		}
	}
}

func TestEncoderDecoderStreamRoundtrip(t *testing.T) {
	entries := []sampleDualEntry{
		{Kind: "struct", Name: "Header"},
		{Kind: "enum", Name: "Frame"},
		{Kind: "primitive", Name: "u8"},
	}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i, want := range entries {
		var got sampleDualEntry
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode entry %d: %v", i, err)
		}
		if got != want {
			t.Errorf("entry %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestOmitemptyRespected(t *testing.T) {
	withNote := sampleEntry{Type: "a", Note: "x"}
	withoutNote := sampleEntry{Type: "a"}

	dataWith, err := Marshal(withNote)
	if err != nil {
		t.Fatal(err)
	}
	dataWithout, err := Marshal(withoutNote)
	if err != nil {
		t.Fatal(err)
	}

	if len(dataWithout) >= len(dataWith) {
		t.Errorf("omitempty not effective: without=%d bytes, with=%d bytes",
			len(dataWithout), len(dataWith))
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var entry sampleEntry
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &entry); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestUnmarshalRejectsDuplicateKeys(t *testing.T) {
	// {"a": 1, "a": 2}
	data := []byte{0xa2, 0x61, 'a', 0x01, 0x61, 'a', 0x02}
	var decoded map[string]int
	if err := Unmarshal(data, &decoded); err == nil {
		t.Errorf("Unmarshal accepted duplicate keys: %v", decoded)
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]any{"type": "wire.Header"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}

	if !strings.Contains(notation, `"type"`) || !strings.Contains(notation, `"wire.Header"`) {
		t.Errorf("notation %q does not contain the encoded pair", notation)
	}
}

func BenchmarkMarshal(b *testing.B) {
	entry := sampleEntry{
		Type:   "example.com/wire.Header",
		Digest: bytes.Repeat([]byte{0xab}, 32),
	}

	b.ReportAllocs()
	for b.Loop() {
		Marshal(entry)
	}
}
