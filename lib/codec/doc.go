// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration used for
// fingerprint manifests.
//
// Manifests are compared byte for byte in review and in CI, so the
// encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items. Same
// logical data always produces identical bytes.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (compressed manifest files):
//
//	encoder := codec.NewEncoder(writer)
//	decoder := codec.NewDecoder(reader)
//
// # Struct Tag Rules
//
//   - `cbor` tag: the type is only ever serialized as CBOR.
//   - `json` tag: the type may be serialized as both JSON and CBOR.
//     fxamacker/cbor v2 reads `json` tags as fallback when `cbor` tags
//     are absent, so one tag controls naming for both formats. Shape
//     descriptions use this, since the CLI also prints them as JSON.
//
// Never use both `cbor` and `json` tags on the same field.
package codec
