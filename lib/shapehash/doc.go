// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package shapehash computes deterministic structural fingerprints of Go
// types. A fingerprint covers a type's canonical name, its field and
// variant names, and the shapes of its members, and nothing about how
// the type happens to be laid out in memory. Two programs that define
// the same logical schema get the same digest even if one uses a
// pointer where the other uses a value, or a [SortedSet] where the
// other uses a map. Any change to names, order, or member types
// changes the digest.
//
// Typical use is a cheap compatibility check across process, version,
// or plugin boundaries:
//
//	digest, err := shapehash.Of[Request](shapehash.BLAKE3)
//
// # Shapes
//
// A [Shape] is one of four kinds, each opening with its own namespace
// tag in the token stream:
//
//   - [Primitive] -- scalar types ("@primitive@", then "u8", "f64", ...)
//   - [Standard] -- String and the standard containers Option, Result,
//     Array, Vec, Set, Map, and Tuple ("@standard@", then the container
//     name and its element shapes)
//   - [Struct] -- "@struct@", the canonical name, then "@field@", name,
//     and shape for each field in declaration order
//   - [Enum] -- "@enum@", the canonical name, then each variant's name
//     followed by its members encoded like struct fields
//
// Tokens are fed to a [Sink] that length-delimits every token before it
// reaches the underlying [hash.Hash], so token boundaries are part of
// the digest.
//
// # Resolution
//
// A [Registry] turns a [reflect.Type] into a Shape in two steps. First
// the alias level: if the type is registered with [Registry.Alias], is
// a pointer, is one of the built-in representation types (int, the
// sync/atomic integers, [Lazy], [Mutex], ...), or implements [Aliaser],
// resolution moves on to the target type and the representation type
// contributes nothing. Second the own-shape level: definitions made
// with [Registry.DefineStruct] or [Registry.DefineEnum], the [Shaper]
// capability, and finally derivation from the type's kind. Struct
// derivation reads `typehash:"name"` struct tags for field overrides
// and a blank marker field for the type override:
//
//	type B struct {
//		_    struct{} `typehash:"A"`
//		Hoge uint8    `typehash:"a"`
//		Fuga uint16   `typehash:"b"`
//	}
//
// Every failure (duplicate overrides, malformed tags, unsupported
// kinds, alias cycles, recursive types) is reported when the shape is
// built. Once a Shape exists, hashing it cannot fail. Built shapes are
// cached per registry and safe to share between goroutines.
package shapehash
