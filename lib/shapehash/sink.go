// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import (
	"encoding/binary"
	"fmt"
	"hash"
	"math"
)

// Sink adapts a streaming hash to the shape token stream. Every token is
// written length-delimited and prefixed with its TokenKind, so the
// tokens "ab","c" never hash like "a","bc" and a string never hashes
// like an integer:
//
//   - string: 0x01, uint32 big-endian byte length, UTF-8 bytes
//   - integer: 0x02, uint64 big-endian
//
// A string token is at most math.MaxUint32 bytes; a longer one panics
// rather than writing a truncated length.
//
// A Sink is not safe for concurrent use. After Sum it accepts no more
// writes.
type Sink struct {
	hash      hash.Hash
	finalized bool
	scratch   [9]byte
}

// NewSink wraps h. The sink takes ownership: callers must not write to
// h directly while the sink is in use.
func NewSink(h hash.Hash) *Sink {
	return &Sink{hash: h}
}

// WriteShape appends the full token stream of shape.
func (s *Sink) WriteShape(shape Shape) {
	shape.encode(s)
}

// WriteString appends one string token.
func (s *Sink) WriteString(value string) { s.writeString(value) }

// WriteUint appends one integer token.
func (s *Sink) WriteUint(value uint64) { s.writeUint(value) }

func (s *Sink) writeString(value string) {
	s.checkOpen()
	s.scratch[0] = byte(TokenString)
	binary.BigEndian.PutUint32(s.scratch[1:5], tokenLength(uint64(len(value))))
	s.write(s.scratch[:5])
	s.write([]byte(value))
}

// tokenLength returns n as a length prefix, panicking if it does not fit.
func tokenLength(n uint64) uint32 {
	if n > math.MaxUint32 {
		panic(fmt.Sprintf("shapehash: string token of %d bytes exceeds the length prefix", n))
	}
	return uint32(n)
}

func (s *Sink) writeUint(value uint64) {
	s.checkOpen()
	s.scratch[0] = byte(TokenUint)
	binary.BigEndian.PutUint64(s.scratch[1:9], value)
	s.write(s.scratch[:9])
}

func (s *Sink) write(data []byte) {
	// hash.Hash.Write never returns an error.
	_, _ = s.hash.Write(data)
}

// Sum finalizes the sink and returns the digest. Calling Sum twice, or
// writing after Sum, panics.
func (s *Sink) Sum() Digest {
	s.checkOpen()
	s.finalized = true
	return Digest(s.hash.Sum(nil))
}

func (s *Sink) checkOpen() {
	if s.finalized {
		panic("shapehash: sink already finalized")
	}
}
