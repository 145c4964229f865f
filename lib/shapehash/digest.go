// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Digest is the finalized output of one Sink. Its width depends on the
// algorithm. Digests are only meant to be compared for equality.
type Digest []byte

// Equal reports whether d and other are the same digest.
func (d Digest) Equal(other Digest) bool {
	return bytes.Equal(d, other)
}

// String returns the lowercase hex encoding of d. This is the canonical
// format used in manifests, logs, and CLI output.
func (d Digest) String() string {
	return hex.EncodeToString(d)
}

// Uint64 returns the first eight bytes of d as a big-endian integer,
// for callers that want a single machine word. Digests shorter than
// eight bytes are zero-extended on the left.
func (d Digest) Uint64() uint64 {
	var word [8]byte
	if len(d) >= 8 {
		copy(word[:], d[:8])
	} else {
		copy(word[8-len(d):], d)
	}
	return binary.BigEndian.Uint64(word[:])
}

// ParseDigest parses a hex-encoded digest. width is the expected byte
// length; zero accepts any non-empty length.
func ParseDigest(hexString string, width int) (Digest, error) {
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return nil, fmt.Errorf("parsing shape digest: %w", err)
	}
	if len(decoded) == 0 {
		return nil, fmt.Errorf("parsing shape digest: empty")
	}
	if width > 0 && len(decoded) != width {
		return nil, fmt.Errorf("shape digest is %d bytes, want %d", len(decoded), width)
	}
	return Digest(decoded), nil
}
