// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import "strconv"

// TokenKind distinguishes the two token types in a shape token stream.
type TokenKind uint8

// Token kind bytes. These are FROZEN: they are written into every
// digest, and changing them changes every fingerprint ever computed.
const (
	TokenString TokenKind = 0x01
	TokenUint   TokenKind = 0x02
)

// Namespace tags. FROZEN, see TokenKind.
const (
	PrimitiveTag = "@primitive@"
	StandardTag  = "@standard@"
	StructTag    = "@struct@"
	EnumTag      = "@enum@"
	FieldTag     = "@field@"

	// AnonymousName is the canonical name of every positional or
	// embedded member without an override. All anonymous members share
	// it; they are told apart only by position.
	AnonymousName = "@ano@"
)

// Token is one element of a shape's token stream.
type Token struct {
	Kind  TokenKind
	Text  string
	Value uint64
}

func (t Token) String() string {
	if t.Kind == TokenUint {
		return strconv.FormatUint(t.Value, 10)
	}
	return t.Text
}

// tokenWriter receives tokens from Shape.encode. *Sink writes them to a
// hash; *tokenLog records them.
type tokenWriter interface {
	writeString(value string)
	writeUint(value uint64)
}

type tokenLog struct {
	tokens []Token
}

func (l *tokenLog) writeString(value string) {
	l.tokens = append(l.tokens, Token{Kind: TokenString, Text: value})
}

func (l *tokenLog) writeUint(value uint64) {
	l.tokens = append(l.tokens, Token{Kind: TokenUint, Value: value})
}

// Tokens returns the token stream shape feeds to a Sink. It exists for
// inspection and tests; digests never go through it.
func Tokens(shape Shape) []Token {
	var log tokenLog
	shape.encode(&log)
	return log.tokens
}
