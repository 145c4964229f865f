// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash_test

import (
	"reflect"
	"testing"

	"github.com/bureau-foundation/shapehash/lib/shapehash"
)

func shapeOf[T any](t *testing.T, registry *shapehash.Registry) shapehash.Shape {
	t.Helper()
	shape, err := registry.ShapeOf(reflect.TypeFor[T]())
	if err != nil {
		t.Fatalf("ShapeOf(%s): %v", reflect.TypeFor[T](), err)
	}
	return shape
}

func digestOf[T any](t *testing.T, registry *shapehash.Registry) shapehash.Digest {
	t.Helper()
	digest, err := registry.Digest(reflect.TypeFor[T](), shapehash.BLAKE3)
	if err != nil {
		t.Fatalf("Digest(%s): %v", reflect.TypeFor[T](), err)
	}
	return digest
}

func shapeErr[T any](registry *shapehash.Registry) error {
	_, err := registry.ShapeOf(reflect.TypeFor[T]())
	return err
}

func tokenStrings(shape shapehash.Shape) []string {
	tokens := shapehash.Tokens(shape)
	strs := make([]string, len(tokens))
	for index, token := range tokens {
		strs[index] = token.String()
	}
	return strs
}
