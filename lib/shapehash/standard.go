// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import "fmt"

// MaxTupleArity is the largest tuple TupleOf builds. Larger groupings
// need their own struct.
const MaxTupleArity = 15

// Standard container names. FROZEN.
const (
	stringName = "String"
	optionName = "Option"
	resultName = "Result"
	arrayName  = "Array"
	vecName    = "Vec"
	setName    = "Set"
	mapName    = "Map"
	tupleName  = "Tuple"
)

// Standard is the shape of a string or standard container: StandardTag,
// the container name, the array length for Array, then the element
// shapes in order.
type Standard struct {
	name      string
	length    uint64
	hasLength bool
	elements  []Shape
}

func (s *Standard) Kind() Kind   { return KindStandard }
func (s *Standard) Name() string { return s.name }

// Elements returns the nested shapes in encoding order.
func (s *Standard) Elements() []Shape {
	return append([]Shape(nil), s.elements...)
}

// Length returns the array length and whether the shape has one.
func (s *Standard) Length() (uint64, bool) {
	return s.length, s.hasLength
}

func (s *Standard) encode(w tokenWriter) {
	w.writeString(StandardTag)
	w.writeString(s.name)
	if s.hasLength {
		w.writeUint(s.length)
	}
	for _, element := range s.elements {
		element.encode(w)
	}
}

// String is the shape of Go strings.
var String = &Standard{name: stringName}

// OptionOf returns the shape of an optional value of shape inner.
func OptionOf(inner Shape) *Standard {
	return &Standard{name: optionName, elements: []Shape{inner}}
}

// ResultOf returns the shape of a success-or-error value.
func ResultOf(ok, err Shape) *Standard {
	return &Standard{name: resultName, elements: []Shape{ok, err}}
}

// ArrayOf returns the shape of a fixed-length array. The length is part
// of the shape.
func ArrayOf(length uint64, element Shape) *Standard {
	return &Standard{name: arrayName, length: length, hasLength: true, elements: []Shape{element}}
}

// VecOf returns the shape of a growable sequence.
func VecOf(element Shape) *Standard {
	return &Standard{name: vecName, elements: []Shape{element}}
}

// SetOf returns the shape of a set.
func SetOf(element Shape) *Standard {
	return &Standard{name: setName, elements: []Shape{element}}
}

// MapOf returns the shape of a map.
func MapOf(key, value Shape) *Standard {
	return &Standard{name: mapName, elements: []Shape{key, value}}
}

// TupleOf returns the shape of an ordered tuple. A single element is not
// wrapped: a 1-tuple has exactly the shape of its element. Arity zero
// and arities above MaxTupleArity fail with ErrTupleArity.
func TupleOf(elements ...Shape) (Shape, error) {
	switch {
	case len(elements) == 1:
		return elements[0], nil
	case len(elements) == 0 || len(elements) > MaxTupleArity:
		return nil, fmt.Errorf("tuple of %d elements: %w", len(elements), ErrTupleArity)
	}
	return &Standard{name: tupleName, elements: append([]Shape(nil), elements...)}, nil
}
