// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"golang.org/x/exp/constraints"
)

// Go has no built-in option, result, non-zero, or tuple types. The
// generic types in this file fill those roles and carry their standard
// shapes, so that schemas using them fingerprint the same as schemas in
// languages that have them built in.

// Option holds a value or nothing. Its shape is Option of T.
type Option[T any] struct {
	value T
	valid bool
}

// Some returns an Option holding value.
func Some[T any](value T) Option[T] { return Option[T]{value: value, valid: true} }

// None returns an empty Option.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the value and whether one is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.valid }

func (Option[T]) TypeShape(resolver *Resolver) (Shape, error) {
	inner, err := Resolve[T](resolver)
	if err != nil {
		return nil, err
	}
	return OptionOf(inner), nil
}

// Result holds either a success value or an error value. Its shape is
// Result of T and E.
type Result[T, E any] struct {
	value T
	err   E
	ok    bool
}

// Ok returns a successful Result.
func Ok[T, E any](value T) Result[T, E] { return Result[T, E]{value: value, ok: true} }

// Err returns a failed Result.
func Err[T, E any](err E) Result[T, E] { return Result[T, E]{err: err} }

// Get returns the success value, the error value, and whether the
// result succeeded.
func (r Result[T, E]) Get() (T, E, bool) { return r.value, r.err, r.ok }

func (Result[T, E]) TypeShape(resolver *Resolver) (Shape, error) {
	ok, err := Resolve[T](resolver)
	if err != nil {
		return nil, err
	}
	failure, err := Resolve[E](resolver)
	if err != nil {
		return nil, err
	}
	return ResultOf(ok, failure), nil
}

// NonZero is an integer that is never zero. Its shape is the non-zero
// primitive of T's width, distinct from the plain integer.
type NonZero[T constraints.Integer] struct {
	value T
}

// NewNonZero returns value as a NonZero, or an error if it is zero.
func NewNonZero[T constraints.Integer](value T) (NonZero[T], error) {
	if value == 0 {
		return NonZero[T]{}, fmt.Errorf("NonZero: value is zero")
	}
	return NonZero[T]{value: value}, nil
}

// Get returns the integer.
func (n NonZero[T]) Get() T { return n.value }

func (NonZero[T]) TypeShape(*Resolver) (Shape, error) {
	kind := reflect.TypeFor[T]().Kind()
	primitive, ok := nonZeroPrimitives[kind]
	if !ok {
		return nil, fmt.Errorf("%w: NonZero of %s", ErrUnsupportedKind, kind)
	}
	return primitive, nil
}

// Rune is a Unicode code point that fingerprints as a character. A
// plain rune is an int32 and fingerprints as one.
type Rune rune

func (Rune) TypeShape(*Resolver) (Shape, error) { return Char, nil }

// Uint128 is an unsigned 128-bit integer.
type Uint128 struct {
	Hi, Lo uint64
}

func (Uint128) TypeShape(*Resolver) (Shape, error) { return U128, nil }

// Int128 is a signed 128-bit integer in two's complement.
type Int128 struct {
	Hi int64
	Lo uint64
}

func (Int128) TypeShape(*Resolver) (Shape, error) { return I128, nil }

// Pair is a 2-tuple.
type Pair[A, B any] struct {
	First  A
	Second B
}

func (Pair[A, B]) TypeShape(resolver *Resolver) (Shape, error) {
	return tupleShape(resolver, reflect.TypeFor[A](), reflect.TypeFor[B]())
}

// Triple is a 3-tuple.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

func (Triple[A, B, C]) TypeShape(resolver *Resolver) (Shape, error) {
	return tupleShape(resolver, reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]())
}

// Tuple resolves the element types and returns their tuple shape. Use
// it from a TypeShape method when Pair and Triple are not wide enough.
func Tuple(resolver *Resolver, elements ...reflect.Type) (Shape, error) {
	return tupleShape(resolver, elements...)
}

func tupleShape(resolver *Resolver, elements ...reflect.Type) (Shape, error) {
	shapes := make([]Shape, len(elements))
	for index, element := range elements {
		shape, err := resolver.ShapeOf(element)
		if err != nil {
			return nil, err
		}
		shapes[index] = shape
	}
	return TupleOf(shapes...)
}

// Wrapping is an integer with explicitly wrapping arithmetic. It has
// the shape of T.
type Wrapping[T constraints.Integer] struct {
	Value T
}

// Add returns w+other, wrapping on overflow.
func (w Wrapping[T]) Add(other T) Wrapping[T] { return Wrapping[T]{Value: w.Value + other} }

func (Wrapping[T]) ShapeAlias() reflect.Type { return reflect.TypeFor[T]() }

// SortedSet is a set kept in ascending order. It has the shape of
// map[T]struct{}: ordering is a representation choice, not part of the
// schema.
type SortedSet[T cmp.Ordered] struct {
	items []T
}

// Add inserts item and reports whether it was absent.
func (s *SortedSet[T]) Add(item T) bool {
	index, found := slices.BinarySearch(s.items, item)
	if found {
		return false
	}
	s.items = slices.Insert(s.items, index, item)
	return true
}

// Contains reports whether item is in the set.
func (s *SortedSet[T]) Contains(item T) bool {
	_, found := slices.BinarySearch(s.items, item)
	return found
}

// Len returns the number of items.
func (s *SortedSet[T]) Len() int { return len(s.items) }

// Items returns the items in ascending order.
func (s *SortedSet[T]) Items() []T { return slices.Clone(s.items) }

func (SortedSet[T]) ShapeAlias() reflect.Type { return reflect.TypeFor[map[T]struct{}]() }

// SortedMap is a map iterated in ascending key order. It has the shape
// of map[K]V.
type SortedMap[K cmp.Ordered, V any] struct {
	keys   []K
	values []V
}

// Set stores value under key.
func (m *SortedMap[K, V]) Set(key K, value V) {
	index, found := slices.BinarySearch(m.keys, key)
	if found {
		m.values[index] = value
		return
	}
	m.keys = slices.Insert(m.keys, index, key)
	m.values = slices.Insert(m.values, index, value)
}

// Get returns the value stored under key.
func (m *SortedMap[K, V]) Get(key K) (V, bool) {
	index, found := slices.BinarySearch(m.keys, key)
	if !found {
		var zero V
		return zero, false
	}
	return m.values[index], true
}

// Len returns the number of entries.
func (m *SortedMap[K, V]) Len() int { return len(m.keys) }

// Keys returns the keys in ascending order.
func (m *SortedMap[K, V]) Keys() []K { return slices.Clone(m.keys) }

func (SortedMap[K, V]) ShapeAlias() reflect.Type { return reflect.TypeFor[map[K]V]() }

// Lazy computes a value on first use. It has the shape of T.
type Lazy[T any] struct {
	once    sync.Once
	compute func() T
	value   T
}

// NewLazy returns a Lazy that calls compute once, on the first Get.
func NewLazy[T any](compute func() T) *Lazy[T] {
	return &Lazy[T]{compute: compute}
}

// Get returns the value, computing it if needed.
func (l *Lazy[T]) Get() T {
	l.once.Do(func() {
		if l.compute != nil {
			l.value = l.compute()
		}
	})
	return l.value
}

func (*Lazy[T]) ShapeAlias() reflect.Type { return reflect.TypeFor[T]() }

// Mutex guards a value with a mutual exclusion lock. It has the shape
// of T.
type Mutex[T any] struct {
	mu    sync.Mutex
	value T
}

// With calls fn with exclusive access to the value.
func (m *Mutex[T]) With(fn func(value *T)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.value)
}

func (*Mutex[T]) ShapeAlias() reflect.Type { return reflect.TypeFor[T]() }

// RWMutex guards a value with a reader/writer lock. It has the shape of
// T.
type RWMutex[T any] struct {
	mu    sync.RWMutex
	value T
}

// With calls fn with exclusive access to the value.
func (m *RWMutex[T]) With(fn func(value *T)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.value)
}

// Read calls fn with shared access to a copy of the value.
func (m *RWMutex[T]) Read(fn func(value T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn(m.value)
}

func (*RWMutex[T]) ShapeAlias() reflect.Type { return reflect.TypeFor[T]() }
