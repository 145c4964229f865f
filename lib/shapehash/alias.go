// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import (
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
)

// Aliaser is implemented by representation types whose shape is exactly
// that of another type. ShapeAlias is called on the zero value and must
// return the same type every time.
type Aliaser interface {
	ShapeAlias() reflect.Type
}

var (
	emptyStructType = reflect.TypeFor[struct{}]()
	int64Type       = reflect.TypeFor[int64]()
	uint64Type      = reflect.TypeFor[uint64]()
)

// builtinAliases maps standard library representation types to the
// plain type they stand for.
var builtinAliases = map[reflect.Type]reflect.Type{
	reflect.TypeFor[atomic.Bool]():   reflect.TypeFor[bool](),
	reflect.TypeFor[atomic.Int32]():  reflect.TypeFor[int32](),
	reflect.TypeFor[atomic.Int64]():  int64Type,
	reflect.TypeFor[atomic.Uint32](): reflect.TypeFor[uint32](),
	reflect.TypeFor[atomic.Uint64](): uint64Type,
}

// atomicPointerTarget reports T for t = atomic.Pointer[T], read from
// the result of its Load method. Like a plain pointer it stands for its
// pointee.
func atomicPointerTarget(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Struct || t.PkgPath() != "sync/atomic" || !strings.HasPrefix(t.Name(), "Pointer[") {
		return nil, false
	}
	load, ok := reflect.PointerTo(t).MethodByName("Load")
	if !ok || load.Type.NumOut() != 1 || load.Type.Out(0).Kind() != reflect.Pointer {
		return nil, false
	}
	return load.Type.Out(0).Elem(), true
}

// explicitAlias reports an alias target declared for t specifically:
// by registration, by being a pointer or atomic.Pointer, by
// implementing Aliaser, or by being a known standard library wrapper.
// Caller holds r.mu.
func (r *Registry) explicitAlias(t reflect.Type) (reflect.Type, bool) {
	if target, ok := r.aliases[t]; ok {
		return target, true
	}
	if t.Kind() == reflect.Pointer {
		return t.Elem(), true
	}
	if aliaser, ok := implementation[Aliaser](t); ok {
		return aliaser.ShapeAlias(), true
	}
	if target, ok := builtinAliases[t]; ok {
		return target, true
	}
	if target, ok := atomicPointerTarget(t); ok {
		return target, true
	}
	return nil, false
}

// aliasTarget is explicitAlias plus the word-size rule: any int or uint
// kind without its own definition or Shaper stands for int64 or uint64.
// Caller holds r.mu.
func (r *Registry) aliasTarget(t reflect.Type) (reflect.Type, bool) {
	if target, ok := r.explicitAlias(t); ok {
		return target, true
	}
	if t.Kind() != reflect.Int && t.Kind() != reflect.Uint {
		return nil, false
	}
	if _, defined := r.definitions[t]; defined {
		return nil, false
	}
	if _, ok := implementation[Shaper](t); ok {
		return nil, false
	}
	if t.Kind() == reflect.Int {
		return int64Type, true
	}
	return uint64Type, true
}

// resolveAlias follows alias targets from t until it reaches a type
// with none. Types in visited, and every type passed on the way, must
// not be reached again. Caller holds r.mu.
func (r *Registry) resolveAlias(t reflect.Type, visited []reflect.Type) (reflect.Type, error) {
	chain := append([]reflect.Type(nil), visited...)
	current := t
	for {
		for _, seen := range chain {
			if seen == current {
				return nil, fmt.Errorf("%w: %s", ErrAliasCycle, formatChain(append(chain, current)))
			}
		}
		chain = append(chain, current)

		next, ok := r.aliasTarget(current)
		if !ok {
			return current, nil
		}
		if next == nil {
			return nil, fmt.Errorf("%w: %s has a nil alias target", ErrUnsupportedKind, current)
		}
		current = next
	}
}

func formatChain(chain []reflect.Type) string {
	names := make([]string, len(chain))
	for index, t := range chain {
		names[index] = t.String()
	}
	return strings.Join(names, " -> ")
}
