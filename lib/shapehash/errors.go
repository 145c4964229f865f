// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import (
	"errors"
	"fmt"
	"reflect"
)

// Construction-time failures. Every error returned while building a
// shape wraps exactly one of these, usually inside a *DefinitionError.
var (
	// ErrUnsupportedKind is returned for types that have no structural
	// shape: functions, channels, unsafe pointers, uintptr, and
	// interfaces that were not registered as enums.
	ErrUnsupportedKind = errors.New("unsupported type kind")

	// ErrDuplicateOverride is returned when one item carries more than
	// one name override.
	ErrDuplicateOverride = errors.New("more than one name override")

	// ErrMalformedOverride is returned when an override is not a
	// non-empty quoted string.
	ErrMalformedOverride = errors.New("malformed name override")

	// ErrUnnamedType is returned when a composite has neither a
	// declared name nor an override.
	ErrUnnamedType = errors.New("composite type has no canonical name")

	// ErrAliasCycle is returned when an alias chain returns to a type
	// already visited.
	ErrAliasCycle = errors.New("alias cycle")

	// ErrRecursiveType is returned when a type contains itself, through
	// any number of indirections.
	ErrRecursiveType = errors.New("recursive type")

	// ErrDuplicateDefinition is returned when a type is defined or
	// aliased twice, or defined after its shape was already built.
	ErrDuplicateDefinition = errors.New("type already defined")

	// ErrTupleArity is returned for tuples outside 1..MaxTupleArity.
	ErrTupleArity = errors.New("tuple arity out of range")

	// ErrNotEnumVariant is returned by RegisterEnum when a variant type
	// does not implement the enum interface.
	ErrNotEnumVariant = errors.New("variant does not implement enum interface")
)

// DefinitionError reports a construction-time failure for a specific
// type. Item names the member, variant, or tag that failed, or is
// empty when the failure concerns the type as a whole.
type DefinitionError struct {
	Type reflect.Type
	Item string
	Err  error
}

func (e *DefinitionError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("shapehash: %s: %v", typeString(e.Type), e.Err)
	}
	return fmt.Sprintf("shapehash: %s: %s: %v", typeString(e.Type), e.Item, e.Err)
}

// Unwrap returns the underlying error, so errors.Is matches the
// sentinel errors above.
func (e *DefinitionError) Unwrap() error { return e.Err }

func definitionError(t reflect.Type, item string, err error) *DefinitionError {
	return &DefinitionError{Type: t, Item: item, Err: err}
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
