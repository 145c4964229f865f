// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import (
	"errors"
	"fmt"
	"reflect"
)

// Shaper is implemented by types that describe their own shape. The
// method is called on the zero value (or a pointer to it), once per
// registry, and must not depend on the receiver's contents. Nested
// types are resolved through the Resolver so that aliases, caching, and
// recursion checks apply to them.
//
// TypeShape runs while the registry's lock is held. It must not call
// Registry.ShapeOf, Registry.Digest, Of, or any registration method on
// the registry that is building it: those would deadlock.
type Shaper interface {
	TypeShape(resolver *Resolver) (Shape, error)
}

// Resolver resolves member types while a shape is being built. It is
// only valid for the duration of the Shaper.TypeShape call it is passed
// to.
type Resolver struct {
	registry *Registry
	active   map[reflect.Type]bool
}

// Resolve returns the shape of T through resolver.
func Resolve[T any](resolver *Resolver) (Shape, error) {
	return resolver.ShapeOf(reflect.TypeFor[T]())
}

var errNilShape = errors.New("shaper returned no shape")

// ShapeOf returns the shape of t. Alias targets are followed first; the
// representation type itself never reaches the token stream.
func (rs *Resolver) ShapeOf(t reflect.Type) (Shape, error) {
	if t == nil {
		return nil, definitionError(nil, "", fmt.Errorf("%w: nil type", ErrUnsupportedKind))
	}
	registry := rs.registry
	if shape, ok := registry.shapes[t]; ok {
		return shape, nil
	}

	canonical, err := registry.resolveAlias(t, nil)
	if err != nil {
		return nil, definitionError(t, "alias", err)
	}

	shape, ok := registry.shapes[canonical]
	if !ok {
		if rs.active[canonical] {
			return nil, definitionError(canonical, "", ErrRecursiveType)
		}
		rs.active[canonical] = true
		shape, err = rs.build(canonical)
		delete(rs.active, canonical)
		if err != nil {
			return nil, err
		}
		registry.shapes[canonical] = shape
		registry.logger.Debug("built shape",
			"type", canonical.String(),
			"kind", shape.Kind().String(),
			"name", shape.Name(),
		)
	}
	registry.shapes[t] = shape
	return shape, nil
}

// build produces the own shape of a type that has no alias target.
func (rs *Resolver) build(t reflect.Type) (Shape, error) {
	if def, ok := rs.registry.definitions[t]; ok {
		return rs.buildDefinition(t, def)
	}

	if shaper, ok := implementation[Shaper](t); ok {
		shape, err := shaper.TypeShape(rs)
		if err != nil {
			return nil, definitionError(t, "", err)
		}
		if shape == nil {
			return nil, definitionError(t, "", errNilShape)
		}
		return shape, nil
	}

	if primitive, ok := kindPrimitives[t.Kind()]; ok {
		return primitive, nil
	}

	switch t.Kind() {
	case reflect.String:
		return String, nil

	case reflect.Slice:
		element, err := rs.member(t, "element", t.Elem())
		if err != nil {
			return nil, err
		}
		return VecOf(element), nil

	case reflect.Array:
		element, err := rs.member(t, "element", t.Elem())
		if err != nil {
			return nil, err
		}
		return ArrayOf(uint64(t.Len()), element), nil

	case reflect.Map:
		key, err := rs.member(t, "key", t.Key())
		if err != nil {
			return nil, err
		}
		if t.Elem() == emptyStructType {
			return SetOf(key), nil
		}
		value, err := rs.member(t, "value", t.Elem())
		if err != nil {
			return nil, err
		}
		return MapOf(key, value), nil

	case reflect.Struct:
		name, fields, err := deriveStruct(t)
		if err != nil {
			return nil, err
		}
		return rs.buildDefinition(t, definition{name: name, fields: fields})
	}

	return nil, definitionError(t, "", fmt.Errorf("%w: %s", ErrUnsupportedKind, t.Kind()))
}

func (rs *Resolver) member(owner reflect.Type, item string, t reflect.Type) (Shape, error) {
	shape, err := rs.ShapeOf(t)
	if err != nil {
		return nil, definitionError(owner, item, err)
	}
	return shape, nil
}

func (rs *Resolver) members(owner reflect.Type, prefix string, fields []FieldDef) ([]Member, error) {
	members := make([]Member, 0, len(fields))
	for index, field := range fields {
		item := prefix + "field " + field.Name
		if field.Name == "" || field.Name == AnonymousName {
			item = fmt.Sprintf("%sfield #%d", prefix, index)
		}
		shape, err := rs.member(owner, item, field.Type)
		if err != nil {
			return nil, err
		}
		members = append(members, Field(field.Name, shape))
	}
	return members, nil
}

func (rs *Resolver) buildDefinition(t reflect.Type, def definition) (Shape, error) {
	if !def.enum {
		members, err := rs.members(t, "", def.fields)
		if err != nil {
			return nil, err
		}
		shape, err := NewStruct(def.name, members...)
		if err != nil {
			return nil, definitionError(t, "", err)
		}
		return shape, nil
	}

	variants := make([]Variant, 0, len(def.variants))
	for _, variant := range def.variants {
		members, err := rs.members(t, "variant "+variant.Name+": ", variant.Fields)
		if err != nil {
			return nil, err
		}
		variants = append(variants, Variant{Name: variant.Name, Members: members})
	}
	shape, err := NewEnum(def.name, variants...)
	if err != nil {
		return nil, definitionError(t, "", err)
	}
	return shape, nil
}

// implementation returns the value of t (or of *t, for pointer-receiver
// methods) as an I, if either implements it. Pointer and interface
// types never match: a nil pointer cannot safely receive value methods,
// and pointers are resolved at the alias level anyway.
func implementation[I any](t reflect.Type) (I, bool) {
	var zero I
	iface := reflect.TypeFor[I]()
	switch {
	case t.Kind() == reflect.Interface || t.Kind() == reflect.Pointer:
		return zero, false
	case t.Implements(iface):
		return reflect.Zero(t).Interface().(I), true
	case reflect.PointerTo(t).Implements(iface):
		return reflect.New(t).Interface().(I), true
	}
	return zero, false
}
