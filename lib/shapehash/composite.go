// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import (
	"errors"
	"fmt"
)

// Struct is the shape of a struct-like composite: StructTag, the
// canonical name, then FieldTag, name, and shape for every field in
// declaration order.
type Struct struct {
	name   string
	fields []Member
}

// NewStruct builds a struct shape. The name is required. Fields keep the
// order given; they are never sorted.
func NewStruct(name string, fields ...Member) (*Struct, error) {
	if name == "" {
		return nil, ErrUnnamedType
	}
	if err := checkMembers(fields); err != nil {
		return nil, fmt.Errorf("struct %s: %w", name, err)
	}
	return &Struct{name: name, fields: append([]Member(nil), fields...)}, nil
}

func (s *Struct) Kind() Kind   { return KindStruct }
func (s *Struct) Name() string { return s.name }

// Fields returns the members in declaration order.
func (s *Struct) Fields() []Member {
	return append([]Member(nil), s.fields...)
}

func (s *Struct) encode(w tokenWriter) {
	w.writeString(StructTag)
	w.writeString(s.name)
	encodeMembers(w, s.fields)
}

// Variant is one alternative of an enum: a canonical name and zero or
// more members.
type Variant struct {
	Name    string
	Members []Member
}

// Enum is the shape of an enum-like composite: EnumTag, the canonical
// name, then for every variant in declaration order its name followed by
// its members encoded exactly like struct fields. A variant without
// members contributes only its name.
type Enum struct {
	name     string
	variants []Variant
}

// NewEnum builds an enum shape. The enum and every variant must be
// named.
func NewEnum(name string, variants ...Variant) (*Enum, error) {
	if name == "" {
		return nil, ErrUnnamedType
	}
	copied := make([]Variant, len(variants))
	for index, variant := range variants {
		if variant.Name == "" {
			return nil, fmt.Errorf("enum %s: variant %d: %w", name, index, ErrUnnamedType)
		}
		if err := checkMembers(variant.Members); err != nil {
			return nil, fmt.Errorf("enum %s: variant %s: %w", name, variant.Name, err)
		}
		copied[index] = Variant{Name: variant.Name, Members: append([]Member(nil), variant.Members...)}
	}
	return &Enum{name: name, variants: copied}, nil
}

func (e *Enum) Kind() Kind   { return KindEnum }
func (e *Enum) Name() string { return e.name }

// Variants returns the variants in declaration order.
func (e *Enum) Variants() []Variant {
	copied := make([]Variant, len(e.variants))
	for index, variant := range e.variants {
		copied[index] = Variant{Name: variant.Name, Members: append([]Member(nil), variant.Members...)}
	}
	return copied
}

func (e *Enum) encode(w tokenWriter) {
	w.writeString(EnumTag)
	w.writeString(e.name)
	for _, variant := range e.variants {
		w.writeString(variant.Name)
		encodeMembers(w, variant.Members)
	}
}

var errNilMemberShape = errors.New("member has no shape")

func checkMembers(members []Member) error {
	for index, member := range members {
		if member.Name == "" {
			return fmt.Errorf("member %d: %w", index, ErrUnnamedType)
		}
		if member.Shape == nil {
			return fmt.Errorf("member %s: %w", member.Name, errNilMemberShape)
		}
	}
	return nil
}
