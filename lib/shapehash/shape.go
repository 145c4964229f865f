// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

// Kind identifies which of the four shape namespaces a Shape belongs to.
type Kind uint8

const (
	KindPrimitive Kind = iota + 1
	KindStandard
	KindStruct
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindStandard:
		return "standard"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Shape is the canonical structural identity of a type. The set of
// implementations is closed: *Primitive, *Standard, *Struct, and *Enum.
// Shapes are immutable; the same Shape always yields the same token
// stream.
type Shape interface {
	// Kind reports the namespace of the shape.
	Kind() Kind

	// Name is the literal name written after the namespace tag: the
	// primitive name, the container name, or the composite's canonical
	// name.
	Name() string

	encode(w tokenWriter)
}

// Member is a named, shaped slot of a composite: a struct field or a
// variant payload element.
type Member struct {
	// Name is the canonical name, or AnonymousName.
	Name  string
	Shape Shape
}

// Field returns a member with the given canonical name. An empty name
// yields an anonymous member.
func Field(name string, shape Shape) Member {
	if name == "" {
		name = AnonymousName
	}
	return Member{Name: name, Shape: shape}
}

// Anonymous returns a positional member.
func Anonymous(shape Shape) Member {
	return Member{Name: AnonymousName, Shape: shape}
}

func encodeMembers(w tokenWriter, members []Member) {
	for _, member := range members {
		w.writeString(FieldTag)
		w.writeString(member.Name)
		member.Shape.encode(w)
	}
}
