// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import (
	"strconv"
	"strings"
)

// Description is a plain-data mirror of a Shape, for display and for
// storage next to a digest in manifests. It carries everything the token
// stream does and nothing more. A Description cannot be turned back
// into a Shape.
type Description struct {
	Kind     string               `json:"kind" yaml:"kind"`
	Name     string               `json:"name" yaml:"name"`
	Length   *uint64              `json:"length,omitempty" yaml:"length,omitempty"`
	Elements []Description        `json:"elements,omitempty" yaml:"elements,omitempty"`
	Fields   []MemberDescription  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Variants []VariantDescription `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// MemberDescription describes a struct field or variant member.
type MemberDescription struct {
	Name  string      `json:"name" yaml:"name"`
	Shape Description `json:"shape" yaml:"shape"`
}

// VariantDescription describes an enum variant.
type VariantDescription struct {
	Name    string              `json:"name" yaml:"name"`
	Members []MemberDescription `json:"members,omitempty" yaml:"members,omitempty"`
}

// Describe returns the description of shape.
func Describe(shape Shape) Description {
	description := Description{Kind: shape.Kind().String(), Name: shape.Name()}
	switch s := shape.(type) {
	case *Standard:
		if length, ok := s.Length(); ok {
			description.Length = &length
		}
		for _, element := range s.elements {
			description.Elements = append(description.Elements, Describe(element))
		}
	case *Struct:
		description.Fields = describeMembers(s.fields)
	case *Enum:
		for _, variant := range s.variants {
			description.Variants = append(description.Variants, VariantDescription{
				Name:    variant.Name,
				Members: describeMembers(variant.Members),
			})
		}
	}
	return description
}

func describeMembers(members []Member) []MemberDescription {
	if len(members) == 0 {
		return nil
	}
	described := make([]MemberDescription, len(members))
	for index, member := range members {
		described[index] = MemberDescription{Name: member.Name, Shape: Describe(member.Shape)}
	}
	return described
}

// Format renders shape on one line, for logs and CLI output:
//
//	struct A { a: u8, b: String, c: Vec<f32> }
//	enum Color { Red, Green, Blue }
//	Array<4, u8>
func Format(shape Shape) string {
	return Describe(shape).String()
}

// String renders the described shape the way Format does.
func (d Description) String() string {
	var builder strings.Builder
	d.format(&builder)
	return builder.String()
}

func (d Description) format(builder *strings.Builder) {
	switch d.Kind {
	case KindStruct.String():
		builder.WriteString("struct ")
		builder.WriteString(d.Name)
		formatMembers(builder, d.Fields)
	case KindEnum.String():
		builder.WriteString("enum ")
		builder.WriteString(d.Name)
		builder.WriteString(" {")
		for index, variant := range d.Variants {
			if index > 0 {
				builder.WriteByte(',')
			}
			builder.WriteByte(' ')
			builder.WriteString(variant.Name)
			if len(variant.Members) > 0 {
				formatMembers(builder, variant.Members)
			}
		}
		builder.WriteString(" }")
	default:
		builder.WriteString(d.Name)
		if d.Length == nil && len(d.Elements) == 0 {
			return
		}
		builder.WriteByte('<')
		separator := ""
		if d.Length != nil {
			builder.WriteString(strconv.FormatUint(*d.Length, 10))
			separator = ", "
		}
		for _, element := range d.Elements {
			builder.WriteString(separator)
			element.format(builder)
			separator = ", "
		}
		builder.WriteByte('>')
	}
}

func formatMembers(builder *strings.Builder, members []MemberDescription) {
	builder.WriteString(" {")
	for index, member := range members {
		if index > 0 {
			builder.WriteByte(',')
		}
		builder.WriteByte(' ')
		builder.WriteString(member.Name)
		builder.WriteString(": ")
		member.Shape.format(builder)
	}
	builder.WriteString(" }")
}
