// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash_test

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/shapehash/lib/shapehash"
	"github.com/bureau-foundation/shapehash/lib/testutil"
)

// Enum is a sum type with a positional variant, a named-field variant,
// and a unit variant.
type Enum interface{ isEnum() }

type (
	Code uint8
	Text string
)

type EnumA struct {
	_ struct{} `typehash:"A"`
	Code
	Text
}

type EnumB struct {
	_ struct{}  `typehash:"B"`
	X uint16    `typehash:"x"`
	Y []float32 `typehash:"y"`
}

type EnumC struct {
	_ struct{} `typehash:"C"`
}

func (EnumA) isEnum() {}
func (EnumB) isEnum() {}
func (EnumC) isEnum() {}

var (
	enumType     = reflect.TypeFor[Enum]()
	enumVariants = []reflect.Type{
		reflect.TypeFor[EnumA](),
		reflect.TypeFor[EnumB](),
		reflect.TypeFor[EnumC](),
	}
)

func registerEnum(t *testing.T, options ...shapehash.EnumOption) *shapehash.Registry {
	t.Helper()
	registry := shapehash.NewRegistry(nil)
	if err := registry.RegisterEnum(enumType, enumVariants, options...); err != nil {
		t.Fatalf("RegisterEnum: %v", err)
	}
	return registry
}

func TestEnumTokenStream(t *testing.T) {
	got := tokenStrings(shapeOf[Enum](t, registerEnum(t)))
	want := []string{
		"@enum@", "Enum",
		"A",
		"@field@", "@ano@", "@primitive@", "u8",
		"@field@", "@ano@", "@standard@", "String",
		"B",
		"@field@", "x", "@primitive@", "u16",
		"@field@", "y", "@standard@", "Vec", "@primitive@", "f32",
		"C",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumManualDefinitionMatchesDerived(t *testing.T) {
	type manual int

	registry := registerEnum(t)
	err := registry.DefineEnum(reflect.TypeFor[manual](), "Enum",
		shapehash.VariantDef{Name: "A", Fields: []shapehash.FieldDef{
			{Type: reflect.TypeFor[uint8]()},
			{Type: reflect.TypeFor[string]()},
		}},
		shapehash.VariantDef{Name: "B", Fields: []shapehash.FieldDef{
			{Name: "x", Type: reflect.TypeFor[uint16]()},
			{Name: "y", Type: reflect.TypeFor[[]float32]()},
		}},
		shapehash.VariantDef{Name: "C"},
	)
	if err != nil {
		t.Fatalf("DefineEnum: %v", err)
	}
	testutil.RequireSameDigest(t, digestOf[manual](t, registry), digestOf[Enum](t, registry))
}

func TestEnumNameChangesDigest(t *testing.T) {
	original := digestOf[Enum](t, registerEnum(t))

	type Enum2 interface{ isEnum() }
	registry := shapehash.NewRegistry(nil)
	if err := registry.RegisterEnum(reflect.TypeFor[Enum2](), enumVariants); err != nil {
		t.Fatalf("RegisterEnum: %v", err)
	}
	testutil.RequireDistinctDigest(t, digestOf[Enum2](t, registry), original)

	renamed := shapehash.NewRegistry(nil)
	if err := renamed.RegisterEnum(reflect.TypeFor[Enum2](), enumVariants, shapehash.Rename("Enum")); err != nil {
		t.Fatalf("RegisterEnum with Rename: %v", err)
	}
	testutil.RequireSameDigest(t, digestOf[Enum2](t, renamed), original)
}

type ChangedA struct {
	Code
	Text
}

type OverriddenA struct {
	_ struct{} `typehash:"A"`
	Code
	Text
}

type RenamedFieldsB struct {
	_ struct{}  `typehash:"B"`
	U uint16    `typehash:"x"`
	V []float32 `typehash:"y"`
}

type UnrenamedFieldsB struct {
	_ struct{} `typehash:"B"`
	U uint16
	V []float32
}

func (ChangedA) isEnum()         {}
func (OverriddenA) isEnum()      {}
func (RenamedFieldsB) isEnum()   {}
func (UnrenamedFieldsB) isEnum() {}

func TestEnumVariantAndMemberNames(t *testing.T) {
	original := digestOf[Enum](t, registerEnum(t))

	tests := []struct {
		name     string
		variants []reflect.Type
		same     bool
	}{
		{
			name:     "variant renamed",
			variants: []reflect.Type{reflect.TypeFor[ChangedA](), enumVariants[1], enumVariants[2]},
		},
		{
			name:     "variant override",
			variants: []reflect.Type{reflect.TypeFor[OverriddenA](), enumVariants[1], enumVariants[2]},
			same:     true,
		},
		{
			name:     "member override",
			variants: []reflect.Type{enumVariants[0], reflect.TypeFor[RenamedFieldsB](), enumVariants[2]},
			same:     true,
		},
		{
			name:     "member renamed",
			variants: []reflect.Type{enumVariants[0], reflect.TypeFor[UnrenamedFieldsB](), enumVariants[2]},
		},
		{
			name:     "variants reordered",
			variants: []reflect.Type{enumVariants[1], enumVariants[0], enumVariants[2]},
		},
		{
			name:     "variant removed",
			variants: []reflect.Type{enumVariants[0], enumVariants[1]},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			registry := shapehash.NewRegistry(nil)
			if err := registry.RegisterEnum(enumType, test.variants); err != nil {
				t.Fatalf("RegisterEnum: %v", err)
			}
			digest := digestOf[Enum](t, registry)
			if test.same {
				testutil.RequireSameDigest(t, digest, original)
			} else {
				testutil.RequireDistinctDigest(t, digest, original)
			}
		})
	}
}

type Color int

const (
	Red Color = iota
	Green
	Blue
)

func TestConstantEnumVariantOrder(t *testing.T) {
	declared := shapehash.NewRegistry(nil)
	err := declared.DefineEnum(reflect.TypeFor[Color](), "Color",
		shapehash.VariantDef{Name: "Red"},
		shapehash.VariantDef{Name: "Green"},
		shapehash.VariantDef{Name: "Blue"},
	)
	if err != nil {
		t.Fatalf("DefineEnum: %v", err)
	}

	reordered := shapehash.NewRegistry(nil)
	err = reordered.DefineEnum(reflect.TypeFor[Color](), "Color",
		shapehash.VariantDef{Name: "Blue"},
		shapehash.VariantDef{Name: "Green"},
		shapehash.VariantDef{Name: "Red"},
	)
	if err != nil {
		t.Fatalf("DefineEnum: %v", err)
	}

	shape := shapeOf[Color](t, declared)
	if diff := cmp.Diff([]string{"@enum@", "Color", "Red", "Green", "Blue"}, tokenStrings(shape)); diff != "" {
		t.Errorf("token stream mismatch (-want +got):\n%s", diff)
	}
	testutil.RequireDistinctDigest(t, digestOf[Color](t, declared), digestOf[Color](t, reordered))
}

type Figure interface{ area() float64 }

type Circle struct {
	Radius float64
}

func (*Circle) area() float64 { return 0 }

type Square struct {
	Side float64
}

func (Square) area() float64 { return 0 }

func TestEnumPointerReceiverVariants(t *testing.T) {
	registry := shapehash.NewRegistry(nil)
	variants := []reflect.Type{reflect.TypeFor[*Circle](), reflect.TypeFor[Square]()}
	if err := registry.RegisterEnum(reflect.TypeFor[Figure](), variants); err != nil {
		t.Fatalf("RegisterEnum: %v", err)
	}
	got := shapehash.Format(shapeOf[Figure](t, registry))
	want := "enum Figure { Circle { Radius: f64 }, Square { Side: f64 } }"
	if got != want {
		t.Errorf("Format = %s, want %s", got, want)
	}
}

type NotAVariant struct{}

func TestRegisterEnumErrors(t *testing.T) {
	tests := []struct {
		name     string
		iface    reflect.Type
		variants []reflect.Type
		options  []shapehash.EnumOption
		want     error
	}{
		{
			name:  "not an interface",
			iface: reflect.TypeFor[EnumA](),
			want:  shapehash.ErrUnsupportedKind,
		},
		{
			name:     "variant does not implement",
			iface:    enumType,
			variants: []reflect.Type{reflect.TypeFor[NotAVariant]()},
			want:     shapehash.ErrNotEnumVariant,
		},
		{
			name:    "two renames",
			iface:   enumType,
			options: []shapehash.EnumOption{shapehash.Rename("X"), shapehash.Rename("Y")},
			want:    shapehash.ErrDuplicateOverride,
		},
		{
			name:    "empty rename",
			iface:   enumType,
			options: []shapehash.EnumOption{shapehash.Rename("")},
			want:    shapehash.ErrMalformedOverride,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			registry := shapehash.NewRegistry(nil)
			err := registry.RegisterEnum(test.iface, test.variants, test.options...)
			testutil.RequireErrorIs(t, err, test.want)
		})
	}
}

func TestRegisterEnumTwice(t *testing.T) {
	registry := registerEnum(t)
	err := registry.RegisterEnum(enumType, enumVariants)
	testutil.RequireErrorIs(t, err, shapehash.ErrDuplicateDefinition)
}
