// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import "reflect"

// Primitive is the shape of a scalar type: PrimitiveTag followed by the
// literal type name.
type Primitive struct {
	name string
}

func (p *Primitive) Kind() Kind   { return KindPrimitive }
func (p *Primitive) Name() string { return p.name }

func (p *Primitive) encode(w tokenWriter) {
	w.writeString(PrimitiveTag)
	w.writeString(p.name)
}

// Primitive shapes. The literal names are FROZEN and deliberately
// language neutral so that other implementations of the same scheme
// produce the same digests.
var (
	U8   = &Primitive{name: "u8"}
	U16  = &Primitive{name: "u16"}
	U32  = &Primitive{name: "u32"}
	U64  = &Primitive{name: "u64"}
	U128 = &Primitive{name: "u128"}
	I8   = &Primitive{name: "i8"}
	I16  = &Primitive{name: "i16"}
	I32  = &Primitive{name: "i32"}
	I64  = &Primitive{name: "i64"}
	I128 = &Primitive{name: "i128"}
	F32  = &Primitive{name: "f32"}
	F64  = &Primitive{name: "f64"}
	C64  = &Primitive{name: "c64"}
	C128 = &Primitive{name: "c128"}
	Bool = &Primitive{name: "bool"}
	Char = &Primitive{name: "char"}

	NonZeroU8   = &Primitive{name: "NonZeroU8"}
	NonZeroU16  = &Primitive{name: "NonZeroU16"}
	NonZeroU32  = &Primitive{name: "NonZeroU32"}
	NonZeroU64  = &Primitive{name: "NonZeroU64"}
	NonZeroU128 = &Primitive{name: "NonZeroU128"}
	NonZeroI8   = &Primitive{name: "NonZeroI8"}
	NonZeroI16  = &Primitive{name: "NonZeroI16"}
	NonZeroI32  = &Primitive{name: "NonZeroI32"}
	NonZeroI64  = &Primitive{name: "NonZeroI64"}
	NonZeroI128 = &Primitive{name: "NonZeroI128"}
)

// Primitives lists every primitive shape in a fixed order.
func Primitives() []*Primitive {
	return []*Primitive{
		U8, U16, U32, U64, U128, I8, I16, I32, I64, I128,
		F32, F64, C64, C128, Bool, Char,
		NonZeroU8, NonZeroU16, NonZeroU32, NonZeroU64, NonZeroU128,
		NonZeroI8, NonZeroI16, NonZeroI32, NonZeroI64, NonZeroI128,
	}
}

// kindPrimitives maps Go basic kinds to their primitive shape. Int and
// Uint are absent: they resolve through the alias level to Int64 and
// Uint64 so digests do not depend on the platform word size.
var kindPrimitives = map[reflect.Kind]*Primitive{
	reflect.Bool:       Bool,
	reflect.Int8:       I8,
	reflect.Int16:      I16,
	reflect.Int32:      I32,
	reflect.Int64:      I64,
	reflect.Uint8:      U8,
	reflect.Uint16:     U16,
	reflect.Uint32:     U32,
	reflect.Uint64:     U64,
	reflect.Float32:    F32,
	reflect.Float64:    F64,
	reflect.Complex64:  C64,
	reflect.Complex128: C128,
}

// nonZeroPrimitives maps an integer kind to its non-zero primitive.
var nonZeroPrimitives = map[reflect.Kind]*Primitive{
	reflect.Int8:   NonZeroI8,
	reflect.Int16:  NonZeroI16,
	reflect.Int32:  NonZeroI32,
	reflect.Int64:  NonZeroI64,
	reflect.Int:    NonZeroI64,
	reflect.Uint8:  NonZeroU8,
	reflect.Uint16: NonZeroU16,
	reflect.Uint32: NonZeroU32,
	reflect.Uint64: NonZeroU64,
	reflect.Uint:   NonZeroU64,
}
