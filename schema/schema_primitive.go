// Copyright (c) 2024 Nicolas Dandanell
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package schema

import (
	"fmt"
	"math"
)

type Primitive uint8

const (
	InvalidPrimitive Primitive = iota
	Bool
	Char
	I8
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	I128
	U128
	F32
	F64
)

var primitiveNames = map[string]Primitive{
	"bool": Bool,
	"char": Char,
	"i8":   I8,
	"u8":   U8,
	"i16":  I16,
	"u16":  U16,
	"i32":  I32,
	"u32":  U32,
	"i64":  I64,
	"u64":  U64,
	"i128": I128,
	"u128": U128,
	"f32":  F32,
	"f64":  F64,
}

func ParsePrimitive(name string) (Primitive, bool) {
	p, ok := primitiveNames[name]
	return p, ok
}

func (p Primitive) String() string {
	switch p {
	case Bool:
		return "bool"
	case Char:
		return "char"
	case I8:
		return "i8"
	case U8:
		return "u8"
	case I16:
		return "i16"
	case U16:
		return "u16"
	case I32:
		return "i32"
	case U32:
		return "u32"
	case I64:
		return "i64"
	case U64:
		return "u64"
	case I128:
		return "i128"
	case U128:
		return "u128"
	case F32:
		return "f32"
	case F64:
		return "f64"
	}
	return fmt.Sprintf("Primitive(%d)", uint8(p))
}

// Width returns the encoded size of the primitive in bytes.
func (p Primitive) Width() uint64 {
	switch p {
	case Bool, Char, I8, U8:
		return 1
	case I16, U16:
		return 2
	case I32, U32, F32:
		return 4
	case I64, U64, F64:
		return 8
	case I128, U128:
		return 16
	}
	return 0
}

func (p Primitive) IsInteger() bool {
	switch p {
	case I8, U8, I16, U16, I32, U32, I64, U64, I128, U128:
		return true
	}
	return false
}

func (p Primitive) IsFloat() bool {
	return p == F32 || p == F64
}

func (p Primitive) IsSigned() bool {
	switch p {
	case Char, I8, I16, I32, I64, I128, F32, F64:
		return true
	}
	return false
}

// OnWire reports whether values of the primitive can be encoded directly.
// The 128-bit integers have no wire representation.
func (p Primitive) OnWire() bool {
	return p != InvalidPrimitive && p != I128 && p != U128
}

func (p Primitive) signedBounds() (int64, int64) {
	switch p {
	case Char, I8:
		return math.MinInt8, math.MaxInt8
	case I16:
		return math.MinInt16, math.MaxInt16
	case I32:
		return math.MinInt32, math.MaxInt32
	}
	return math.MinInt64, math.MaxInt64
}

func (p Primitive) unsignedMax() uint64 {
	switch p {
	case Bool:
		return 1
	case U8:
		return math.MaxUint8
	case U16:
		return math.MaxUint16
	case U32:
		return math.MaxUint32
	}
	return math.MaxUint64
}

// Contains reports whether the literal lies in the primitive's numeric
// domain. Integer primitives accept floats only when the fractional part is
// zero.
func (p Primitive) Contains(lit NumericLiteral) bool {
	if !lit.IsSet() || p == InvalidPrimitive {
		return false
	}
	switch p {
	case F32:
		return floatInRange(literalFloat(lit), math.MaxFloat32)
	case F64:
		return floatInRange(literalFloat(lit), math.MaxFloat64)
	}

	if lit.kind == LiteralFloat {
		f := lit.f
		if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
			return false
		}
		if f < 0 {
			if f < math.MinInt64 {
				return p == I128
			}
			return p.Contains(NegativeInteger(int64(f), Decimal))
		}
		if f >= math.MaxUint64 {
			return false
		}
		return p.Contains(PositiveInteger(uint64(f), Decimal))
	}

	if lit.kind == LiteralNegativeInteger {
		if !p.IsSigned() {
			return false
		}
		if p == I128 {
			return true
		}
		lo, _ := p.signedBounds()
		return lit.i >= lo
	}

	u, _ := lit.unsigned()
	if p.IsSigned() {
		if p == I128 {
			return true
		}
		_, hi := p.signedBounds()
		return u <= uint64(hi)
	}
	return u <= p.unsignedMax()
}

func literalFloat(lit NumericLiteral) float64 {
	switch lit.kind {
	case LiteralFloat:
		return lit.f
	case LiteralNegativeInteger:
		return float64(lit.i)
	}
	u, _ := lit.unsigned()
	return float64(u)
}

func floatInRange(f, limit float64) bool {
	if math.IsNaN(f) {
		return true
	}
	if math.IsInf(f, 0) {
		return false
	}
	return f >= -limit && f <= limit
}
