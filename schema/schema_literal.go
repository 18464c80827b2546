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
	"strconv"
	"strings"
)

type LiteralKind uint8

const (
	LiteralUnset LiteralKind = iota
	LiteralBoolean
	LiteralChar
	LiteralPositiveInteger
	LiteralNegativeInteger
	LiteralFloat
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralUnset:
		return "unset"
	case LiteralBoolean:
		return "boolean"
	case LiteralChar:
		return "char"
	case LiteralPositiveInteger:
		return "positive integer"
	case LiteralNegativeInteger:
		return "negative integer"
	case LiteralFloat:
		return "float"
	}
	return fmt.Sprintf("LiteralKind(%d)", uint8(k))
}

// NumeralBase records how an integer literal was written, so that it can be
// printed back in the same form.
type NumeralBase uint8

const (
	Decimal NumeralBase = iota
	Binary
	Hexadecimal
)

// A NumericLiteral is a scalar value as written in a schema. The zero value
// is unset.
type NumericLiteral struct {
	kind LiteralKind
	base NumeralBase
	u    uint64
	i    int64
	f    float64
}

func BoolLiteral(value bool) NumericLiteral {
	lit := NumericLiteral{kind: LiteralBoolean}
	if value {
		lit.u = 1
	}
	return lit
}

func CharLiteral(value byte) NumericLiteral {
	return NumericLiteral{kind: LiteralChar, u: uint64(value)}
}

func PositiveInteger(value uint64, base NumeralBase) NumericLiteral {
	return NumericLiteral{kind: LiteralPositiveInteger, base: base, u: value}
}

// NegativeInteger returns a negative integer literal. Values that are not
// negative produce a positive integer literal instead.
func NegativeInteger(value int64, base NumeralBase) NumericLiteral {
	if value >= 0 {
		return PositiveInteger(uint64(value), base)
	}
	return NumericLiteral{kind: LiteralNegativeInteger, base: base, i: value}
}

func FloatLiteral(value float64) NumericLiteral {
	return NumericLiteral{kind: LiteralFloat, f: value}
}

func (lit NumericLiteral) Kind() LiteralKind {
	return lit.kind
}

func (lit NumericLiteral) IsSet() bool {
	return lit.kind != LiteralUnset
}

func (lit NumericLiteral) Base() NumeralBase {
	return lit.base
}

// Uint64 returns the value of a positive integer literal.
func (lit NumericLiteral) Uint64() (uint64, bool) {
	if lit.kind != LiteralPositiveInteger {
		return 0, false
	}
	return lit.u, true
}

// Int64 returns the value of a negative integer literal.
func (lit NumericLiteral) Int64() (int64, bool) {
	if lit.kind != LiteralNegativeInteger {
		return 0, false
	}
	return lit.i, true
}

func (lit NumericLiteral) Bool() (bool, bool) {
	if lit.kind != LiteralBoolean {
		return false, false
	}
	return lit.u == 1, true
}

func (lit NumericLiteral) Char() (byte, bool) {
	if lit.kind != LiteralChar {
		return 0, false
	}
	return byte(lit.u), true
}

func (lit NumericLiteral) Float64() (float64, bool) {
	if lit.kind != LiteralFloat {
		return 0, false
	}
	return lit.f, true
}

// unsigned reports the value of literals that denote a non-negative integer
// without any conversion: booleans, chars, and positive integers.
func (lit NumericLiteral) unsigned() (uint64, bool) {
	switch lit.kind {
	case LiteralBoolean, LiteralChar, LiteralPositiveInteger:
		return lit.u, true
	}
	return 0, false
}

// Equal reports whether two literals denote the same number.
//
//	          | bool | char | +int | -int | float
//	   bool   |  v   |  v   |  v   |  -   |  v
//	   char   |  v   |  v   |  v   |  -   |  v
//	   +int   |  v   |  v   |  v   |  x   |  v
//	   -int   |  -   |  -   |  x   |  v   |  v
//	   float  |  v   |  v   |  v   |  v   |  v
//
// Cells marked "v" compare by numeric value, booleans as 0 or 1 and chars as
// their code. A float equals an integer only when its fractional part is
// zero. Positive and negative integers ("x") never compare equal, and the
// pairs marked "-" cannot hold the same value. Unset literals equal nothing.
func Equal(a, b NumericLiteral) bool {
	if !a.IsSet() || !b.IsSet() {
		return false
	}
	if a.kind == LiteralFloat && b.kind == LiteralFloat {
		return a.f == b.f
	}
	if a.kind == LiteralFloat {
		return floatEqualsInteger(a.f, b)
	}
	if b.kind == LiteralFloat {
		return floatEqualsInteger(b.f, a)
	}
	if a.kind == LiteralNegativeInteger || b.kind == LiteralNegativeInteger {
		return a.kind == b.kind && a.i == b.i
	}
	au, _ := a.unsigned()
	bu, _ := b.unsigned()
	return au == bu
}

func floatEqualsInteger(f float64, lit NumericLiteral) bool {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return false
	}
	if lit.kind == LiteralNegativeInteger {
		if f < math.MinInt64 || f >= 0 {
			return false
		}
		return int64(f) == lit.i
	}
	u, _ := lit.unsigned()
	if f < 0 || f >= math.MaxUint64 {
		return false
	}
	return uint64(f) == u
}

func (lit NumericLiteral) String() string {
	switch lit.kind {
	case LiteralUnset:
		return "<unset>"
	case LiteralBoolean:
		if lit.u == 1 {
			return "true"
		}
		return "false"
	case LiteralChar:
		return strconv.QuoteRuneToASCII(rune(lit.u))
	case LiteralPositiveInteger:
		return formatInteger(lit.u, lit.base)
	case LiteralNegativeInteger:
		magnitude := uint64(-(lit.i + 1)) + 1
		return "-" + formatInteger(magnitude, lit.base)
	case LiteralFloat:
		text := strconv.FormatFloat(lit.f, 'g', -1, 64)
		if !strings.ContainsAny(text, ".eEnN") {
			text += ".0"
		}
		return text
	}
	panic("unreachable")
}

func formatInteger(value uint64, base NumeralBase) string {
	switch base {
	case Binary:
		return "0b" + strconv.FormatUint(value, 2)
	case Hexadecimal:
		return fmt.Sprintf("0x%02X", value)
	default:
		return strconv.FormatUint(value, 10)
	}
}
