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

package schema_test

import (
	"math"
	"testing"

	"github.com/NicolasDandanell/rune-parser/internal/testutil"
	"github.com/NicolasDandanell/rune-parser/schema"
)

func TestPrimitiveWidth(t *testing.T) {
	widths := map[schema.Primitive]uint64{
		schema.Bool: 1, schema.Char: 1, schema.I8: 1, schema.U8: 1,
		schema.I16: 2, schema.U16: 2,
		schema.I32: 4, schema.U32: 4, schema.F32: 4,
		schema.I64: 8, schema.U64: 8, schema.F64: 8,
		schema.I128: 16, schema.U128: 16,
	}
	for p, width := range widths {
		testutil.ExpectEq(t, width, p.Width())
		parsed, ok := schema.ParsePrimitive(p.String())
		testutil.ExpectTrue(t, ok)
		testutil.ExpectEq(t, p, parsed)
	}
	testutil.ExpectFalse(t, schema.U128.OnWire())
	testutil.ExpectFalse(t, schema.I128.OnWire())
	testutil.ExpectTrue(t, schema.U64.OnWire())
}

func TestPrimitiveContains(t *testing.T) {
	t.Parallel()

	dec := func(v uint64) schema.NumericLiteral { return schema.PositiveInteger(v, schema.Decimal) }
	neg := func(v int64) schema.NumericLiteral { return schema.NegativeInteger(v, schema.Decimal) }

	tests := []struct {
		p    schema.Primitive
		lit  schema.NumericLiteral
		want bool
	}{
		{schema.U8, dec(0), true},
		{schema.U8, dec(255), true},
		{schema.U8, dec(256), false},
		{schema.U8, neg(-1), false},
		{schema.I8, dec(127), true},
		{schema.I8, dec(128), false},
		{schema.I8, neg(-128), true},
		{schema.I8, neg(-129), false},
		{schema.Char, schema.CharLiteral('z'), true},
		{schema.Bool, dec(1), true},
		{schema.Bool, dec(2), false},
		{schema.Bool, schema.BoolLiteral(true), true},
		{schema.U16, dec(65535), true},
		{schema.U16, dec(65536), false},
		{schema.I32, neg(math.MinInt32), true},
		{schema.I32, neg(math.MinInt32 - 1), false},
		{schema.U32, dec(math.MaxUint32), true},
		{schema.U64, dec(math.MaxUint64), true},
		{schema.I64, dec(math.MaxUint64), false},
		{schema.I128, neg(math.MinInt64), true},
		{schema.U128, neg(-1), false},
		{schema.U8, schema.FloatLiteral(3.0), true},
		{schema.U8, schema.FloatLiteral(3.5), false},
		{schema.I8, schema.FloatLiteral(-3.0), true},
		{schema.F32, schema.FloatLiteral(1e39), false},
		{schema.F64, schema.FloatLiteral(1e39), true},
		{schema.F32, neg(-5), true},
		{schema.U8, schema.NumericLiteral{}, false},
	}
	for _, test := range tests {
		if got := test.p.Contains(test.lit); got != test.want {
			t.Errorf("%v.Contains(%v): expected %v, got %v", test.p, test.lit, test.want, got)
		}
	}
}

func TestPrimitiveContainsMonotonic(t *testing.T) {
	t.Parallel()

	chains := [][]schema.Primitive{
		{schema.Bool, schema.U8, schema.U16, schema.U32, schema.U64, schema.U128},
		{schema.Char, schema.I8, schema.I16, schema.I32, schema.I64, schema.I128},
		{schema.F32, schema.F64},
	}
	var samples []schema.NumericLiteral
	for _, v := range []uint64{0, 1, 2, 127, 128, 255, 256, 32767, 32768, 65535, 65536, math.MaxInt32, math.MaxUint32, math.MaxInt64, math.MaxUint64} {
		samples = append(samples, schema.PositiveInteger(v, schema.Decimal))
	}
	for _, v := range []int64{-1, -128, -129, -32768, -32769, math.MinInt32, math.MinInt32 - 1, math.MinInt64} {
		samples = append(samples, schema.NegativeInteger(v, schema.Hexadecimal))
	}
	samples = append(samples,
		schema.FloatLiteral(0.5),
		schema.FloatLiteral(-70000),
		schema.FloatLiteral(1e300),
		schema.CharLiteral('~'),
		schema.BoolLiteral(true),
	)

	for _, chain := range chains {
		for ii := 0; ii+1 < len(chain); ii++ {
			narrow, wide := chain[ii], chain[ii+1]
			for _, lit := range samples {
				if narrow.Contains(lit) && !wide.Contains(lit) {
					t.Errorf("%v accepts %v but %v does not", narrow, lit, wide)
				}
			}
		}
	}
}
