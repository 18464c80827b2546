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

func TestLiteralEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b schema.NumericLiteral
		want bool
	}{
		{"hex equals decimal", schema.PositiveInteger(0x10, schema.Hexadecimal), schema.PositiveInteger(16, schema.Decimal), true},
		{"binary equals decimal", schema.PositiveInteger(5, schema.Binary), schema.PositiveInteger(5, schema.Decimal), true},
		{"different integers", schema.PositiveInteger(1, schema.Decimal), schema.PositiveInteger(2, schema.Decimal), false},
		{"bool true equals one", schema.BoolLiteral(true), schema.PositiveInteger(1, schema.Decimal), true},
		{"bool false equals zero", schema.BoolLiteral(false), schema.PositiveInteger(0, schema.Hexadecimal), true},
		{"bool true not two", schema.BoolLiteral(true), schema.PositiveInteger(2, schema.Decimal), false},
		{"char equals code", schema.CharLiteral('A'), schema.PositiveInteger(65, schema.Decimal), true},
		{"float equals integer", schema.FloatLiteral(3.0), schema.PositiveInteger(3, schema.Decimal), true},
		{"fractional float", schema.FloatLiteral(3.5), schema.PositiveInteger(3, schema.Decimal), false},
		{"float equals negative", schema.FloatLiteral(-2.0), schema.NegativeInteger(-2, schema.Decimal), true},
		{"float equals bool", schema.FloatLiteral(1.0), schema.BoolLiteral(true), true},
		{"negative equals negative", schema.NegativeInteger(-7, schema.Hexadecimal), schema.NegativeInteger(-7, schema.Decimal), true},
		{"positive never negative", schema.PositiveInteger(7, schema.Decimal), schema.NegativeInteger(-7, schema.Decimal), false},
		{"negative not bool", schema.NegativeInteger(-1, schema.Decimal), schema.BoolLiteral(true), false},
		{"floats", schema.FloatLiteral(0.25), schema.FloatLiteral(0.25), true},
		{"unset", schema.NumericLiteral{}, schema.NumericLiteral{}, false},
		{"huge float", schema.FloatLiteral(math.MaxFloat64), schema.PositiveInteger(math.MaxUint64, schema.Decimal), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			testutil.ExpectEq(t, test.want, schema.Equal(test.a, test.b))
			testutil.ExpectEq(t, test.want, schema.Equal(test.b, test.a))
		})
	}
}

func TestNegativeIntegerNormalizes(t *testing.T) {
	lit := schema.NegativeInteger(0, schema.Decimal)
	testutil.ExpectEq(t, schema.LiteralPositiveInteger, lit.Kind())
	value, ok := lit.Uint64()
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, uint64(0), value)
}

func TestLiteralString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lit  schema.NumericLiteral
		want string
	}{
		{schema.NumericLiteral{}, "<unset>"},
		{schema.BoolLiteral(true), "true"},
		{schema.BoolLiteral(false), "false"},
		{schema.CharLiteral('a'), "'a'"},
		{schema.PositiveInteger(42, schema.Decimal), "42"},
		{schema.PositiveInteger(0x1F, schema.Hexadecimal), "0x1F"},
		{schema.PositiveInteger(5, schema.Binary), "0b101"},
		{schema.NegativeInteger(-16, schema.Hexadecimal), "-0x10"},
		{schema.NegativeInteger(math.MinInt64, schema.Decimal), "-9223372036854775808"},
		{schema.FloatLiteral(1.5), "1.5"},
		{schema.FloatLiteral(2), "2.0"},
	}
	for _, test := range tests {
		testutil.ExpectEq(t, test.want, test.lit.String())
	}
}

func TestParseNumericLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want schema.NumericLiteral
	}{
		{"true", schema.BoolLiteral(true)},
		{"false", schema.BoolLiteral(false)},
		{"'x'", schema.CharLiteral('x')},
		{"10", schema.PositiveInteger(10, schema.Decimal)},
		{"0x1e", schema.PositiveInteger(30, schema.Hexadecimal)},
		{"0b1010", schema.PositiveInteger(10, schema.Binary)},
		{"-3", schema.NegativeInteger(-3, schema.Decimal)},
		{"-0x80", schema.NegativeInteger(-128, schema.Hexadecimal)},
		{"-0", schema.PositiveInteger(0, schema.Decimal)},
		{"1_000", schema.PositiveInteger(1000, schema.Decimal)},
		{"2.5", schema.FloatLiteral(2.5)},
		{"1e3", schema.FloatLiteral(1000)},
		{"-9223372036854775808", schema.NegativeInteger(math.MinInt64, schema.Decimal)},
	}
	for _, test := range tests {
		got, err := schema.ParseNumericLiteral(test.text)
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, test.want, got)
	}

	for _, text := range []string{"", "abc", "'ab'", "0xZZ", "-9223372036854775809", "1.2.3"} {
		_, err := schema.ParseNumericLiteral(text)
		if err == nil {
			t.Errorf("ParseNumericLiteral(%q): expected error", text)
		}
	}
}
