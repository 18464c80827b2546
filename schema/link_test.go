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
	"testing"

	"github.com/NicolasDandanell/rune-parser/internal/testutil"
	"github.com/NicolasDandanell/rune-parser/schema"
)

func TestLinkIsSnapshot(t *testing.T) {
	point := &schema.StructDefinition{
		Name: "Point",
		Members: []schema.StructMember{
			{Identifier: "x", Type: schema.PrimitiveType(schema.I32), Index: schema.NumericIndex(0)},
		},
	}
	link := schema.StructLink(point)

	point.Members = append(point.Members, schema.StructMember{
		Identifier: "y",
		Type:       schema.PrimitiveType(schema.I32),
		Index:      schema.NumericIndex(1),
	})
	point.Members[0].Identifier = "renamed"

	snapshot, ok := link.Struct()
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, 1, len(snapshot.Members))
	testutil.ExpectEq(t, "x", snapshot.Members[0].Identifier)

	clone := link.Clone()
	cloned, _ := clone.Struct()
	cloned.Members[0].Identifier = "changed"
	testutil.ExpectEq(t, "x", snapshot.Members[0].Identifier)
}

func TestFileCloneIsDeep(t *testing.T) {
	file := &schema.File{
		Name: "a",
		Definitions: schema.Definitions{
			Structs: []*schema.StructDefinition{{
				Name: "Buffer",
				Members: []schema.StructMember{{
					Identifier: "data",
					Type: schema.ArrayType(
						schema.ArrayElement{Primitive: schema.U8},
						schema.DefineArraySize("N"),
					),
				}},
			}},
			Includes: []schema.IncludeDefinition{{File: "b"}},
		},
	}
	clone := file.Clone()
	clone.Definitions.Structs[0].Members[0].Type.Array.Count.Resolve(
		schema.PositiveInteger(4, schema.Decimal),
	)
	clone.Definitions.Includes[0].File = "c"

	testutil.ExpectFalse(t, file.Definitions.Structs[0].Members[0].Type.Array.Count.IsResolved())
	testutil.ExpectEq(t, "b", file.Definitions.Includes[0].File)
}

func TestParseFieldType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
		kind schema.FieldTypeKind
	}{
		{"u8", "u8", schema.FieldTypePrimitive},
		{"Point", "Point", schema.FieldTypeUser},
		{"[u8; 4]", "[u8; 4]", schema.FieldTypeArray},
		{"[Point;N]", "[Point; N]", schema.FieldTypeArray},
		{"[i16; 0x10]", "[i16; 0x10]", schema.FieldTypeArray},
	}
	for _, test := range tests {
		got, err := schema.ParseFieldType(test.text)
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, test.kind, got.Kind())
		testutil.ExpectEq(t, test.want, got.String())
	}

	for _, text := range []string{"", "[u8]", "[u8; 4", "9lives", "[[u8; 2]; 2]"} {
		if _, err := schema.ParseFieldType(text); err == nil {
			t.Errorf("ParseFieldType(%q): expected error", text)
		}
	}
}

func TestParseBitSize(t *testing.T) {
	size, err := schema.ParseBitSize("i5")
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, schema.BitSize{Width: 5, Signed: true}, size)

	size, err = schema.ParseBitSize("u12")
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "u12", size.String())

	for _, text := range []string{"", "u", "x3", "u0"} {
		if _, err := schema.ParseBitSize(text); err == nil {
			t.Errorf("ParseBitSize(%q): expected error", text)
		}
	}
}
