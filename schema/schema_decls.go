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
)

type DefineDefinition struct {
	Name    string
	Value   NumericLiteral
	Comment string

	// Set by the constant resolver when a redefine of the same name exists.
	Redefinition *RedefineDefinition
}

// EffectiveValue returns the redefined value if one is attached, and the
// declared value otherwise.
func (def *DefineDefinition) EffectiveValue() NumericLiteral {
	if def.Redefinition != nil {
		return def.Redefinition.Value
	}
	return def.Value
}

type RedefineDefinition struct {
	Name    string
	Value   NumericLiteral
	Comment string
}

// A FieldIndex is the position of a struct or message field. The verifier
// alias always denotes index 0.
type FieldIndex struct {
	value    uint64
	verifier bool
}

func NumericIndex(value uint64) FieldIndex {
	return FieldIndex{value: value}
}

func VerifierIndex() FieldIndex {
	return FieldIndex{verifier: true}
}

func (idx FieldIndex) Value() uint64 {
	return idx.value
}

func (idx FieldIndex) IsVerifier() bool {
	return idx.verifier
}

func (idx FieldIndex) String() string {
	if idx.verifier {
		return "verifier"
	}
	return fmt.Sprintf("%d", idx.value)
}

type BitSize struct {
	Width  uint64
	Signed bool
}

func (size BitSize) String() string {
	if size.Signed {
		return fmt.Sprintf("i%d", size.Width)
	}
	return fmt.Sprintf("u%d", size.Width)
}

type BitfieldDefinition struct {
	Name          string
	Backing       Primitive
	Members       []BitfieldMember
	ReservedSlots []uint64
	Comment       string
}

type BitfieldMember struct {
	Identifier string
	Size       BitSize
	Slot       uint64
	Comment    string
}

type EnumDefinition struct {
	Name     string
	Backing  Primitive
	Members  []EnumMember
	Reserved []NumericLiteral
	Comment  string
}

type EnumMember struct {
	Identifier string
	Value      NumericLiteral
	Comment    string
}

type StructDefinition struct {
	Name            string
	Members         []StructMember
	ReservedIndexes []FieldIndex
	Comment         string
}

type StructMember struct {
	Identifier string
	Type       FieldType
	Index      FieldIndex
	Comment    string
}

type MessageDefinition struct {
	Name            string
	Fields          []MessageField
	ReservedIndexes []FieldIndex
	Comment         string
}

type MessageField struct {
	Identifier string
	Type       FieldType
	Index      FieldIndex
	Comment    string
}

type FieldTypeKind uint8

const (
	FieldTypeInvalid FieldTypeKind = iota
	FieldTypePrimitive
	FieldTypeArray
	FieldTypeUser
)

// A FieldType is the declared type of a struct member or message field:
// exactly one of a primitive, an array, or a named user type.
type FieldType struct {
	Primitive Primitive
	Array     *Array
	TypeName  string

	// Set by the linker for named user types.
	Link UserDefinitionLink
}

func PrimitiveType(p Primitive) FieldType {
	return FieldType{Primitive: p}
}

func UserType(name string) FieldType {
	return FieldType{TypeName: name}
}

func ArrayType(element ArrayElement, count ArraySize) FieldType {
	return FieldType{Array: &Array{Element: element, Count: count}}
}

func (t *FieldType) Kind() FieldTypeKind {
	switch {
	case t.Array != nil:
		return FieldTypeArray
	case t.TypeName != "":
		return FieldTypeUser
	case t.Primitive != InvalidPrimitive:
		return FieldTypePrimitive
	}
	return FieldTypeInvalid
}

func (t *FieldType) String() string {
	switch t.Kind() {
	case FieldTypePrimitive:
		return t.Primitive.String()
	case FieldTypeArray:
		return t.Array.String()
	case FieldTypeUser:
		return t.TypeName
	}
	return "<invalid>"
}

type Array struct {
	Element ArrayElement
	Count   ArraySize
}

func (arr *Array) String() string {
	return fmt.Sprintf("[%s; %s]", arr.Element.String(), arr.Count.String())
}

// An ArrayElement is either a primitive or a named user type.
type ArrayElement struct {
	Primitive Primitive
	TypeName  string

	// Set by the linker for named user types.
	Link UserDefinitionLink
}

func (elem *ArrayElement) String() string {
	if elem.TypeName != "" {
		return elem.TypeName
	}
	return elem.Primitive.String()
}

// An ArraySize is the element count of an array, written either as a literal
// or as the name of a define. Define references stay unresolved until the
// constant resolver runs.
type ArraySize struct {
	value    NumericLiteral
	define   string
	resolved bool
}

func LiteralArraySize(value NumericLiteral) ArraySize {
	return ArraySize{value: value, resolved: true}
}

func DefineArraySize(name string) ArraySize {
	return ArraySize{define: name}
}

// DefineName returns the name of the referenced define, or "" for a count
// written as a literal.
func (size *ArraySize) DefineName() string {
	return size.define
}

func (size *ArraySize) IsResolved() bool {
	return size.resolved
}

func (size *ArraySize) Literal() NumericLiteral {
	return size.value
}

// Resolve sets the value of a define reference.
func (size *ArraySize) Resolve(value NumericLiteral) {
	size.value = value
	size.resolved = true
}

// Count returns the element count, if it is resolved to a non-negative
// integer.
func (size *ArraySize) Count() (uint64, bool) {
	if !size.resolved {
		return 0, false
	}
	return size.value.Uint64()
}

func (size *ArraySize) String() string {
	if size.define != "" {
		return size.define
	}
	return size.value.String()
}
