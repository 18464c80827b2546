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
	"slices"
)

func (f *File) Clone() *File {
	return &File{
		Name:         f.Name,
		RelativePath: f.RelativePath,
		Definitions:  f.Definitions.Clone(),
	}
}

func (defs *Definitions) Clone() Definitions {
	out := Definitions{
		Bitfields:          cloneAll(defs.Bitfields, (*BitfieldDefinition).Clone),
		Defines:            cloneAll(defs.Defines, (*DefineDefinition).Clone),
		Redefines:          cloneAll(defs.Redefines, (*RedefineDefinition).Clone),
		Enums:              cloneAll(defs.Enums, (*EnumDefinition).Clone),
		Extensions:         defs.Extensions.Clone(),
		Includes:           slices.Clone(defs.Includes),
		Messages:           cloneAll(defs.Messages, (*MessageDefinition).Clone),
		StandaloneComments: slices.Clone(defs.StandaloneComments),
		Structs:            cloneAll(defs.Structs, (*StructDefinition).Clone),
	}
	return out
}

func (ext *Extensions) Clone() Extensions {
	return Extensions{
		Bitfields: cloneAll(ext.Bitfields, (*BitfieldDefinition).Clone),
		Enums:     cloneAll(ext.Enums, (*EnumDefinition).Clone),
		Structs:   cloneAll(ext.Structs, (*StructDefinition).Clone),
		Messages:  cloneAll(ext.Messages, (*MessageDefinition).Clone),
	}
}

func cloneAll[T any](defs []*T, clone func(*T) *T) []*T {
	if defs == nil {
		return nil
	}
	out := make([]*T, len(defs))
	for ii, def := range defs {
		out[ii] = clone(def)
	}
	return out
}

func (def *DefineDefinition) Clone() *DefineDefinition {
	out := *def
	if def.Redefinition != nil {
		out.Redefinition = def.Redefinition.Clone()
	}
	return &out
}

func (def *RedefineDefinition) Clone() *RedefineDefinition {
	out := *def
	return &out
}

func (def *BitfieldDefinition) Clone() *BitfieldDefinition {
	out := *def
	out.Members = slices.Clone(def.Members)
	out.ReservedSlots = slices.Clone(def.ReservedSlots)
	return &out
}

func (def *EnumDefinition) Clone() *EnumDefinition {
	out := *def
	out.Members = slices.Clone(def.Members)
	out.Reserved = slices.Clone(def.Reserved)
	return &out
}

func (def *StructDefinition) Clone() *StructDefinition {
	out := *def
	out.ReservedIndexes = slices.Clone(def.ReservedIndexes)
	if def.Members != nil {
		out.Members = make([]StructMember, len(def.Members))
		for ii, member := range def.Members {
			member.Type = member.Type.Clone()
			out.Members[ii] = member
		}
	}
	return &out
}

func (def *MessageDefinition) Clone() *MessageDefinition {
	out := *def
	out.ReservedIndexes = slices.Clone(def.ReservedIndexes)
	if def.Fields != nil {
		out.Fields = make([]MessageField, len(def.Fields))
		for ii, field := range def.Fields {
			field.Type = field.Type.Clone()
			out.Fields[ii] = field
		}
	}
	return &out
}

func (t FieldType) Clone() FieldType {
	t.Link = t.Link.Clone()
	if t.Array != nil {
		arr := *t.Array
		arr.Element.Link = arr.Element.Link.Clone()
		t.Array = &arr
	}
	return t
}
