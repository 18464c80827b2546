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

package compiler

import (
	"iter"
	"strings"

	"github.com/NicolasDandanell/rune-parser/schema"
)

type declKind uint8

const (
	declKind_UNKNOWN declKind = iota
	declKind_DEFINE
	declKind_BITFIELD
	declKind_ENUM
	declKind_STRUCT
	declKind_MESSAGE
)

func (k declKind) String() string {
	switch k {
	case declKind_DEFINE:
		return "define"
	case declKind_BITFIELD:
		return "bitfield"
	case declKind_ENUM:
		return "enum"
	case declKind_STRUCT:
		return "struct"
	case declKind_MESSAGE:
		return "message"
	default:
		panic("unreachable")
	}
}

func (k declKind) title() string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// A declNode is a named top-level declaration of any kind.
type declNode interface {
	kind() declKind
	name() string
}

// An extendableNode is a declaration that extension fragments can be
// merged into. Methods that change the declaration modify it in place.
type extendableNode interface {
	declNode
	backing() (schema.Primitive, bool)
	identifiers() []string
	memberCount() int
	appendMembers(from extendableNode)
	clone() extendableNode
}

type defineNode struct{ *schema.DefineDefinition }

func (n defineNode) kind() declKind { return declKind_DEFINE }
func (n defineNode) name() string   { return n.Name }

type bitfieldNode struct{ *schema.BitfieldDefinition }

func (n bitfieldNode) kind() declKind                    { return declKind_BITFIELD }
func (n bitfieldNode) name() string                      { return n.Name }
func (n bitfieldNode) backing() (schema.Primitive, bool) { return n.Backing, true }
func (n bitfieldNode) memberCount() int                  { return len(n.Members) }
func (n bitfieldNode) clone() extendableNode             { return bitfieldNode{n.Clone()} }

func (n bitfieldNode) identifiers() []string {
	out := make([]string, len(n.Members))
	for ii, member := range n.Members {
		out[ii] = member.Identifier
	}
	return out
}

func (n bitfieldNode) appendMembers(from extendableNode) {
	n.Members = append(n.Members, from.(bitfieldNode).Members...)
}

type enumNode struct{ *schema.EnumDefinition }

func (n enumNode) kind() declKind                    { return declKind_ENUM }
func (n enumNode) name() string                      { return n.Name }
func (n enumNode) backing() (schema.Primitive, bool) { return n.Backing, true }
func (n enumNode) memberCount() int                  { return len(n.Members) }
func (n enumNode) clone() extendableNode             { return enumNode{n.Clone()} }

func (n enumNode) identifiers() []string {
	out := make([]string, len(n.Members))
	for ii, member := range n.Members {
		out[ii] = member.Identifier
	}
	return out
}

func (n enumNode) appendMembers(from extendableNode) {
	n.Members = append(n.Members, from.(enumNode).Members...)
}

type structNode struct{ *schema.StructDefinition }

func (n structNode) kind() declKind                    { return declKind_STRUCT }
func (n structNode) name() string                      { return n.Name }
func (n structNode) backing() (schema.Primitive, bool) { return schema.InvalidPrimitive, false }
func (n structNode) memberCount() int                  { return len(n.Members) }
func (n structNode) clone() extendableNode             { return structNode{n.Clone()} }

func (n structNode) identifiers() []string {
	out := make([]string, len(n.Members))
	for ii, member := range n.Members {
		out[ii] = member.Identifier
	}
	return out
}

func (n structNode) appendMembers(from extendableNode) {
	n.Members = append(n.Members, from.(structNode).Members...)
}

type messageNode struct{ *schema.MessageDefinition }

func (n messageNode) kind() declKind                    { return declKind_MESSAGE }
func (n messageNode) name() string                      { return n.Name }
func (n messageNode) backing() (schema.Primitive, bool) { return schema.InvalidPrimitive, false }
func (n messageNode) memberCount() int                  { return len(n.Fields) }
func (n messageNode) clone() extendableNode             { return messageNode{n.Clone()} }

func (n messageNode) identifiers() []string {
	out := make([]string, len(n.Fields))
	for ii, field := range n.Fields {
		out[ii] = field.Identifier
	}
	return out
}

func (n messageNode) appendMembers(from extendableNode) {
	n.Fields = append(n.Fields, from.(messageNode).Fields...)
}

// typeDecls yields the type declarations of a file in lookup order:
// bitfields, enums, structs, then messages.
func typeDecls(defs *schema.Definitions) iter.Seq[extendableNode] {
	return func(yield func(extendableNode) bool) {
		for _, def := range defs.Bitfields {
			if !yield(bitfieldNode{def}) {
				return
			}
		}
		for _, def := range defs.Enums {
			if !yield(enumNode{def}) {
				return
			}
		}
		for _, def := range defs.Structs {
			if !yield(structNode{def}) {
				return
			}
		}
		for _, def := range defs.Messages {
			if !yield(messageNode{def}) {
				return
			}
		}
	}
}

// extensionDecls yields the extension fragments of a file in the same order
// as typeDecls.
func extensionDecls(ext *schema.Extensions) iter.Seq[extendableNode] {
	return typeDecls(&schema.Definitions{
		Bitfields: ext.Bitfields,
		Enums:     ext.Enums,
		Structs:   ext.Structs,
		Messages:  ext.Messages,
	})
}

// fieldTypes yields every field type of the struct and message declarations
// in defs, with the declaration and field they belong to. Fields of extension
// fragments are included if withExtensions is set.
func fieldTypes(defs *schema.Definitions, withExtensions bool) iter.Seq2[fieldRef, *schema.FieldType] {
	structs := [][]*schema.StructDefinition{defs.Structs}
	messages := [][]*schema.MessageDefinition{defs.Messages}
	if withExtensions {
		structs = append(structs, defs.Extensions.Structs)
		messages = append(messages, defs.Extensions.Messages)
	}
	return func(yield func(fieldRef, *schema.FieldType) bool) {
		for _, list := range structs {
			for _, def := range list {
				for ii := range def.Members {
					member := &def.Members[ii]
					ref := fieldRef{declKind_STRUCT, def.Name, member.Identifier}
					if !yield(ref, &member.Type) {
						return
					}
				}
			}
		}
		for _, list := range messages {
			for _, def := range list {
				for ii := range def.Fields {
					field := &def.Fields[ii]
					ref := fieldRef{declKind_MESSAGE, def.Name, field.Identifier}
					if !yield(ref, &field.Type) {
						return
					}
				}
			}
		}
	}
}

type fieldRef struct {
	kind       declKind
	decl       string
	identifier string
}
