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

// Package schema defines the declaration tree of a Rune schema file.
//
// A tree is produced once per file by a parser, and is then resolved in
// place by the passes of package compiler.
package schema

// A File is the declaration tree of one schema file.
type File struct {
	// Name identifies the file in include edges and diagnostics.
	Name         string
	RelativePath string
	Definitions  Definitions
}

type Definitions struct {
	Bitfields          []*BitfieldDefinition
	Defines            []*DefineDefinition
	Redefines          []*RedefineDefinition
	Enums              []*EnumDefinition
	Extensions         Extensions
	Includes           []IncludeDefinition
	Messages           []*MessageDefinition
	StandaloneComments []StandaloneComment
	Structs            []*StructDefinition
}

// Extensions holds the partial declarations of one file that are meant to
// be appended to a declaration of the same name elsewhere.
type Extensions struct {
	Bitfields []*BitfieldDefinition
	Enums     []*EnumDefinition
	Structs   []*StructDefinition
	Messages  []*MessageDefinition
}

func (ext *Extensions) IsEmpty() bool {
	return len(ext.Bitfields) == 0 &&
		len(ext.Enums) == 0 &&
		len(ext.Structs) == 0 &&
		len(ext.Messages) == 0
}

type IncludeDefinition struct {
	File string
}

// A StandaloneComment is a comment not attached to any declaration. Index
// is its position among the file's top-level items.
type StandaloneComment struct {
	Comment string
	Index   uint64
}

// HasInclude reports whether the file already includes the named file.
func (defs *Definitions) HasInclude(file string) bool {
	for _, include := range defs.Includes {
		if include.File == file {
			return true
		}
	}
	return false
}

// Bitfield returns the bitfield declared with the given name, or nil.
func (defs *Definitions) Bitfield(name string) *BitfieldDefinition {
	for _, def := range defs.Bitfields {
		if def.Name == name {
			return def
		}
	}
	return nil
}

func (defs *Definitions) Enum(name string) *EnumDefinition {
	for _, def := range defs.Enums {
		if def.Name == name {
			return def
		}
	}
	return nil
}

func (defs *Definitions) Struct(name string) *StructDefinition {
	for _, def := range defs.Structs {
		if def.Name == name {
			return def
		}
	}
	return nil
}

func (defs *Definitions) Message(name string) *MessageDefinition {
	for _, def := range defs.Messages {
		if def.Name == name {
			return def
		}
	}
	return nil
}

func (defs *Definitions) Define(name string) *DefineDefinition {
	for _, def := range defs.Defines {
		if def.Name == name {
			return def
		}
	}
	return nil
}
