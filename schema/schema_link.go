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

type LinkKind uint8

const (
	NoLink LinkKind = iota
	LinkBitfield
	LinkEnum
	LinkStruct
	LinkMessage
)

func (k LinkKind) String() string {
	switch k {
	case NoLink:
		return "unresolved"
	case LinkBitfield:
		return "bitfield"
	case LinkEnum:
		return "enum"
	case LinkStruct:
		return "struct"
	case LinkMessage:
		return "message"
	}
	panic("unreachable")
}

// A UserDefinitionLink is the resolved target of a named type reference.
//
// The target is a private copy taken at link time. Later changes to the
// declaration it was copied from are not visible through the link.
type UserDefinitionLink struct {
	kind     LinkKind
	bitfield *BitfieldDefinition
	enum     *EnumDefinition
	struct_  *StructDefinition
	message  *MessageDefinition
}

func BitfieldLink(def *BitfieldDefinition) UserDefinitionLink {
	return UserDefinitionLink{kind: LinkBitfield, bitfield: def.Clone()}
}

func EnumLink(def *EnumDefinition) UserDefinitionLink {
	return UserDefinitionLink{kind: LinkEnum, enum: def.Clone()}
}

func StructLink(def *StructDefinition) UserDefinitionLink {
	return UserDefinitionLink{kind: LinkStruct, struct_: def.Clone()}
}

func MessageLink(def *MessageDefinition) UserDefinitionLink {
	return UserDefinitionLink{kind: LinkMessage, message: def.Clone()}
}

func (link UserDefinitionLink) Kind() LinkKind {
	return link.kind
}

func (link UserDefinitionLink) IsResolved() bool {
	return link.kind != NoLink
}

// Name returns the name of the linked declaration.
func (link UserDefinitionLink) Name() string {
	switch link.kind {
	case LinkBitfield:
		return link.bitfield.Name
	case LinkEnum:
		return link.enum.Name
	case LinkStruct:
		return link.struct_.Name
	case LinkMessage:
		return link.message.Name
	}
	return ""
}

// The accessors below return the link's own snapshot, which callers must
// treat as read-only.

func (link UserDefinitionLink) Bitfield() (*BitfieldDefinition, bool) {
	return link.bitfield, link.kind == LinkBitfield
}

func (link UserDefinitionLink) Enum() (*EnumDefinition, bool) {
	return link.enum, link.kind == LinkEnum
}

func (link UserDefinitionLink) Struct() (*StructDefinition, bool) {
	return link.struct_, link.kind == LinkStruct
}

func (link UserDefinitionLink) Message() (*MessageDefinition, bool) {
	return link.message, link.kind == LinkMessage
}

// Clone returns a link holding a deep copy of this link's snapshot.
func (link UserDefinitionLink) Clone() UserDefinitionLink {
	switch link.kind {
	case LinkBitfield:
		return BitfieldLink(link.bitfield)
	case LinkEnum:
		return EnumLink(link.enum)
	case LinkStruct:
		return StructLink(link.struct_)
	case LinkMessage:
		return MessageLink(link.message)
	}
	return UserDefinitionLink{}
}
