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
	"math"
	"math/bits"

	"github.com/NicolasDandanell/rune-parser/schema"
)

// validate checks the structural rules of every declaration. The validation
// methods return false when validation must stop.
func (c *compiler) validate() {
	steps := []func() bool{
		c.validateNames,
		c.validateBitfields,
		c.validateEnums,
		c.validateAggregates,
	}
	for _, step := range steps {
		if !step() {
			return
		}
	}
	if c.failed() {
		return
	}
	for _, file := range c.files {
		for decl := range typeDecls(&file.Definitions) {
			if decl.memberCount() == 0 {
				c.warn(warnEmptyDecl(decl.kind(), Location{file.Name, decl.name()}))
			}
		}
	}
}

// validateNames checks that defines and type declarations share one
// namespace across all files.
func (c *compiler) validateNames() bool {
	type namedDecl struct {
		node declNode
		file string
	}
	seen := make(map[string]namedDecl)
	check := func(node declNode, file string) bool {
		prev, conflict := seen[node.name()]
		if !conflict {
			seen[node.name()] = namedDecl{node, file}
			return true
		}
		return c.report(errDeclNameConflict(
			node,
			prev.node,
			Location{file, node.name()},
			Location{prev.file, prev.node.name()},
		))
	}
	for _, file := range c.files {
		for _, def := range file.Definitions.Defines {
			if !check(defineNode{def}, file.Name) {
				return false
			}
		}
		for decl := range typeDecls(&file.Definitions) {
			if !check(decl, file.Name) {
				return false
			}
		}
	}
	return true
}

func (c *compiler) validateBitfields() bool {
	for _, file := range c.files {
		for _, def := range file.Definitions.Bitfields {
			if !c.validateBitfield(def, Location{file.Name, def.Name}) {
				return false
			}
		}
	}
	return true
}

func (c *compiler) validateEnums() bool {
	for _, file := range c.files {
		for _, def := range file.Definitions.Enums {
			if !c.validateEnum(def, Location{file.Name, def.Name}) {
				return false
			}
		}
	}
	return true
}

func (c *compiler) validateAggregates() bool {
	for _, file := range c.files {
		for _, def := range file.Definitions.Structs {
			if !c.validateStruct(def, Location{file.Name, def.Name}) {
				return false
			}
		}
		for _, def := range file.Definitions.Messages {
			if !c.validateMessage(def, Location{file.Name, def.Name}) {
				return false
			}
		}
	}
	return true
}

func (c *compiler) validateDecl(node extendableNode, loc Location) bool {
	switch node := node.(type) {
	case bitfieldNode:
		return c.validateBitfield(node.BitfieldDefinition, loc)
	case enumNode:
		return c.validateEnum(node.EnumDefinition, loc)
	case structNode:
		return c.validateStruct(node.StructDefinition, loc)
	case messageNode:
		return c.validateMessage(node.MessageDefinition, loc)
	default:
		panic("unreachable")
	}
}

func (c *compiler) validateBitfield(def *schema.BitfieldDefinition, loc Location) bool {
	if !def.Backing.IsInteger() {
		if !c.report(errBitfieldBackingInvalid(def.Backing, loc)) {
			return false
		}
	}

	reserved := make(map[uint64]struct{}, len(def.ReservedSlots))
	for _, slot := range def.ReservedSlots {
		reserved[slot] = struct{}{}
	}
	identifiers := make(map[string]struct{}, len(def.Members))
	slots := make(map[uint64]string, len(def.Members))
	var totalBits uint64
	for _, member := range def.Members {
		if _, conflict := identifiers[member.Identifier]; conflict {
			if !c.report(errMemberNameConflict(declKind_BITFIELD, member.Identifier, loc)) {
				return false
			}
		}
		identifiers[member.Identifier] = struct{}{}

		if prev, conflict := slots[member.Slot]; conflict {
			if !c.report(errBitSlotConflict(member.Identifier, prev, member.Slot, loc)) {
				return false
			}
		} else {
			slots[member.Slot] = member.Identifier
		}

		if _, isReserved := reserved[member.Slot]; isReserved {
			if !c.report(errBitSlotReserved(member.Identifier, member.Slot, loc)) {
				return false
			}
		}
		var carry uint64
		if totalBits, carry = bits.Add64(totalBits, member.Size.Width, 0); carry != 0 {
			totalBits = math.MaxUint64
		}
	}

	if totalBits > def.Backing.Width()*8 {
		return c.report(errBitfieldTooWide(totalBits, def.Backing, loc))
	}
	return true
}

func (c *compiler) validateEnum(def *schema.EnumDefinition, loc Location) bool {
	for _, value := range def.Reserved {
		if !def.Backing.Contains(value) {
			if !c.report(errEnumReservedOutOfRange(value, def.Backing, loc)) {
				return false
			}
		}
	}

	identifiers := make(map[string]struct{}, len(def.Members))
	for ii, member := range def.Members {
		if _, conflict := identifiers[member.Identifier]; conflict {
			if !c.report(errMemberNameConflict(declKind_ENUM, member.Identifier, loc)) {
				return false
			}
		}
		identifiers[member.Identifier] = struct{}{}

		for _, prev := range def.Members[:ii] {
			if schema.Equal(prev.Value, member.Value) {
				err := errEnumValueConflict(member.Identifier, prev.Identifier, member.Value, loc)
				if !c.report(err) {
					return false
				}
				break
			}
		}

		for _, value := range def.Reserved {
			if schema.Equal(value, member.Value) {
				if !c.report(errEnumValueReserved(member.Identifier, member.Value, loc)) {
					return false
				}
				break
			}
		}

		if !def.Backing.Contains(member.Value) {
			err := errEnumValueOutOfRange(member.Identifier, member.Value, def.Backing, loc)
			if !c.report(err) {
				return false
			}
		}
	}
	return true
}

type fieldInfo struct {
	identifier string
	index      schema.FieldIndex
	fieldType  *schema.FieldType
}

func (c *compiler) validateStruct(def *schema.StructDefinition, loc Location) bool {
	fields := make([]fieldInfo, len(def.Members))
	for ii := range def.Members {
		member := &def.Members[ii]
		fields[ii] = fieldInfo{member.Identifier, member.Index, &member.Type}
	}
	return c.validateFields(declKind_STRUCT, fields, def.ReservedIndexes, loc)
}

func (c *compiler) validateMessage(def *schema.MessageDefinition, loc Location) bool {
	fields := make([]fieldInfo, len(def.Fields))
	for ii := range def.Fields {
		field := &def.Fields[ii]
		fields[ii] = fieldInfo{field.Identifier, field.Index, &field.Type}
	}
	return c.validateFields(declKind_MESSAGE, fields, def.ReservedIndexes, loc)
}

func (c *compiler) validateFields(
	kind declKind,
	fields []fieldInfo,
	reservedIndexes []schema.FieldIndex,
	loc Location,
) bool {
	reserved := make(map[uint64]struct{}, len(reservedIndexes))
	for _, index := range reservedIndexes {
		reserved[index.Value()] = struct{}{}
	}
	identifiers := make(map[string]struct{}, len(fields))
	indexes := make(map[uint64]string, len(fields))
	verifier := ""

	for _, field := range fields {
		if _, conflict := identifiers[field.identifier]; conflict {
			if !c.report(errMemberNameConflict(kind, field.identifier, loc)) {
				return false
			}
		}
		identifiers[field.identifier] = struct{}{}

		if field.index.IsVerifier() && verifier != "" {
			if !c.report(errMultipleVerifiers(kind, field.identifier, verifier, loc)) {
				return false
			}
		} else if prev, conflict := indexes[field.index.Value()]; conflict {
			err := errFieldIndexConflict(kind, field.identifier, prev, field.index, loc)
			if !c.report(err) {
				return false
			}
		} else {
			indexes[field.index.Value()] = field.identifier
		}
		if field.index.IsVerifier() && verifier == "" {
			verifier = field.identifier
		}

		if _, isReserved := reserved[field.index.Value()]; isReserved {
			if !c.report(errFieldIndexReserved(kind, field.identifier, field.index, loc)) {
				return false
			}
		}

		if err := checkWireType(kind, field.identifier, field.fieldType, loc); err != nil {
			if !c.report(err) {
				return false
			}
		}
	}
	return true
}

func checkWireType(kind declKind, identifier string, fieldType *schema.FieldType, loc Location) error {
	switch fieldType.Kind() {
	case schema.FieldTypePrimitive:
		if !fieldType.Primitive.OnWire() {
			return errFieldTypeNotOnWire(kind, identifier, fieldType.Primitive, loc)
		}
	case schema.FieldTypeArray:
		arr := fieldType.Array
		if arr.Element.TypeName == "" && !arr.Element.Primitive.OnWire() {
			return errFieldTypeNotOnWire(kind, identifier, arr.Element.Primitive, loc)
		}
		if _, ok := arr.Count.Count(); !ok {
			return errArraySizeInvalid(identifier, arr.Count, loc)
		}
	}
	return nil
}
