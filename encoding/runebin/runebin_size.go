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

// Package runebin computes the encoded sizes of Rune structs and messages.
//
// A struct encodes as a flat blob: its members in declaration order, with no
// padding. A message encodes as a sequence of fields, each a one byte header
// followed by the field payload. Payloads whose size is not a primitive width
// carry a length of 1, 2, or 4 bytes after the header.
//
// All functions expect linked declarations, as produced by package compiler.
package runebin

import (
	"math"
	"math/bits"

	"github.com/NicolasDandanell/rune-parser/schema"
)

const (
	fieldHeaderSize = 1

	// Per-field overhead of the largest field encoding: the header and a
	// 4 byte length.
	worstCaseFieldOverhead = fieldHeaderSize + 4
)

// StructSize returns the flat size of a struct in bytes.
func StructSize(def *schema.StructDefinition) (uint64, error) {
	var total uint64
	for ii := range def.Members {
		member := &def.Members[ii]
		if member.Type.Kind() == schema.FieldTypeUser {
			if _, isMessage := member.Type.Link.Message(); isMessage {
				return 0, errMessageInStruct(def.Name, member.Identifier, member.Type.TypeName)
			}
		}
		size, _, err := payloadSize(&member.Type, false)
		if err != nil {
			return 0, err
		}
		if total, err = add(total, size); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// MessageSize returns the encoded size of a message when every field is
// present and encoded in its smallest form.
func MessageSize(def *schema.MessageDefinition) (uint64, error) {
	var total uint64
	for ii := range def.Fields {
		size, err := FieldSize(&def.Fields[ii])
		if err != nil {
			return 0, err
		}
		if total, err = add(total, size); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// FieldSize returns the smallest encoded size of a message field, including
// its header.
func FieldSize(field *schema.MessageField) (uint64, error) {
	size, _, err := payloadSize(&field.Type, false)
	if err != nil {
		return 0, err
	}
	return EncodedDataSize(size)
}

// MessageMaxSize returns the largest encoded size of a message when every
// field is present. The size is unknown (ok == false) if the message, or a
// message nested in it, does not use every index from 0 to its largest
// index. A message without fields has no index 0, so its size is unknown.
func MessageMaxSize(def *schema.MessageDefinition) (size uint64, ok bool, err error) {
	if len(def.Fields) == 0 {
		return 0, false, nil
	}

	byIndex := make(map[uint64]*schema.MessageField, len(def.Fields))
	var maxIndex uint64
	for ii := range def.Fields {
		field := &def.Fields[ii]
		index := field.Index.Value()
		if _, dup := byIndex[index]; !dup {
			byIndex[index] = field
		}
		maxIndex = max(maxIndex, index)
	}
	if maxIndex >= uint64(len(def.Fields)) {
		return 0, false, nil
	}

	var total uint64
	for index := uint64(0); index <= maxIndex; index++ {
		field, found := byIndex[index]
		if !found {
			return 0, false, nil
		}
		payload, known, err := payloadSize(&field.Type, true)
		if err != nil {
			return 0, false, err
		}
		if !known {
			return 0, false, nil
		}
		if total, err = add(total, worstCaseFieldOverhead); err != nil {
			return 0, false, err
		}
		if total, err = add(total, payload); err != nil {
			return 0, false, err
		}
	}
	return total, true, nil
}

// EncodedDataSize returns the size of a field with a payload of the given
// size: nothing for an empty payload, otherwise a header, a length if the
// payload is not a primitive width, and the payload.
func EncodedDataSize(payload uint64) (uint64, error) {
	var lengthSize uint64
	switch {
	case payload == 0:
		return 0, nil
	case payload == 1 || payload == 2 || payload == 4 || payload == 8:
		lengthSize = 0
	case payload <= math.MaxUint8:
		lengthSize = 1
	case payload <= math.MaxUint16:
		lengthSize = 2
	case payload <= math.MaxUint32:
		lengthSize = 4
	default:
		return 0, errEncodedSizeTooLarge(payload)
	}
	return fieldHeaderSize + lengthSize + payload, nil
}

// payloadSize returns the size of a value of the given type. Nested messages
// use their smallest size, or their largest if worstCase is set, in which
// case the size may be unknown.
func payloadSize(fieldType *schema.FieldType, worstCase bool) (uint64, bool, error) {
	switch fieldType.Kind() {
	case schema.FieldTypePrimitive:
		return fieldType.Primitive.Width(), true, nil
	case schema.FieldTypeArray:
		size, err := arraySize(fieldType.Array)
		return size, err == nil, err
	case schema.FieldTypeUser:
		link := fieldType.Link
		if def, ok := link.Message(); ok {
			if worstCase {
				return MessageMaxSize(def)
			}
			size, err := MessageSize(def)
			return size, err == nil, err
		}
		size, err := fixedSize(fieldType.TypeName, link)
		return size, err == nil, err
	}
	return 0, false, errInvalidType(fieldType.String())
}

func arraySize(arr *schema.Array) (uint64, error) {
	count, ok := arr.Count.Count()
	if !ok {
		return 0, errArraySizeInvalid(arr.Count)
	}
	var elemSize uint64
	if arr.Element.TypeName == "" {
		elemSize = arr.Element.Primitive.Width()
	} else {
		if _, isMessage := arr.Element.Link.Message(); isMessage {
			return 0, errMessageArray(arr.Element.TypeName)
		}
		var err error
		if elemSize, err = fixedSize(arr.Element.TypeName, arr.Element.Link); err != nil {
			return 0, err
		}
	}
	hi, lo := bits.Mul64(elemSize, count)
	if hi != 0 {
		return 0, errSizeOverflow()
	}
	return lo, nil
}

// fixedSize returns the size of a linked bitfield, enum, or struct.
func fixedSize(typeName string, link schema.UserDefinitionLink) (uint64, error) {
	switch link.Kind() {
	case schema.LinkBitfield:
		def, _ := link.Bitfield()
		return def.Backing.Width(), nil
	case schema.LinkEnum:
		def, _ := link.Enum()
		return def.Backing.Width(), nil
	case schema.LinkStruct:
		def, _ := link.Struct()
		return StructSize(def)
	case schema.LinkMessage:
		return 0, errMessageArray(typeName)
	}
	return 0, errTypeNotLinked(typeName)
}

func add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, errSizeOverflow()
	}
	return sum, nil
}
