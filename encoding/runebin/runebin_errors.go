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

package runebin

import (
	"fmt"

	"github.com/NicolasDandanell/rune-parser/schema"
)

type Error struct {
	code    uint32
	kind    schema.ErrorKind
	message string
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Kind() schema.ErrorKind {
	return err.kind
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Is(target error) bool {
	kind, ok := target.(schema.ErrorKind)
	return ok && kind == err.kind
}

func errMessageInStruct(structName, identifier, typeName string) error {
	return &Error{
		code: 7000,
		kind: schema.InvalidStructMemberType,
		message: fmt.Sprintf(
			"Member '%s.%s' has message type '%s', which has no fixed size",
			structName, identifier, typeName,
		),
	}
}

func errMessageArray(typeName string) error {
	return &Error{
		code:    7001,
		kind:    schema.InvalidArrayType,
		message: fmt.Sprintf("Array of message '%s' has no fixed size", typeName),
	}
}

func errTypeNotLinked(typeName string) error {
	return &Error{
		code:    7002,
		kind:    schema.UndefinedIdentifier,
		message: fmt.Sprintf("Type '%s' is not linked to a declaration", typeName),
	}
}

func errArraySizeInvalid(size schema.ArraySize) error {
	return &Error{
		code:    7003,
		kind:    schema.InvalidArraySize,
		message: fmt.Sprintf("Array size %s is not a resolved non-negative integer", size.String()),
	}
}

func errEncodedSizeTooLarge(size uint64) error {
	return &Error{
		code:    7004,
		kind:    schema.InvalidEncodedSize,
		message: fmt.Sprintf("Encoded size %d exceeds the u32 length limit", size),
	}
}

func errSizeOverflow() error {
	return &Error{
		code:    7005,
		kind:    schema.InvalidEncodedSize,
		message: "Encoded size overflows a u64",
	}
}

func errInvalidType(fieldType string) error {
	return &Error{
		code:    7006,
		kind:    schema.InvalidTypeUse,
		message: fmt.Sprintf("Type %s has no encoded size", fieldType),
	}
}
