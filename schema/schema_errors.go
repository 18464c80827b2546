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

// ErrorKind classifies schema errors. Each kind is itself an error, so that
// errors carrying a kind can be matched with errors.Is.
type ErrorKind uint8

const (
	_ ErrorKind = iota

	// Naming
	NameCollision
	IdentifierCollision

	// Values
	ValueCollision
	IndexCollision
	UseOfReservedIndex

	// Types
	ExtensionMismatch
	UndefinedIdentifier
	InvalidTypeUse
	InvalidStructMemberType
	InvalidArrayType
	CyclicDefinition

	// Numbers
	InvalidNumericValue
	InvalidEncodedSize
	InvalidArraySize
	InvalidBitfieldSize

	// Configuration
	MultipleDefinitions
	MultipleRedefinitions
)

var errorKindNames = map[ErrorKind]string{
	NameCollision:           "NameCollision",
	IdentifierCollision:     "IdentifierCollision",
	ValueCollision:          "ValueCollision",
	IndexCollision:          "IndexCollision",
	UseOfReservedIndex:      "UseOfReservedIndex",
	ExtensionMismatch:       "ExtensionMismatch",
	UndefinedIdentifier:     "UndefinedIdentifier",
	InvalidTypeUse:          "InvalidTypeUse",
	InvalidStructMemberType: "InvalidStructMemberType",
	InvalidArrayType:        "InvalidArrayType",
	CyclicDefinition:        "CyclicDefinition",
	InvalidNumericValue:     "InvalidNumericValue",
	InvalidEncodedSize:      "InvalidEncodedSize",
	InvalidArraySize:        "InvalidArraySize",
	InvalidBitfieldSize:     "InvalidBitfieldSize",
	MultipleDefinitions:     "MultipleDefinitions",
	MultipleRedefinitions:   "MultipleRedefinitions",
}

var _ error = ErrorKind(0)

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

func (k ErrorKind) Error() string {
	return k.String()
}
