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
	"fmt"
	"strings"

	"github.com/NicolasDandanell/rune-parser/schema"
)

// A Location names the file and top-level declaration a diagnostic refers
// to. Decl is empty for diagnostics about a whole file.
type Location struct {
	File string
	Decl string
}

func (loc Location) String() string {
	if loc.Decl == "" {
		return loc.File
	}
	return loc.File + ":" + loc.Decl
}

type Error struct {
	code     uint32
	kind     schema.ErrorKind
	message  string
	location Location
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

func (err *Error) Location() Location {
	return err.location
}

// Is matches an error against its kind.
func (err *Error) Is(target error) bool {
	kind, ok := target.(schema.ErrorKind)
	return ok && kind == err.kind
}

func errMultipleDefinitions(name string, loc, prevLoc Location) error {
	return &Error{
		code: 5000,
		kind: schema.MultipleDefinitions,
		message: fmt.Sprintf(
			"Define '%s' in %q conflicts with earlier define in %q",
			name, loc.File, prevLoc.File,
		),
		location: loc,
	}
}

func errMultipleRedefinitions(name string, loc, prevLoc Location) error {
	return &Error{
		code: 5001,
		kind: schema.MultipleRedefinitions,
		message: fmt.Sprintf(
			"Redefine '%s' in %q conflicts with earlier redefine in %q",
			name, loc.File, prevLoc.File,
		),
		location: loc,
	}
}

func errArraySizeDefineNotFound(define, identifier string, loc Location) error {
	return &Error{
		code: 5002,
		kind: schema.UndefinedIdentifier,
		message: fmt.Sprintf(
			"Array size of '%s.%s' refers to undefined define '%s'",
			loc.Decl, identifier, define,
		),
		location: loc,
	}
}

func errArraySizeNotInteger(
	define string,
	value schema.NumericLiteral,
	identifier string,
	loc Location,
) error {
	return &Error{
		code: 5003,
		kind: schema.InvalidNumericValue,
		message: fmt.Sprintf(
			"Array size of '%s.%s' uses define '%s' = %s, which is not a non-negative integer",
			loc.Decl, identifier, define, value,
		),
		location: loc,
	}
}

func errExtensionBackingMismatch(
	kind declKind,
	backing, prevBacking schema.Primitive,
	loc Location,
) error {
	return &Error{
		code: 5010,
		kind: schema.ExtensionMismatch,
		message: fmt.Sprintf(
			"Extension of %s '%s' has backing type %s, expected %s",
			kind, loc.Decl, backing, prevBacking,
		),
		location: loc,
	}
}

func errExtensionIdentifierConflict(kind declKind, identifier string, loc Location) error {
	return &Error{
		code: 5011,
		kind: schema.IdentifierCollision,
		message: fmt.Sprintf(
			"Extension of %s '%s' redeclares member '%s'",
			kind, loc.Decl, identifier,
		),
		location: loc,
	}
}

func errExtensionKindMismatch(kind, targetKind declKind, loc Location) error {
	return &Error{
		code: 5012,
		kind: schema.ExtensionMismatch,
		message: fmt.Sprintf(
			"Extension of %s '%s' targets %s '%s'",
			kind, loc.Decl, targetKind, loc.Decl,
		),
		location: loc,
	}
}

func errTypeNameNotFound(typeName, identifier string, loc Location) error {
	return &Error{
		code: 5020,
		kind: schema.UndefinedIdentifier,
		message: fmt.Sprintf(
			"Type '%s' of '%s.%s' is not defined",
			typeName, loc.Decl, identifier,
		),
		location: loc,
	}
}

func errMessageTypeInvalid(typeName, identifier string, loc Location) error {
	return &Error{
		code: 5021,
		kind: schema.InvalidTypeUse,
		message: fmt.Sprintf(
			"Message '%s' cannot be used as the type of '%s.%s'",
			typeName, loc.Decl, identifier,
		),
		location: loc,
	}
}

func errCyclicDefinition(path []string, loc Location) error {
	return &Error{
		code: 5022,
		kind: schema.CyclicDefinition,
		message: fmt.Sprintf(
			"Type '%s' contains itself (%s)",
			path[len(path)-1], strings.Join(path, " -> "),
		),
		location: loc,
	}
}

func errDeclNameConflict(decl, prevDecl declNode, loc, prevLoc Location) error {
	return &Error{
		code: 5030,
		kind: schema.NameCollision,
		message: fmt.Sprintf(
			"Declaration of %s '%s' conflicts with earlier declaration of %s '%s' in %q",
			decl.kind(), decl.name(), prevDecl.kind(), prevDecl.name(), prevLoc.File,
		),
		location: loc,
	}
}

func errMemberNameConflict(kind declKind, identifier string, loc Location) error {
	return &Error{
		code: 5031,
		kind: schema.IdentifierCollision,
		message: fmt.Sprintf(
			"Member '%s' of %s '%s' conflicts with an earlier member of the same name",
			identifier, kind, loc.Decl,
		),
		location: loc,
	}
}

func errBitSlotConflict(identifier, prevIdentifier string, slot uint64, loc Location) error {
	return &Error{
		code: 5032,
		kind: schema.IndexCollision,
		message: fmt.Sprintf(
			"Bit slot %d of '%s.%s' is already used by '%s'",
			slot, loc.Decl, identifier, prevIdentifier,
		),
		location: loc,
	}
}

func errBitSlotReserved(identifier string, slot uint64, loc Location) error {
	return &Error{
		code: 5033,
		kind: schema.UseOfReservedIndex,
		message: fmt.Sprintf(
			"Bit slot %d of '%s.%s' is reserved",
			slot, loc.Decl, identifier,
		),
		location: loc,
	}
}

func errBitfieldTooWide(totalBits uint64, backing schema.Primitive, loc Location) error {
	return &Error{
		code: 5034,
		kind: schema.InvalidBitfieldSize,
		message: fmt.Sprintf(
			"Bitfield '%s' members use %d bits, but backing type %s holds %d",
			loc.Decl, totalBits, backing, backing.Width()*8,
		),
		location: loc,
	}
}

func errBitfieldBackingInvalid(backing schema.Primitive, loc Location) error {
	return &Error{
		code: 5035,
		kind: schema.InvalidTypeUse,
		message: fmt.Sprintf(
			"Bitfield '%s' backing type %s is not an integer type",
			loc.Decl, backing,
		),
		location: loc,
	}
}

func errEnumValueConflict(
	identifier, prevIdentifier string,
	value schema.NumericLiteral,
	loc Location,
) error {
	return &Error{
		code: 5040,
		kind: schema.ValueCollision,
		message: fmt.Sprintf(
			"Enum item '%s.%s' value %s conflicts with value of earlier item '%s'",
			loc.Decl, identifier, value, prevIdentifier,
		),
		location: loc,
	}
}

func errEnumValueReserved(identifier string, value schema.NumericLiteral, loc Location) error {
	return &Error{
		code: 5041,
		kind: schema.UseOfReservedIndex,
		message: fmt.Sprintf(
			"Enum item '%s.%s' uses reserved value %s",
			loc.Decl, identifier, value,
		),
		location: loc,
	}
}

func errEnumValueOutOfRange(
	identifier string,
	value schema.NumericLiteral,
	backing schema.Primitive,
	loc Location,
) error {
	return &Error{
		code: 5042,
		kind: schema.InvalidNumericValue,
		message: fmt.Sprintf(
			"Enum item '%s.%s' value %s is out of range for %s",
			loc.Decl, identifier, value, backing,
		),
		location: loc,
	}
}

func errEnumReservedOutOfRange(
	value schema.NumericLiteral,
	backing schema.Primitive,
	loc Location,
) error {
	return &Error{
		code: 5043,
		kind: schema.InvalidNumericValue,
		message: fmt.Sprintf(
			"Reserved value %s of enum '%s' is out of range for %s",
			value, loc.Decl, backing,
		),
		location: loc,
	}
}

func errFieldIndexConflict(
	kind declKind,
	identifier, prevIdentifier string,
	index schema.FieldIndex,
	loc Location,
) error {
	return &Error{
		code: 5050,
		kind: schema.IndexCollision,
		message: fmt.Sprintf(
			"Index %s of %s field '%s.%s' conflicts with earlier field '%s'",
			index, kind, loc.Decl, identifier, prevIdentifier,
		),
		location: loc,
	}
}

func errMultipleVerifiers(kind declKind, identifier, prevIdentifier string, loc Location) error {
	return &Error{
		code: 5051,
		kind: schema.IndexCollision,
		message: fmt.Sprintf(
			"Verifier field '%s' of %s '%s' conflicts with earlier verifier '%s'",
			identifier, kind, loc.Decl, prevIdentifier,
		),
		location: loc,
	}
}

func errFieldIndexReserved(
	kind declKind,
	identifier string,
	index schema.FieldIndex,
	loc Location,
) error {
	return &Error{
		code: 5052,
		kind: schema.UseOfReservedIndex,
		message: fmt.Sprintf(
			"Index %s of %s field '%s.%s' is reserved",
			index, kind, loc.Decl, identifier,
		),
		location: loc,
	}
}

func errFieldTypeNotOnWire(kind declKind, identifier string, p schema.Primitive, loc Location) error {
	return &Error{
		code: 5053,
		kind: schema.InvalidTypeUse,
		message: fmt.Sprintf(
			"Type %s of %s field '%s.%s' cannot be encoded",
			p, kind, loc.Decl, identifier,
		),
		location: loc,
	}
}

func errArraySizeInvalid(identifier string, size schema.ArraySize, loc Location) error {
	return &Error{
		code: 5054,
		kind: schema.InvalidArraySize,
		message: fmt.Sprintf(
			"Array size %s of '%s.%s' is not a non-negative integer",
			size.String(), loc.Decl, identifier,
		),
		location: loc,
	}
}
