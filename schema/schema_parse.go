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
	"strconv"
	"strings"
)

// ParseNumericLiteral parses the text form of a literal: "true", "false",
// a quoted ASCII char, a decimal, "0x" hexadecimal or "0b" binary integer
// with an optional leading '-', or a float.
func ParseNumericLiteral(text string) (NumericLiteral, error) {
	text = strings.TrimSpace(text)
	switch text {
	case "":
		return NumericLiteral{}, fmt.Errorf("empty numeric literal")
	case "true":
		return BoolLiteral(true), nil
	case "false":
		return BoolLiteral(false), nil
	}

	if text[0] == '\'' {
		value, err := strconv.Unquote(text)
		if err != nil || len(value) != 1 || value[0] > 0x7F {
			return NumericLiteral{}, fmt.Errorf("invalid char literal %s", text)
		}
		return CharLiteral(value[0]), nil
	}

	digits := text
	negative := false
	if digits[0] == '-' || digits[0] == '+' {
		negative = digits[0] == '-'
		digits = digits[1:]
	}

	base := Decimal
	radix := 10
	lower := strings.ToLower(digits)
	switch {
	case strings.HasPrefix(lower, "0x"):
		base, radix, digits = Hexadecimal, 16, digits[2:]
	case strings.HasPrefix(lower, "0b"):
		base, radix, digits = Binary, 2, digits[2:]
	case strings.ContainsAny(lower, ".e") || lower == "inf" || lower == "nan":
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return NumericLiteral{}, fmt.Errorf("invalid float literal %q", text)
		}
		return FloatLiteral(value), nil
	}

	digits = strings.ReplaceAll(digits, "_", "")
	value, err := strconv.ParseUint(digits, radix, 64)
	if err != nil {
		return NumericLiteral{}, fmt.Errorf("invalid integer literal %q", text)
	}
	if !negative || value == 0 {
		return PositiveInteger(value, base), nil
	}
	if value > 1<<63 {
		return NumericLiteral{}, fmt.Errorf("integer literal %q out of range", text)
	}
	return NegativeInteger(int64(-value), base), nil
}

// ParseFieldIndex parses a decimal index or the "verifier" alias.
func ParseFieldIndex(text string) (FieldIndex, error) {
	text = strings.TrimSpace(text)
	if text == "verifier" {
		return VerifierIndex(), nil
	}
	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return FieldIndex{}, fmt.Errorf("invalid field index %q", text)
	}
	return NumericIndex(value), nil
}

// ParseBitSize parses a bitfield member size such as "u3" or "i12".
func ParseBitSize(text string) (BitSize, error) {
	text = strings.TrimSpace(text)
	if len(text) < 2 || (text[0] != 'u' && text[0] != 'i') {
		return BitSize{}, fmt.Errorf("invalid bit size %q", text)
	}
	width, err := strconv.ParseUint(text[1:], 10, 64)
	if err != nil || width == 0 {
		return BitSize{}, fmt.Errorf("invalid bit size %q", text)
	}
	return BitSize{Width: width, Signed: text[0] == 'i'}, nil
}

// ParseFieldType parses a primitive name, a user type name, or an array
// written as "[ELEMENT; COUNT]" where COUNT is a literal or a define name.
func ParseFieldType(text string) (FieldType, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "[") {
		if !strings.HasSuffix(text, "]") {
			return FieldType{}, fmt.Errorf("invalid array type %q", text)
		}
		elemText, countText, ok := strings.Cut(text[1:len(text)-1], ";")
		if !ok {
			return FieldType{}, fmt.Errorf("array type %q has no element count", text)
		}
		elemText = strings.TrimSpace(elemText)
		if !isIdentifier(elemText) {
			return FieldType{}, fmt.Errorf("invalid array element type %q", elemText)
		}
		var elem ArrayElement
		if p, ok := ParsePrimitive(elemText); ok {
			elem.Primitive = p
		} else {
			elem.TypeName = elemText
		}
		countText = strings.TrimSpace(countText)
		if isIdentifier(countText) && countText != "true" && countText != "false" {
			return ArrayType(elem, DefineArraySize(countText)), nil
		}
		count, err := ParseNumericLiteral(countText)
		if err != nil {
			return FieldType{}, err
		}
		return ArrayType(elem, LiteralArraySize(count)), nil
	}
	if !isIdentifier(text) {
		return FieldType{}, fmt.Errorf("invalid type name %q", text)
	}
	if p, ok := ParsePrimitive(text); ok {
		return PrimitiveType(p), nil
	}
	return UserType(text), nil
}

func isIdentifier(text string) bool {
	if text == "" {
		return false
	}
	for ii := 0; ii < len(text); ii++ {
		c := text[ii]
		switch {
		case c == '_':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && ii > 0:
		default:
			return false
		}
	}
	return true
}
