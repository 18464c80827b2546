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

// Package runetext prints a declaration tree as text.
//
// The output is deterministic: declarations appear grouped by kind in the
// order they are stored, and every linked type is annotated with the kind
// of declaration it resolved to.
package runetext

import (
	"fmt"
	"io"
	"strings"

	"github.com/NicolasDandanell/rune-parser/schema"
)

func Encode(file *schema.File) string {
	var buf strings.Builder
	EncodeTo(file, &buf)
	return buf.String()
}

func EncodeTo(file *schema.File, w io.Writer) error {
	e := encoder{w: w}
	e.visitFile(file)
	return e.err
}

type encoder struct {
	w      io.Writer
	indent int
	err    error
}

func (e *encoder) line(s string) {
	if e.err != nil {
		return
	}
	if indent := strings.Repeat("\t", e.indent); indent != "" {
		if _, err := io.WriteString(e.w, indent); err != nil {
			e.err = err
			return
		}
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = err
		return
	}
	if _, err := io.WriteString(e.w, "\n"); err != nil {
		e.err = err
		return
	}
}

func (e *encoder) linef(format string, a ...any) {
	e.line(fmt.Sprintf(format, a...))
}

func (e *encoder) comment(text string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		e.line(strings.TrimRight("// "+line, " "))
	}
}

func (e *encoder) block(header string, body func()) {
	e.linef("%s {", header)
	e.indent += 1
	body()
	e.indent -= 1
	e.line("}")
}

func (e *encoder) visitFile(file *schema.File) {
	defs := &file.Definitions
	e.linef("file %s", quote(file.Name))
	for _, include := range defs.Includes {
		e.linef("include %s", quote(include.File))
	}
	for _, comment := range defs.StandaloneComments {
		e.linef("comment %d %s", comment.Index, quote(comment.Comment))
	}
	for _, def := range defs.Defines {
		e.comment(def.Comment)
		if def.Redefinition != nil {
			e.linef("define %s = %s (redefined %s)", def.Name, def.Value, def.Redefinition.Value)
		} else {
			e.linef("define %s = %s", def.Name, def.Value)
		}
	}
	for _, def := range defs.Redefines {
		e.comment(def.Comment)
		e.linef("redefine %s = %s", def.Name, def.Value)
	}
	for _, def := range defs.Bitfields {
		e.visitBitfield("bitfield", def)
	}
	for _, def := range defs.Enums {
		e.visitEnum("enum", def)
	}
	for _, def := range defs.Structs {
		e.visitStruct("struct", def)
	}
	for _, def := range defs.Messages {
		e.visitMessage("message", def)
	}

	ext := &defs.Extensions
	for _, def := range ext.Bitfields {
		e.visitBitfield("extend bitfield", def)
	}
	for _, def := range ext.Enums {
		e.visitEnum("extend enum", def)
	}
	for _, def := range ext.Structs {
		e.visitStruct("extend struct", def)
	}
	for _, def := range ext.Messages {
		e.visitMessage("extend message", def)
	}
}

func (e *encoder) visitBitfield(keyword string, def *schema.BitfieldDefinition) {
	e.comment(def.Comment)
	e.block(fmt.Sprintf("%s %s: %s", keyword, def.Name, def.Backing), func() {
		for _, slot := range def.ReservedSlots {
			e.linef("reserve %d", slot)
		}
		for _, member := range def.Members {
			e.comment(member.Comment)
			e.linef("%s: %s = %d", member.Identifier, member.Size, member.Slot)
		}
	})
}

func (e *encoder) visitEnum(keyword string, def *schema.EnumDefinition) {
	e.comment(def.Comment)
	e.block(fmt.Sprintf("%s %s: %s", keyword, def.Name, def.Backing), func() {
		for _, value := range def.Reserved {
			e.linef("reserve %s", value)
		}
		for _, member := range def.Members {
			e.comment(member.Comment)
			e.linef("%s = %s", member.Identifier, member.Value)
		}
	})
}

func (e *encoder) visitStruct(keyword string, def *schema.StructDefinition) {
	e.comment(def.Comment)
	e.block(fmt.Sprintf("%s %s", keyword, def.Name), func() {
		for _, index := range def.ReservedIndexes {
			e.linef("reserve %s", index)
		}
		for ii := range def.Members {
			member := &def.Members[ii]
			e.comment(member.Comment)
			e.linef("%s: %s = %s", member.Identifier, fmtType(&member.Type), member.Index)
		}
	})
}

func (e *encoder) visitMessage(keyword string, def *schema.MessageDefinition) {
	e.comment(def.Comment)
	e.block(fmt.Sprintf("%s %s", keyword, def.Name), func() {
		for _, index := range def.ReservedIndexes {
			e.linef("reserve %s", index)
		}
		for ii := range def.Fields {
			field := &def.Fields[ii]
			e.comment(field.Comment)
			e.linef("%s: %s = %s", field.Identifier, fmtType(&field.Type), field.Index)
		}
	})
}

func fmtType(fieldType *schema.FieldType) string {
	switch fieldType.Kind() {
	case schema.FieldTypePrimitive:
		return fieldType.Primitive.String()
	case schema.FieldTypeUser:
		return fmtUserType(fieldType.TypeName, fieldType.Link)
	case schema.FieldTypeArray:
		arr := fieldType.Array
		elem := arr.Element.Primitive.String()
		if arr.Element.TypeName != "" {
			elem = fmtUserType(arr.Element.TypeName, arr.Element.Link)
		}
		return fmt.Sprintf("[%s; %s]", elem, fmtCount(&arr.Count))
	}
	panic("unreachable")
}

func fmtUserType(name string, link schema.UserDefinitionLink) string {
	if !link.IsResolved() {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, link.Kind())
}

func fmtCount(count *schema.ArraySize) string {
	name := count.DefineName()
	if name == "" {
		return count.Literal().String()
	}
	if !count.IsResolved() {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, count.Literal())
}

func quote(text string) string {
	var buf strings.Builder
	buf.WriteByte('"')
	for _, c := range text {
		if c == '\\' || c == '"' {
			buf.WriteByte('\\')
			buf.WriteRune(c)
			continue
		}
		if c == '\t' {
			buf.WriteString("\\t")
			continue
		}
		if c == '\n' {
			buf.WriteString("\\n")
			continue
		}
		if c < 0x20 || c == 0x7F {
			fmt.Fprintf(&buf, "\\x%02X", c)
			continue
		}
		buf.WriteRune(c)
	}
	buf.WriteByte('"')
	return buf.String()
}
