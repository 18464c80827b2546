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
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/NicolasDandanell/rune-parser/schema"
)

type indexedDecl struct {
	node extendableNode
	file string
}

// A linker resolves type names against a private copy of the files taken
// before linking starts, so that lookups never see a partially linked
// declaration.
type linker struct {
	log logrus.FieldLogger

	// First declaration of each name, in file order then lookup order.
	index map[string]indexedDecl

	// Fully linked snapshot of each name resolved so far.
	resolved map[string]schema.UserDefinitionLink

	// Names currently being resolved, outermost first.
	visiting []string
}

func newLinker(files []*schema.File, log logrus.FieldLogger) *linker {
	l := &linker{
		log:      log,
		index:    make(map[string]indexedDecl),
		resolved: make(map[string]schema.UserDefinitionLink),
	}
	for _, file := range files {
		baseline := file.Clone()
		for decl := range typeDecls(&baseline.Definitions) {
			if _, ok := l.index[decl.name()]; !ok {
				l.index[decl.name()] = indexedDecl{decl, file.Name}
			}
		}
	}
	return l
}

func (c *compiler) linkTypes() {
	l := newLinker(c.files, c.log)
	for _, file := range c.files {
		for ref, fieldType := range fieldTypes(&file.Definitions, false) {
			loc := Location{file.Name, ref.decl}
			inMessage := ref.kind == declKind_MESSAGE
			if err := l.linkFieldType(fieldType, inMessage, ref.identifier, loc); err != nil {
				c.err(err)
				return
			}
		}
	}
}

// linkFieldType sets the link of a named type, or of an array of a named
// type. Messages are accepted only as the direct type of a message field.
func (l *linker) linkFieldType(
	fieldType *schema.FieldType,
	inMessage bool,
	identifier string,
	loc Location,
) error {
	if fieldType.Array != nil {
		elem := &fieldType.Array.Element
		if elem.TypeName == "" {
			return nil
		}
		link, err := l.resolve(elem.TypeName, false, identifier, loc)
		if err != nil {
			return err
		}
		elem.Link = link
		return nil
	}
	if fieldType.TypeName == "" {
		return nil
	}
	link, err := l.resolve(fieldType.TypeName, inMessage, identifier, loc)
	if err != nil {
		return err
	}
	fieldType.Link = link
	return nil
}

func (l *linker) resolve(
	name string,
	allowMessage bool,
	identifier string,
	loc Location,
) (schema.UserDefinitionLink, error) {
	decl, ok := l.index[name]
	if !ok {
		return schema.UserDefinitionLink{}, errTypeNameNotFound(name, identifier, loc)
	}
	if decl.node.kind() == declKind_MESSAGE && !allowMessage {
		return schema.UserDefinitionLink{}, errMessageTypeInvalid(name, identifier, loc)
	}
	if link, ok := l.resolved[name]; ok {
		return link.Clone(), nil
	}
	if start := slices.Index(l.visiting, name); start >= 0 {
		path := append(slices.Clone(l.visiting[start:]), name)
		return schema.UserDefinitionLink{}, errCyclicDefinition(path, loc)
	}

	l.visiting = append(l.visiting, name)
	link, err := l.snapshot(decl)
	l.visiting = l.visiting[:len(l.visiting)-1]
	if err != nil {
		return schema.UserDefinitionLink{}, err
	}

	l.log.WithFields(logrus.Fields{
		"pass": "links",
		"file": decl.file,
		"decl": name,
		"kind": link.Kind().String(),
	}).Debug("resolved type")
	l.resolved[name] = link
	return link.Clone(), nil
}

// snapshot returns a link to a copy of decl in which every nested type
// reference is itself linked.
func (l *linker) snapshot(decl indexedDecl) (schema.UserDefinitionLink, error) {
	loc := Location{decl.file, decl.node.name()}
	switch node := decl.node.(type) {
	case bitfieldNode:
		return schema.BitfieldLink(node.BitfieldDefinition), nil
	case enumNode:
		return schema.EnumLink(node.EnumDefinition), nil
	case structNode:
		def := node.Clone()
		for ii := range def.Members {
			member := &def.Members[ii]
			if err := l.linkFieldType(&member.Type, false, member.Identifier, loc); err != nil {
				return schema.UserDefinitionLink{}, err
			}
		}
		return schema.StructLink(def), nil
	case messageNode:
		def := node.Clone()
		for ii := range def.Fields {
			field := &def.Fields[ii]
			if err := l.linkFieldType(&field.Type, true, field.Identifier, loc); err != nil {
				return schema.UserDefinitionLink{}, err
			}
		}
		return schema.MessageLink(def), nil
	default:
		panic("unreachable")
	}
}
