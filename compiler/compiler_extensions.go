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

// A mergedExtension is the union of every extension fragment with the same
// kind and name, in file order.
type mergedExtension struct {
	node  extendableNode
	files []string
}

type extensionKey struct {
	kind declKind
	name string
}

func (c *compiler) mergeExtensions() {
	extensions, err := c.collectExtensions()
	if err != nil {
		c.err(err)
		return
	}

	for _, ext := range extensions {
		if c.opts.appendExtensions {
			if err := c.spliceExtension(ext); err != nil {
				c.err(err)
				return
			}
			continue
		}
		loc := Location{ext.files[0], ext.node.name()}
		if !c.validateDecl(ext.node, loc) {
			return
		}
		c.log.WithFields(logrus.Fields{
			"pass": "extensions",
			"decl": ext.node.name(),
		}).Debug("dropped extension")
	}
}

func (c *compiler) collectExtensions() ([]*mergedExtension, error) {
	byKey := make(map[extensionKey]*mergedExtension)
	var extensions []*mergedExtension
	for _, file := range c.files {
		for fragment := range extensionDecls(&file.Definitions.Extensions) {
			key := extensionKey{fragment.kind(), fragment.name()}
			ext, ok := byKey[key]
			if !ok {
				ext = &mergedExtension{
					node:  fragment.clone(),
					files: []string{file.Name},
				}
				byKey[key] = ext
				extensions = append(extensions, ext)
				continue
			}
			loc := Location{file.Name, fragment.name()}
			if err := checkExtension(ext.node, fragment, loc); err != nil {
				return nil, err
			}
			ext.node.appendMembers(fragment.clone())
			if !slices.Contains(ext.files, file.Name) {
				ext.files = append(ext.files, file.Name)
			}
		}
	}
	return extensions, nil
}

// checkExtension checks that the members of fragment can be appended to
// target.
func checkExtension(target, fragment extendableNode, loc Location) error {
	if backing, ok := target.backing(); ok {
		if fragmentBacking, _ := fragment.backing(); fragmentBacking != backing {
			return errExtensionBackingMismatch(fragment.kind(), fragmentBacking, backing, loc)
		}
	}
	existing := make(map[string]struct{}, target.memberCount())
	for _, identifier := range target.identifiers() {
		existing[identifier] = struct{}{}
	}
	for _, identifier := range fragment.identifiers() {
		if _, conflict := existing[identifier]; conflict {
			return errExtensionIdentifierConflict(fragment.kind(), identifier, loc)
		}
	}
	return nil
}

func (c *compiler) spliceExtension(ext *mergedExtension) error {
	kind, name := ext.node.kind(), ext.node.name()
	target, file := c.findDecl(name)
	if target == nil {
		c.warn(warnExtensionTargetNotFound(kind, ext.files, Location{ext.files[0], name}))
		return nil
	}

	loc := Location{file.Name, name}
	if target.kind() != kind {
		return errExtensionKindMismatch(kind, target.kind(), loc)
	}
	if err := checkExtension(target, ext.node, loc); err != nil {
		return err
	}
	target.appendMembers(ext.node)

	for _, from := range ext.files {
		if from == file.Name || file.Definitions.HasInclude(from) {
			continue
		}
		file.Definitions.Includes = append(
			file.Definitions.Includes,
			schema.IncludeDefinition{File: from},
		)
	}
	c.log.WithFields(logrus.Fields{
		"pass":  "extensions",
		"file":  file.Name,
		"decl":  name,
		"from":  ext.files,
		"added": ext.node.memberCount(),
	}).Debug("appended extension")
	return nil
}

// findDecl returns the first type declaration with the given name, and the
// file containing it.
func (c *compiler) findDecl(name string) (extendableNode, *schema.File) {
	for _, file := range c.files {
		for decl := range typeDecls(&file.Definitions) {
			if decl.name() == name {
				return decl, file
			}
		}
	}
	return nil, nil
}
