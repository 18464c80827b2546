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
	"github.com/sirupsen/logrus"

	"github.com/NicolasDandanell/rune-parser/schema"
)

type defineInfo struct {
	def  *schema.DefineDefinition
	file string
}

type redefineInfo struct {
	def     *schema.RedefineDefinition
	file    string
	matched bool
}

// defineTable indexes the defines and redefines of every file. It is built
// completely before any file is changed.
type defineTable struct {
	defines   map[string]*defineInfo
	redefines map[string]*redefineInfo

	// Declaration order, for deterministic iteration.
	defineOrder   []*defineInfo
	redefineOrder []*redefineInfo
}

func (c *compiler) indexDefines() (*defineTable, error) {
	table := &defineTable{
		defines:   make(map[string]*defineInfo),
		redefines: make(map[string]*redefineInfo),
	}
	for _, file := range c.files {
		for _, def := range file.Definitions.Defines {
			if prev, conflict := table.defines[def.Name]; conflict {
				return nil, errMultipleDefinitions(
					def.Name,
					Location{file.Name, def.Name},
					Location{prev.file, def.Name},
				)
			}
			info := &defineInfo{def: def, file: file.Name}
			table.defines[def.Name] = info
			table.defineOrder = append(table.defineOrder, info)
		}
	}
	for _, file := range c.files {
		for _, def := range file.Definitions.Redefines {
			if prev, conflict := table.redefines[def.Name]; conflict {
				return nil, errMultipleRedefinitions(
					def.Name,
					Location{file.Name, def.Name},
					Location{prev.file, def.Name},
				)
			}
			info := &redefineInfo{def: def, file: file.Name}
			table.redefines[def.Name] = info
			table.redefineOrder = append(table.redefineOrder, info)
		}
	}
	return table, nil
}

func (c *compiler) resolveDefines() {
	table, err := c.indexDefines()
	if err != nil {
		c.err(err)
		return
	}

	for _, info := range table.defineOrder {
		redefine, ok := table.redefines[info.def.Name]
		if !ok || redefine.matched {
			continue
		}
		redefine.matched = true
		info.def.Redefinition = redefine.def
		c.log.WithFields(logrus.Fields{
			"pass":  "defines",
			"file":  info.file,
			"decl":  info.def.Name,
			"value": redefine.def.Value.String(),
		}).Debug("applied redefine")
	}

	for _, file := range c.files {
		for ref, fieldType := range fieldTypes(&file.Definitions, true) {
			if err := resolveArraySize(table, file.Name, ref, fieldType); err != nil {
				c.err(err)
				return
			}
		}
	}

	for _, info := range table.redefineOrder {
		if !info.matched {
			c.warn(warnOrphanRedefine(info.def.Name, Location{info.file, info.def.Name}))
		}
	}
}

func resolveArraySize(
	table *defineTable,
	file string,
	ref fieldRef,
	fieldType *schema.FieldType,
) error {
	if fieldType.Array == nil {
		return nil
	}
	count := &fieldType.Array.Count
	name := count.DefineName()
	if name == "" {
		return nil
	}
	loc := Location{file, ref.decl}
	info, ok := table.defines[name]
	if !ok {
		return errArraySizeDefineNotFound(name, ref.identifier, loc)
	}
	value := info.def.EffectiveValue()
	if _, ok := value.Uint64(); !ok {
		return errArraySizeNotInteger(name, value, ref.identifier, loc)
	}
	count.Resolve(value)
	return nil
}
