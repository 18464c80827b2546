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

package main

import (
	"context"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/NicolasDandanell/rune-parser/encoding/runebin"
	"github.com/NicolasDandanell/rune-parser/schema"
)

type cmdSizes struct{}

func (*cmdSizes) help() *commandHelp {
	return &commandHelp{
		usage:   "sizes PATH...",
		summary: "Print the encoded sizes of structs and messages",
	}
}

func (*cmdSizes) flags(flags *pflag.FlagSet) {}

func (cmd *cmdSizes) run(ctx context.Context, env *runEnv, argv []string) int {
	result := compileInputs(env, argv)
	if result == nil {
		return 1
	}

	var rows [][]string
	for _, file := range result.Files {
		fileRows, err := sizeRows(file)
		if err != nil {
			env.log.WithField("file", file.Name).Error(err)
			return 1
		}
		rows = append(rows, fileRows...)
	}

	table := tablewriter.NewWriter(env.stdout)
	table.SetHeader([]string{"File", "Declaration", "Kind", "Size", "Max Size"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.AppendBulk(rows)
	table.Render()
	return 0
}

func sizeRows(file *schema.File) ([][]string, error) {
	var rows [][]string
	for _, def := range file.Definitions.Structs {
		size, err := runebin.StructSize(def)
		if err != nil {
			return nil, errors.Wrapf(err, "struct %s", def.Name)
		}
		text := strconv.FormatUint(size, 10)
		rows = append(rows, []string{file.Name, def.Name, "struct", text, text})
	}
	for _, def := range file.Definitions.Messages {
		size, err := runebin.MessageSize(def)
		if err != nil {
			return nil, errors.Wrapf(err, "message %s", def.Name)
		}
		maxSize, known, err := runebin.MessageMaxSize(def)
		if err != nil {
			return nil, errors.Wrapf(err, "message %s", def.Name)
		}
		maxText := "unknown"
		if known {
			maxText = strconv.FormatUint(maxSize, 10)
		}
		rows = append(rows, []string{
			file.Name,
			def.Name,
			"message",
			strconv.FormatUint(size, 10),
			maxText,
		})
	}
	return rows, nil
}
