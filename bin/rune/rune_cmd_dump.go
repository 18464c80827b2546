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
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/NicolasDandanell/rune-parser/encoding/runetext"
)

type cmdDump struct {
	outPath string
}

func (*cmdDump) help() *commandHelp {
	return &commandHelp{
		usage:   "dump [-o FILE] PATH...",
		summary: "Print the resolved declaration trees",
	}
}

func (cmd *cmdDump) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.outPath, "output", "o", "", "write to FILE instead of stdout")
}

func (cmd *cmdDump) run(ctx context.Context, env *runEnv, argv []string) int {
	result := compileInputs(env, argv)
	if result == nil {
		return 1
	}

	var output strings.Builder
	for _, file := range result.Files {
		if err := runetext.EncodeTo(file, &output); err != nil {
			env.log.Error(err)
			return 1
		}
	}

	if cmd.outPath == "" {
		if _, err := env.stdout.Write([]byte(output.String())); err != nil {
			env.log.Error(err)
			return 1
		}
		return 0
	}

	openFlags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	fp, err := os.OpenFile(cmd.outPath, openFlags, 0o666)
	if err != nil {
		env.log.Error(err)
		return 1
	}
	_, writeErr := fp.WriteString(output.String())
	closeErr := fp.Close()
	if writeErr != nil {
		env.log.Error(writeErr)
		return 1
	}
	if closeErr != nil {
		env.log.Error(closeErr)
		return 1
	}
	return 0
}
