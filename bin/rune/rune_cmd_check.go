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
	"fmt"

	"github.com/spf13/pflag"
)

type cmdCheck struct {
	strict bool
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check [--strict] PATH...",
		summary: "Resolve and validate declaration files",
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	flags.BoolVar(&cmd.strict, "strict", false, "fail if any warnings are reported")
}

func (cmd *cmdCheck) run(ctx context.Context, env *runEnv, argv []string) int {
	result := compileInputs(env, argv)
	if result == nil {
		return 1
	}
	fmt.Fprintf(
		env.stdout,
		"%d file(s) ok, %d warning(s)\n",
		len(result.Files),
		len(result.Warnings),
	)
	if cmd.strict && len(result.Warnings) > 0 {
		return 1
	}
	return 0
}
