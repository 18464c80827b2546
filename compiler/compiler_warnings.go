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
)

type Warning struct {
	code     uint32
	message  string
	location Location
}

func (w *Warning) String() string {
	return fmt.Sprintf("W%d: %s", w.code, w.message)
}

func (w *Warning) Code() uint32 {
	return w.code
}

func (w *Warning) Message() string {
	return w.message
}

func (w *Warning) Location() Location {
	return w.location
}

func warnOrphanRedefine(name string, loc Location) *Warning {
	return &Warning{
		code:     6000,
		message:  fmt.Sprintf("Redefine '%s' has no matching define and is ignored", name),
		location: loc,
	}
}

func warnExtensionTargetNotFound(kind declKind, files []string, loc Location) *Warning {
	return &Warning{
		code: 6001,
		message: fmt.Sprintf(
			"Extension of %s '%s' (from %s) has no original declaration and is ignored",
			kind, loc.Decl, strings.Join(files, ", "),
		),
		location: loc,
	}
}

func warnEmptyDecl(kind declKind, loc Location) *Warning {
	return &Warning{
		code:     6002,
		message:  fmt.Sprintf("%s '%s' has no members", kind.title(), loc.Decl),
		location: loc,
	}
}
