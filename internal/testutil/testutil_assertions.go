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

package testutil

import (
	"slices"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Assert* helpers stop the test on failure, Expect* helpers record the
// failure and continue.

func AssertError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
}

func AssertNoError(t *testing.T, err error) {
	t.Helper()
	require.NoError(t, err)
}

func ExpectNoError(t *testing.T, err error) {
	t.Helper()
	assert.NoError(t, err)
}

// ExpectErrorIs checks that err matches target according to errors.Is,
// which for compiler errors means matching their schema.ErrorKind.
func ExpectErrorIs(t *testing.T, target, err error) {
	t.Helper()
	assert.ErrorIs(t, err, target)
}

func ExpectTrue(t *testing.T, cond bool) {
	t.Helper()
	assert.True(t, cond)
}

func ExpectFalse(t *testing.T, cond bool) {
	t.Helper()
	assert.False(t, cond)
}

func ExpectEq[T comparable](t *testing.T, want, got T) {
	t.Helper()
	assert.Equal(t, want, got)
}

// ExpectSliceEq treats nil and empty slices as equal.
func ExpectSliceEq[E comparable, S ~[]E](t *testing.T, want, got S) {
	t.Helper()
	if !slices.Equal(want, got) {
		assert.Fail(t, "slices differ", "want: %#v\ngot:  %#v", want, got)
	}
}

// A Reported is a diagnostic produced by the compiler: a *compiler.Error
// or a *compiler.Warning.
type Reported interface {
	Code() uint32
	Message() string
}

// ExpectDiagnostic checks that got has the code of want, and a message
// matching its pattern (if any) or equal to its message (if any).
func ExpectDiagnostic(t *testing.T, want *Diagnostic, got Reported) {
	t.Helper()
	if !assert.Equal(t, want.Code, got.Code(), "diagnostic %q", want.Key) {
		return
	}
	switch {
	case want.Pattern != nil:
		assert.Regexp(t, want.Pattern, got.Message(), "diagnostic %q", want.Key)
	case want.Message != "":
		assert.Equal(t, want.Message, got.Message(), "diagnostic %q", want.Key)
	}
}

// ExpectNoDiff reports a unified diff of two texts, typically a golden
// file and a rendered declaration tree.
func ExpectNoDiff(t *testing.T, want, got string) {
	t.Helper()
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	if diff != "" {
		t.Errorf("text differs:\n%s", diff)
	}
}
