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

package compiler_test

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"iter"
	"strings"
	"testing"

	"github.com/NicolasDandanell/rune-parser/compiler"
	"github.com/NicolasDandanell/rune-parser/encoding/runetext"
	"github.com/NicolasDandanell/rune-parser/internal/testutil"
)

var (
	testdata       fs.FS
	schemaErrors   map[string]*testutil.SchemaError
	schemaWarnings map[string]*testutil.SchemaWarning
)

func init() {
	var err error
	testdata, err = testutil.TestdataFS()
	if err != nil {
		panic(err)
	}
	schemaErrors, err = testutil.LoadSchemaErrors(testdata)
	if err != nil {
		panic(err)
	}
	schemaWarnings, err = testutil.LoadSchemaWarnings(testdata)
	if err != nil {
		panic(err)
	}
}

func schemaTest(t *testing.T, testName string) {
	t.Parallel()

	expectOK := fmt.Sprintf("schema/%s/expect_ok.txt", testName)
	expectErr := fmt.Sprintf("schema/%s/expect_err.json", testName)

	if _, err := fs.Stat(testdata, expectErr); err == nil {
		testExpectErr(t, testName, expectErr)
	} else {
		testExpectOK(t, testName, expectOK)
	}
}

func testExpectOK(t *testing.T, testName string, expectOK string) {
	expectText, err := fs.ReadFile(testdata, expectOK)
	testutil.AssertNoError(t, err)

	var expectWarnings []*testutil.ExpectedWarning
	expectWarnPath := fmt.Sprintf("schema/%s/expect_warn.json", testName)
	if _, err := fs.Stat(testdata, expectWarnPath); err == nil {
		expectWarnings = testutil.LoadExpectedWarnings(
			t, schemaWarnings, testdata, expectWarnPath,
		)
	}

	result := compileTestInputs(t, testName)
	if len(result.Errors) > 0 {
		for _, err := range result.Errors {
			testutil.ExpectNoError(t, err)
		}
		t.FailNow()
	}

	for warn, expectWarn := range zip(result.Warnings, expectWarnings) {
		if warn == nil {
			warnName := expectWarn.Message
			if warnName == "" {
				warnName = expectWarn.Key
			}
			t.Errorf(
				"expected schema warning %q (code %d)",
				warnName,
				expectWarn.Code,
			)
			continue
		}
		if expectWarn == nil {
			t.Errorf(
				"unexpected schema warning %q (code %d)",
				warn.Message(),
				warn.Code(),
			)
			continue
		}
		testutil.ExpectDiagnostic(t, &expectWarn.SchemaWarning, warn)
		testutil.ExpectEq(t, expectWarn.Location.File, warn.Location().File)
		testutil.ExpectEq(t, expectWarn.Location.Decl, warn.Location().Decl)
	}

	var gotText strings.Builder
	for _, file := range result.Files {
		testutil.AssertNoError(t, runetext.EncodeTo(file, &gotText))
	}
	testutil.ExpectNoDiff(t, string(expectText), gotText.String())
}

func testExpectErr(t *testing.T, testName string, expectErrPath string) {
	expectErrors := testutil.LoadExpectedErrors(
		t, schemaErrors, testdata, expectErrPath,
	)
	if len(expectErrors) == 0 {
		t.Fatalf("len(expectErrors) == 0")
	}

	result := compileTestInputs(t, testName)
	if len(result.Files) != 0 {
		t.Errorf("failed compilation returned %d files", len(result.Files))
	}
	for err, expectErr := range zip(result.Errors, expectErrors) {
		if err == nil {
			errName := expectErr.Message
			if errName == "" {
				errName = expectErr.Key
			}
			t.Errorf(
				"expected schema error %q (code %d)",
				errName,
				expectErr.Code,
			)
			continue
		}
		if expectErr == nil {
			t.Errorf(
				"unexpected schema error %q (code %d)",
				err.Message(),
				err.Code(),
			)
			continue
		}
		testutil.ExpectDiagnostic(t, &expectErr.SchemaError, err)
		testutil.ExpectEq(t, expectErr.Location.File, err.Location().File)
		testutil.ExpectEq(t, expectErr.Location.Decl, err.Location().Decl)
	}
}

func compileTestInputs(t *testing.T, testName string) compiler.CompileResult {
	dir := fmt.Sprintf("schema/%s", testName)
	files := testutil.LoadSchemaFiles(t, testdata, dir)

	var opts struct {
		AppendExtensions bool `json:"append_extensions"`
		AggregateErrors  bool `json:"aggregate_errors"`
	}
	if optsData, err := fs.ReadFile(testdata, dir+"/options.json"); err == nil {
		testutil.AssertNoError(t, json.Unmarshal(optsData, &opts))
	}

	return compiler.Compile(
		files,
		compiler.WithAppendExtensions(opts.AppendExtensions),
		compiler.WithAggregateErrors(opts.AggregateErrors),
	)
}

func TestSchema(t *testing.T) {
	t.Parallel()

	testDirs, err := fs.ReadDir(testdata, "schema")
	testutil.AssertNoError(t, err)

	for _, testDir := range testDirs {
		if testDir.IsDir() {
			testName := testDir.Name()
			t.Run(testName, func(t *testing.T) {
				schemaTest(t, testName)
			})
		}
	}
}

func zip[X any, Y any](xs []*X, ys []*Y) iter.Seq2[*X, *Y] {
	maxLen := max(len(xs), len(ys))
	return func(yield func(x *X, y *Y) bool) {
		for ii := 0; ii < maxLen; ii++ {
			var ok bool
			if ii >= len(xs) {
				ok = yield(nil, ys[ii])
			} else if ii >= len(ys) {
				ok = yield(xs[ii], nil)
			} else {
				ok = yield(xs[ii], ys[ii])
			}
			if !ok {
				return
			}
		}
	}
}
