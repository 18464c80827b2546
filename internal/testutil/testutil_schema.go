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
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/NicolasDandanell/rune-parser/encoding/declfile"
	"github.com/NicolasDandanell/rune-parser/schema"
)

// TestdataFS returns the testdata directory of the package under test.
func TestdataFS() (fs.FS, error) {
	if _, err := os.Stat("testdata"); err != nil {
		return nil, err
	}
	return os.DirFS("testdata"), nil
}

// A Diagnostic is an entry of a diagnostics registry: the code and message
// of one kind of schema error or warning.
type Diagnostic struct {
	Key     string
	Code    uint32
	Message string
	Pattern *regexp.Regexp
}

type SchemaError = Diagnostic

type SchemaWarning = Diagnostic

func LoadSchemaErrors(testdata fs.FS) (map[string]*SchemaError, error) {
	return loadDiagnostics(testdata, "diagnostics/schema_errors.json", "schema error")
}

func LoadSchemaWarnings(testdata fs.FS) (map[string]*SchemaWarning, error) {
	return loadDiagnostics(testdata, "diagnostics/schema_warnings.json", "schema warning")
}

func loadDiagnostics(testdata fs.FS, path, what string) (map[string]*Diagnostic, error) {
	type raw struct {
		Code    uint32 `json:"code"`
		Message string `json:"message"`
		Pattern string `json:"message_pattern"`
	}

	jsonData, err := fs.ReadFile(testdata, path)
	if err != nil {
		return nil, err
	}

	var rawDiagnostics map[string]raw
	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	decoder.UseNumber()
	if err := decoder.Decode(&rawDiagnostics); err != nil {
		return nil, err
	}

	out := make(map[string]*Diagnostic, len(rawDiagnostics))
	codes := make(map[uint32]struct{}, len(rawDiagnostics))
	for key, raw := range rawDiagnostics {
		if key[0] == '_' {
			if raw.Code != 0 {
				if _, conflict := codes[raw.Code]; conflict {
					return nil, fmt.Errorf("duplicate %s code %d", what, raw.Code)
				}
				codes[raw.Code] = struct{}{}
			}
			continue
		}

		if raw.Code == 0 {
			return nil, fmt.Errorf("%s %q has no code", what, key)
		}
		if _, conflict := codes[raw.Code]; conflict {
			return nil, fmt.Errorf("duplicate %s code %d", what, raw.Code)
		}
		codes[raw.Code] = struct{}{}

		var pattern *regexp.Regexp
		if raw.Pattern != "" {
			pattern, err = regexp.Compile(raw.Pattern)
			if err != nil {
				return nil, err
			}
		}
		out[key] = &Diagnostic{
			Key:     key,
			Code:    raw.Code,
			Message: raw.Message,
			Pattern: pattern,
		}
	}

	return out, nil
}

// A Location names the file and declaration a diagnostic is reported
// against.
type Location struct {
	File string `json:"file"`
	Decl string `json:"decl"`
}

type ExpectedError struct {
	SchemaError
	Location Location
}

type ExpectedWarning struct {
	SchemaWarning
	Location Location
}

func LoadExpectedErrors(
	t *testing.T,
	schemaErrors map[string]*SchemaError,
	testdata fs.FS,
	jsonPath string,
) []*ExpectedError {
	t.Helper()

	type expectedErrors struct {
		Errors []struct {
			Error    string   `json:"error"`
			Location Location `json:"location"`
		} `json:"errors"`
	}

	var raw expectedErrors
	readJSON(t, testdata, jsonPath, &raw)

	var out []*ExpectedError
	for _, raw := range raw.Errors {
		if err, ok := schemaErrors[raw.Error]; !ok {
			t.Fatalf("unknown schema error name %q", raw.Error)
		} else {
			out = append(out, &ExpectedError{
				SchemaError: *err,
				Location:    raw.Location,
			})
		}
	}
	return out
}

func LoadExpectedWarnings(
	t *testing.T,
	schemaWarnings map[string]*SchemaWarning,
	testdata fs.FS,
	jsonPath string,
) []*ExpectedWarning {
	t.Helper()

	type expectedWarnings struct {
		Warnings []struct {
			Warning  string   `json:"warning"`
			Location Location `json:"location"`
		} `json:"warnings"`
	}

	var raw expectedWarnings
	readJSON(t, testdata, jsonPath, &raw)

	var out []*ExpectedWarning
	for _, raw := range raw.Warnings {
		if warn, ok := schemaWarnings[raw.Warning]; !ok {
			t.Fatalf("unknown schema warning name %q", raw.Warning)
		} else {
			out = append(out, &ExpectedWarning{
				SchemaWarning: *warn,
				Location:      raw.Location,
			})
		}
	}
	return out
}

// LoadSchemaFiles decodes every declaration file in dir, in name order.
// File names are relative to dir.
func LoadSchemaFiles(t *testing.T, testdata fs.FS, dir string) []*schema.File {
	t.Helper()

	caseFS, err := fs.Sub(testdata, dir)
	AssertNoError(t, err)
	entries, err := fs.ReadDir(caseFS, ".")
	AssertNoError(t, err)

	var files []*schema.File
	for _, entry := range entries {
		if entry.IsDir() || declfile.FormatOf(entry.Name()) == declfile.FormatUnknown {
			continue
		}
		if entry.Name() == "options.json" || strings.HasPrefix(entry.Name(), "expect_") {
			continue
		}
		file, err := declfile.DecodeFS(caseFS, entry.Name())
		AssertNoError(t, err)
		files = append(files, file)
	}
	return files
}

func readJSON(t *testing.T, testdata fs.FS, path string, v any) {
	t.Helper()

	jsonData, err := fs.ReadFile(testdata, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(jsonData, v); err != nil {
		t.Fatal(err)
	}
}
