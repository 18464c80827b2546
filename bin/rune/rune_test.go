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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointYAML = `
structs:
  - name: Point
    fields:
      - {name: x, type: i32, index: 0}
      - {name: y, type: i32, index: 1}
messages:
  - name: Shape
    fields:
      - {name: origin, type: Point, index: 0}
`

const pointExtensionYAML = `
extend:
  structs:
    - name: Point
      fields:
        - {name: z, type: i32, index: 2}
`

const cyclicYAML = `
structs:
  - name: A
    fields:
      - {name: b, type: B, index: 0}
  - name: B
    fields:
      - {name: a, type: A, index: 0}
`

type runOutput struct {
	code   int
	stdout string
	stderr string
}

// setup isolates a test from the user's home directory and environment,
// and writes files into a fresh schema directory.
func setup(t *testing.T, files map[string]string) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RUNE_APPEND_EXTENSIONS", "")
	t.Setenv("RUNE_AGGREGATE_ERRORS", "")
	homedir.DisableCache = true

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func runRune(argv ...string) runOutput {
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), argv, &stdout, &stderr)
	return runOutput{
		code:   code,
		stdout: stdout.String(),
		stderr: stderr.String(),
	}
}

func sizeRow(decl, kind, size, maxSize string) *regexp.Regexp {
	return regexp.MustCompile(
		decl + `\s*\|\s*` + kind + `\s*\|\s*` + size + `\s*\|\s*` + maxSize,
	)
}

func TestCheck(t *testing.T) {
	dir := setup(t, map[string]string{
		"a.yaml": pointYAML,
		"b.yaml": pointExtensionYAML,
	})

	out := runRune("check", dir)
	assert.Equal(t, 0, out.code, out.stderr)
	assert.Equal(t, "2 file(s) ok, 0 warning(s)\n", out.stdout)
}

func TestCheckError(t *testing.T) {
	dir := setup(t, map[string]string{
		"a.yaml": cyclicYAML,
	})

	out := runRune("check", filepath.Join(dir, "a.yaml"))
	assert.Equal(t, 1, out.code)
	assert.Empty(t, out.stdout)
	assert.Contains(t, out.stderr, "level=error")
	assert.Contains(t, out.stderr, "code=5")
	assert.Contains(t, out.stderr, "location=\"a:A\"")
}

func TestCheckStrict(t *testing.T) {
	dir := setup(t, map[string]string{
		"a.yaml": `
defines:
  - {name: N, value: "4"}
redefines:
  - {name: M, value: "5"}
`,
	})

	out := runRune("check", dir)
	assert.Equal(t, 0, out.code, out.stderr)
	assert.Equal(t, "1 file(s) ok, 1 warning(s)\n", out.stdout)
	assert.Contains(t, out.stderr, "level=warning")

	out = runRune("check", "--strict", dir)
	assert.Equal(t, 1, out.code)
}

func TestCheckMissingInput(t *testing.T) {
	dir := setup(t, nil)

	out := runRune("check", filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, 1, out.code)
	assert.Contains(t, out.stderr, "missing.yaml")

	out = runRune("check")
	assert.Equal(t, 1, out.code)
	assert.Contains(t, out.stderr, "no input files")
}

func TestCheckDuplicateFileNames(t *testing.T) {
	dir := setup(t, map[string]string{
		"one/x.yaml": pointYAML,
		"two/x.yaml": pointExtensionYAML,
	})

	out := runRune("check", filepath.Join(dir, "one"), filepath.Join(dir, "two"))
	assert.Equal(t, 1, out.code)
	assert.Empty(t, out.stdout)
	assert.Contains(t, out.stderr, `declaration file name \"x\"`)
	assert.Contains(t, out.stderr, filepath.Join(dir, "two", "x.yaml"))

	out = runRune("check", dir)
	assert.Equal(t, 0, out.code, out.stderr)
	assert.Equal(t, "2 file(s) ok, 0 warning(s)\n", out.stdout)
}

func TestSizes(t *testing.T) {
	dir := setup(t, map[string]string{
		"a.yaml": pointYAML,
		"b.yaml": pointExtensionYAML,
	})

	out := runRune("sizes", dir)
	require.Equal(t, 0, out.code, out.stderr)
	assert.Regexp(t, sizeRow("Point", "struct", "8", "8"), out.stdout)
	assert.Regexp(t, sizeRow("Shape", "message", "9", "13"), out.stdout)

	out = runRune("--append-extensions", "sizes", dir)
	require.Equal(t, 0, out.code, out.stderr)
	assert.Regexp(t, sizeRow("Point", "struct", "12", "12"), out.stdout)
	assert.Regexp(t, sizeRow("Shape", "message", "14", "17"), out.stdout)
}

func TestSizesUnknownMaximum(t *testing.T) {
	dir := setup(t, map[string]string{
		"a.yaml": `
messages:
  - name: Sparse
    fields:
      - {name: a, type: u8, index: 0}
      - {name: b, type: u8, index: 2}
`,
	})

	out := runRune("sizes", dir)
	require.Equal(t, 0, out.code, out.stderr)
	assert.Regexp(t, sizeRow("Sparse", "message", "4", "unknown"), out.stdout)
}

func TestSizesConfigFile(t *testing.T) {
	dir := setup(t, map[string]string{
		"schema/a.yaml": pointYAML,
		"schema/b.yaml": pointExtensionYAML,
		"rune.toml":     "append_extensions = true\n",
	})

	out := runRune(
		"--config", filepath.Join(dir, "rune.toml"),
		"sizes", filepath.Join(dir, "schema"),
	)
	require.Equal(t, 0, out.code, out.stderr)
	assert.Regexp(t, sizeRow("Point", "struct", "12", "12"), out.stdout)
}

func TestSizesDefaultConfigFile(t *testing.T) {
	dir := setup(t, map[string]string{
		"a.yaml": pointYAML,
		"b.yaml": pointExtensionYAML,
	})
	home := os.Getenv("HOME")
	require.NoError(t, os.WriteFile(
		filepath.Join(home, defaultConfigName),
		[]byte("append_extensions = true\n"),
		0o644,
	))

	out := runRune("sizes", dir)
	require.Equal(t, 0, out.code, out.stderr)
	assert.Regexp(t, sizeRow("Point", "struct", "12", "12"), out.stdout)
}

func TestSizesEnvironment(t *testing.T) {
	dir := setup(t, map[string]string{
		"a.yaml": pointYAML,
		"b.yaml": pointExtensionYAML,
	})
	t.Setenv("RUNE_APPEND_EXTENSIONS", "true")

	out := runRune("sizes", dir)
	require.Equal(t, 0, out.code, out.stderr)
	assert.Regexp(t, sizeRow("Point", "struct", "12", "12"), out.stdout)
}

func TestMissingConfigFile(t *testing.T) {
	dir := setup(t, map[string]string{
		"a.yaml": pointYAML,
	})

	out := runRune("--config", filepath.Join(dir, "missing.toml"), "check", dir)
	assert.Equal(t, 1, out.code)
	assert.Contains(t, out.stderr, "missing.toml")
}

func TestDump(t *testing.T) {
	dir := setup(t, map[string]string{
		"a.yaml": pointYAML,
	})
	expect := `file "a"
struct Point {
	x: i32 = 0
	y: i32 = 1
}
message Shape {
	origin: Point (struct) = 0
}
`

	out := runRune("dump", dir)
	require.Equal(t, 0, out.code, out.stderr)
	assert.Equal(t, expect, out.stdout)

	outPath := filepath.Join(t.TempDir(), "out.txt")
	out = runRune("dump", "-o", outPath, dir)
	require.Equal(t, 0, out.code, out.stderr)
	assert.Empty(t, out.stdout)
	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, expect, string(written))
}

func TestDebugLogging(t *testing.T) {
	dir := setup(t, map[string]string{
		"a.yaml": pointYAML,
	})

	out := runRune("check", dir)
	require.Equal(t, 0, out.code, out.stderr)
	assert.NotContains(t, out.stderr, "running compiler pass")

	out = runRune("--debug", "check", dir)
	require.Equal(t, 0, out.code, out.stderr)
	assert.Contains(t, out.stderr, "running compiler pass")
}

func TestNoCommand(t *testing.T) {
	setup(t, nil)

	out := runRune()
	assert.Equal(t, 1, out.code)
	assert.Contains(t, out.stderr, "Usage:")
}
