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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/NicolasDandanell/rune-parser/compiler"
	"github.com/NicolasDandanell/rune-parser/encoding/declfile"
	"github.com/NicolasDandanell/rune-parser/schema"
)

// loadInputs decodes the declaration files named by paths. A directory
// contributes every declaration file beneath it, named relative to the
// directory. Two inputs that decode to the same file name are rejected.
func loadInputs(paths []string) ([]*schema.File, error) {
	var files []*schema.File
	sources := make(map[string]string)
	add := func(file *schema.File, source string) error {
		if prev, ok := sources[file.Name]; ok {
			return errors.Errorf("declaration file name %q is used by both %s and %s", file.Name, prev, source)
		}
		sources[file.Name] = source
		files = append(files, file)
		return nil
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			file, err := declfile.DecodeFile(path)
			if err != nil {
				return nil, errors.Wrapf(err, "decode %s", path)
			}
			if err := add(file, path); err != nil {
				return nil, err
			}
			continue
		}

		dirFS := os.DirFS(path)
		err = fs.WalkDir(dirFS, ".", func(rel string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() || declfile.FormatOf(rel) == declfile.FormatUnknown {
				return nil
			}
			file, err := declfile.DecodeFS(dirFS, rel)
			if err != nil {
				return errors.Wrapf(err, "decode %s", rel)
			}
			return add(file, filepath.Join(path, filepath.FromSlash(rel)))
		})
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
	}
	if len(files) == 0 {
		return nil, errors.New("no declaration files found")
	}
	return files, nil
}

// compileInputs loads and compiles the inputs named by argv, logging every
// diagnostic. It returns nil if loading or compilation failed.
func compileInputs(env *runEnv, argv []string) *compiler.CompileResult {
	if len(argv) == 0 {
		env.log.Error("no input files")
		return nil
	}
	files, err := loadInputs(argv)
	if err != nil {
		env.log.Error(err)
		return nil
	}
	env.log.WithField("files", len(files)).Debug("loaded declaration files")

	result := compiler.Compile(files, env.config.compileOptions(env.log)...)
	for _, err := range result.Errors {
		env.log.WithFields(logrus.Fields{
			"code":     err.Code(),
			"location": err.Location().String(),
		}).Error(err.Message())
	}
	if len(result.Errors) > 0 {
		return nil
	}
	return &result
}
