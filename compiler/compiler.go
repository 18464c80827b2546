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

// Package compiler resolves and validates the declaration trees of a set of
// schema files.
//
// Compilation runs four passes in order: define resolution, extension
// merging, type linking, and validation. Each pass completes for every file
// before the next one starts.
package compiler

import (
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/NicolasDandanell/rune-parser/schema"
)

type CompileOption interface {
	apply(*CompileOptions)
}

type compileOption func(*CompileOptions)

func (f compileOption) apply(opts *CompileOptions) { f(opts) }

type CompileOptions struct {
	appendExtensions bool
	aggregateErrors  bool
	log              logrus.FieldLogger
}

// WithAppendExtensions controls whether merged extensions are appended to
// their original declarations. When disabled, extensions are checked for
// consistency and then dropped.
func WithAppendExtensions(appendExtensions bool) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.appendExtensions = appendExtensions
	})
}

// WithAggregateErrors makes validation report every violation it finds
// instead of stopping at the first one. Errors from the earlier passes still
// stop compilation immediately.
func WithAggregateErrors(aggregateErrors bool) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.aggregateErrors = aggregateErrors
	})
}

func WithLogger(log logrus.FieldLogger) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.log = log
	})
}

type CompileResult struct {
	// Files are resolved copies of the compiled files, in input order.
	// Nil if compilation failed.
	Files []*schema.File

	Errors   []*Error
	Warnings []*Warning
}

// Err returns nil if compilation succeeded. Otherwise it returns the single
// error, or a *multierror.Error holding all of them.
func (r *CompileResult) Err() error {
	switch len(r.Errors) {
	case 0:
		return nil
	case 1:
		return r.Errors[0]
	}
	var merr *multierror.Error
	for _, err := range r.Errors {
		merr = multierror.Append(merr, err)
	}
	return merr
}

// Compile resolves copies of files. The input trees are not modified.
func Compile(files []*schema.File, opts ...CompileOption) CompileResult {
	return NewCompileOptions(opts...).Compile(files)
}

func NewCompileOptions(opts ...CompileOption) *CompileOptions {
	compileOptions := &CompileOptions{}
	for _, opt := range opts {
		opt.apply(compileOptions)
	}
	if compileOptions.log == nil {
		log := logrus.New()
		log.SetOutput(io.Discard)
		compileOptions.log = log
	}
	return compileOptions
}

func (opts *CompileOptions) Compile(files []*schema.File) CompileResult {
	copies := make([]*schema.File, len(files))
	for ii, file := range files {
		copies[ii] = file.Clone()
	}
	c := newCompiler(opts, copies)
	c.compileFiles()
	if len(c.errors) > 0 {
		return CompileResult{
			Errors:   c.errors,
			Warnings: c.warnings,
		}
	}
	return CompileResult{
		Files:    c.files,
		Warnings: c.warnings,
	}
}

// ResolveDefines runs only the define resolution pass, modifying files in
// place.
func ResolveDefines(files []*schema.File) ([]*Warning, error) {
	c := newCompiler(NewCompileOptions(), files)
	c.resolveDefines()
	return c.warnings, c.firstError()
}

// MergeExtensions runs only the extension merging pass, modifying files in
// place.
func MergeExtensions(files []*schema.File, appendExtensions bool) ([]*Warning, error) {
	c := newCompiler(NewCompileOptions(WithAppendExtensions(appendExtensions)), files)
	c.mergeExtensions()
	return c.warnings, c.firstError()
}

// LinkTypes runs only the type linking pass, modifying files in place.
func LinkTypes(files []*schema.File) error {
	c := newCompiler(NewCompileOptions(), files)
	c.linkTypes()
	return c.firstError()
}

// Validate checks files without modifying them, stopping at the first
// violation.
func Validate(files []*schema.File) ([]*Warning, error) {
	c := newCompiler(NewCompileOptions(), files)
	c.validate()
	return c.warnings, c.firstError()
}

type compiler struct {
	opts     *CompileOptions
	files    []*schema.File
	log      logrus.FieldLogger
	errors   []*Error
	warnings []*Warning
}

func newCompiler(opts *CompileOptions, files []*schema.File) *compiler {
	return &compiler{
		opts:  opts,
		files: files,
		log:   opts.log,
	}
}

func (c *compiler) err(err error) {
	c.errors = append(c.errors, err.(*Error))
}

func (c *compiler) warn(warning *Warning) {
	c.log.WithFields(logrus.Fields{
		"file": warning.location.File,
		"decl": warning.location.Decl,
	}).Warn(warning.message)
	c.warnings = append(c.warnings, warning)
}

// report records a validation error, and reports whether validation should
// go on looking for more.
func (c *compiler) report(err error) bool {
	c.err(err)
	return c.opts.aggregateErrors
}

func (c *compiler) failed() bool {
	return len(c.errors) > 0
}

func (c *compiler) firstError() error {
	if len(c.errors) == 0 {
		return nil
	}
	return c.errors[0]
}

func (c *compiler) compileFiles() {
	passes := []struct {
		name string
		run  func()
	}{
		{"defines", c.resolveDefines},
		{"extensions", c.mergeExtensions},
		{"links", c.linkTypes},
		{"validate", c.validate},
	}
	for _, pass := range passes {
		c.log.WithFields(logrus.Fields{
			"pass":  pass.name,
			"files": len(c.files),
		}).Debug("running compiler pass")
		pass.run()
		if c.failed() {
			c.log.WithField("pass", pass.name).Debugf("compiler pass failed with %d error(s)", len(c.errors))
			return
		}
	}
}
