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

// Package declfile decodes declaration trees from YAML, JSON, or TOML files.
//
// Literals may be written as strings ("0x1F", "-3", "'a'", "true") or as
// native scalars. Only string literals keep their numeral base: YAML and
// TOML decode 0x1F as the integer 31.
//
// Field types are written as text: a primitive ("u8"), a type name
// ("Point"), or an array ("[u8; 4]", "[Point; COUNT]").
package declfile

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/NicolasDandanell/rune-parser/schema"
)

type Format uint8

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatJSON
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	}
	return "unknown"
}

// FormatOf returns the format of a declaration file, by extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	}
	return FormatUnknown
}

// Decode decodes the declarations of one file. Unknown keys are errors.
func Decode(data []byte, format Format) (*schema.Definitions, error) {
	var raw rawFile
	switch format {
	case FormatYAML, FormatJSON:
		if err := yaml.UnmarshalStrict(data, &raw); err != nil {
			return nil, errors.Wrapf(err, "decode %s", format)
		}
	case FormatTOML:
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return nil, errors.Wrap(err, "decode toml")
		}
		jsonData, err := json.Marshal(tree.ToMap())
		if err != nil {
			return nil, errors.Wrap(err, "decode toml")
		}
		if err := yaml.UnmarshalStrict(jsonData, &raw); err != nil {
			return nil, errors.Wrap(err, "decode toml")
		}
	default:
		return nil, errors.Errorf("unsupported declaration format %s", format)
	}
	return raw.definitions()
}

// DecodeFile reads and decodes a declaration file. The file is named by its
// base name.
func DecodeFile(path string) (*schema.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read declaration file")
	}
	defs, err := Decode(data, FormatOf(path))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return &schema.File{
		Name:         strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		RelativePath: path,
		Definitions:  *defs,
	}, nil
}

// DecodeFS reads and decodes a declaration file from fsys. The file is named
// by its slash-separated path without the extension.
func DecodeFS(fsys fs.FS, path string) (*schema.File, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrap(err, "read declaration file")
	}
	defs, err := Decode(data, FormatOf(path))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return &schema.File{
		Name:         strings.TrimSuffix(path, filepath.Ext(path)),
		RelativePath: path,
		Definitions:  *defs,
	}, nil
}

func (raw *rawFile) definitions() (*schema.Definitions, error) {
	defs := &schema.Definitions{}
	for _, file := range raw.Includes {
		defs.Includes = append(defs.Includes, schema.IncludeDefinition{File: file})
	}
	for _, comment := range raw.Comments {
		defs.StandaloneComments = append(defs.StandaloneComments, schema.StandaloneComment{
			Comment: comment.Text,
			Index:   comment.Index,
		})
	}
	for _, rawDef := range raw.Defines {
		if rawDef.Name == "" {
			return nil, errors.New("define without a name")
		}
		if !rawDef.Value.IsSet() {
			return nil, errors.Errorf("define %q has no value", rawDef.Name)
		}
		defs.Defines = append(defs.Defines, &schema.DefineDefinition{
			Name:    rawDef.Name,
			Value:   rawDef.Value.NumericLiteral,
			Comment: rawDef.Comment,
		})
	}
	for _, rawDef := range raw.Redefines {
		if rawDef.Name == "" {
			return nil, errors.New("redefine without a name")
		}
		if !rawDef.Value.IsSet() {
			return nil, errors.Errorf("redefine %q has no value", rawDef.Name)
		}
		defs.Redefines = append(defs.Redefines, &schema.RedefineDefinition{
			Name:    rawDef.Name,
			Value:   rawDef.Value.NumericLiteral,
			Comment: rawDef.Comment,
		})
	}

	var err error
	if defs.Bitfields, err = decodeAll(raw.Bitfields, rawBitfield.decode); err != nil {
		return nil, err
	}
	if defs.Enums, err = decodeAll(raw.Enums, rawEnum.decode); err != nil {
		return nil, err
	}
	if defs.Structs, err = decodeAll(raw.Structs, rawAggregate.decodeStruct); err != nil {
		return nil, err
	}
	if defs.Messages, err = decodeAll(raw.Messages, rawAggregate.decodeMessage); err != nil {
		return nil, err
	}

	ext := &defs.Extensions
	if ext.Bitfields, err = decodeAll(raw.Extend.Bitfields, rawBitfield.decode); err != nil {
		return nil, errors.Wrap(err, "extension")
	}
	if ext.Enums, err = decodeAll(raw.Extend.Enums, rawEnum.decode); err != nil {
		return nil, errors.Wrap(err, "extension")
	}
	if ext.Structs, err = decodeAll(raw.Extend.Structs, rawAggregate.decodeStruct); err != nil {
		return nil, errors.Wrap(err, "extension")
	}
	if ext.Messages, err = decodeAll(raw.Extend.Messages, rawAggregate.decodeMessage); err != nil {
		return nil, errors.Wrap(err, "extension")
	}
	return defs, nil
}

func decodeAll[R any, D any](raws []R, decode func(R) (D, error)) ([]D, error) {
	var out []D
	for _, raw := range raws {
		def, err := decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, def)
	}
	return out, nil
}

func parseBacking(kind, name, text string) (schema.Primitive, error) {
	if text == "" {
		return schema.InvalidPrimitive, errors.Errorf("%s %q has no backing type", kind, name)
	}
	backing, ok := schema.ParsePrimitive(text)
	if !ok {
		return schema.InvalidPrimitive, errors.Errorf("%s %q has unknown backing type %q", kind, name, text)
	}
	return backing, nil
}

func (raw rawBitfield) decode() (*schema.BitfieldDefinition, error) {
	if raw.Name == "" {
		return nil, errors.New("bitfield without a name")
	}
	backing, err := parseBacking("bitfield", raw.Name, raw.Backing)
	if err != nil {
		return nil, err
	}
	def := &schema.BitfieldDefinition{
		Name:          raw.Name,
		Backing:       backing,
		ReservedSlots: raw.Reserved,
		Comment:       raw.Comment,
	}
	for _, member := range raw.Members {
		size, err := schema.ParseBitSize(member.Size)
		if err != nil {
			return nil, errors.Wrapf(err, "bitfield %q member %q", raw.Name, member.Name)
		}
		def.Members = append(def.Members, schema.BitfieldMember{
			Identifier: member.Name,
			Size:       size,
			Slot:       member.Slot,
			Comment:    member.Comment,
		})
	}
	return def, nil
}

func (raw rawEnum) decode() (*schema.EnumDefinition, error) {
	if raw.Name == "" {
		return nil, errors.New("enum without a name")
	}
	backing, err := parseBacking("enum", raw.Name, raw.Backing)
	if err != nil {
		return nil, err
	}
	def := &schema.EnumDefinition{
		Name:    raw.Name,
		Backing: backing,
		Comment: raw.Comment,
	}
	for _, value := range raw.Reserved {
		def.Reserved = append(def.Reserved, value.NumericLiteral)
	}
	for _, member := range raw.Members {
		if !member.Value.IsSet() {
			return nil, errors.Errorf("enum %q member %q has no value", raw.Name, member.Name)
		}
		def.Members = append(def.Members, schema.EnumMember{
			Identifier: member.Name,
			Value:      member.Value.NumericLiteral,
			Comment:    member.Comment,
		})
	}
	return def, nil
}

func (raw rawAggregate) reservedIndexes() []schema.FieldIndex {
	var out []schema.FieldIndex
	for _, index := range raw.Reserved {
		out = append(out, index.FieldIndex)
	}
	return out
}

func (raw rawAggregate) fieldType(kind string, field rawField) (schema.FieldType, error) {
	if !field.Index.set {
		return schema.FieldType{}, errors.Errorf("%s %q field %q has no index", kind, raw.Name, field.Name)
	}
	fieldType, err := schema.ParseFieldType(field.Type)
	if err != nil {
		return schema.FieldType{}, errors.Wrapf(err, "%s %q field %q", kind, raw.Name, field.Name)
	}
	return fieldType, nil
}

func (raw rawAggregate) decodeStruct() (*schema.StructDefinition, error) {
	if raw.Name == "" {
		return nil, errors.New("struct without a name")
	}
	def := &schema.StructDefinition{
		Name:            raw.Name,
		ReservedIndexes: raw.reservedIndexes(),
		Comment:         raw.Comment,
	}
	for _, field := range raw.Fields {
		fieldType, err := raw.fieldType("struct", field)
		if err != nil {
			return nil, err
		}
		def.Members = append(def.Members, schema.StructMember{
			Identifier: field.Name,
			Type:       fieldType,
			Index:      field.Index.FieldIndex,
			Comment:    field.Comment,
		})
	}
	return def, nil
}

func (raw rawAggregate) decodeMessage() (*schema.MessageDefinition, error) {
	if raw.Name == "" {
		return nil, errors.New("message without a name")
	}
	def := &schema.MessageDefinition{
		Name:            raw.Name,
		ReservedIndexes: raw.reservedIndexes(),
		Comment:         raw.Comment,
	}
	for _, field := range raw.Fields {
		fieldType, err := raw.fieldType("message", field)
		if err != nil {
			return nil, err
		}
		def.Fields = append(def.Fields, schema.MessageField{
			Identifier: field.Name,
			Type:       fieldType,
			Index:      field.Index.FieldIndex,
			Comment:    field.Comment,
		})
	}
	return def, nil
}
