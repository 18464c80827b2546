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

package declfile

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"

	"github.com/NicolasDandanell/rune-parser/schema"
)

type rawFile struct {
	Includes  []string       `json:"includes,omitempty"`
	Comments  []rawComment   `json:"comments,omitempty"`
	Defines   []rawDefine    `json:"defines,omitempty"`
	Redefines []rawDefine    `json:"redefines,omitempty"`
	Bitfields []rawBitfield  `json:"bitfields,omitempty"`
	Enums     []rawEnum      `json:"enums,omitempty"`
	Structs   []rawAggregate `json:"structs,omitempty"`
	Messages  []rawAggregate `json:"messages,omitempty"`
	Extend    rawExtensions  `json:"extend,omitempty"`
}

type rawExtensions struct {
	Bitfields []rawBitfield  `json:"bitfields,omitempty"`
	Enums     []rawEnum      `json:"enums,omitempty"`
	Structs   []rawAggregate `json:"structs,omitempty"`
	Messages  []rawAggregate `json:"messages,omitempty"`
}

type rawComment struct {
	Index uint64 `json:"index"`
	Text  string `json:"text"`
}

type rawDefine struct {
	Name    string     `json:"name"`
	Value   rawLiteral `json:"value"`
	Comment string     `json:"comment,omitempty"`
}

type rawBitfield struct {
	Name     string              `json:"name"`
	Backing  string              `json:"backing"`
	Reserved []uint64            `json:"reserved,omitempty"`
	Members  []rawBitfieldMember `json:"members,omitempty"`
	Comment  string              `json:"comment,omitempty"`
}

type rawBitfieldMember struct {
	Name    string `json:"name"`
	Size    string `json:"size"`
	Slot    uint64 `json:"slot"`
	Comment string `json:"comment,omitempty"`
}

type rawEnum struct {
	Name     string          `json:"name"`
	Backing  string          `json:"backing"`
	Reserved []rawLiteral    `json:"reserved,omitempty"`
	Members  []rawEnumMember `json:"members,omitempty"`
	Comment  string          `json:"comment,omitempty"`
}

type rawEnumMember struct {
	Name    string     `json:"name"`
	Value   rawLiteral `json:"value"`
	Comment string     `json:"comment,omitempty"`
}

// rawAggregate is a struct or a message.
type rawAggregate struct {
	Name     string     `json:"name"`
	Reserved []rawIndex `json:"reserved,omitempty"`
	Fields   []rawField `json:"fields,omitempty"`
	Comment  string     `json:"comment,omitempty"`
}

type rawField struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Index   rawIndex `json:"index"`
	Comment string   `json:"comment,omitempty"`
}

// A rawLiteral accepts a literal written as text, a number, or a boolean.
type rawLiteral struct {
	schema.NumericLiteral
}

func (lit *rawLiteral) UnmarshalJSON(data []byte) error {
	text, err := scalarText(data)
	if err != nil {
		return err
	}
	value, err := schema.ParseNumericLiteral(text)
	if err != nil {
		return err
	}
	lit.NumericLiteral = value
	return nil
}

// A rawIndex accepts a field index written as a number or as "verifier".
type rawIndex struct {
	schema.FieldIndex
	set bool
}

func (idx *rawIndex) UnmarshalJSON(data []byte) error {
	text, err := scalarText(data)
	if err != nil {
		return err
	}
	value, err := schema.ParseFieldIndex(text)
	if err != nil {
		return err
	}
	idx.FieldIndex = value
	idx.set = true
	return nil
}

func scalarText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", errors.New("missing value")
	}
	switch data[0] {
	case '"':
		text, err := strconv.Unquote(string(data))
		if err != nil {
			return "", errors.Wrap(err, "invalid string")
		}
		return text, nil
	case '{', '[':
		return "", errors.Errorf("expected a scalar, got %s", data)
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err == nil {
		return number.String(), nil
	}
	return string(data), nil
}
