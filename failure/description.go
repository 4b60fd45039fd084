// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package failure

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Description is the human-readable part of a failure: a short text, followed
// by the contextual fields in the order they were given.
type Description struct {
	Text   string
	Fields Fields
}

// NewDescription creates a description with the given text and fields.
func NewDescription(text string, fields ...FieldFunc) Description {
	d := Description{
		Text:   text,
		Fields: make(Fields, 0, len(fields)),
	}
	for _, field := range fields {
		field(&d.Fields)
	}
	return d
}

func (d Description) String() string {
	if len(d.Fields) == 0 {
		return d.Text
	}
	return fmt.Sprintf("%s (%s)", d.Text, d.Fields)
}

// Field is a single key/value pair of context. Values are kept in a form that
// can be rendered as text and serialized as JSON.
type Field struct {
	Key string
	Val interface{}
}

// Fields is an ordered list of context fields.
type Fields []Field

// Get returns the value of the first field with the given key.
func (f Fields) Get(key string) (interface{}, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Val, true
		}
	}
	return nil, false
}

// Map returns the fields indexed by key. Later fields win over earlier fields
// with the same key.
func (f Fields) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(f))
	for _, field := range f {
		m[field.Key] = field.Val
	}
	return m
}

func (f Fields) String() string {
	parts := make([]string, 0, len(f))
	for _, field := range f {
		parts = append(parts, fmt.Sprintf("%s: %v", field.Key, field.Val))
	}
	return strings.Join(parts, ", ")
}

// FieldFunc appends a field to a description.
type FieldFunc func(*Fields)

func with(key string, val interface{}) FieldFunc {
	return func(f *Fields) {
		*f = append(*f, Field{Key: key, Val: val})
	}
}

// WithErr adds the message of the error under the "error" key.
func WithErr(err error) FieldFunc {
	return with("error", err.Error())
}

func WithInt(key string, val int) FieldFunc {
	return with(key, val)
}

func WithUint(key string, val uint) FieldFunc {
	return with(key, val)
}

// WithDecimal adds an amount. It is stored as its exact decimal text, so that
// no precision is lost when serialized.
func WithDecimal(key string, val decimal.Decimal) FieldFunc {
	return with(key, val.String())
}

func WithString(key string, val string) FieldFunc {
	return with(key, val)
}

func WithStrings(key string, vals ...string) FieldFunc {
	return with(key, vals)
}
