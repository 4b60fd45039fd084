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

package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/optakt/coin-dispatch/models/coin"
)

// File is a coin source that reads the coin configurations from a YAML file.
// The file is read again on every call, so that a registry refresh picks up
// changes made to it.
type File struct {
	path string
}

type document struct {
	Coins []coin.Config `yaml:"coins"`
}

// NewFile creates a coin source for the YAML file at the given path.
func NewFile(path string) *File {
	f := File{
		path: path,
	}
	return &f
}

// Coins implements the registry coin source.
func (f *File) Coins() ([]coin.Config, error) {

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("could not open coins file: %w", err)
	}
	defer file.Close()

	coins, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode coins file (path: %s): %w", f.path, err)
	}

	return coins, nil
}

// Decode reads a YAML document with a list of coins from the reader. Unknown
// fields are rejected, and symbols are normalized to uppercase.
func Decode(r io.Reader) ([]coin.Config, error) {

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	err := dec.Decode(&doc)
	if errors.Is(err, io.EOF) {
		return []coin.Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	for i, cfg := range doc.Coins {
		// Malformed symbols are kept as is, so that validation reports them.
		symbol, err := coin.ParseSymbol(string(cfg.Symbol))
		if err == nil {
			doc.Coins[i].Symbol = symbol
		}
	}

	return doc.Coins, nil
}
