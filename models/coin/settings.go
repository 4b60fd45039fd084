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

package coin

import (
	"strconv"
)

// Settings holds the network-specific custom settings of a coin, such as the
// issuing contract, the history source or the TLS flag of its node.
type Settings map[string]interface{}

// Merge returns a new set of settings made from the base settings, with every
// key of the override settings applied on top.
func Merge(base Settings, override Settings) Settings {
	merged := make(Settings, len(base)+len(override))
	for key, val := range base {
		merged[key] = val
	}
	for key, val := range override {
		merged[key] = val
	}
	return merged
}

// String returns the setting for the given key as a string, or the fallback if
// it is unset or empty.
func (s Settings) String(key string, fallback string) string {
	val, ok := s[key]
	if !ok || val == nil {
		return fallback
	}
	switch v := val.(type) {
	case string:
		if v == "" {
			return fallback
		}
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fallback
	}
}

// Bool returns the setting for the given key as a boolean, or the fallback if
// it is unset or can not be interpreted as a boolean.
func (s Settings) Bool(key string, fallback bool) bool {
	val, ok := s[key]
	if !ok || val == nil {
		return fallback
	}
	switch v := val.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return b
	default:
		return fallback
	}
}

// Uint returns the setting for the given key as an unsigned integer, or the
// fallback if it is unset, negative or not numeric.
func (s Settings) Uint(key string, fallback uint) uint {
	val, ok := s[key]
	if !ok || val == nil {
		return fallback
	}
	switch v := val.(type) {
	case int:
		if v < 0 {
			return fallback
		}
		return uint(v)
	case uint:
		return v
	case uint64:
		return uint(v)
	case int64:
		if v < 0 {
			return fallback
		}
		return uint(v)
	case float64:
		if v < 0 || v != float64(uint(v)) {
			return fallback
		}
		return uint(v)
	case string:
		u, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fallback
		}
		return uint(u)
	default:
		return fallback
	}
}
