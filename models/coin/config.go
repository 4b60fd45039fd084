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

// DefaultPrecision is the number of decimal places used for a coin that does
// not configure one.
const DefaultPrecision = 4

// Config is the configuration of a single coin, as supplied by a coin source.
// It is read-only once handed to a handler.
type Config struct {
	Symbol           Symbol   `yaml:"symbol" json:"symbol" validate:"required"`
	Network          string   `yaml:"network" json:"network" validate:"required"`
	OperatingAccount string   `yaml:"operating_account" json:"operating_account"`
	Endpoint         string   `yaml:"endpoint" json:"endpoint"`
	Precision        *uint    `yaml:"precision" json:"precision,omitempty" validate:"omitempty,max=18"`
	Enabled          *bool    `yaml:"enabled" json:"enabled,omitempty"`
	Settings         Settings `yaml:"settings" json:"settings,omitempty"`
}

// Decimals returns the configured precision, or the default precision if
// none is configured.
func (c Config) Decimals() uint {
	if c.Precision == nil {
		return DefaultPrecision
	}
	return *c.Precision
}

// Active returns whether the coin is enabled. Coins are enabled unless
// explicitly disabled.
func (c Config) Active() bool {
	return c.Enabled == nil || *c.Enabled
}
