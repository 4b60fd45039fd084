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

package network

import (
	"fmt"
	"strings"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/models/precision"
)

// Setting keys shared by the network profiles.
const (
	SettingHost       = "host"
	SettingPort       = "port"
	SettingSSL        = "ssl"
	SettingPrecision  = "precision"
	SettingLoadMethod = "load_method"
	SettingHistoryURL = "history_url"
)

// Endpoint is the default node endpoint of a network.
type Endpoint struct {
	Scheme string
	Host   string
	Port   uint
}

// Profile is the capability record of a network. A single generic handler is
// parameterized by a profile, instead of having one handler type per network.
type Profile struct {
	Name            string
	NativeSymbol    coin.Symbol
	Endpoint        Endpoint
	Precision       uint
	ContractKey     string
	DefaultContract string
	Memo            bool
	MemoHistory     bool
	Issue           bool
	HistorySources  []string
	AddressCheck    func(address string) bool
}

// Lookup returns the profile registered under the given network name.
func Lookup(name string) (Profile, bool) {
	profile, ok := Profiles[strings.ToLower(name)]
	return profile, ok
}

// Node returns the node endpoint for the coin. An explicit endpoint in the
// configuration wins over the endpoint settings, which win over the network
// defaults.
func (p Profile) Node(cfg coin.Config) string {
	if cfg.Endpoint != "" {
		return cfg.Endpoint
	}

	host := cfg.Settings.String(SettingHost, p.Endpoint.Host)
	port := cfg.Settings.Uint(SettingPort, p.Endpoint.Port)
	scheme := p.Endpoint.Scheme
	_, override := cfg.Settings[SettingSSL]
	if override && (scheme == "http" || scheme == "https") {
		scheme = "http"
		if cfg.Settings.Bool(SettingSSL, true) {
			scheme = "https"
		}
	}

	if host == "" {
		return ""
	}
	if scheme == "" {
		return fmt.Sprintf("%s:%d", host, port)
	}
	return fmt.Sprintf("%s://%s:%d", scheme, host, port)
}

// Token returns the on-chain token of the coin, including the contract hosting
// it on networks that use contracts.
func (p Profile) Token(cfg coin.Config) chain.Token {
	token := chain.Token{
		Symbol: cfg.Symbol.String(),
	}
	if p.ContractKey != "" {
		token.Contract = cfg.Settings.String(p.ContractKey, p.DefaultContract)
	}
	return token
}

// Decimals returns the precision of the coin. The configured precision wins
// over the precision setting, which wins over the network default.
func (p Profile) Decimals(cfg coin.Config) uint {
	if cfg.Precision != nil {
		return *cfg.Precision
	}
	return cfg.Settings.Uint(SettingPrecision, p.Precision)
}

// HistorySource returns the selected history source of the coin.
func (p Profile) HistorySource(cfg coin.Config) string {
	if len(p.HistorySources) == 0 {
		return ""
	}
	return cfg.Settings.String(SettingLoadMethod, p.HistorySources[0])
}

// ValidAddress applies the local syntax check of the network, if any.
func (p Profile) ValidAddress(address string) bool {
	if address == "" {
		return false
	}
	if p.AddressCheck == nil {
		return true
	}
	return p.AddressCheck(address)
}

// Validate checks the network-specific parts of the coin configuration.
func (p Profile) Validate(cfg coin.Config) error {

	err := precision.Check(int(p.Decimals(cfg)))
	if err != nil {
		return fmt.Errorf("invalid precision for coin (symbol: %s): %w", cfg.Symbol, err)
	}

	source := cfg.Settings.String(SettingLoadMethod, "")
	if source == "" {
		return nil
	}
	for _, allowed := range p.HistorySources {
		if source == allowed {
			return nil
		}
	}

	return fmt.Errorf("unsupported history source for coin (symbol: %s, load_method: %s, supported: %s)", cfg.Symbol, source, strings.Join(p.HistorySources, ","))
}
