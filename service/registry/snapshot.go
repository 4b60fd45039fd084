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

package registry

import (
	"sort"
	"strings"
	"time"

	"github.com/optakt/coin-dispatch/failure"
	"github.com/optakt/coin-dispatch/models/coin"
)

// Snapshot is an immutable view of the handlers provided by the registry at
// one point in time. A refresh creates a new snapshot instead of modifying the
// existing one.
type Snapshot struct {
	created  time.Time
	handlers map[coin.Symbol]coin.Handler
	coins    map[coin.Symbol]coin.Config
	provides map[string][]coin.Symbol
}

func newSnapshot(created time.Time) *Snapshot {
	s := Snapshot{
		created:  created,
		handlers: make(map[coin.Symbol]coin.Handler),
		coins:    make(map[coin.Symbol]coin.Config),
		provides: make(map[string][]coin.Symbol),
	}
	return &s
}

func (s *Snapshot) add(cfg coin.Config, handler coin.Handler) {
	s.handlers[cfg.Symbol] = handler
	s.coins[cfg.Symbol] = cfg
	s.provides[cfg.Network] = append(s.provides[cfg.Network], cfg.Symbol)
}

func (s *Snapshot) seal() {
	for _, symbols := range s.provides {
		sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	}
}

// Resolve returns the handler for the given symbol. It fails with
// UnknownSymbol if no handler provides it.
func (s *Snapshot) Resolve(symbol coin.Symbol) (coin.Handler, error) {
	normalized := coin.Symbol(strings.ToUpper(strings.TrimSpace(string(symbol))))
	handler, ok := s.handlers[normalized]
	if !ok {
		return nil, failure.UnknownSymbol{
			Description: failure.NewDescription("no handler provides symbol",
				failure.WithInt("provided", len(s.handlers)),
			),
			Symbol: string(symbol),
		}
	}
	return handler, nil
}

// Config returns the configuration the handler of the symbol was built with.
func (s *Snapshot) Config(symbol coin.Symbol) (coin.Config, bool) {
	cfg, ok := s.coins[symbol]
	return cfg, ok
}

// Symbols returns all provided symbols in alphabetical order.
func (s *Snapshot) Symbols() []coin.Symbol {
	symbols := make([]coin.Symbol, 0, len(s.handlers))
	for symbol := range s.handlers {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

// Handlers returns all provided handlers, ordered by symbol.
func (s *Snapshot) Handlers() []coin.Handler {
	symbols := s.Symbols()
	handlers := make([]coin.Handler, 0, len(symbols))
	for _, symbol := range symbols {
		handlers = append(handlers, s.handlers[symbol])
	}
	return handlers
}

// Networks returns the networks with at least one provided symbol.
func (s *Snapshot) Networks() []string {
	networks := make([]string, 0, len(s.provides))
	for name := range s.provides {
		networks = append(networks, name)
	}
	sort.Strings(networks)
	return networks
}

// Provides returns the symbols provided on the given network.
func (s *Snapshot) Provides(network string) []coin.Symbol {
	symbols := s.provides[strings.ToLower(network)]
	provided := make([]coin.Symbol, len(symbols))
	copy(provided, symbols)
	return provided
}

// Created returns when the snapshot was created.
func (s *Snapshot) Created() time.Time {
	return s.created
}

// Len returns the number of provided symbols.
func (s *Snapshot) Len() int {
	return len(s.handlers)
}
