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

package manager

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/models/precision"
	"github.com/optakt/coin-dispatch/network"
	"github.com/optakt/coin-dispatch/service/resolver"
)

// Manager is the generic coin handler. Its network-specific behaviour comes
// entirely from the network profile it is given. It holds no mutable state, so
// it can be used concurrently as long as its chain client can.
type Manager struct {
	log      zerolog.Logger
	cfg      Config
	coin     coin.Config
	profile  network.Profile
	client   chain.Client
	resolve  *resolver.Resolver
	token    chain.Token
	decimals uint
}

// New creates a manager for the given coin on the given network.
func New(log zerolog.Logger, cfg coin.Config, profile network.Profile, client chain.Client, resolve *resolver.Resolver, options ...Option) *Manager {

	mcfg := DefaultConfig
	for _, option := range options {
		option(&mcfg)
	}

	m := Manager{
		log:      log.With().Str("component", "manager").Str("network", profile.Name).Str("symbol", cfg.Symbol.String()).Logger(),
		cfg:      mcfg,
		coin:     cfg,
		profile:  profile,
		client:   client,
		resolve:  resolve,
		token:    profile.Token(cfg),
		decimals: profile.Decimals(cfg),
	}

	return &m
}

// Symbol returns the symbol handled by the manager.
func (m *Manager) Symbol() coin.Symbol {
	return m.coin.Symbol
}

// DepositTarget returns the operating account, to which deposits should be
// sent. Generating a memo to correlate the deposit is up to the caller.
func (m *Manager) DepositTarget() coin.Deposit {
	return coin.Deposit{
		Kind:    coin.DepositAccount,
		Account: m.coin.OperatingAccount,
	}
}

func (m *Manager) node() string {
	node := m.profile.Node(m.coin)
	if node != "" {
		return node
	}
	return m.client.Node()
}

// amount converts a quantity reported by the chain into an amount at the
// precision of the coin, rounding down.
func (m *Manager) amount(quantity chain.Quantity) (decimal.Decimal, error) {
	raw, err := precision.FromMinorUnits(quantity.Units, quantity.Precision)
	if err != nil {
		return decimal.Zero, err
	}
	return precision.Normalize(raw, m.decimals)
}
