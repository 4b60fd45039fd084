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

package sandbox

import (
	"fmt"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/network"
)

// Dialer hands out the sandbox ledger as the chain client of every coin of
// the sandbox network. Other networks have no client binding.
type Dialer struct {
	ledger *Ledger
}

// NewDialer creates a dialer for the given ledger.
func NewDialer(ledger *Ledger) *Dialer {
	d := Dialer{
		ledger: ledger,
	}
	return &d
}

// Dial implements the registry dialer.
func (d *Dialer) Dial(profile network.Profile, cfg coin.Config) (chain.Client, error) {
	if profile.Name != network.Sandbox {
		return nil, fmt.Errorf("no client binding for network (network: %s, symbol: %s): %w", profile.Name, cfg.Symbol, chain.ErrNotSupported)
	}
	if d.ledger == nil {
		return nil, fmt.Errorf("no sandbox ledger configured (symbol: %s)", cfg.Symbol)
	}
	return d.ledger, nil
}
