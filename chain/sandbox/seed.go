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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/models/coin"
)

// Seed is the initial state of a sandbox ledger.
type Seed struct {
	Accounts []SeedAccount `yaml:"accounts"`
	Assets   []SeedAsset   `yaml:"assets"`
	Balances []SeedBalance `yaml:"balances"`
}

// SeedAccount is an account of the seed. Key sets whether the ledger holds its
// signing key.
type SeedAccount struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
	Key  bool   `yaml:"key"`
}

// SeedAsset is an asset of the seed.
type SeedAsset struct {
	Symbol    string `yaml:"symbol"`
	Contract  string `yaml:"contract"`
	Issuer    string `yaml:"issuer"`
	Precision *uint  `yaml:"precision"`
}

// SeedBalance is a balance of the seed, as a decimal amount.
type SeedBalance struct {
	Account  string `yaml:"account"`
	Symbol   string `yaml:"symbol"`
	Contract string `yaml:"contract"`
	Amount   string `yaml:"amount"`
}

// DecodeSeed reads a seed from a YAML document.
func DecodeSeed(r io.Reader) (Seed, error) {

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var seed Seed
	err := dec.Decode(&seed)
	if err != nil && !errors.Is(err, io.EOF) {
		return Seed{}, fmt.Errorf("could not decode seed: %w", err)
	}

	return seed, nil
}

// SeedFile applies the seed in the YAML file at the given path.
func (l *Ledger) SeedFile(path string) error {

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open seed file: %w", err)
	}
	defer file.Close()

	seed, err := DecodeSeed(file)
	if err != nil {
		return err
	}

	return l.Apply(seed)
}

// Apply creates the accounts, assets and balances of the seed, in that order.
// Entries that fail are skipped, and all of their errors are returned
// together.
func (l *Ledger) Apply(seed Seed) error {

	var merr *multierror.Error
	for _, entry := range seed.Accounts {
		err := l.CreateAccount(chain.Account{Name: entry.Name, ID: entry.ID}, entry.Key)
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	for _, entry := range seed.Assets {
		decimals := uint(coin.DefaultPrecision)
		if entry.Precision != nil {
			decimals = *entry.Precision
		}
		asset := chain.Asset{
			Token:     chain.Token{Symbol: entry.Symbol, Contract: entry.Contract},
			Issuer:    entry.Issuer,
			Precision: decimals,
		}
		err := l.CreateAsset(asset)
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	for _, entry := range seed.Balances {
		amount, err := decimal.NewFromString(entry.Amount)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("invalid seed balance (account: %s, amount: %s): %w", entry.Account, entry.Amount, err))
			continue
		}
		token := chain.Token{Symbol: entry.Symbol, Contract: entry.Contract}
		err = l.SetBalance(entry.Account, token, amount)
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	failed := 0
	if merr != nil {
		failed = len(merr.Errors)
	}

	l.log.Info().
		Int("accounts", len(seed.Accounts)).
		Int("assets", len(seed.Assets)).
		Int("balances", len(seed.Balances)).
		Int("failed", failed).
		Msg("sandbox ledger seeded")

	return merr.ErrorOrNil()
}
