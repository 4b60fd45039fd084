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
	"math/big"

	"github.com/dgraph-io/badger/v2"
	"github.com/shopspring/decimal"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/models/precision"
)

// CreateAccount creates or replaces an account. If key is set, the ledger
// holds the signing key of the account.
func (l *Ledger) CreateAccount(account chain.Account, key bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if account.Name == "" {
		return fmt.Errorf("account name is required")
	}
	if account.ID == "" {
		account.ID = account.Name
	}

	err := l.db.Update(func(tx *badger.Txn) error {
		err := l.lib.SaveAccount(account)(tx)
		if err != nil {
			return err
		}
		if !key {
			return nil
		}
		return l.lib.SaveKey(account.Name)(tx)
	})
	if err != nil {
		return fmt.Errorf("could not create account (name: %s): %w", account.Name, err)
	}

	return nil
}

// CreateAsset creates an asset, or updates the issuer and precision of an
// existing one while keeping its supply.
func (l *Ledger) CreateAsset(asset chain.Asset) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := precision.Check(int(asset.Precision))
	if err != nil {
		return err
	}

	err = l.db.Update(func(tx *badger.Txn) error {

		var issuer chain.Account
		err := l.account(asset.Issuer, &issuer)(tx)
		if err != nil {
			return err
		}
		asset.Issuer = issuer.Name

		var existing chain.Asset
		err = l.asset(asset.Token, &existing)(tx)
		switch {
		case err == nil:
			asset.Supply = existing.Supply
		default:
			asset.Supply = zero(asset.Precision)
		}

		return l.lib.SaveAsset(asset)(tx)
	})
	if err != nil {
		return fmt.Errorf("could not create asset (symbol: %s): %w", asset.Token.Symbol, err)
	}

	return nil
}

// SetBalance sets the balance of the token held by the account, adjusting the
// supply of the asset by the difference. Setting the same balance twice has no
// further effect.
func (l *Ledger) SetBalance(account string, token chain.Token, amount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.db.Update(func(tx *badger.Txn) error {

		var asset chain.Asset
		err := l.asset(token, &asset)(tx)
		if err != nil {
			return err
		}
		var holder chain.Account
		err = l.account(account, &holder)(tx)
		if err != nil {
			return err
		}

		normalized, err := precision.Normalize(amount, asset.Precision)
		if err != nil {
			return err
		}
		if normalized.IsNegative() {
			return fmt.Errorf("balance must not be negative (amount: %s)", amount)
		}
		units, err := precision.ToMinorUnits(normalized, asset.Precision)
		if err != nil {
			return err
		}

		current, err := l.balance(tx, holder.Name, asset)
		if err != nil {
			return err
		}

		return l.credit(tx, holder.Name, asset, new(big.Int).Sub(units, current.Units))
	})
	if err != nil {
		return fmt.Errorf("could not set balance (account: %s, symbol: %s): %w", account, token.Symbol, err)
	}

	return nil
}
