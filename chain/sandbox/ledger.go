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
	"sync"

	"github.com/dgraph-io/badger/v2"
	"github.com/gammazero/deque"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/codec/zbor"
	"github.com/optakt/coin-dispatch/models/precision"
	"github.com/optakt/coin-dispatch/service/storage"
)

// Ledger is a local chain persisted in a Badger database. It implements the
// chain client contract, with accounts, assets, balances and a keystore of
// the accounts it can sign for.
type Ledger struct {
	log   zerolog.Logger
	cfg   Config
	db    *badger.DB
	lib   *storage.Library
	codec *zbor.Codec

	// Writes are serialized, so that receipts get consecutive sequence
	// numbers.
	mu sync.Mutex
}

// New creates a sandbox ledger on top of the given database.
func New(log zerolog.Logger, db *badger.DB, options ...Option) *Ledger {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	codec := zbor.NewCodec(zstd.SpeedDefault)
	l := Ledger{
		log:   log.With().Str("component", "sandbox").Logger(),
		cfg:   cfg,
		db:    db,
		lib:   storage.New(codec),
		codec: codec,
	}

	return &l
}

// Node returns the identifier of the ledger.
func (l *Ledger) Node() string {
	return l.cfg.Node
}

// Account returns the account with the given name or identifier.
func (l *Ledger) Account(name string) (chain.Account, error) {
	var account chain.Account
	err := l.db.View(l.account(name, &account))
	if err != nil {
		return chain.Account{}, err
	}
	return account, nil
}

// Asset returns the asset of the given token.
func (l *Ledger) Asset(token chain.Token) (chain.Asset, error) {
	var asset chain.Asset
	err := l.db.View(l.asset(token, &asset))
	if err != nil {
		return chain.Asset{}, err
	}
	return asset, nil
}

// Balance returns the balance of the token held by the account. Accounts
// which never held the token have a zero balance.
func (l *Ledger) Balance(account string, token chain.Token) (chain.Quantity, error) {

	var balance chain.Quantity
	err := l.db.View(func(tx *badger.Txn) error {
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
		balance, err = l.balance(tx, holder.Name, asset)
		return err
	})
	if err != nil {
		return chain.Quantity{}, err
	}

	return balance, nil
}

// History returns the most recent receipts of the token received by the
// account, newest first. A zero limit returns the whole history.
func (l *Ledger) History(account string, token chain.Token, limit uint) ([]chain.Receipt, error) {

	window := deque.New()
	err := l.db.View(func(tx *badger.Txn) error {
		var holder chain.Account
		err := l.account(account, &holder)(tx)
		if err != nil {
			return err
		}
		return l.lib.IterateReceipts(holder.Name, token, func(receipt chain.Receipt) bool {
			window.PushBack(receipt)
			if limit > 0 && uint(window.Len()) > limit {
				window.PopFront()
			}
			return true
		})(tx)
	})
	if err != nil {
		return nil, err
	}

	receipts := make([]chain.Receipt, 0, window.Len())
	for window.Len() > 0 {
		receipts = append(receipts, window.PopBack().(chain.Receipt))
	}

	return receipts, nil
}

func (l *Ledger) account(name string, account *chain.Account) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		err := storage.Fallback(
			l.lib.RetrieveAccount(name, account),
			l.lib.LookupAccountForID(name, account),
		)(tx)
		if storage.Missing(err) {
			return fmt.Errorf("unknown account (name: %s): %w", name, chain.ErrAccountNotFound)
		}
		if err != nil {
			return fmt.Errorf("could not retrieve account (name: %s): %w", name, err)
		}
		return nil
	}
}

func (l *Ledger) asset(token chain.Token, asset *chain.Asset) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		err := l.lib.RetrieveAsset(token, asset)(tx)
		if storage.Missing(err) {
			return fmt.Errorf("unknown token (symbol: %s, contract: %s): %w", token.Symbol, token.Contract, chain.ErrTokenNotFound)
		}
		if err != nil {
			return fmt.Errorf("could not retrieve asset (symbol: %s): %w", token.Symbol, err)
		}
		return nil
	}
}

func (l *Ledger) balance(tx *badger.Txn, account string, asset chain.Asset) (chain.Quantity, error) {
	balance := zero(asset.Precision)
	err := storage.Optional(l.lib.RetrieveBalance(account, asset.Token, &balance))(tx)
	if err != nil {
		return chain.Quantity{}, fmt.Errorf("could not retrieve balance (account: %s): %w", account, err)
	}
	return balance, nil
}

func zero(decimals uint) chain.Quantity {
	return chain.Quantity{
		Units:     big.NewInt(0),
		Precision: decimals,
	}
}

// rescale converts the quantity to the precision of the asset, rounding down.
func rescale(quantity chain.Quantity, decimals uint) (*big.Int, error) {

	if quantity.Units == nil || quantity.Units.Sign() <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}
	if quantity.Precision == decimals {
		return new(big.Int).Set(quantity.Units), nil
	}

	amount, err := precision.FromMinorUnits(quantity.Units, quantity.Precision)
	if err != nil {
		return nil, fmt.Errorf("could not decode quantity: %w", err)
	}
	normalized, err := precision.Normalize(amount, decimals)
	if err != nil {
		return nil, fmt.Errorf("could not normalize quantity: %w", err)
	}
	units, err := precision.ToMinorUnits(normalized, decimals)
	if err != nil {
		return nil, fmt.Errorf("could not encode quantity: %w", err)
	}
	if units.Sign() <= 0 {
		return nil, fmt.Errorf("quantity is below the smallest unit of the asset (precision: %d)", decimals)
	}

	return units, nil
}
