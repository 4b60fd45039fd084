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

	"github.com/OneOfOne/xxhash"
	"github.com/dgraph-io/badger/v2"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/service/storage"
)

// entry is the record a transaction identifier is derived from.
type entry struct {
	Sequence uint64
	Receipt  chain.Receipt
}

// Transfer moves existing balance between two accounts. The ledger must hold
// the signing key of the source account.
func (l *Ledger) Transfer(transfer chain.Transfer) (chain.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var receipt chain.Receipt
	err := l.db.Update(func(tx *badger.Txn) error {

		var asset chain.Asset
		err := l.asset(transfer.Token, &asset)(tx)
		if err != nil {
			return err
		}
		var from, to chain.Account
		err = storage.Combine(
			l.account(transfer.From, &from),
			l.account(transfer.To, &to),
		)(tx)
		if err != nil {
			return err
		}
		// Keys are held under the account name, whichever way it was addressed.
		err = l.key(from.Name)(tx)
		if err != nil {
			return err
		}

		units, err := rescale(transfer.Amount, asset.Precision)
		if err != nil {
			return err
		}

		source, err := l.balance(tx, from.Name, asset)
		if err != nil {
			return err
		}
		if source.Units.Cmp(units) < 0 {
			return fmt.Errorf("could not debit account (account: %s, balance: %s, amount: %s): %w", from.Name, source.Units, units, chain.ErrInsufficientBalance)
		}
		target, err := l.balance(tx, to.Name, asset)
		if err != nil {
			return err
		}

		receipt = chain.Receipt{
			Token:  asset.Token,
			From:   from.Name,
			To:     to.Name,
			Amount: chain.Quantity{Units: units, Precision: asset.Precision},
			Fee:    zero(asset.Precision),
			Memo:   transfer.Memo,
		}
		// Self-transfers only leave a receipt.
		if from.Name != to.Name {
			source.Units = new(big.Int).Sub(source.Units, units)
			target.Units = new(big.Int).Add(target.Units, units)
			err = storage.Combine(
				l.lib.SaveBalance(from.Name, asset.Token, source),
				l.lib.SaveBalance(to.Name, asset.Token, target),
			)(tx)
			if err != nil {
				return fmt.Errorf("could not save balances: %w", err)
			}
		}

		receipt, err = l.record(tx, receipt)
		return err
	})
	if err != nil {
		return chain.Receipt{}, err
	}

	l.log.Debug().
		Str("txid", receipt.TxID).
		Str("symbol", receipt.Token.Symbol).
		Str("from", receipt.From).
		Str("to", receipt.To).
		Str("units", receipt.Amount.Units.String()).
		Msg("transfer executed")

	return receipt, nil
}

// Issue mints new supply of a token to an account. The ledger must hold the
// signing key of the issuer of the token.
func (l *Ledger) Issue(issue chain.Issue) (chain.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var receipt chain.Receipt
	err := l.db.Update(func(tx *badger.Txn) error {

		var asset chain.Asset
		err := l.asset(issue.Token, &asset)(tx)
		if err != nil {
			return err
		}
		var to chain.Account
		err = storage.Combine(
			l.account(issue.To, &to),
			l.key(asset.Issuer),
		)(tx)
		if err != nil {
			return err
		}

		units, err := rescale(issue.Amount, asset.Precision)
		if err != nil {
			return err
		}

		receipt = chain.Receipt{
			Token:  asset.Token,
			From:   asset.Issuer,
			To:     to.Name,
			Amount: chain.Quantity{Units: units, Precision: asset.Precision},
			Fee:    zero(asset.Precision),
			Memo:   issue.Memo,
		}

		err = l.credit(tx, to.Name, asset, units)
		if err != nil {
			return err
		}

		receipt, err = l.record(tx, receipt)
		return err
	})
	if err != nil {
		return chain.Receipt{}, err
	}

	l.log.Debug().
		Str("txid", receipt.TxID).
		Str("symbol", receipt.Token.Symbol).
		Str("to", receipt.To).
		Str("units", receipt.Amount.Units.String()).
		Msg("issue executed")

	return receipt, nil
}

func (l *Ledger) key(account string) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		var held bool
		err := l.lib.RetrieveKey(account, &held)(tx)
		if storage.Missing(err) || (err == nil && !held) {
			return fmt.Errorf("no key for account (account: %s): %w", account, chain.ErrMissingKey)
		}
		if err != nil {
			return fmt.Errorf("could not retrieve key (account: %s): %w", account, err)
		}
		return nil
	}
}

// credit adds new supply of the asset to the balance of the account.
func (l *Ledger) credit(tx *badger.Txn, account string, asset chain.Asset, units *big.Int) error {

	balance, err := l.balance(tx, account, asset)
	if err != nil {
		return err
	}
	balance.Units = new(big.Int).Add(balance.Units, units)

	supply := new(big.Int)
	if asset.Supply.Units != nil {
		supply.Set(asset.Supply.Units)
	}
	asset.Supply = chain.Quantity{
		Units:     supply.Add(supply, units),
		Precision: asset.Precision,
	}

	err = storage.Combine(
		l.lib.SaveBalance(account, asset.Token, balance),
		l.lib.SaveAsset(asset),
	)(tx)
	if err != nil {
		return fmt.Errorf("could not save issued supply: %w", err)
	}

	return nil
}

// record assigns the next sequence number and a transaction identifier to the
// receipt, and appends it to the history of the receiving account.
func (l *Ledger) record(tx *badger.Txn, receipt chain.Receipt) (chain.Receipt, error) {

	var sequence uint64
	err := storage.Optional(l.lib.RetrieveSequence(&sequence))(tx)
	if err != nil {
		return chain.Receipt{}, fmt.Errorf("could not retrieve sequence: %w", err)
	}
	sequence++

	data, err := l.codec.Encode(entry{Sequence: sequence, Receipt: receipt})
	if err != nil {
		return chain.Receipt{}, fmt.Errorf("could not encode receipt: %w", err)
	}
	receipt.TxID = fmt.Sprintf("%016x", xxhash.Checksum64(data))

	err = storage.Combine(
		l.lib.SaveReceipt(sequence, receipt),
		l.lib.SaveSequence(sequence),
	)(tx)
	if err != nil {
		return chain.Receipt{}, fmt.Errorf("could not save receipt: %w", err)
	}

	return receipt, nil
}
