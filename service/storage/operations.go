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

package storage

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/optakt/coin-dispatch/chain"
)

// SaveSequence is an operation that writes the sequence number of the last
// recorded receipt.
func (l *Library) SaveSequence(sequence uint64) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixSequence), sequence)
}

// SaveAccount is an operation that writes the given account and indexes its
// name for its identifier.
func (l *Library) SaveAccount(account chain.Account) func(*badger.Txn) error {
	return Combine(
		l.save(EncodeKey(PrefixAccount, account.Name), account),
		l.save(EncodeKey(PrefixAccountForID, account.ID), account.Name),
	)
}

// SaveKey is an operation that records that the signing key of the account is
// held by the ledger.
func (l *Library) SaveKey(account string) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixKey, account), true)
}

// SaveAsset is an operation that writes the given asset.
func (l *Library) SaveAsset(asset chain.Asset) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixAsset, asset.Token), asset)
}

// SaveBalance is an operation that writes the balance of a token for an account.
func (l *Library) SaveBalance(account string, token chain.Token, balance chain.Quantity) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixBalance, account, token), balance)
}

// SaveReceipt is an operation that writes a receipt in the history of the
// receiving account.
func (l *Library) SaveReceipt(sequence uint64, receipt chain.Receipt) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixReceipt, receipt.To, receipt.Token, sequence), receipt)
}

// RetrieveSequence retrieves the sequence number of the last recorded receipt.
func (l *Library) RetrieveSequence(sequence *uint64) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixSequence), sequence)
}

// RetrieveAccount retrieves the account with the given name.
func (l *Library) RetrieveAccount(name string, account *chain.Account) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixAccount, name), account)
}

// LookupAccountForID retrieves the account with the given identifier.
func (l *Library) LookupAccountForID(id string, account *chain.Account) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		var name string
		err := l.retrieve(EncodeKey(PrefixAccountForID, id), &name)(tx)
		if err != nil {
			return fmt.Errorf("could not look up account name: %w", err)
		}
		return l.RetrieveAccount(name, account)(tx)
	}
}

// RetrieveKey retrieves whether the signing key of the account is held.
func (l *Library) RetrieveKey(account string, held *bool) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixKey, account), held)
}

// RetrieveAsset retrieves the asset of the given token.
func (l *Library) RetrieveAsset(token chain.Token, asset *chain.Asset) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixAsset, token), asset)
}

// RetrieveBalance retrieves the balance of a token for an account.
func (l *Library) RetrieveBalance(account string, token chain.Token, balance *chain.Quantity) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixBalance, account, token), balance)
}

// IterateReceipts calls the handler with the receipts of a token received by
// the account, oldest first, until it returns false.
func (l *Library) IterateReceipts(account string, token chain.Token, handle func(receipt chain.Receipt) bool) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {

		prefix := EncodeKey(PrefixReceipt, account, token)
		opts := badger.DefaultIteratorOptions
		// NOTE: this is an optimization only, it does not enforce that all
		// results in the iteration have this prefix.
		opts.Prefix = prefix

		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var receipt chain.Receipt
			err := it.Item().Value(func(val []byte) error {
				return l.codec.Unmarshal(val, &receipt)
			})
			if err != nil {
				return fmt.Errorf("could not unmarshal receipt: %w", err)
			}

			if !handle(receipt) {
				return nil
			}
		}

		return nil
	}
}
