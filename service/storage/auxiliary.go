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
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/hashicorp/go-multierror"
)

// Missing returns whether the error was caused by a ledger record that does
// not exist, including when it is part of a multi-error from Fallback.
func Missing(err error) bool {
	return errors.Is(err, badger.ErrKeyNotFound)
}

// Optional runs the operation, but treats a missing record as success. The
// destination value of a retrieval is left untouched in that case, so it should
// be initialized with the default beforehand.
func Optional(op func(*badger.Txn) error) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		err := op(tx)
		if Missing(err) {
			return nil
		}
		return err
	}
}

// Fallback tries each operation in order and stops at the first success. If
// none succeeds, the failures of all of them are returned together.
func Fallback(ops ...func(*badger.Txn) error) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		var merr *multierror.Error
		for _, op := range ops {
			err := op(tx)
			if err == nil {
				return nil
			}
			merr = multierror.Append(merr, err)
		}
		return merr.ErrorOrNil()
	}
}

// Combine runs each operation in order and stops at the first failure, which
// is returned as-is.
func Combine(ops ...func(*badger.Txn) error) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		for _, op := range ops {
			err := op(tx)
			if err != nil {
				return err
			}
		}
		return nil
	}
}

// retrieve decodes the record stored under the key into v. When used in a
// loop, v must be a fresh value on every iteration.
func (l *Library) retrieve(key []byte, v interface{}) func(tx *badger.Txn) error {
	return func(tx *badger.Txn) error {

		item, err := tx.Get(key)
		if err != nil {
			return fmt.Errorf("could not load record (prefix: %d, key: %x): %w", key[0], key[1:], err)
		}

		err = item.Value(func(val []byte) error {
			return l.codec.Unmarshal(val, v)
		})
		if err != nil {
			return fmt.Errorf("could not decode record (prefix: %d, key: %x): %w", key[0], key[1:], err)
		}

		return nil
	}
}

// save encodes the record immediately, so that later changes to value do not
// affect what is written when the operation runs.
func (l *Library) save(key []byte, value interface{}) func(*badger.Txn) error {
	val, err := l.codec.Marshal(value)
	return func(tx *badger.Txn) error {

		if err != nil {
			return fmt.Errorf("could not encode record (prefix: %d, key: %x): %w", key[0], key[1:], err)
		}

		setErr := tx.Set(key, val)
		if setErr != nil {
			return fmt.Errorf("could not store record (prefix: %d, key: %x): %w", key[0], key[1:], setErr)
		}

		return nil
	}
}
