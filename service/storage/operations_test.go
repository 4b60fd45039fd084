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

package storage_test

import (
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/codec/zbor"
	"github.com/optakt/coin-dispatch/service/storage"
	"github.com/optakt/coin-dispatch/testing/helpers"
	"github.com/optakt/coin-dispatch/testing/mocks"
)

func TestLibrary_Accounts(t *testing.T) {
	db := helpers.InMemoryDB(t)
	lib := storage.New(zbor.NewCodec(zstd.SpeedFastest))

	err := db.Update(lib.SaveAccount(mocks.GenericAccount))
	require.NoError(t, err)

	t.Run("retrieve by name", func(t *testing.T) {
		var got chain.Account
		err := db.View(lib.RetrieveAccount(mocks.GenericAccount.Name, &got))

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericAccount, got)
	})

	t.Run("retrieve by identifier", func(t *testing.T) {
		var got chain.Account
		err := db.View(lib.LookupAccountForID(mocks.GenericAccount.ID, &got))

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericAccount, got)
	})

	t.Run("handles missing account", func(t *testing.T) {
		var got chain.Account
		err := db.View(lib.RetrieveAccount("missing", &got))

		assert.True(t, errors.Is(err, badger.ErrKeyNotFound))
	})
}

func TestLibrary_Keys(t *testing.T) {
	db := helpers.InMemoryDB(t)
	lib := storage.New(zbor.NewCodec(zstd.SpeedFastest))

	err := db.Update(lib.SaveKey(mocks.GenericOperator))
	require.NoError(t, err)

	var held bool
	err = db.View(lib.RetrieveKey(mocks.GenericOperator, &held))
	require.NoError(t, err)
	assert.True(t, held)

	err = db.View(lib.RetrieveKey(mocks.GenericRecipient, &held))
	assert.ErrorIs(t, err, badger.ErrKeyNotFound)
}

func TestLibrary_AssetsAndBalances(t *testing.T) {
	db := helpers.InMemoryDB(t)
	lib := storage.New(zbor.NewCodec(zstd.SpeedFastest))

	err := db.Update(storage.Combine(
		lib.SaveAsset(mocks.GenericAsset),
		lib.SaveBalance(mocks.GenericOperator, mocks.GenericToken, mocks.GenericQuantity(123456)),
		lib.SaveSequence(7),
	))
	require.NoError(t, err)

	var asset chain.Asset
	err = db.View(lib.RetrieveAsset(mocks.GenericToken, &asset))
	require.NoError(t, err)
	assert.Equal(t, mocks.GenericAsset.Issuer, asset.Issuer)
	assert.Equal(t, mocks.GenericAsset.Precision, asset.Precision)
	assert.Equal(t, 0, mocks.GenericAsset.Supply.Units.Cmp(asset.Supply.Units))

	var balance chain.Quantity
	err = db.View(lib.RetrieveBalance(mocks.GenericOperator, mocks.GenericToken, &balance))
	require.NoError(t, err)
	assert.Equal(t, int64(123456), balance.Units.Int64())

	var sequence uint64
	err = db.View(lib.RetrieveSequence(&sequence))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), sequence)
}

func TestLibrary_IterateReceipts(t *testing.T) {
	db := helpers.InMemoryDB(t)
	lib := storage.New(zbor.NewCodec(zstd.SpeedFastest))

	err := db.Update(storage.Combine(
		lib.SaveReceipt(1, mocks.GenericReceipt(mocks.GenericRecipient, mocks.GenericOperator, 100, "first")),
		lib.SaveReceipt(2, mocks.GenericReceipt(mocks.GenericRecipient, "someone", 200, "elsewhere")),
		lib.SaveReceipt(3, mocks.GenericReceipt(mocks.GenericRecipient, mocks.GenericOperator, 300, "second")),
		lib.SaveReceipt(4, mocks.GenericReceipt(mocks.GenericRecipient, mocks.GenericOperator, 400, "third")),
	))
	require.NoError(t, err)

	t.Run("nominal case", func(t *testing.T) {
		var memos []string
		err := db.View(lib.IterateReceipts(mocks.GenericOperator, mocks.GenericToken, func(receipt chain.Receipt) bool {
			memos = append(memos, receipt.Memo)
			return true
		}))

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second", "third"}, memos)
	})

	t.Run("stops when handler returns false", func(t *testing.T) {
		calls := 0
		err := db.View(lib.IterateReceipts(mocks.GenericOperator, mocks.GenericToken, func(chain.Receipt) bool {
			calls++
			return false
		}))

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("other token has no receipts", func(t *testing.T) {
		calls := 0
		token := chain.Token{Symbol: "OTHER"}
		err := db.View(lib.IterateReceipts(mocks.GenericOperator, token, func(chain.Receipt) bool {
			calls++
			return true
		}))

		require.NoError(t, err)
		assert.Zero(t, calls)
	})
}
