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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/service/storage"
	"github.com/optakt/coin-dispatch/testing/mocks"
)

func TestEncodeKey(t *testing.T) {

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		key := storage.EncodeKey(storage.PrefixReceipt, mocks.GenericOperator, mocks.GenericToken, uint64(42))

		assert.Len(t, key, 1+8+8+8)
		assert.Equal(t, byte(storage.PrefixReceipt), key[0])
		assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 42}, key[17:])
	})

	t.Run("keys share the prefix of their leading segments", func(t *testing.T) {
		t.Parallel()

		prefix := storage.EncodeKey(storage.PrefixReceipt, mocks.GenericOperator, mocks.GenericToken)
		first := storage.EncodeKey(storage.PrefixReceipt, mocks.GenericOperator, mocks.GenericToken, uint64(1))
		second := storage.EncodeKey(storage.PrefixReceipt, mocks.GenericOperator, mocks.GenericToken, uint64(2))

		assert.True(t, bytes.HasPrefix(first, prefix))
		assert.True(t, bytes.HasPrefix(second, prefix))
		assert.Equal(t, -1, bytes.Compare(first, second))
	})

	t.Run("tokens differ by contract", func(t *testing.T) {
		t.Parallel()

		other := chain.Token{Symbol: mocks.GenericToken.Symbol, Contract: "other.token"}

		assert.NotEqual(t,
			storage.EncodeKey(storage.PrefixAsset, mocks.GenericToken),
			storage.EncodeKey(storage.PrefixAsset, other),
		)
	})

	t.Run("handles unknown segment type", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			storage.EncodeKey(storage.PrefixAsset, 3.14)
		})
	})
}
