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

package manager_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/network"
	"github.com/optakt/coin-dispatch/service/manager"
	"github.com/optakt/coin-dispatch/service/resolver"
	"github.com/optakt/coin-dispatch/testing/mocks"
)

func newManager(t *testing.T, name string, cfg coin.Config, client *mocks.Client) *manager.Manager {
	t.Helper()

	profile, ok := network.Lookup(name)
	require.True(t, ok)

	resolve, err := resolver.New(mocks.NoopLogger, client, name)
	require.NoError(t, err)

	return manager.New(mocks.NoopLogger, cfg, profile, client, resolve)
}

func baselineManager(t *testing.T, client *mocks.Client) *manager.Manager {
	t.Helper()

	return newManager(t, network.Sandbox, mocks.GenericConfig(), client)
}

func TestNew(t *testing.T) {
	client := mocks.BaselineClient(t)

	m := baselineManager(t, client)

	assert.Equal(t, mocks.GenericSymbol, m.Symbol())
}

func TestManager_DepositTarget(t *testing.T) {

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		m := baselineManager(t, mocks.BaselineClient(t))

		deposit := m.DepositTarget()

		assert.Equal(t, coin.DepositAccount, deposit.Kind)
		assert.Equal(t, mocks.GenericOperator, deposit.Account)
	})

	t.Run("does not reach the network", func(t *testing.T) {
		t.Parallel()

		client := mocks.BaselineClient(t)
		client.AccountFunc = nil
		client.BalanceFunc = nil
		m := baselineManager(t, client)

		assert.NotPanics(t, func() { _ = m.DepositTarget() })
	})
}

func TestManager_Concurrent(t *testing.T) {
	m := baselineManager(t, mocks.BaselineClient(t))

	done := make(chan string, 16)
	for i := 0; i < 16; i++ {
		go func() {
			done <- m.Balance(coin.BalanceQuery{}).String()
		}()
	}

	for i := 0; i < 16; i++ {
		assert.Equal(t, "12.3456", <-done)
	}
}
