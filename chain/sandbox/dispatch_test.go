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

package sandbox_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/coin-dispatch/chain/sandbox"
	"github.com/optakt/coin-dispatch/failure"
	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/service/registry"
	"github.com/optakt/coin-dispatch/service/source"
	"github.com/optakt/coin-dispatch/testing/helpers"
	"github.com/optakt/coin-dispatch/testing/mocks"
)

const dispatchSeed = `
accounts:
  - name: operator
    key: true
  - name: issuer
    key: true
  - name: customer
    id: 1.2.7
assets:
  - symbol: SBX
    issuer: issuer
  - symbol: TST
    issuer: issuer
    precision: 2
  - symbol: SCR
    contract: scr.token
    issuer: issuer
balances:
  - account: operator
    symbol: SBX
    amount: "10"
  - account: operator
    symbol: SCR
    contract: scr.token
    amount: "5"
`

const dispatchCoins = `
coins:
  - symbol: sbx
    network: sandbox
    operating_account: operator
  - symbol: tst
    network: sandbox
    operating_account: operator
    precision: 2
  - symbol: scr
    network: sandbox
    operating_account: operator
    settings:
      contract: scr.token
`

func TestDispatch(t *testing.T) {

	ledger := sandbox.New(mocks.NoopLogger, helpers.InMemoryDB(t))
	seed, err := sandbox.DecodeSeed(strings.NewReader(dispatchSeed))
	require.NoError(t, err)
	require.NoError(t, ledger.Apply(seed))

	coins, err := source.Decode(strings.NewReader(dispatchCoins))
	require.NoError(t, err)

	r := registry.New(mocks.NoopLogger, source.NewStatic(coins...), sandbox.NewDialer(ledger))
	_, err = r.Refresh()
	require.NoError(t, err)

	sbx, err := r.Resolve("SBX")
	require.NoError(t, err)
	tst, err := r.Resolve("tst")
	require.NoError(t, err)
	scr, err := r.Resolve("SCR")
	require.NoError(t, err)

	t.Run("send from existing balance", func(t *testing.T) {
		result, err := sbx.Send(helpers.Amount(t, "2.50005"), "customer", "order-1", "")

		require.NoError(t, err)
		assert.Equal(t, coin.KindSend, result.Kind)
		assert.Equal(t, "2.5", result.Amount.String())
		assert.Equal(t, "7.5", sbx.Balance(coin.BalanceQuery{}).String())
		assert.Equal(t, "2.5", sbx.Balance(coin.BalanceQuery{Account: "customer", Memo: " ORDER-1 "}).String())
		assert.True(t, sbx.Balance(coin.BalanceQuery{Account: "customer", Memo: "ORDER-1", CaseSensitive: true}).IsZero())
	})

	t.Run("send or issue mints the shortfall", func(t *testing.T) {
		result, err := sbx.SendOrIssue(decimal.NewFromInt(20), "customer", "order-2")

		require.NoError(t, err)
		assert.Equal(t, coin.KindIssue, result.Kind)
		assert.NotEmpty(t, result.TxID)
		assert.Equal(t, "7.5", sbx.Balance(coin.BalanceQuery{}).String())
		assert.Equal(t, "22.5", sbx.Balance(coin.BalanceQuery{Account: "customer"}).String())
	})

	t.Run("issue at coin precision", func(t *testing.T) {
		result, err := tst.Issue(helpers.Amount(t, "1.239"), "customer", "")

		require.NoError(t, err)
		assert.Equal(t, "1.23", result.Amount.String())
		assert.Equal(t, "issuer", result.From)
	})

	t.Run("memo balance by account identifier", func(t *testing.T) {
		_, err := sbx.Send(decimal.NewFromInt(1), "1.2.7", "order-3", "")
		require.NoError(t, err)

		assert.Equal(t, "1", sbx.Balance(coin.BalanceQuery{Account: "1.2.7", Memo: "order-3"}).String())
		assert.Equal(t, "1", sbx.Balance(coin.BalanceQuery{Account: "customer", Memo: "order-3"}).String())
	})

	t.Run("contract-hosted token", func(t *testing.T) {
		result, err := scr.Send(decimal.NewFromInt(2), "customer", "order-4", "")

		require.NoError(t, err)
		assert.Equal(t, coin.KindSend, result.Kind)
		assert.Equal(t, "3", scr.Balance(coin.BalanceQuery{}).String())
		assert.Equal(t, "2", scr.Balance(coin.BalanceQuery{Account: "customer", Memo: "order-4"}).String())

		issued, err := scr.Issue(decimal.NewFromInt(1), "customer", "")
		require.NoError(t, err)
		assert.Equal(t, "issuer", issued.From)

		report := scr.Health()
		assert.Equal(t, coin.StatusOK, report.Status)
		assert.Equal(t, "issuer", report.Issuer)
		assert.Equal(t, "3.0000", report.Balance)
	})

	t.Run("handles unknown recipient", func(t *testing.T) {
		_, err := sbx.Send(decimal.NewFromInt(1), "stranger", "", "")

		assert.ErrorAs(t, err, &failure.AccountNotFound{})
	})

	t.Run("handles missing key", func(t *testing.T) {
		_, err := sbx.Send(decimal.NewFromInt(1), "operator", "", "customer")

		assert.ErrorAs(t, err, &failure.AuthorityMissing{})
	})

	t.Run("health", func(t *testing.T) {
		report := sbx.Health()

		assert.Equal(t, coin.StatusOK, report.Status)
		assert.Equal(t, "issuer", report.Issuer)
		assert.Equal(t, "4", report.Precision)
		assert.Equal(t, "operator", report.Account)
		assert.Equal(t, sandbox.DefaultConfig.Node, report.Node)
		assert.True(t, tst.HealthTest())
	})

	t.Run("address validation", func(t *testing.T) {
		assert.True(t, sbx.AddressValid("customer"))
		assert.False(t, sbx.AddressValid("stranger"))
		assert.False(t, sbx.AddressValid("not valid!"))
	})
}

func TestDialer(t *testing.T) {

	ledger := sandbox.New(mocks.NoopLogger, helpers.InMemoryDB(t))
	eos := coin.Config{Symbol: "EOS", Network: "eos", OperatingAccount: "dispatcher1"}

	r := registry.New(mocks.NoopLogger, source.NewStatic(mocks.GenericConfig(), eos), sandbox.NewDialer(ledger))
	snapshot, err := r.Refresh()

	assert.Error(t, err)
	assert.Equal(t, []coin.Symbol{mocks.GenericSymbol}, snapshot.Symbols())
}
