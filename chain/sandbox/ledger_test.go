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
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/chain/sandbox"
	"github.com/optakt/coin-dispatch/testing/helpers"
	"github.com/optakt/coin-dispatch/testing/mocks"
)

const seedFile = `
accounts:
  - name: operator
    id: 1.2.42
    key: true
  - name: issuer
    key: true
  - name: recipient
  - name: cold
assets:
  - symbol: TST
    contract: tst.token
    issuer: issuer
    precision: 4
balances:
  - account: operator
    symbol: TST
    contract: tst.token
    amount: "100.0000"
`

func newLedger(t *testing.T) *sandbox.Ledger {
	t.Helper()

	ledger := sandbox.New(mocks.NoopLogger, helpers.InMemoryDB(t))
	seed, err := sandbox.DecodeSeed(strings.NewReader(seedFile))
	require.NoError(t, err)
	err = ledger.Apply(seed)
	require.NoError(t, err)

	return ledger
}

func units(t *testing.T, ledger *sandbox.Ledger, account string) int64 {
	t.Helper()

	balance, err := ledger.Balance(account, mocks.GenericToken)
	require.NoError(t, err)

	return balance.Units.Int64()
}

func TestLedger_Lookups(t *testing.T) {
	ledger := newLedger(t)

	t.Run("account by name", func(t *testing.T) {
		account, err := ledger.Account(mocks.GenericOperator)

		require.NoError(t, err)
		assert.Equal(t, chain.Account{Name: "operator", ID: "1.2.42"}, account)
	})

	t.Run("account by identifier", func(t *testing.T) {
		account, err := ledger.Account("1.2.42")

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericOperator, account.Name)
	})

	t.Run("account identifier defaults to name", func(t *testing.T) {
		account, err := ledger.Account(mocks.GenericRecipient)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericRecipient, account.ID)
	})

	t.Run("handles missing account", func(t *testing.T) {
		_, err := ledger.Account("nobody")

		assert.ErrorIs(t, err, chain.ErrAccountNotFound)
	})

	t.Run("asset", func(t *testing.T) {
		asset, err := ledger.Asset(mocks.GenericToken)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericIssuer, asset.Issuer)
		assert.Equal(t, uint(4), asset.Precision)
		assert.Equal(t, int64(1_000_000), asset.Supply.Units.Int64())
	})

	t.Run("handles missing asset", func(t *testing.T) {
		_, err := ledger.Asset(chain.Token{Symbol: "TST", Contract: "other.token"})

		assert.ErrorIs(t, err, chain.ErrTokenNotFound)
	})

	t.Run("balance", func(t *testing.T) {
		assert.Equal(t, int64(1_000_000), units(t, ledger, mocks.GenericOperator))
		assert.Zero(t, units(t, ledger, mocks.GenericRecipient))
	})

	t.Run("handles balance of missing account", func(t *testing.T) {
		_, err := ledger.Balance("nobody", mocks.GenericToken)

		assert.ErrorIs(t, err, chain.ErrAccountNotFound)
	})

	t.Run("node", func(t *testing.T) {
		assert.Equal(t, sandbox.DefaultConfig.Node, ledger.Node())
		assert.Equal(t, "sandbox://test", sandbox.New(mocks.NoopLogger, helpers.InMemoryDB(t), sandbox.WithNode("sandbox://test")).Node())
	})
}

func TestLedger_Transfer(t *testing.T) {

	transfer := func(from string, to string, amount int64) chain.Transfer {
		return chain.Transfer{
			Token:  mocks.GenericToken,
			From:   from,
			To:     to,
			Amount: mocks.GenericQuantity(amount),
			Memo:   mocks.GenericMemo,
		}
	}

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)

		receipt, err := ledger.Transfer(transfer(mocks.GenericOperator, mocks.GenericRecipient, 25_0000))

		require.NoError(t, err)
		assert.Len(t, receipt.TxID, 16)
		assert.Equal(t, mocks.GenericOperator, receipt.From)
		assert.Equal(t, mocks.GenericRecipient, receipt.To)
		assert.Equal(t, int64(25_0000), receipt.Amount.Units.Int64())
		assert.Zero(t, receipt.Fee.Units.Sign())
		assert.Equal(t, mocks.GenericMemo, receipt.Memo)
		assert.Equal(t, int64(75_0000), units(t, ledger, mocks.GenericOperator))
		assert.Equal(t, int64(25_0000), units(t, ledger, mocks.GenericRecipient))
	})

	t.Run("accepts account identifiers", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)

		receipt, err := ledger.Transfer(transfer("1.2.42", mocks.GenericRecipient, 1))

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericOperator, receipt.From)
	})

	t.Run("rescales to asset precision", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)
		request := transfer(mocks.GenericOperator, mocks.GenericRecipient, 0)
		request.Amount = chain.Quantity{Units: big.NewInt(1_234_567), Precision: 6}

		receipt, err := ledger.Transfer(request)

		require.NoError(t, err)
		assert.Equal(t, int64(12_345), receipt.Amount.Units.Int64())
		assert.Equal(t, uint(4), receipt.Amount.Precision)
	})

	t.Run("self transfer keeps balance", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)

		_, err := ledger.Transfer(transfer(mocks.GenericOperator, mocks.GenericOperator, 10))

		require.NoError(t, err)
		assert.Equal(t, int64(1_000_000), units(t, ledger, mocks.GenericOperator))
	})

	t.Run("transaction identifiers are unique", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)

		first, err := ledger.Transfer(transfer(mocks.GenericOperator, mocks.GenericRecipient, 1))
		require.NoError(t, err)
		second, err := ledger.Transfer(transfer(mocks.GenericOperator, mocks.GenericRecipient, 1))
		require.NoError(t, err)

		assert.NotEqual(t, first.TxID, second.TxID)
	})

	t.Run("handles insufficient balance", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)

		_, err := ledger.Transfer(transfer(mocks.GenericOperator, mocks.GenericRecipient, 1_000_001))

		assert.ErrorIs(t, err, chain.ErrInsufficientBalance)
		assert.Equal(t, int64(1_000_000), units(t, ledger, mocks.GenericOperator))
	})

	t.Run("handles missing key", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)

		_, err := ledger.Transfer(transfer(mocks.GenericRecipient, mocks.GenericOperator, 1))

		assert.ErrorIs(t, err, chain.ErrMissingKey)
	})

	t.Run("handles missing destination", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)

		_, err := ledger.Transfer(transfer(mocks.GenericOperator, "nobody", 1))

		assert.ErrorIs(t, err, chain.ErrAccountNotFound)
	})

	t.Run("handles missing token", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)
		request := transfer(mocks.GenericOperator, mocks.GenericRecipient, 1)
		request.Token = chain.Token{Symbol: "NOPE"}

		_, err := ledger.Transfer(request)

		assert.ErrorIs(t, err, chain.ErrTokenNotFound)
	})

	t.Run("handles non-positive amount", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)

		_, err := ledger.Transfer(transfer(mocks.GenericOperator, mocks.GenericRecipient, 0))

		assert.Error(t, err)
	})
}

func TestLedger_Issue(t *testing.T) {

	issue := chain.Issue{
		Token:  mocks.GenericToken,
		To:     mocks.GenericRecipient,
		Amount: mocks.GenericQuantity(5_0000),
		Memo:   mocks.GenericMemo,
	}

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)

		receipt, err := ledger.Issue(issue)

		require.NoError(t, err)
		assert.NotEmpty(t, receipt.TxID)
		assert.Equal(t, mocks.GenericIssuer, receipt.From)
		assert.Equal(t, int64(5_0000), units(t, ledger, mocks.GenericRecipient))

		asset, err := ledger.Asset(mocks.GenericToken)
		require.NoError(t, err)
		assert.Equal(t, int64(1_050_000), asset.Supply.Units.Int64())
	})

	t.Run("handles missing issuer key", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)
		token := chain.Token{Symbol: "COLD"}
		err := ledger.CreateAsset(chain.Asset{Token: token, Issuer: "cold", Precision: 2})
		require.NoError(t, err)

		request := issue
		request.Token = token
		_, err = ledger.Issue(request)

		assert.ErrorIs(t, err, chain.ErrMissingKey)
	})

	t.Run("handles missing destination", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)
		request := issue
		request.To = "nobody"

		_, err := ledger.Issue(request)

		assert.ErrorIs(t, err, chain.ErrAccountNotFound)
	})

	t.Run("handles missing token", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)
		request := issue
		request.Token = chain.Token{Symbol: "NOPE"}

		_, err := ledger.Issue(request)

		assert.ErrorIs(t, err, chain.ErrTokenNotFound)
	})
}

func TestLedger_History(t *testing.T) {
	ledger := newLedger(t)

	for i, memo := range []string{"one", "two", "three", "four"} {
		_, err := ledger.Transfer(chain.Transfer{
			Token:  mocks.GenericToken,
			From:   mocks.GenericOperator,
			To:     mocks.GenericRecipient,
			Amount: mocks.GenericQuantity(int64(i + 1)),
			Memo:   memo,
		})
		require.NoError(t, err)
	}
	_, err := ledger.Issue(chain.Issue{Token: mocks.GenericToken, To: mocks.GenericOperator, Amount: mocks.GenericQuantity(1)})
	require.NoError(t, err)

	memos := func(receipts []chain.Receipt) []string {
		out := make([]string, 0, len(receipts))
		for _, receipt := range receipts {
			out = append(out, receipt.Memo)
		}
		return out
	}

	t.Run("nominal case", func(t *testing.T) {
		receipts, err := ledger.History(mocks.GenericRecipient, mocks.GenericToken, 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"four", "three", "two", "one"}, memos(receipts))
	})

	t.Run("keeps the newest receipts within the limit", func(t *testing.T) {
		receipts, err := ledger.History(mocks.GenericRecipient, mocks.GenericToken, 2)

		require.NoError(t, err)
		assert.Equal(t, []string{"four", "three"}, memos(receipts))
	})

	t.Run("only includes received receipts", func(t *testing.T) {
		receipts, err := ledger.History(mocks.GenericOperator, mocks.GenericToken, 0)

		require.NoError(t, err)
		require.Len(t, receipts, 1)
		assert.Equal(t, mocks.GenericIssuer, receipts[0].From)
	})

	t.Run("handles missing account", func(t *testing.T) {
		_, err := ledger.History("nobody", mocks.GenericToken, 0)

		assert.ErrorIs(t, err, chain.ErrAccountNotFound)
	})
}

func TestLedger_Apply(t *testing.T) {

	t.Run("seeding twice keeps balances", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)
		seed, err := sandbox.DecodeSeed(strings.NewReader(seedFile))
		require.NoError(t, err)

		err = ledger.Apply(seed)

		require.NoError(t, err)
		assert.Equal(t, int64(1_000_000), units(t, ledger, mocks.GenericOperator))
		asset, err := ledger.Asset(mocks.GenericToken)
		require.NoError(t, err)
		assert.Equal(t, int64(1_000_000), asset.Supply.Units.Int64())
	})

	t.Run("collects failed entries", func(t *testing.T) {
		t.Parallel()

		ledger := sandbox.New(mocks.NoopLogger, helpers.InMemoryDB(t))
		seed := sandbox.Seed{
			Accounts: []sandbox.SeedAccount{{Name: "operator", Key: true}, {Name: ""}},
			Assets:   []sandbox.SeedAsset{{Symbol: "TST", Issuer: "nobody"}},
			Balances: []sandbox.SeedBalance{
				{Account: "operator", Symbol: "TST", Amount: "1"},
				{Account: "operator", Symbol: "TST", Amount: "lots"},
			},
		}

		err := ledger.Apply(seed)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "4 errors occurred")
		_, err = ledger.Account("operator")
		assert.NoError(t, err)
	})

	t.Run("handles negative balance", func(t *testing.T) {
		t.Parallel()

		ledger := newLedger(t)

		err := ledger.SetBalance(mocks.GenericOperator, mocks.GenericToken, decimal.NewFromInt(-1))

		assert.Error(t, err)
	})

	t.Run("handles invalid document", func(t *testing.T) {
		t.Parallel()

		_, err := sandbox.DecodeSeed(strings.NewReader("accounts: [nope"))

		assert.Error(t, err)
	})
}
