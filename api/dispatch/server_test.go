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

package dispatch_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/coin-dispatch/api/dispatch"
	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/service/health"
	"github.com/optakt/coin-dispatch/service/registry"
	"github.com/optakt/coin-dispatch/testing/mocks"
)

func setup(t *testing.T, handler coin.Handler) *echo.Echo {
	t.Helper()

	r := registry.New(mocks.NoopLogger, mocks.BaselineSource(t), mocks.BaselineDialer(t),
		registry.WithDecorator(func(coin.Handler) coin.Handler {
			return handler
		}),
	)
	_, err := r.Refresh()
	require.NoError(t, err)

	e := echo.New()
	server := dispatch.NewServer(mocks.NoopLogger, r, health.NewMonitor(mocks.NoopLogger))
	server.Route(e)

	return e
}

func get(t *testing.T, e *echo.Echo, path string, res interface{}) int {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	e.ServeHTTP(rec, req)

	if res != nil {
		err := json.Unmarshal(rec.Body.Bytes(), res)
		require.NoError(t, err, rec.Body.String())
	}

	return rec.Code
}

func TestServer_Coins(t *testing.T) {

	e := setup(t, mocks.BaselineHandler(t))

	var res dispatch.CoinsResponse
	code := get(t, e, "/coins", &res)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []coin.Symbol{mocks.GenericSymbol}, res.Symbols)
	assert.Equal(t, map[string][]coin.Symbol{mocks.GenericNetwork: {mocks.GenericSymbol}}, res.Networks)
}

func TestServer_Health(t *testing.T) {

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		e := setup(t, mocks.BaselineHandler(t))

		var res dispatch.HealthResponse
		code := get(t, e, "/health", &res)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, coin.Headings, res.Headings)
		assert.Equal(t, 1, res.Healthy)
		assert.Equal(t, []coin.Health{mocks.GenericHealth()}, res.Reports)
	})

	t.Run("single symbol", func(t *testing.T) {
		t.Parallel()

		handler := mocks.BaselineHandler(t)
		handler.HealthFunc = func() coin.Health {
			report := mocks.GenericHealth()
			report.Status = coin.StatusError
			return report
		}
		e := setup(t, handler)

		var res coin.Health
		code := get(t, e, "/coins/tst/health", &res)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, coin.StatusError, res.Status)
	})

	t.Run("handles unknown symbol", func(t *testing.T) {
		t.Parallel()

		e := setup(t, mocks.BaselineHandler(t))

		var res dispatch.Error
		code := get(t, e, "/coins/NOPE/health", &res)

		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, dispatch.CodeUnknownSymbol, res.Code)
		assert.Equal(t, "NOPE", res.Details["symbol"])
	})
}

func TestServer_Balance(t *testing.T) {

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		var got coin.BalanceQuery
		handler := mocks.BaselineHandler(t)
		handler.BalanceFunc = func(query coin.BalanceQuery) decimal.Decimal {
			got = query
			return mocks.GenericAmount
		}
		e := setup(t, handler)

		var res dispatch.BalanceResponse
		code := get(t, e, "/coins/TST/balance?account=alice&memo=order-42&case_sensitive=true", &res)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, coin.BalanceQuery{Account: "alice", Memo: "order-42", CaseSensitive: true}, got)
		assert.Equal(t, mocks.GenericSymbol, res.Symbol)
		assert.Equal(t, "alice", res.Account)
		assert.Equal(t, "12.3456", res.Balance)
	})

	t.Run("defaults to operating account", func(t *testing.T) {
		t.Parallel()

		e := setup(t, mocks.BaselineHandler(t))

		var res dispatch.BalanceResponse
		code := get(t, e, "/coins/TST/balance", &res)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, mocks.GenericOperator, res.Account)
	})

	t.Run("handles malformed query", func(t *testing.T) {
		t.Parallel()

		e := setup(t, mocks.BaselineHandler(t))

		var res dispatch.Error
		code := get(t, e, "/coins/TST/balance?case_sensitive=maybe", &res)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, dispatch.CodeInvalidFormat, res.Code)
	})

	t.Run("handles oversized symbol", func(t *testing.T) {
		t.Parallel()

		e := setup(t, mocks.BaselineHandler(t))

		code := get(t, e, "/coins/ABCDEFGHIJKLMNOPQRSTUVWXYZ/balance", nil)

		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestServer_Deposit(t *testing.T) {

	e := setup(t, mocks.BaselineHandler(t))

	var res coin.Deposit
	code := get(t, e, "/coins/TST/deposit", &res)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, coin.Deposit{Kind: coin.DepositAccount, Account: mocks.GenericOperator}, res)
}

func TestServer_Address(t *testing.T) {

	handler := mocks.BaselineHandler(t)
	handler.AddressValidFunc = func(address string) bool {
		return address == mocks.GenericRecipient
	}
	e := setup(t, handler)

	var res dispatch.AddressResponse
	code := get(t, e, "/coins/TST/address/recipient", &res)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, res.Valid)
	assert.Equal(t, mocks.GenericRecipient, res.Address)

	code = get(t, e, "/coins/TST/address/stranger", &res)
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, res.Valid)
}

func TestServer_MovesNoFunds(t *testing.T) {

	handler := mocks.BaselineHandler(t)
	handler.SendFunc = func(decimal.Decimal, string, string, string) (coin.Result, error) {
		t.Fatal("unexpected transfer")
		return coin.Result{}, nil
	}
	e := setup(t, handler)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/coins/TST/balance", nil)
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
