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

package mocks

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/optakt/coin-dispatch/models/coin"
)

type Handler struct {
	SymbolFunc        func() coin.Symbol
	HealthFunc        func() coin.Health
	HealthTestFunc    func() bool
	BalanceFunc       func(query coin.BalanceQuery) decimal.Decimal
	DepositTargetFunc func() coin.Deposit
	AddressValidFunc  func(address string) bool
	IssueFunc         func(amount decimal.Decimal, address string, memo string) (coin.Result, error)
	SendFunc          func(amount decimal.Decimal, address string, memo string, from string) (coin.Result, error)
	SendOrIssueFunc   func(amount decimal.Decimal, address string, memo string) (coin.Result, error)
}

func BaselineHandler(t *testing.T) *Handler {
	t.Helper()

	h := Handler{
		SymbolFunc: func() coin.Symbol {
			return GenericSymbol
		},
		HealthFunc: func() coin.Health {
			return GenericHealth()
		},
		HealthTestFunc: func() bool {
			return true
		},
		BalanceFunc: func(query coin.BalanceQuery) decimal.Decimal {
			return GenericAmount
		},
		DepositTargetFunc: func() coin.Deposit {
			return coin.Deposit{Kind: coin.DepositAccount, Account: GenericOperator}
		},
		AddressValidFunc: func(address string) bool {
			return true
		},
		IssueFunc: func(amount decimal.Decimal, address string, memo string) (coin.Result, error) {
			return GenericResult(coin.KindIssue), nil
		},
		SendFunc: func(amount decimal.Decimal, address string, memo string, from string) (coin.Result, error) {
			return GenericResult(coin.KindSend), nil
		},
		SendOrIssueFunc: func(amount decimal.Decimal, address string, memo string) (coin.Result, error) {
			return GenericResult(coin.KindSend), nil
		},
	}

	return &h
}

func (h *Handler) Symbol() coin.Symbol {
	return h.SymbolFunc()
}

func (h *Handler) Health() coin.Health {
	return h.HealthFunc()
}

func (h *Handler) HealthTest() bool {
	return h.HealthTestFunc()
}

func (h *Handler) Balance(query coin.BalanceQuery) decimal.Decimal {
	return h.BalanceFunc(query)
}

func (h *Handler) DepositTarget() coin.Deposit {
	return h.DepositTargetFunc()
}

func (h *Handler) AddressValid(address string) bool {
	return h.AddressValidFunc(address)
}

func (h *Handler) Issue(amount decimal.Decimal, address string, memo string) (coin.Result, error) {
	return h.IssueFunc(amount, address, memo)
}

func (h *Handler) Send(amount decimal.Decimal, address string, memo string, from string) (coin.Result, error) {
	return h.SendFunc(amount, address, memo, from)
}

func (h *Handler) SendOrIssue(amount decimal.Decimal, address string, memo string) (coin.Result, error) {
	return h.SendOrIssueFunc(amount, address, memo)
}
