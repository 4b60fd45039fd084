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

package coin

import (
	"github.com/shopspring/decimal"
)

// Handler is the contract implemented by every coin handler, regardless of
// its network. Balance, AddressValid, Health and HealthTest never fail; they
// degrade to a safe default value instead. Issue, Send and SendOrIssue return
// typed failures.
type Handler interface {
	Symbol() Symbol
	Health() Health
	HealthTest() bool
	Balance(query BalanceQuery) decimal.Decimal
	DepositTarget() Deposit
	AddressValid(address string) bool
	Issue(amount decimal.Decimal, address string, memo string) (Result, error)
	Send(amount decimal.Decimal, address string, memo string, from string) (Result, error)
	SendOrIssue(amount decimal.Decimal, address string, memo string) (Result, error)
}
