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

// DepositKind is the kind of target that deposits are sent to.
type DepositKind string

// Supported deposit kinds.
const (
	DepositAccount DepositKind = "account"
	DepositAddress DepositKind = "address"
)

// Deposit is the target to which deposits of a coin should be sent.
type Deposit struct {
	Kind    DepositKind `json:"kind"`
	Account string      `json:"account"`
}

// BalanceQuery selects the balance to retrieve. An empty account selects the
// operating account; a non-empty memo selects the total received with that
// memo instead of the current balance.
type BalanceQuery struct {
	Account       string
	Memo          string
	CaseSensitive bool
}
