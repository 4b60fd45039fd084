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

// SendKind distinguishes transfers of existing supply from mints of new supply.
type SendKind string

// Supported send kinds.
const (
	KindSend  SendKind = "send"
	KindIssue SendKind = "issue"
)

// Result is the outcome of an issue or send operation. The transaction ID is
// empty when the network does not report one.
type Result struct {
	TxID   string          `json:"txid,omitempty"`
	Symbol Symbol          `json:"coin"`
	Amount decimal.Decimal `json:"amount"`
	Fee    decimal.Decimal `json:"fee"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	Kind   SendKind        `json:"send_type"`
}

// Relabel returns a copy of the result with the given send kind.
func (r Result) Relabel(kind SendKind) Result {
	r.Kind = kind
	return r
}
