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

package failure

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PartialIssue is the error for a send-or-issue operation where the mint to the
// operating account went through, but the follow-up transfer did not. The newly
// issued supply remains on the operating account.
type PartialIssue struct {
	Description Description
	Symbol      string
	Account     string
	Amount      decimal.Decimal
	IssueTxID   string
	Err         error
}

// Error implements the error interface.
func (p PartialIssue) Error() string {
	return fmt.Sprintf("transfer failed after issue (symbol: %s, account: %s, amount: %s, issue: %s): %s", p.Symbol, p.Account, p.Amount, p.IssueTxID, p.Description)
}

// Unwrap returns the failure of the follow-up transfer.
func (p PartialIssue) Unwrap() error {
	return p.Err
}
