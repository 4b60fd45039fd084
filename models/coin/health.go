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
	"fmt"
)

// Status is the overall status of a health report.
type Status string

// Supported health statuses.
const (
	StatusOK        Status = "ok"
	StatusError     Status = "error"
	StatusUnhandled Status = "unhandled exception"
)

// Placeholders displayed instead of a value when the value could not be
// retrieved.
const (
	PlaceholderBalance   = "ERROR GETTING BALANCE"
	PlaceholderPrecision = "ERROR GETTING PRECISION"
	PlaceholderIssuer    = "ERROR GETTING ISSUER"
	PlaceholderAccount   = "ERROR GETTING ACCOUNT NAME"
)

// Headings are the column headings of a health report row.
var Headings = []string{
	"Symbol",
	"Status",
	"API Node",
	"Issuer",
	"Precision",
	"Our Account",
	"Our Balance",
}

// Health is a single health report for a coin. It is built fresh on every
// probe.
type Health struct {
	Handler   string `json:"handler"`
	Symbol    Symbol `json:"symbol"`
	Status    Status `json:"status"`
	Node      string `json:"node"`
	Issuer    string `json:"issuer"`
	Precision string `json:"precision"`
	Account   string `json:"account"`
	Balance   string `json:"balance"`
}

// Row returns the report values in the order of the headings.
func (h Health) Row() []string {
	return []string{
		string(h.Symbol),
		string(h.Status),
		h.Node,
		h.Issuer,
		h.Precision,
		h.Account,
		h.Balance,
	}
}

// Degrade lowers the status of the report. An unhandled status is never
// lowered back to a plain error.
func (h *Health) Degrade(status Status) {
	if h.Status == StatusUnhandled {
		return
	}
	h.Status = status
}

// SymbolMissing is the placeholder for a token that does not exist on chain.
func SymbolMissing(symbol Symbol) string {
	return fmt.Sprintf("Symbol %s not found", symbol)
}

// AccountMissing is the placeholder for an account that does not exist on chain.
func AccountMissing(account string) string {
	return fmt.Sprintf("Account %s not found", account)
}
