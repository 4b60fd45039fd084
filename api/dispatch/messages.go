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

package dispatch

import (
	"github.com/optakt/coin-dispatch/failure"
	"github.com/optakt/coin-dispatch/models/coin"
)

// CoinsResponse lists the provided symbols, per network.
type CoinsResponse struct {
	Symbols  []coin.Symbol            `json:"symbols"`
	Networks map[string][]coin.Symbol `json:"networks"`
}

// HealthResponse holds the health reports of all provided symbols.
type HealthResponse struct {
	Headings []string      `json:"headings"`
	Healthy  int           `json:"healthy"`
	Reports  []coin.Health `json:"reports"`
}

// SymbolRequest selects a provided symbol.
type SymbolRequest struct {
	Symbol string `param:"symbol" validate:"required,max=16"`
}

// BalanceRequest selects the balance to retrieve for a symbol.
type BalanceRequest struct {
	Symbol        string `param:"symbol" validate:"required,max=16"`
	Account       string `query:"account" validate:"max=128"`
	Memo          string `query:"memo" validate:"max=256"`
	CaseSensitive bool   `query:"case_sensitive"`
}

// BalanceResponse is the balance of an account for a symbol.
type BalanceResponse struct {
	Symbol  coin.Symbol `json:"symbol"`
	Account string      `json:"account"`
	Memo    string      `json:"memo,omitempty"`
	Balance string      `json:"balance"`
}

// AddressRequest selects an address to validate for a symbol.
type AddressRequest struct {
	Symbol  string `param:"symbol" validate:"required,max=16"`
	Address string `param:"address" validate:"required,max=128"`
}

// AddressResponse tells whether an address is valid for a symbol.
type AddressResponse struct {
	Symbol  coin.Symbol `json:"symbol"`
	Address string      `json:"address"`
	Valid   bool        `json:"valid"`
}

// Error is the body of a failed request.
type Error struct {
	Code        string                 `json:"code"`
	Description string                 `json:"description"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

// Error codes of failed requests.
const (
	CodeInvalidFormat = "invalid_format"
	CodeUnknownSymbol = "unknown_symbol"
	CodeInternal      = "internal"
)

// InvalidFormat is the error for a malformed request.
func InvalidFormat(err error) Error {
	return Error{
		Code:        CodeInvalidFormat,
		Description: "request is malformed",
		Details: map[string]interface{}{
			"error": err.Error(),
		},
	}
}

// UnknownSymbol is the error for a symbol no handler provides.
func UnknownSymbol(fail failure.UnknownSymbol) Error {
	details := fail.Description.Fields.Map()
	details["symbol"] = fail.Symbol
	return Error{
		Code:        CodeUnknownSymbol,
		Description: fail.Description.Text,
		Details:     details,
	}
}

// Internal is the error for any unexpected failure.
func Internal(err error) Error {
	return Error{
		Code:        CodeInternal,
		Description: "internal error",
		Details: map[string]interface{}{
			"error": err.Error(),
		},
	}
}
