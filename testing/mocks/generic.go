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
	"errors"
	"io"
	"math/big"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/models/coin"
)

// Global variables that can be used for testing. They are non-nil valid values
// for the types commonly needed to test dispatch components.
var (
	NoopLogger = zerolog.New(io.Discard)

	GenericError = errors.New("dummy error")

	GenericSymbol = coin.Symbol("TST")

	GenericNetwork = "sandbox"

	GenericNode = "https://node.example.com:443"

	GenericContract = "tst.token"

	GenericOperator = "operator"

	GenericIssuer = "issuer"

	GenericRecipient = "recipient"

	GenericMemo = "order-42"

	GenericTxID = "2a2a2a2a2a2a2a2a"

	GenericPrecision = uint(4)

	GenericToken = chain.Token{
		Symbol:   string(GenericSymbol),
		Contract: GenericContract,
	}

	GenericAccount = chain.Account{
		Name: GenericOperator,
		ID:   "1.2.42",
	}

	GenericAsset = chain.Asset{
		Token:     GenericToken,
		Issuer:    GenericIssuer,
		Precision: GenericPrecision,
		Supply:    GenericQuantity(10_000_000_000),
	}

	GenericAmount = decimal.RequireFromString("12.3456")
)

// GenericConfig returns a complete coin configuration on the sandbox network.
func GenericConfig() coin.Config {
	return coin.Config{
		Symbol:           GenericSymbol,
		Network:          GenericNetwork,
		OperatingAccount: GenericOperator,
		Endpoint:         GenericNode,
		Settings: coin.Settings{
			"contract": GenericContract,
		},
	}
}

// GenericQuantity returns the given number of minor units at the generic
// precision.
func GenericQuantity(units int64) chain.Quantity {
	return chain.Quantity{
		Units:     big.NewInt(units),
		Precision: GenericPrecision,
	}
}

// GenericReceipt returns a receipt for a transfer between the given accounts.
func GenericReceipt(from string, to string, units int64, memo string) chain.Receipt {
	return chain.Receipt{
		TxID:   GenericTxID,
		Token:  GenericToken,
		From:   from,
		To:     to,
		Amount: GenericQuantity(units),
		Fee:    GenericQuantity(0),
		Memo:   memo,
	}
}

// GenericHealth returns a healthy report for the generic symbol.
func GenericHealth() coin.Health {
	return coin.Health{
		Handler:   GenericNetwork,
		Symbol:    GenericSymbol,
		Status:    coin.StatusOK,
		Node:      GenericNode,
		Issuer:    GenericIssuer,
		Precision: "4",
		Account:   GenericOperator,
		Balance:   "12.3456",
	}
}

// GenericResult returns a transaction result of the given kind.
func GenericResult(kind coin.SendKind) coin.Result {
	return coin.Result{
		TxID:   GenericTxID,
		Symbol: GenericSymbol,
		Amount: GenericAmount,
		Fee:    decimal.Zero,
		From:   GenericOperator,
		To:     GenericRecipient,
		Kind:   kind,
	}
}
