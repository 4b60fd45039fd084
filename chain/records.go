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

package chain

import (
	"math/big"
)

// Token identifies a token on a network. The contract is empty on networks
// where tokens are not hosted by a contract.
type Token struct {
	Symbol   string
	Contract string
}

// Account is the on-chain metadata of an account.
type Account struct {
	Name string
	ID   string
}

// Asset is the on-chain metadata of a token.
type Asset struct {
	Token     Token
	Issuer    string
	Precision uint
	Supply    Quantity
}

// Quantity is an integer number of minor units at a given precision.
type Quantity struct {
	Units     *big.Int
	Precision uint
}

// Transfer is the intent to move existing balance between two accounts.
type Transfer struct {
	Token  Token
	From   string
	To     string
	Amount Quantity
	Memo   string
}

// Issue is the intent to mint new supply of a token to an account.
type Issue struct {
	Token  Token
	To     string
	Amount Quantity
	Memo   string
}

// Receipt is the record of an executed transfer or issue. The transaction ID
// is empty if the node did not report one.
type Receipt struct {
	TxID   string
	Token  Token
	From   string
	To     string
	Amount Quantity
	Fee    Quantity
	Memo   string
}
