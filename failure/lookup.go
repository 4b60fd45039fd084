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
)

// UnknownSymbol is returned by the registry when no handler provides the
// requested symbol.
type UnknownSymbol struct {
	Description Description
	Symbol      string
}

// Error implements the error interface.
func (u UnknownSymbol) Error() string {
	return fmt.Sprintf("unknown symbol (symbol: %s): %s", u.Symbol, u.Description)
}

// NetworkError wraps any transport or protocol failure raised while talking
// to a chain node.
type NetworkError struct {
	Description Description
	Network     string
	Node        string
}

// Error implements the error interface.
func (n NetworkError) Error() string {
	return fmt.Sprintf("network error (network: %s, node: %s): %s", n.Network, n.Node, n.Description)
}

// AccountNotFound is the error for an account which does not exist on chain.
type AccountNotFound struct {
	Description Description
	Account     string
}

// Error implements the error interface.
func (a AccountNotFound) Error() string {
	return fmt.Sprintf("account not found (account: %s): %s", a.Account, a.Description)
}

// TokenNotFound is the error for a token which does not exist on chain.
type TokenNotFound struct {
	Description Description
	Symbol      string
}

// Error implements the error interface.
func (t TokenNotFound) Error() string {
	return fmt.Sprintf("token not found (symbol: %s): %s", t.Symbol, t.Description)
}
