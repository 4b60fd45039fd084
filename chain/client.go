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

// Client is the contract of a network RPC binding. Implementations perform the
// actual wire calls and signing, and must be safe for concurrent use.
//
// Domain conditions are signalled by wrapping one of the sentinel errors of
// this package; any other error is treated as a transport failure.
type Client interface {
	Node() string
	Account(name string) (Account, error)
	Asset(token Token) (Asset, error)
	Balance(account string, token Token) (Quantity, error)
	History(account string, token Token, limit uint) ([]Receipt, error)
	Transfer(transfer Transfer) (Receipt, error)
	Issue(issue Issue) (Receipt, error)
}
