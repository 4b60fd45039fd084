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

package resolver

import (
	"github.com/optakt/coin-dispatch/chain"
)

type accountResult struct {
	account chain.Account
	err     error
}

type assetResult struct {
	asset chain.Asset
	err   error
}

// Lookup memoizes resolver results for one operation, so that an account or
// asset needed at several stages is only fetched once. It is not safe for
// concurrent use and must not outlive the operation it was created for.
type Lookup struct {
	resolve  *Resolver
	accounts map[string]accountResult
	assets   map[chain.Token]assetResult
}

// Account resolves the account through the memo.
func (l *Lookup) Account(name string) (chain.Account, error) {
	result, ok := l.accounts[name]
	if ok {
		return result.account, result.err
	}
	account, err := l.resolve.Account(name)
	l.accounts[name] = accountResult{account: account, err: err}
	return account, err
}

// Asset resolves the asset through the memo.
func (l *Lookup) Asset(token chain.Token) (chain.Asset, error) {
	result, ok := l.assets[token]
	if ok {
		return result.asset, result.err
	}
	asset, err := l.resolve.Asset(token)
	l.assets[token] = assetResult{asset: asset, err: err}
	return asset, err
}
