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

// AuthorityMissing is the error for a transfer whose source account signing
// credential is not available.
type AuthorityMissing struct {
	Description Description
	Account     string
}

// Error implements the error interface.
func (a AuthorityMissing) Error() string {
	return fmt.Sprintf("authority missing (account: %s): %s", a.Account, a.Description)
}

// IssuerKeyError is the error for a mint whose issuer signing credential is not
// available.
type IssuerKeyError struct {
	Description Description
	Issuer      string
}

// Error implements the error interface.
func (i IssuerKeyError) Error() string {
	return fmt.Sprintf("issuer key unavailable (issuer: %s): %s", i.Issuer, i.Description)
}

// IssueNotSupported is the error for a mint on a network or contract that has
// no issuing model.
type IssueNotSupported struct {
	Description Description
	Symbol      string
	Network     string
}

// Error implements the error interface.
func (i IssueNotSupported) Error() string {
	return fmt.Sprintf("issue not supported (symbol: %s, network: %s): %s", i.Symbol, i.Network, i.Description)
}

// MissingSourceAccount is the error for a transfer with neither an explicit
// source nor a configured operating account.
type MissingSourceAccount struct {
	Description Description
	Symbol      string
}

// Error implements the error interface.
func (m MissingSourceAccount) Error() string {
	return fmt.Sprintf("missing source account (symbol: %s): %s", m.Symbol, m.Description)
}
