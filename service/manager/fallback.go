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

package manager

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/optakt/coin-dispatch/failure"
	"github.com/optakt/coin-dispatch/models/coin"
)

// IssueMemo is the memo attached to the mint preceding a send-or-issue
// transfer.
const IssueMemo = "pre-transfer mint"

// SendOrIssue sends the amount from the operating account. If the operating
// account does not hold enough, it first issues the amount to the operating
// account and then sends it. In that case, the result is labelled as an issue,
// because new supply was created.
//
// The mint always completes before the transfer is attempted. If the mint
// fails, its failure is returned. If the transfer after a successful mint
// fails, a PartialIssue failure wrapping the transfer failure is returned.
func (m *Manager) SendOrIssue(amount decimal.Decimal, address string, memo string) (coin.Result, error) {

	result, err := m.Send(amount, address, memo, "")
	var insufficient failure.InsufficientBalance
	if !errors.As(err, &insufficient) {
		return result, err
	}

	m.log.Info().
		Str("account", m.coin.OperatingAccount).
		Str("amount", amount.String()).
		Msg("insufficient balance, issuing to operating account before transfer")

	issued, err := m.Issue(amount, m.coin.OperatingAccount, IssueMemo)
	if err != nil {
		return coin.Result{}, err
	}

	result, err = m.Send(amount, address, memo, m.coin.OperatingAccount)
	if err != nil {
		m.log.Error().
			Err(err).
			Str("issue", issued.TxID).
			Msg("transfer failed after issuing to operating account")

		return coin.Result{}, failure.PartialIssue{
			Description: failure.NewDescription("issued supply remains on operating account",
				failure.WithString("to", address),
				failure.WithErr(err),
			),
			Symbol:    m.coin.Symbol.String(),
			Account:   m.coin.OperatingAccount,
			Amount:    issued.Amount,
			IssueTxID: issued.TxID,
			Err:       err,
		}
	}

	return result.Relabel(coin.KindIssue), nil
}
