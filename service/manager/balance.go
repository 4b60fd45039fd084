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
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/models/precision"
)

// Balance returns the balance of the queried account, or of the operating
// account if none is given. If a memo is given, it returns the total amount
// ever received by the account with that memo instead; on networks without
// memo history, this is always zero. It never fails: on any error, it logs the
// cause and returns zero.
func (m *Manager) Balance(query coin.BalanceQuery) (balance decimal.Decimal) {

	account := query.Account
	if account == "" {
		account = m.coin.OperatingAccount
	}
	log := m.log.With().Str("account", account).Logger()

	defer func() {
		r := recover()
		if r != nil {
			log.Error().Interface("panic", r).Msg("unhandled failure while retrieving balance")
			balance = decimal.Zero
		}
	}()

	if account == "" {
		log.Warn().Msg("no account given and no operating account configured")
		return decimal.Zero
	}

	if query.Memo != "" {
		return m.received(log, account, query.Memo, query.CaseSensitive)
	}

	quantity, err := m.client.Balance(account, m.token)
	if err != nil {
		m.logClientFailure(log, err, "could not retrieve balance")
		return decimal.Zero
	}

	balance, err = m.amount(quantity)
	if err != nil {
		log.Warn().Err(err).Msg("could not convert balance")
		return decimal.Zero
	}

	return balance
}

// received totals the amounts received by the account with the given memo.
// Memos are compared after trimming whitespace, and case-insensitively unless
// requested otherwise.
func (m *Manager) received(log zerolog.Logger, account string, memo string, sensitive bool) decimal.Decimal {

	if !m.profile.MemoHistory {
		log.Debug().Msg("network has no memo history, memo balance is zero")
		return decimal.Zero
	}

	// Receipts name their recipient canonically, so an identifier has to be
	// resolved before it can be matched.
	resolved, err := m.resolve.Account(account)
	if err != nil {
		log.Warn().Err(err).Msg("could not resolve account for memo balance")
		return decimal.Zero
	}
	account = resolved.Name

	receipts, err := m.client.History(account, m.token, m.cfg.HistoryLimit)
	if err != nil {
		m.logClientFailure(log, err, "could not retrieve transfer history")
		return decimal.Zero
	}

	want := strings.TrimSpace(memo)
	total := decimal.Zero
	for _, receipt := range receipts {
		if receipt.To != account || receipt.Token.Symbol != m.token.Symbol {
			continue
		}
		got := strings.TrimSpace(receipt.Memo)
		if sensitive && got != want {
			continue
		}
		if !sensitive && !strings.EqualFold(got, want) {
			continue
		}
		amount, err := precision.FromMinorUnits(receipt.Amount.Units, receipt.Amount.Precision)
		if err != nil {
			log.Warn().Err(err).Str("txid", receipt.TxID).Msg("skipping receipt with invalid amount")
			continue
		}
		total = total.Add(amount)
	}

	total, err = precision.Normalize(total, m.decimals)
	if err != nil {
		log.Warn().Err(err).Msg("could not normalize received total")
		return decimal.Zero
	}

	return total
}

func (m *Manager) logClientFailure(log zerolog.Logger, err error, msg string) {
	switch {
	case errors.Is(err, chain.ErrAccountNotFound):
		log.Warn().Err(err).Msg(msg + ": account not found")
	case errors.Is(err, chain.ErrTokenNotFound):
		log.Warn().Err(err).Msg(msg + ": token not found")
	default:
		log.Warn().Err(err).Str("node", m.node()).Msg(msg + ": network error")
	}
}
