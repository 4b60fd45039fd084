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
	"runtime/debug"
	"strconv"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/failure"
	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/models/precision"
	"github.com/optakt/coin-dispatch/service/resolver"
)

// Health probes the asset, issuer, operating account and balance of the coin
// and reduces the results into a report. It never fails. The asset and issuer
// are probed independently from the operating account and its balance, so a
// failure in one chain still leaves the other chain's fields populated.
func (m *Manager) Health() coin.Health {

	report := coin.Health{
		Handler:   m.profile.Name,
		Symbol:    m.coin.Symbol,
		Status:    coin.StatusOK,
		Node:      m.node(),
		Issuer:    coin.PlaceholderIssuer,
		Precision: coin.PlaceholderPrecision,
		Account:   coin.PlaceholderAccount,
		Balance:   coin.PlaceholderBalance,
	}

	lookup := m.resolve.Lookup()
	m.guard(&report, "asset", func() { m.probeAsset(&report, lookup) })
	m.guard(&report, "account", func() { m.probeAccount(&report, lookup) })

	return report
}

// HealthTest returns true only if every field of the health report resolved
// cleanly.
func (m *Manager) HealthTest() bool {
	return m.Health().Status == coin.StatusOK
}

// guard runs one probe chain, turning a panic into an unhandled status.
func (m *Manager) guard(report *coin.Health, stage string, probe func()) {
	defer func() {
		r := recover()
		if r != nil {
			m.log.Error().
				Str("stage", stage).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("unhandled failure during health probe")
			report.Degrade(coin.StatusUnhandled)
		}
	}()
	probe()
}

func (m *Manager) probeAsset(report *coin.Health, lookup *resolver.Lookup) {

	asset, err := lookup.Asset(m.token)
	var missing failure.TokenNotFound
	switch {
	case err == nil:
		report.Precision = strconv.FormatUint(uint64(asset.Precision), 10)
	case errors.As(err, &missing):
		m.log.Warn().Err(err).Msg("token not found during health probe")
		report.Precision = coin.SymbolMissing(m.coin.Symbol)
		report.Issuer = coin.SymbolMissing(m.coin.Symbol)
		report.Degrade(coin.StatusError)
		return
	default:
		m.unexpected(report, err, "could not retrieve asset during health probe")
		return
	}

	if asset.Issuer == "" {
		report.Issuer = ""
		return
	}

	issuer, err := lookup.Account(asset.Issuer)
	var absent failure.AccountNotFound
	switch {
	case err == nil:
		report.Issuer = issuer.Name
	case errors.As(err, &absent):
		// Some networks report issuers by an identifier that is not itself a
		// resolvable account, so we show it as-is.
		report.Issuer = asset.Issuer
	default:
		m.unexpected(report, err, "could not retrieve issuer during health probe")
	}
}

func (m *Manager) probeAccount(report *coin.Health, lookup *resolver.Lookup) {

	name := m.coin.OperatingAccount
	if name == "" {
		m.log.Warn().Msg("no operating account configured")
		report.Degrade(coin.StatusError)
		return
	}

	account, err := lookup.Account(name)
	var missing failure.AccountNotFound
	switch {
	case err == nil:
		report.Account = account.Name
	case errors.As(err, &missing):
		m.log.Warn().Err(err).Msg("operating account not found during health probe")
		report.Account = coin.AccountMissing(name)
		report.Degrade(coin.StatusError)
		return
	default:
		m.unexpected(report, err, "could not retrieve operating account during health probe")
		return
	}

	quantity, err := m.client.Balance(account.Name, m.token)
	if errors.Is(err, chain.ErrTokenNotFound) {
		m.log.Warn().Err(err).Msg("token not found while retrieving balance")
		report.Balance = "0.0"
		report.Degrade(coin.StatusError)
		return
	}
	if err != nil {
		m.logClientFailure(m.log, err, "could not retrieve balance during health probe")
		report.Degrade(coin.StatusError)
		return
	}

	balance, err := m.amount(quantity)
	if err != nil {
		m.log.Warn().Err(err).Msg("could not convert balance during health probe")
		report.Degrade(coin.StatusError)
		return
	}

	report.Balance = precision.Format(balance, m.decimals)
}

// unexpected handles a resolver error which is not a not-found condition.
// Network errors are anticipated and degrade the report to an error, while
// anything else is a programming error and marks the report as unhandled.
func (m *Manager) unexpected(report *coin.Health, err error, msg string) {
	var network failure.NetworkError
	if errors.As(err, &network) {
		m.log.Warn().Err(err).Msg(msg)
		report.Degrade(coin.StatusError)
		return
	}
	m.log.Error().Err(err).Msg(msg)
	report.Degrade(coin.StatusUnhandled)
}
