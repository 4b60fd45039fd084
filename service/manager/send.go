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

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/failure"
	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/models/precision"
	"github.com/optakt/coin-dispatch/service/resolver"
)

// Send transfers existing balance to the given address. The source account is
// the given one, or the operating account if none is given.
func (m *Manager) Send(amount decimal.Decimal, address string, memo string, from string) (coin.Result, error) {

	source := from
	if source == "" {
		source = m.coin.OperatingAccount
	}
	if source == "" {
		return coin.Result{}, failure.MissingSourceAccount{
			Description: failure.NewDescription("no source account given and no operating account configured"),
			Symbol:      m.coin.Symbol.String(),
		}
	}

	quantity, normalized, err := m.quantity(amount)
	if err != nil {
		return coin.Result{}, err
	}

	lookup := m.resolve.Lookup()
	err = m.destination(lookup, address)
	if err != nil {
		return coin.Result{}, err
	}
	_, err = lookup.Asset(m.token)
	if err != nil {
		return coin.Result{}, err
	}

	transfer := chain.Transfer{
		Token:  m.token,
		From:   source,
		To:     address,
		Amount: quantity,
		Memo:   m.memo(memo),
	}
	receipt, err := m.client.Transfer(transfer)
	if err != nil {
		return coin.Result{}, m.transferFailure(err, transfer, normalized)
	}

	m.log.Info().
		Str("from", source).
		Str("to", address).
		Str("amount", normalized.String()).
		Str("txid", receipt.TxID).
		Msg("tokens sent")

	return m.result(receipt, coin.KindSend, source, address, normalized)
}

// Issue mints new supply of the coin to the given address.
func (m *Manager) Issue(amount decimal.Decimal, address string, memo string) (coin.Result, error) {

	if !m.profile.Issue {
		return coin.Result{}, failure.IssueNotSupported{
			Description: failure.NewDescription("network has no issuing model"),
			Symbol:      m.coin.Symbol.String(),
			Network:     m.profile.Name,
		}
	}

	quantity, normalized, err := m.quantity(amount)
	if err != nil {
		return coin.Result{}, err
	}

	lookup := m.resolve.Lookup()
	err = m.destination(lookup, address)
	if err != nil {
		return coin.Result{}, err
	}
	asset, err := lookup.Asset(m.token)
	if err != nil {
		return coin.Result{}, err
	}

	issue := chain.Issue{
		Token:  m.token,
		To:     address,
		Amount: quantity,
		Memo:   m.memo(memo),
	}
	receipt, err := m.client.Issue(issue)
	if err != nil {
		return coin.Result{}, m.issueFailure(err, issue, asset)
	}

	m.log.Info().
		Str("issuer", asset.Issuer).
		Str("to", address).
		Str("amount", normalized.String()).
		Str("txid", receipt.TxID).
		Msg("tokens issued")

	return m.result(receipt, coin.KindIssue, asset.Issuer, address, normalized)
}

// quantity normalizes the amount to the precision of the coin and converts it
// into minor units. Amounts that do not amount to at least one minor unit are
// rejected.
func (m *Manager) quantity(amount decimal.Decimal) (chain.Quantity, decimal.Decimal, error) {

	normalized, err := precision.Normalize(amount, m.decimals)
	if err != nil {
		return chain.Quantity{}, decimal.Zero, err
	}
	if !normalized.IsPositive() {
		return chain.Quantity{}, decimal.Zero, failure.ArithmeticUnderflow{
			Description: failure.NewDescription("amount rounds down to zero at token precision",
				failure.WithDecimal("smallest", precision.Smallest(m.decimals)),
			),
			Amount:    amount,
			Precision: m.decimals,
		}
	}

	units, err := precision.ToMinorUnits(normalized, m.decimals)
	if err != nil {
		return chain.Quantity{}, decimal.Zero, err
	}

	q := chain.Quantity{
		Units:     units,
		Precision: m.decimals,
	}

	return q, normalized, nil
}

// destination checks that the address is well-formed for the network and
// exists on chain.
func (m *Manager) destination(lookup *resolver.Lookup, address string) error {
	if !m.profile.ValidAddress(address) {
		return failure.AccountNotFound{
			Description: failure.NewDescription("address is not well-formed for network",
				failure.WithString("network", m.profile.Name),
			),
			Account: address,
		}
	}
	_, err := lookup.Account(address)
	return err
}

// memo returns the memo to attach on chain. Networks without memo support
// drop it.
func (m *Manager) memo(memo string) string {
	if memo == "" || m.profile.Memo {
		return memo
	}
	m.log.Warn().Str("memo", memo).Msg("network does not support memos, dropping memo")
	return ""
}

func (m *Manager) result(receipt chain.Receipt, kind coin.SendKind, from string, to string, normalized decimal.Decimal) (coin.Result, error) {

	amount := normalized
	if receipt.Amount.Units != nil {
		moved, err := m.amount(receipt.Amount)
		if err != nil {
			return coin.Result{}, resolver.Network(m.profile.Name, m.node(), "could not decode receipt amount", err,
				failure.WithString("txid", receipt.TxID),
			)
		}
		amount = moved
	}

	fee := decimal.Zero
	if receipt.Fee.Units != nil {
		paid, err := precision.FromMinorUnits(receipt.Fee.Units, receipt.Fee.Precision)
		if err != nil {
			return coin.Result{}, resolver.Network(m.profile.Name, m.node(), "could not decode receipt fee", err,
				failure.WithString("txid", receipt.TxID),
			)
		}
		fee = paid
	}

	if receipt.From != "" {
		from = receipt.From
	}
	if receipt.To != "" {
		to = receipt.To
	}

	r := coin.Result{
		TxID:   receipt.TxID,
		Symbol: m.coin.Symbol,
		Amount: amount,
		Fee:    fee,
		From:   from,
		To:     to,
		Kind:   kind,
	}

	return r, nil
}

func (m *Manager) transferFailure(err error, transfer chain.Transfer, amount decimal.Decimal) error {
	switch {
	case errors.Is(err, chain.ErrInsufficientBalance):
		return failure.InsufficientBalance{
			Description: failure.NewDescription("source account balance is too low for transfer",
				failure.WithString("symbol", m.coin.Symbol.String()),
			),
			Account: transfer.From,
			Amount:  amount,
		}
	case errors.Is(err, chain.ErrMissingKey):
		return failure.AuthorityMissing{
			Description: failure.NewDescription("no signing key available for source account",
				failure.WithString("network", m.profile.Name),
			),
			Account: transfer.From,
		}
	case errors.Is(err, chain.ErrAccountNotFound):
		return failure.AccountNotFound{
			Description: failure.NewDescription("transfer account does not exist on chain",
				failure.WithString("from", transfer.From),
				failure.WithString("to", transfer.To),
			),
			Account: transfer.To,
		}
	case errors.Is(err, chain.ErrTokenNotFound):
		return failure.TokenNotFound{
			Description: failure.NewDescription("token does not exist on chain",
				failure.WithString("contract", transfer.Token.Contract),
			),
			Symbol: transfer.Token.Symbol,
		}
	default:
		return resolver.Network(m.profile.Name, m.node(), "could not execute transfer", err,
			failure.WithString("from", transfer.From),
			failure.WithString("to", transfer.To),
		)
	}
}

func (m *Manager) issueFailure(err error, issue chain.Issue, asset chain.Asset) error {
	switch {
	case errors.Is(err, chain.ErrMissingKey):
		return failure.IssuerKeyError{
			Description: failure.NewDescription("no signing key available for issuer account",
				failure.WithString("symbol", m.coin.Symbol.String()),
			),
			Issuer: asset.Issuer,
		}
	case errors.Is(err, chain.ErrNotSupported):
		return failure.IssueNotSupported{
			Description: failure.NewDescription("token contract can not issue", failure.WithErr(err)),
			Symbol:      m.coin.Symbol.String(),
			Network:     m.profile.Name,
		}
	case errors.Is(err, chain.ErrAccountNotFound):
		return failure.AccountNotFound{
			Description: failure.NewDescription("issue account does not exist on chain"),
			Account:     issue.To,
		}
	case errors.Is(err, chain.ErrTokenNotFound):
		return failure.TokenNotFound{
			Description: failure.NewDescription("token does not exist on chain",
				failure.WithString("contract", issue.Token.Contract),
			),
			Symbol: issue.Token.Symbol,
		}
	default:
		return resolver.Network(m.profile.Name, m.node(), "could not execute issue", err,
			failure.WithString("to", issue.To),
		)
	}
}
