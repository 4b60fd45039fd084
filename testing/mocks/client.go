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
	"testing"

	"github.com/optakt/coin-dispatch/chain"
)

type Client struct {
	NodeFunc     func() string
	AccountFunc  func(name string) (chain.Account, error)
	AssetFunc    func(token chain.Token) (chain.Asset, error)
	BalanceFunc  func(account string, token chain.Token) (chain.Quantity, error)
	HistoryFunc  func(account string, token chain.Token, limit uint) ([]chain.Receipt, error)
	TransferFunc func(transfer chain.Transfer) (chain.Receipt, error)
	IssueFunc    func(issue chain.Issue) (chain.Receipt, error)
}

func BaselineClient(t *testing.T) *Client {
	t.Helper()

	c := Client{
		NodeFunc: func() string {
			return GenericNode
		},
		AccountFunc: func(name string) (chain.Account, error) {
			account := GenericAccount
			account.Name = name
			return account, nil
		},
		AssetFunc: func(token chain.Token) (chain.Asset, error) {
			return GenericAsset, nil
		},
		BalanceFunc: func(account string, token chain.Token) (chain.Quantity, error) {
			return GenericQuantity(123456), nil
		},
		HistoryFunc: func(account string, token chain.Token, limit uint) ([]chain.Receipt, error) {
			receipts := []chain.Receipt{
				GenericReceipt(GenericRecipient, account, 10000, GenericMemo),
				GenericReceipt(GenericRecipient, account, 5000, "other"),
			}
			return receipts, nil
		},
		TransferFunc: func(transfer chain.Transfer) (chain.Receipt, error) {
			return GenericReceipt(transfer.From, transfer.To, transfer.Amount.Units.Int64(), transfer.Memo), nil
		},
		IssueFunc: func(issue chain.Issue) (chain.Receipt, error) {
			return GenericReceipt(GenericIssuer, issue.To, issue.Amount.Units.Int64(), issue.Memo), nil
		},
	}

	return &c
}

func (c *Client) Node() string {
	return c.NodeFunc()
}

func (c *Client) Account(name string) (chain.Account, error) {
	return c.AccountFunc(name)
}

func (c *Client) Asset(token chain.Token) (chain.Asset, error) {
	return c.AssetFunc(token)
}

func (c *Client) Balance(account string, token chain.Token) (chain.Quantity, error) {
	return c.BalanceFunc(account, token)
}

func (c *Client) History(account string, token chain.Token, limit uint) ([]chain.Receipt, error) {
	return c.HistoryFunc(account, token, limit)
}

func (c *Client) Transfer(transfer chain.Transfer) (chain.Receipt, error) {
	return c.TransferFunc(transfer)
}

func (c *Client) Issue(issue chain.Issue) (chain.Receipt, error) {
	return c.IssueFunc(issue)
}
