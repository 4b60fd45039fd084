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

package metrics

import (
	"time"

	"github.com/optakt/coin-dispatch/chain"
)

// Client wraps a chain client and records the duration of its calls.
type Client struct {
	client  chain.Client
	metrics *Collector
	network string
}

// Client decorates the given chain client of the given network.
func (c *Collector) Client(network string, client chain.Client) *Client {
	cl := Client{
		client:  client,
		metrics: c,
		network: network,
	}
	return &cl
}

func (c *Client) Node() string {
	return c.client.Node()
}

func (c *Client) Account(name string) (chain.Account, error) {
	defer c.duration("account")()
	return c.client.Account(name)
}

func (c *Client) Asset(token chain.Token) (chain.Asset, error) {
	defer c.duration("asset")()
	return c.client.Asset(token)
}

func (c *Client) Balance(account string, token chain.Token) (chain.Quantity, error) {
	defer c.duration("balance")()
	return c.client.Balance(account, token)
}

func (c *Client) History(account string, token chain.Token, limit uint) ([]chain.Receipt, error) {
	defer c.duration("history")()
	return c.client.History(account, token, limit)
}

func (c *Client) Transfer(transfer chain.Transfer) (chain.Receipt, error) {
	defer c.duration("transfer")()
	return c.client.Transfer(transfer)
}

func (c *Client) Issue(issue chain.Issue) (chain.Receipt, error) {
	defer c.duration("issue")()
	return c.client.Issue(issue)
}

func (c *Client) duration(call string) func() {
	now := time.Now()
	observer := c.metrics.calls.WithLabelValues(c.network, call)
	return func() {
		observer.Observe(time.Since(now).Seconds())
	}
}
