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
	"errors"
	"fmt"
	"math/big"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/failure"
)

// Resolver resolves account and asset metadata through a chain client. It never
// mutates any state on chain, and it translates every client error into a
// typed failure.
type Resolver struct {
	log     zerolog.Logger
	client  chain.Client
	network string
	cache   *ristretto.Cache
	cfg     Config
}

// New creates a resolver for the given network client.
func New(log zerolog.Logger, client chain.Client, network string, options ...Option) (*Resolver, error) {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	r := Resolver{
		log:     log.With().Str("component", "resolver").Str("network", network).Logger(),
		client:  client,
		network: network,
		cfg:     cfg,
	}

	if cfg.CacheSize == 0 {
		return &r, nil
	}

	// Ristretto recommends keeping ten times as many counters as items in the
	// cache when full. Asset metadata entries are around a hundred bytes.
	counters := int64(cfg.CacheSize) / 100 * 10
	if counters < 10 {
		counters = 10
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: counters,
		MaxCost:     int64(cfg.CacheSize),
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("could not initialize cache: %w", err)
	}
	r.cache = cache

	return &r, nil
}

// Account resolves the metadata of the account with the given name. It fails
// with AccountNotFound if the account does not exist, and with NetworkError
// on any other client error.
func (r *Resolver) Account(name string) (chain.Account, error) {

	account, err := r.client.Account(name)
	if errors.Is(err, chain.ErrAccountNotFound) {
		return chain.Account{}, failure.AccountNotFound{
			Description: failure.NewDescription("account does not exist on chain",
				failure.WithString("network", r.network),
			),
			Account: name,
		}
	}
	if err != nil {
		return chain.Account{}, Network(r.network, r.client.Node(), "could not retrieve account", err,
			failure.WithString("account", name),
		)
	}

	return account, nil
}

// Asset resolves the metadata of the given token. It fails with TokenNotFound
// if the token does not exist, and with NetworkError on any other client
// error. Successful look-ups are cached across calls if a cache is configured.
func (r *Resolver) Asset(token chain.Token) (chain.Asset, error) {

	key := token.Contract + "/" + token.Symbol
	if r.cache != nil {
		cached, ok := r.cache.Get(key)
		if ok {
			return clone(cached.(chain.Asset)), nil
		}
	}

	asset, err := r.client.Asset(token)
	if errors.Is(err, chain.ErrTokenNotFound) {
		return chain.Asset{}, failure.TokenNotFound{
			Description: failure.NewDescription("token does not exist on chain",
				failure.WithString("network", r.network),
				failure.WithString("contract", token.Contract),
			),
			Symbol: token.Symbol,
		}
	}
	if err != nil {
		return chain.Asset{}, Network(r.network, r.client.Node(), "could not retrieve asset", err,
			failure.WithString("symbol", token.Symbol),
		)
	}

	if r.cache != nil {
		cost := int64(len(key) + len(asset.Issuer) + 64)
		_ = r.cache.SetWithTTL(key, clone(asset), cost, r.cfg.CacheTTL)
	}

	return asset, nil
}

// Lookup returns a look-up scope which memoizes the results of the resolver
// for the duration of a single operation.
func (r *Resolver) Lookup() *Lookup {
	l := Lookup{
		resolve:  r,
		accounts: make(map[string]accountResult),
		assets:   make(map[chain.Token]assetResult),
	}
	return &l
}

// Network builds the network failure for an error returned by a client.
func Network(network string, node string, text string, err error, fields ...failure.FieldFunc) failure.NetworkError {
	fields = append(fields, failure.WithErr(err))
	return failure.NetworkError{
		Description: failure.NewDescription(text, fields...),
		Network:     network,
		Node:        node,
	}
}

// clone copies the supply of the asset, so that cached assets are never shared
// with callers.
func clone(asset chain.Asset) chain.Asset {
	if asset.Supply.Units != nil {
		asset.Supply.Units = new(big.Int).Set(asset.Supply.Units)
	}
	return asset
}
