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

package registry

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/network"
	"github.com/optakt/coin-dispatch/service/manager"
	"github.com/optakt/coin-dispatch/service/resolver"
)

// Registry maps symbols to their handlers. The handlers are rebuilt from the
// coin source on every refresh and published as a new immutable snapshot, so
// handlers already resolved by callers are never modified.
type Registry struct {
	log     zerolog.Logger
	source  Source
	dial    Dialer
	cfg     Config
	current atomic.Value

	// Refreshes are serialized, and reuse the clients dialed by previous
	// refreshes for the same node.
	mu      sync.Mutex
	clients map[string]chain.Client
}

// New creates a registry with an empty snapshot. Refresh must be called to
// load the coins of the source.
func New(log zerolog.Logger, source Source, dial Dialer, options ...Option) *Registry {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	r := Registry{
		log:     log.With().Str("component", "registry").Logger(),
		source:  source,
		dial:    dial,
		cfg:     cfg,
		clients: make(map[string]chain.Client),
	}
	r.current.Store(newSnapshot(time.Now().UTC()))

	return &r
}

// Snapshot returns the current snapshot.
func (r *Registry) Snapshot() *Snapshot {
	return r.current.Load().(*Snapshot)
}

// Resolve returns the handler for the symbol from the current snapshot.
func (r *Registry) Resolve(symbol coin.Symbol) (coin.Handler, error) {
	return r.Snapshot().Resolve(symbol)
}

// Refresh loads the coins from the source and publishes a new snapshot with a
// handler for every valid and enabled coin. Invalid coins are left out of the
// snapshot, and their errors are returned together. If the source itself fails,
// the current snapshot is kept.
func (r *Registry) Refresh() (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	coins, err := r.source.Coins()
	if err != nil {
		return r.Snapshot(), fmt.Errorf("could not load coins: %w", err)
	}

	for i := range coins {
		coins[i].Network = strings.ToLower(coins[i].Network)
	}

	// Every coin inherits the settings of the native coin of its network.
	natives := make(map[string]coin.Settings)
	for _, cfg := range coins {
		profile, ok := network.Lookup(cfg.Network)
		if ok && cfg.Symbol == profile.NativeSymbol {
			natives[profile.Name] = cfg.Settings
		}
	}

	var merr *multierror.Error
	snapshot := newSnapshot(time.Now().UTC())
	for _, cfg := range coins {

		log := r.log.With().Str("symbol", cfg.Symbol.String()).Str("network", cfg.Network).Logger()

		if !cfg.Active() {
			log.Debug().Msg("skipping disabled coin")
			continue
		}

		_, exists := snapshot.handlers[cfg.Symbol]
		if exists {
			merr = multierror.Append(merr, fmt.Errorf("duplicate coin configuration (symbol: %s)", cfg.Symbol))
			continue
		}

		handler, final, err := r.build(cfg, natives)
		if err != nil {
			log.Warn().Err(err).Msg("skipping invalid coin")
			merr = multierror.Append(merr, err)
			continue
		}

		snapshot.add(final, handler)
	}
	snapshot.seal()

	r.current.Store(snapshot)

	r.log.Info().
		Int("coins", len(coins)).
		Int("provided", snapshot.Len()).
		Strs("networks", snapshot.Networks()).
		Msg("registry refreshed")

	return snapshot, merr.ErrorOrNil()
}

func (r *Registry) build(cfg coin.Config, natives map[string]coin.Settings) (coin.Handler, coin.Config, error) {

	err := cfg.Validate()
	if err != nil {
		return nil, cfg, err
	}

	profile, ok := network.Lookup(cfg.Network)
	if !ok {
		return nil, cfg, fmt.Errorf("unsupported network for coin (symbol: %s, network: %s)", cfg.Symbol, cfg.Network)
	}

	if cfg.Symbol != profile.NativeSymbol {
		cfg.Settings = coin.Merge(natives[profile.Name], cfg.Settings)
	}

	err = profile.Validate(cfg)
	if err != nil {
		return nil, cfg, err
	}

	client, err := r.client(profile, cfg)
	if err != nil {
		return nil, cfg, err
	}

	resolve, err := resolver.New(r.log, client, profile.Name, r.cfg.ResolverOptions...)
	if err != nil {
		return nil, cfg, fmt.Errorf("could not initialize resolver (symbol: %s): %w", cfg.Symbol, err)
	}

	handler := manager.New(r.log, cfg, profile, client, resolve, r.cfg.ManagerOptions...)

	return r.cfg.Decorate(handler), cfg, nil
}

func (r *Registry) client(profile network.Profile, cfg coin.Config) (chain.Client, error) {

	key := profile.Name + "|" + profile.Node(cfg)
	client, ok := r.clients[key]
	if ok {
		return client, nil
	}

	client, err := r.dial.Dial(profile, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not dial node (symbol: %s, node: %s): %w", cfg.Symbol, profile.Node(cfg), err)
	}
	client = r.cfg.WrapClient(profile.Name, client)
	r.clients[key] = client

	return client, nil
}
