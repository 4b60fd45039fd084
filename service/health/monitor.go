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

package health

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/optakt/coin-dispatch/models/coin"
)

// Provider gives access to the handlers to probe, such as a registry snapshot.
type Provider interface {
	Handlers() []coin.Handler
}

// Monitor probes the health of many handlers at once, with a bounded number of
// probes in flight.
type Monitor struct {
	log zerolog.Logger
	cfg Config
}

// NewMonitor creates a health monitor.
func NewMonitor(log zerolog.Logger, options ...Option) *Monitor {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	m := Monitor{
		log: log.With().Str("component", "health_monitor").Logger(),
		cfg: cfg,
	}

	return &m
}

// Check returns the health reports of all the handlers of the provider, in the
// order of the handlers. Handlers that were not probed before the context was
// canceled are reported with an error status.
func (m *Monitor) Check(ctx context.Context, provider Provider) ([]coin.Health, error) {

	start := time.Now()
	handlers := provider.Handlers()
	reports := make([]coin.Health, len(handlers))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(m.cfg.Concurrency)
	for i, handler := range handlers {
		i, handler := i, handler
		group.Go(func() error {
			select {
			case <-ctx.Done():
				reports[i] = canceled(handler)
				return ctx.Err()
			default:
			}
			reports[i] = handler.Health()
			return nil
		})
	}
	err := group.Wait()

	m.log.Debug().
		Int("handlers", len(handlers)).
		Int("healthy", Healthy(reports)).
		Dur("duration", time.Since(start)).
		Msg("health check completed")

	return reports, err
}

// Healthy returns the number of reports with an OK status.
func Healthy(reports []coin.Health) int {
	healthy := 0
	for _, report := range reports {
		if report.Status == coin.StatusOK {
			healthy++
		}
	}
	return healthy
}

func canceled(handler coin.Handler) coin.Health {
	return coin.Health{
		Symbol:    handler.Symbol(),
		Status:    coin.StatusError,
		Issuer:    coin.PlaceholderIssuer,
		Precision: coin.PlaceholderPrecision,
		Account:   coin.PlaceholderAccount,
		Balance:   coin.PlaceholderBalance,
	}
}
