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

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/dgraph-io/badger/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/ziflex/lecho/v2"

	"github.com/optakt/coin-dispatch/api/dispatch"
	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/chain/sandbox"
	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/service/health"
	"github.com/optakt/coin-dispatch/service/metrics"
	"github.com/optakt/coin-dispatch/service/registry"
	"github.com/optakt/coin-dispatch/service/resolver"
	"github.com/optakt/coin-dispatch/service/source"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var (
		flagAddress     string
		flagCache       uint64
		flagCoins       string
		flagConcurrency int
		flagLevel       string
		flagMetrics     string
		flagRefresh     time.Duration
		flagSandbox     string
		flagSeed        string
	)

	pflag.StringVarP(&flagAddress, "address", "a", "127.0.0.1:8080", "address to serve the dispatch API on")
	pflag.Uint64VarP(&flagCache, "cache", "e", uint64(16*datasize.MB), "maximum cache size for asset metadata in bytes (0 to disable)")
	pflag.StringVarP(&flagCoins, "coins", "c", "coins.yaml", "path to the YAML file with the coin configurations")
	pflag.IntVar(&flagConcurrency, "concurrency", health.DefaultConfig.Concurrency, "maximum number of concurrent health probes")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagMetrics, "metrics", "m", "", "address to serve Prometheus metrics on (empty to disable)")
	pflag.DurationVarP(&flagRefresh, "refresh", "r", time.Minute, "interval between two reloads of the coin configurations")
	pflag.StringVarP(&flagSandbox, "sandbox", "s", "", "database directory for the sandbox ledger (empty to disable)")
	pflag.StringVar(&flagSeed, "seed", "", "path to a YAML seed for the sandbox ledger")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)
	elog := lecho.From(log)

	// Metrics initialization. The collector is created even if metrics are not
	// served, so the handlers are decorated the same way in both cases.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	collector := metrics.NewCollector(reg)

	// Initialize the sandbox ledger, if one is configured. Coins of the sandbox
	// network can only be provided with a ledger.
	var ledger *sandbox.Ledger
	if flagSandbox != "" {
		db, err := badger.Open(sandbox.DefaultOptions(flagSandbox))
		if err != nil {
			log.Error().Str("sandbox", flagSandbox).Err(err).Msg("could not open sandbox database")
			return failure
		}
		defer db.Close()

		err = metrics.RegisterBadgerMetrics(reg)
		if err != nil {
			log.Error().Err(err).Msg("could not register sandbox metrics")
			return failure
		}

		ledger = sandbox.New(log, db, sandbox.WithNode("sandbox://"+flagSandbox))
	}
	if flagSeed != "" {
		if ledger == nil {
			log.Error().Str("seed", flagSeed).Msg("seed given without sandbox directory")
			return failure
		}
		err = ledger.SeedFile(flagSeed)
		if err != nil {
			log.Warn().Err(err).Msg("sandbox seed partially applied")
		}
	}

	// Initialize the registry and load the coins for the first time. Coins with
	// an invalid configuration are left out, but do not prevent the start.
	coins := registry.New(log, source.NewFile(flagCoins), sandbox.NewDialer(ledger),
		registry.WithResolverOptions(resolver.WithCacheSize(flagCache)),
		registry.WithDecorator(func(handler coin.Handler) coin.Handler {
			return collector.Handler(handler)
		}),
		registry.WithClientWrapper(func(network string, client chain.Client) chain.Client {
			return collector.Client(network, client)
		}),
	)
	snapshot, err := coins.Refresh()
	if err != nil {
		log.Warn().Err(err).Int("provided", snapshot.Len()).Msg("could not load all coins")
	}
	refresher := registry.NewRefresher(log, coins, flagRefresh)

	// Initialize the API server.
	api := dispatch.NewServer(log, coins, health.NewMonitor(log, health.WithConcurrency(flagConcurrency)))
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger = elog
	server.Use(lecho.Middleware(lecho.Config{Logger: elog}))
	api.Route(server)

	// This section launches the main executing components in their own
	// goroutine, so they can run concurrently. Afterwards, we wait for an
	// interrupt signal in order to proceed with the next section.
	done := make(chan struct{})
	failed := make(chan struct{})
	go func() {
		log.Info().Str("address", flagAddress).Msg("coin dispatch server starting")
		err := server.Start(flagAddress)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Msg("coin dispatch server failed")
			close(failed)
		} else {
			close(done)
		}
		log.Info().Msg("coin dispatch server stopped")
	}()

	var monitor *metrics.Server
	if flagMetrics != "" {
		monitor = metrics.NewServer(log, flagMetrics, reg)
		go func() {
			err := monitor.Start()
			if err != nil {
				log.Warn().Err(err).Msg("metrics server failed")
			}
		}()
	}

	refresher.Run()

	select {
	case <-sig:
		log.Info().Msg("coin dispatch server stopping")
	case <-done:
		log.Info().Msg("coin dispatch server done")
	case <-failed:
		log.Warn().Msg("coin dispatch server aborted")
		refresher.Stop()
		return failure
	}
	go func() {
		<-sig
		log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	// The following code starts a shut down with a certain timeout and makes
	// sure that the main executing components are shutting down within the
	// allocated shutdown time. Otherwise, we will force the shutdown and log
	// an error.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	refresher.Stop()

	err = server.Shutdown(ctx)
	if err != nil {
		log.Error().Err(err).Msg("could not shut down coin dispatch server")
		return failure
	}

	if monitor != nil {
		err = monitor.Stop(ctx)
		if err != nil {
			log.Error().Err(err).Msg("could not shut down metrics server")
			return failure
		}
	}

	return success
}
