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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	labelSymbol    = "symbol"
	labelNetwork   = "network"
	labelOperation = "operation"
	labelOutcome   = "outcome"
	labelKind      = "kind"
	labelCall      = "call"
	labelStatus    = "status"
)

// Collector holds the metrics shared by all decorated handlers and clients.
type Collector struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	transfers  *prometheus.CounterVec
	health     *prometheus.GaugeVec
	calls      *prometheus.HistogramVec
}

// NewCollector creates the dispatch metrics on the given registerer.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	operationOpts := prometheus.CounterOpts{
		Name: "dispatch_operations_total",
		Help: "the number of handler operations by outcome",
	}
	operations := factory.NewCounterVec(operationOpts, []string{labelSymbol, labelOperation, labelOutcome})

	durationOpts := prometheus.HistogramOpts{
		Name:    "dispatch_operation_seconds",
		Help:    "the duration of handler operations",
		Buckets: prometheus.DefBuckets,
	}
	durations := factory.NewHistogramVec(durationOpts, []string{labelSymbol, labelOperation})

	transferOpts := prometheus.CounterOpts{
		Name: "dispatch_transfers_total",
		Help: "the number of successful money movements by send kind",
	}
	transfers := factory.NewCounterVec(transferOpts, []string{labelSymbol, labelKind})

	healthOpts := prometheus.GaugeOpts{
		Name: "dispatch_health_status",
		Help: "one for the status of the last health probe of a symbol, zero for the others",
	}
	health := factory.NewGaugeVec(healthOpts, []string{labelSymbol, labelStatus})

	callOpts := prometheus.HistogramOpts{
		Name:    "dispatch_chain_call_seconds",
		Help:    "the duration of chain client calls",
		Buckets: prometheus.DefBuckets,
	}
	calls := factory.NewHistogramVec(callOpts, []string{labelNetwork, labelCall})

	c := Collector{
		operations: operations,
		durations:  durations,
		transfers:  transfers,
		health:     health,
		calls:      calls,
	}

	return &c
}
