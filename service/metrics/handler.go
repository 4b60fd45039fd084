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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/optakt/coin-dispatch/models/coin"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

var statuses = []coin.Status{coin.StatusOK, coin.StatusError, coin.StatusUnhandled}

// Handler wraps a coin handler and records metrics for its operations.
type Handler struct {
	handler coin.Handler
	metrics *Collector
	symbol  string
}

// Handler decorates the given coin handler.
func (c *Collector) Handler(handler coin.Handler) *Handler {
	h := Handler{
		handler: handler,
		metrics: c,
		symbol:  handler.Symbol().String(),
	}
	return &h
}

func (h *Handler) Symbol() coin.Symbol {
	return h.handler.Symbol()
}

func (h *Handler) Health() coin.Health {
	defer h.duration("health")()
	report := h.handler.Health()
	for _, status := range statuses {
		val := 0.0
		if report.Status == status {
			val = 1.0
		}
		h.metrics.health.WithLabelValues(h.symbol, string(status)).Set(val)
	}
	return report
}

func (h *Handler) HealthTest() bool {
	defer h.duration("health_test")()
	ok := h.handler.HealthTest()
	h.outcome("health_test", ok)
	return ok
}

func (h *Handler) Balance(query coin.BalanceQuery) decimal.Decimal {
	defer h.duration("balance")()
	return h.handler.Balance(query)
}

func (h *Handler) DepositTarget() coin.Deposit {
	return h.handler.DepositTarget()
}

func (h *Handler) AddressValid(address string) bool {
	defer h.duration("address_valid")()
	valid := h.handler.AddressValid(address)
	h.outcome("address_valid", valid)
	return valid
}

func (h *Handler) Issue(amount decimal.Decimal, address string, memo string) (coin.Result, error) {
	defer h.duration("issue")()
	result, err := h.handler.Issue(amount, address, memo)
	h.movement("issue", result, err)
	return result, err
}

func (h *Handler) Send(amount decimal.Decimal, address string, memo string, from string) (coin.Result, error) {
	defer h.duration("send")()
	result, err := h.handler.Send(amount, address, memo, from)
	h.movement("send", result, err)
	return result, err
}

func (h *Handler) SendOrIssue(amount decimal.Decimal, address string, memo string) (coin.Result, error) {
	defer h.duration("send_or_issue")()
	result, err := h.handler.SendOrIssue(amount, address, memo)
	h.movement("send_or_issue", result, err)
	return result, err
}

func (h *Handler) duration(operation string) func() {
	now := time.Now()
	observer := h.metrics.durations.WithLabelValues(h.symbol, operation)
	return func() {
		observer.Observe(time.Since(now).Seconds())
	}
}

func (h *Handler) outcome(operation string, ok bool) {
	outcome := outcomeSuccess
	if !ok {
		outcome = outcomeFailure
	}
	h.metrics.operations.With(prometheus.Labels{
		labelSymbol:    h.symbol,
		labelOperation: operation,
		labelOutcome:   outcome,
	}).Inc()
}

func (h *Handler) movement(operation string, result coin.Result, err error) {
	h.outcome(operation, err == nil)
	if err != nil {
		return
	}
	h.metrics.transfers.WithLabelValues(h.symbol, string(result.Kind)).Inc()
}
