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

package dispatch

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/optakt/coin-dispatch/failure"
	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/service/health"
)

// Server is the read-only HTTP API over the coins provided by the registry.
// Moving funds is not exposed.
type Server struct {
	log      zerolog.Logger
	registry Registry
	monitor  Monitor
	validate *validator.Validate
}

// NewServer creates an API server for the given registry.
func NewServer(log zerolog.Logger, registry Registry, monitor Monitor) *Server {
	s := Server{
		log:      log.With().Str("component", "api").Logger(),
		registry: registry,
		monitor:  monitor,
		validate: validator.New(),
	}
	return &s
}

// Route registers the endpoints of the server.
func (s *Server) Route(e *echo.Echo) {
	e.GET("/coins", s.Coins)
	e.GET("/health", s.Health)
	e.GET("/coins/:symbol/health", s.CoinHealth)
	e.GET("/coins/:symbol/balance", s.Balance)
	e.GET("/coins/:symbol/deposit", s.Deposit)
	e.GET("/coins/:symbol/address/:address", s.Address)
}

// Coins lists the provided symbols.
func (s *Server) Coins(ctx echo.Context) error {

	snapshot := s.registry.Snapshot()
	networks := make(map[string][]coin.Symbol)
	for _, network := range snapshot.Networks() {
		networks[network] = snapshot.Provides(network)
	}

	res := CoinsResponse{
		Symbols:  snapshot.Symbols(),
		Networks: networks,
	}

	return ctx.JSON(http.StatusOK, res)
}

// Health probes every provided symbol.
func (s *Server) Health(ctx echo.Context) error {

	reports, err := s.monitor.Check(ctx.Request().Context(), s.registry.Snapshot())
	if err != nil {
		s.log.Warn().Err(err).Msg("health check interrupted")
	}

	res := HealthResponse{
		Headings: coin.Headings,
		Healthy:  health.Healthy(reports),
		Reports:  reports,
	}

	return ctx.JSON(http.StatusOK, res)
}

// CoinHealth probes a single symbol.
func (s *Server) CoinHealth(ctx echo.Context) error {

	var req SymbolRequest
	handler, err := s.resolve(ctx, &req, &req.Symbol)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, handler.Health())
}

// Balance returns the balance of an account, or the amount it received with a
// memo.
func (s *Server) Balance(ctx echo.Context) error {

	var req BalanceRequest
	handler, err := s.resolve(ctx, &req, &req.Symbol)
	if err != nil {
		return err
	}

	query := coin.BalanceQuery{
		Account:       req.Account,
		Memo:          req.Memo,
		CaseSensitive: req.CaseSensitive,
	}
	if query.Account == "" {
		query.Account = handler.DepositTarget().Account
	}
	balance := handler.Balance(query)

	res := BalanceResponse{
		Symbol:  handler.Symbol(),
		Account: query.Account,
		Memo:    query.Memo,
		Balance: balance.String(),
	}

	return ctx.JSON(http.StatusOK, res)
}

// Deposit returns where deposits of a symbol should be sent.
func (s *Server) Deposit(ctx echo.Context) error {

	var req SymbolRequest
	handler, err := s.resolve(ctx, &req, &req.Symbol)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, handler.DepositTarget())
}

// Address checks whether an address is valid for a symbol.
func (s *Server) Address(ctx echo.Context) error {

	var req AddressRequest
	handler, err := s.resolve(ctx, &req, &req.Symbol)
	if err != nil {
		return err
	}

	res := AddressResponse{
		Symbol:  handler.Symbol(),
		Address: req.Address,
		Valid:   handler.AddressValid(req.Address),
	}

	return ctx.JSON(http.StatusOK, res)
}

// resolve binds and validates the request, then resolves the handler of the
// symbol it names. The returned error is ready to be returned by the endpoint.
func (s *Server) resolve(ctx echo.Context, req interface{}, symbol *string) (coin.Handler, error) {

	err := ctx.Bind(req)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, InvalidFormat(err))
	}
	err = s.validate.Struct(req)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, InvalidFormat(err))
	}

	handler, err := s.registry.Snapshot().Resolve(coin.Symbol(*symbol))
	var unknown failure.UnknownSymbol
	if errors.As(err, &unknown) {
		return nil, echo.NewHTTPError(http.StatusNotFound, UnknownSymbol(unknown))
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, Internal(err))
	}

	return handler, nil
}
