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
	"github.com/optakt/coin-dispatch/chain"
	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/service/manager"
	"github.com/optakt/coin-dispatch/service/resolver"
)

// DefaultConfig is the default configuration of the registry, which builds
// undecorated handlers.
var DefaultConfig = Config{
	Decorate: func(handler coin.Handler) coin.Handler {
		return handler
	},
	WrapClient: func(network string, client chain.Client) chain.Client {
		return client
	},
}

// Config contains the optional parameters of the registry.
type Config struct {
	ResolverOptions []resolver.Option
	ManagerOptions  []manager.Option
	Decorate        func(handler coin.Handler) coin.Handler
	WrapClient      func(network string, client chain.Client) chain.Client
}

// Option is an option that can be given to the registry constructor.
type Option func(*Config)

// WithResolverOptions sets the options used for the resolver of each handler.
func WithResolverOptions(options ...resolver.Option) Option {
	return func(cfg *Config) {
		cfg.ResolverOptions = append(cfg.ResolverOptions, options...)
	}
}

// WithManagerOptions sets the options used for each handler.
func WithManagerOptions(options ...manager.Option) Option {
	return func(cfg *Config) {
		cfg.ManagerOptions = append(cfg.ManagerOptions, options...)
	}
}

// WithDecorator sets a function applied to every handler after it is built.
func WithDecorator(decorate func(handler coin.Handler) coin.Handler) Option {
	return func(cfg *Config) {
		cfg.Decorate = decorate
	}
}

// WithClientWrapper sets a function applied to every chain client after it is
// dialed.
func WithClientWrapper(wrap func(network string, client chain.Client) chain.Client) Option {
	return func(cfg *Config) {
		cfg.WrapClient = wrap
	}
}
