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
	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/network"
)

type Source struct {
	CoinsFunc func() ([]coin.Config, error)
}

func BaselineSource(t *testing.T) *Source {
	t.Helper()

	s := Source{
		CoinsFunc: func() ([]coin.Config, error) {
			return []coin.Config{GenericConfig()}, nil
		},
	}

	return &s
}

func (s *Source) Coins() ([]coin.Config, error) {
	return s.CoinsFunc()
}

type Dialer struct {
	DialFunc func(profile network.Profile, cfg coin.Config) (chain.Client, error)
}

func BaselineDialer(t *testing.T) *Dialer {
	t.Helper()

	d := Dialer{
		DialFunc: func(network.Profile, coin.Config) (chain.Client, error) {
			return BaselineClient(t), nil
		},
	}

	return &d
}

func (d *Dialer) Dial(profile network.Profile, cfg coin.Config) (chain.Client, error) {
	return d.DialFunc(profile, cfg)
}
