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

package source

import (
	"github.com/optakt/coin-dispatch/models/coin"
)

// Static is a coin source with a fixed list of coin configurations.
type Static struct {
	coins []coin.Config
}

// NewStatic creates a coin source for the given coins.
func NewStatic(coins ...coin.Config) *Static {
	s := Static{
		coins: coins,
	}
	return &s
}

// Coins implements the registry coin source. It returns a copy of the list,
// so callers can not modify the source.
func (s *Static) Coins() ([]coin.Config, error) {
	coins := make([]coin.Config, 0, len(s.coins))
	for _, cfg := range s.coins {
		cfg.Settings = coin.Merge(nil, cfg.Settings)
		coins = append(coins, cfg)
	}
	return coins, nil
}
