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
	"context"

	"github.com/optakt/coin-dispatch/models/coin"
	"github.com/optakt/coin-dispatch/service/health"
	"github.com/optakt/coin-dispatch/service/registry"
)

// Registry gives access to the current snapshot of provided coins.
type Registry interface {
	Snapshot() *registry.Snapshot
}

// Monitor probes the health of many handlers at once.
type Monitor interface {
	Check(ctx context.Context, provider health.Provider) ([]coin.Health, error)
}
