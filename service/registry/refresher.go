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
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Refresher periodically refreshes a registry until it is stopped. Handlers
// resolved from earlier snapshots stay usable across refreshes.
type Refresher struct {
	log      zerolog.Logger
	registry *Registry
	interval time.Duration
	done     chan struct{}
	wg       *sync.WaitGroup
}

// NewRefresher creates a refresher for the registry with the given interval.
func NewRefresher(log zerolog.Logger, registry *Registry, interval time.Duration) *Refresher {
	r := Refresher{
		log:      log.With().Str("component", "refresher").Logger(),
		registry: registry,
		interval: interval,
		done:     make(chan struct{}),
		wg:       &sync.WaitGroup{},
	}
	return &r
}

// Run starts refreshing in the background.
func (r *Refresher) Run() {
	r.wg.Add(1)
	go r.loop()
}

// Stop stops refreshing and waits for an ongoing refresh to finish.
func (r *Refresher) Stop() {
	close(r.done)
	r.wg.Wait()
}

func (r *Refresher) loop() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.refresh()
		}
	}
}

func (r *Refresher) refresh() {
	snapshot, err := r.registry.Refresh()
	if err != nil {
		r.log.Warn().Err(err).Int("provided", snapshot.Len()).Msg("registry refreshed with errors")
	}
}
