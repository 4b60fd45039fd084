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

package manager

// DefaultConfig is the default configuration of a manager.
var DefaultConfig = Config{
	HistoryLimit: 1000,
}

// Config contains the optional parameters of a manager.
type Config struct {
	HistoryLimit uint
}

// Option is an option that can be given to the manager constructor.
type Option func(*Config)

// WithHistoryLimit sets the number of most recent receipts scanned when
// totalling the amount received with a memo.
func WithHistoryLimit(limit uint) Option {
	return func(cfg *Config) {
		cfg.HistoryLimit = limit
	}
}
