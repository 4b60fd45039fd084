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

package health

// DefaultConfig is the default configuration of the health monitor.
var DefaultConfig = Config{
	Concurrency: 8,
}

// Config contains the optional parameters of the health monitor.
type Config struct {
	Concurrency int
}

// Option is an option that can be given to the health monitor constructor.
type Option func(*Config)

// WithConcurrency sets the maximum number of handlers probed at the same time.
// Values below one probe handlers one at a time.
func WithConcurrency(concurrency int) Option {
	return func(cfg *Config) {
		if concurrency < 1 {
			concurrency = 1
		}
		cfg.Concurrency = concurrency
	}
}
