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

package sandbox

// DefaultConfig is the default configuration of the sandbox ledger.
var DefaultConfig = Config{
	Node: "sandbox://local",
}

// Config contains the optional parameters of the sandbox ledger.
type Config struct {
	Node string
}

// Option is an option that can be given to the sandbox ledger constructor.
type Option func(*Config)

// WithNode sets the node identifier reported by the ledger.
func WithNode(node string) Option {
	return func(cfg *Config) {
		cfg.Node = node
	}
}
