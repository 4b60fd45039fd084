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

package resolver

import (
	"time"
)

// DefaultConfig is the default configuration of the resolver. Cross-call
// caching is disabled unless a cache size is given.
var DefaultConfig = Config{
	CacheSize: 0,
	CacheTTL:  time.Minute,
}

// Config contains the optional parameters of the resolver.
type Config struct {
	CacheSize uint64
	CacheTTL  time.Duration
}

// Option is an option that can be given to the resolver constructor.
type Option func(*Config)

// WithCacheSize sets the maximum size in bytes of the cross-call asset
// metadata cache. A size of zero disables it.
func WithCacheSize(size uint64) Option {
	return func(cfg *Config) {
		cfg.CacheSize = size
	}
}

// WithCacheTTL sets how long asset metadata is kept in the cross-call cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(cfg *Config) {
		cfg.CacheTTL = ttl
	}
}
