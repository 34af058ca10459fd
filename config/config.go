/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"log/slog"

	"dirpx.dev/castx/apis"
)

const (
	// DefaultVerifySource represents the default for VerifySource.
	// When true, entries are checked against the handle's dynamic type.
	DefaultVerifySource = true
	// DefaultCacheStrategy represents the default for CacheStrategy.
	DefaultCacheStrategy = apis.CacheLRU
	// DefaultCacheSize represents the default for CacheSize.
	// Tables are small and few; 256 pairs covers typical programs.
	DefaultCacheSize = 256
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure CacheSize is valid.
	if cfg.CacheSize < 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		VerifySource:  DefaultVerifySource,
		CacheStrategy: DefaultCacheStrategy,
		CacheSize:     DefaultCacheSize,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithVerifySource sets the VerifySource option.
func WithVerifySource(verify bool) Option {
	return func(c *apis.Config) {
		c.VerifySource = verify
	}
}

// WithCacheStrategy sets the CacheStrategy option.
func WithCacheStrategy(s apis.CacheStrategy) Option {
	return func(c *apis.Config) {
		c.CacheStrategy = s
	}
}

// WithCacheSize sets the CacheSize option.
// A negative value resets to the default; zero disables caching.
func WithCacheSize(size int) Option {
	return func(c *apis.Config) {
		if size < 0 {
			c.CacheSize = DefaultCacheSize
			return
		}
		c.CacheSize = size
	}
}

// WithObserver sets the Observer option.
func WithObserver(o apis.Observer) Option {
	return func(c *apis.Config) {
		c.Observer = o
	}
}

// WithLogger sets the Logger option.
func WithLogger(l *slog.Logger) Option {
	return func(c *apis.Config) {
		c.Logger = l
	}
}
