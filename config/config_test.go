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

package config_test

import (
	"io"
	"log/slog"
	"reflect"
	"testing"

	"dirpx.dev/castx/apis"
	"dirpx.dev/castx/config"
)

type countingObserver struct{ n int }

func (o *countingObserver) ObserveCast(apis.Op, reflect.Type, reflect.Type, bool) { o.n++ }

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.VerifySource != config.DefaultVerifySource {
		t.Fatalf("VerifySource = %v, want %v", got.VerifySource, config.DefaultVerifySource)
	}
	if got.CacheStrategy != config.DefaultCacheStrategy {
		t.Fatalf("CacheStrategy = %v, want %v", got.CacheStrategy, config.DefaultCacheStrategy)
	}
	if got.CacheSize != config.DefaultCacheSize {
		t.Fatalf("CacheSize = %d, want %d", got.CacheSize, config.DefaultCacheSize)
	}
	if got.Observer != nil || got.Logger != nil {
		t.Fatalf("default Observer/Logger should be nil: %+v", got)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithVerifySource(t *testing.T) {
	if c := config.NewConfig(config.WithVerifySource(false)); c.VerifySource {
		t.Fatalf("VerifySource = %v, want false", c.VerifySource)
	}
	if c := config.NewConfig(config.WithVerifySource(true)); !c.VerifySource {
		t.Fatalf("VerifySource = %v, want true", c.VerifySource)
	}
}

func TestWithCacheStrategy(t *testing.T) {
	c := config.NewConfig(config.WithCacheStrategy(apis.CacheTwoQueue))
	if c.CacheStrategy != apis.CacheTwoQueue {
		t.Fatalf("CacheStrategy = %v, want 2Q", c.CacheStrategy)
	}
}

func TestWithCacheSize_Negative_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithCacheSize(-1))
	if c.CacheSize != config.DefaultCacheSize {
		t.Fatalf("CacheSize = %d, want default %d", c.CacheSize, config.DefaultCacheSize)
	}
}

func TestWithCacheSize_ZeroAllowed(t *testing.T) {
	// Zero disables the cache rather than falling back to the default.
	c := config.NewConfig(config.WithCacheSize(0))
	if c.CacheSize != 0 {
		t.Fatalf("CacheSize = %d, want 0", c.CacheSize)
	}
}

func TestWithObserverAndLogger(t *testing.T) {
	obs := &countingObserver{}
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := config.NewConfig(config.WithObserver(obs), config.WithLogger(lg))
	if c.Observer != obs {
		t.Fatalf("Observer not applied")
	}
	if c.Log() != lg {
		t.Fatalf("Log() did not return configured logger")
	}
	if config.DefaultConfig().Log() != slog.Default() {
		t.Fatalf("Log() without logger should be slog.Default()")
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithVerifySource(true),
		config.WithVerifySource(false),
		config.WithCacheSize(2),
		config.WithCacheSize(5),
		config.WithCacheStrategy(apis.CacheNone),
		config.WithCacheStrategy(apis.CacheLRU),
	)

	if c.VerifySource {
		t.Errorf("VerifySource = %v, want false (last option wins)", c.VerifySource)
	}
	if c.CacheSize != 5 {
		t.Errorf("CacheSize = %d, want 5 (last option wins)", c.CacheSize)
	}
	if c.CacheStrategy != apis.CacheLRU {
		t.Errorf("CacheStrategy = %v, want LRU (last option wins)", c.CacheStrategy)
	}
}
