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

package castx

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/castx/apis"
	"dirpx.dev/castx/builder"
	"dirpx.dev/castx/config"
)

// init publishes the default snapshot.
func init() {
	cfg := config.DefaultConfig()
	b := builder.New()
	reg := b.BuildRegistry(cfg, nil, nil)
	st.Store(&state{
		cfg: cfg,
		reg: reg,
		res: b.BuildResolver(cfg, reg, nil, nil),
		bld: b,
	})
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("castx: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("castx: builder returned nil resolver")
)

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the published snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot published atomically via st.Store; never
// mutate fields of a published state. Writers copy, modify and swap.
type state struct {
	cfg apis.Config
	ext any
	reg apis.Registry
	res apis.Resolver
	bld apis.Builder
	// preg and pres mark layers that builders must not replace.
	preg bool
	pres bool
}

// update derives the next snapshot from the current one under buildMu.
// edit changes the copy; layers that are unpinned and not supplied by edit
// are rebuilt when rebuild is set.
func update(rebuild bool, edit func(next *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	edit(&next)

	if rebuild {
		if !next.preg && next.reg == old.reg {
			next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
		}
		if !next.pres && next.res == old.res {
			next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, next.ext)
		}
	}

	// Ensure non-nil reg and res.
	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(&next)
}

// SetAll explicitly replaces every layer of the snapshot.
//
// Nil arguments leave the corresponding component unchanged, except for ext
// which is always replaced. A nil reg or res is rebuilt by the (possibly new)
// builder and unpinned; a non-nil one is pinned. Mainly used by tests to
// start from a clean deterministic state.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := state{cfg: old.cfg, ext: ext, bld: old.bld}
	if cfg != nil {
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}
	if next.reg, next.preg = reg, reg != nil; reg == nil {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
	}
	if next.res, next.pres = res, res != nil; res == nil {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, next.ext)
	}

	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(&next)
}

// Config returns the published configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig publishes cfg and rebuilds the unpinned layers with it.
func SetConfig(cfg apis.Config) {
	update(true, func(next *state) { next.cfg = cfg })
}

// Configure applies options on top of the published configuration.
func Configure(opts ...config.Option) {
	cfg := Config()
	for _, opt := range opts {
		opt(&cfg)
	}
	SetConfig(cfg)
}

// Registry returns the published registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry publishes and pins reg, rebuilding the resolver unless pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	update(true, func(next *state) { next.reg, next.preg = reg, true })
}

// Resolver returns the published resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver publishes and pins res.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(false, func(next *state) { next.res, next.pres = res, true })
}

// Builder returns the published builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder publishes b and rebuilds the unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(true, func(next *state) { next.bld = b })
}

// SetExt replaces the extension payload and rebuilds non-pinned layers.
func SetExt[T any](ext T) {
	update(true, func(next *state) { next.ext = ext })
}

// ExtAs returns the extension payload as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned reports whether the registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops builders from replacing the registry.
func PinRegistry() {
	update(false, func(next *state) { next.preg = true })
}

// UnpinRegistry lets the next rebuild replace the registry again.
func UnpinRegistry() {
	update(false, func(next *state) { next.preg = false })
}

// IsResolverPinned reports whether the resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops builders from replacing the resolver.
func PinResolver() {
	update(false, func(next *state) { next.pres = true })
}

// UnpinResolver lets the next rebuild replace the resolver again.
func UnpinResolver() {
	update(false, func(next *state) { next.pres = false })
}
