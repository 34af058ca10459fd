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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"dirpx.dev/castx/apis"
	"dirpx.dev/castx/cache"
	"dirpx.dev/castx/target"
	uref "dirpx.dev/castx/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("castx(registry): nil reflect.Type provided")
	// ErrInterfaceSource is returned when an interface type is registered as a source.
	ErrInterfaceSource = errors.New("castx(registry): source must be a concrete type")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different table.
	ErrConflictingRegistration = errors.New("castx(registry): conflicting table registration")
)

// New constructs a Registry. Only CacheStrategy, CacheSize and Logger are
// used here.
func New(cfg apis.Config) apis.Registry {
	memo, err := cache.New[pair, match](cfg.CacheStrategy, cfg.CacheSize)
	if err != nil {
		cfg.Log().Warn("castx: match cache disabled", "strategy", cfg.CacheStrategy.String(), "error", err)
		memo, _ = cache.New[pair, match](apis.CacheNone, 0)
	}
	return &registry{
		cfg:  cfg,
		m:    xsync.NewMapOf[reflect.Type, []apis.Target](),
		memo: memo,
	}
}

// registry is a Registry backed by xsync.MapOf with a bounded match cache.
type registry struct {
	// cfg is the configuration the registry was built with.
	cfg apis.Config
	// mu serialises writers so check-then-store is atomic.
	mu sync.Mutex
	// m maps a concrete type to its immutable table.
	m *xsync.MapOf[reflect.Type, []apis.Target]
	// memo caches Find results for registered sources.
	memo cache.Cache[pair, match]
}

type pair struct {
	src, id reflect.Type
}

type match struct {
	t  apis.Target
	ok bool
}

// Register publishes the table of src.
// It is idempotent for the same (type, table) pair.
func (r *registry) Register(src reflect.Type, targets []apis.Target) error {
	if src == nil {
		return ErrNilType
	}
	if uref.IsInterface(src) {
		return ErrInterfaceSource
	}
	table, err := target.Table(src, targets...)
	if err != nil {
		return err
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(src); ok {
		return r.compare(src, old, table)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(src); ok {
		return r.compare(src, old, table)
	}
	r.m.Store(src, table)
	r.memo.Purge()
	r.cfg.Log().Debug("castx: registered cast table",
		"type", uref.Name(src), "targets", target.Names(table))
	return nil
}

func (r *registry) compare(src reflect.Type, old, table []apis.Target) error {
	if target.Same(old, table) {
		return nil
	}
	r.cfg.Log().Warn("castx: conflicting cast table",
		"type", uref.Name(src), "registered", target.Names(old), "rejected", target.Names(table))
	return ErrConflictingRegistration
}

// Lookup returns the table registered for src.
func (r *registry) Lookup(src reflect.Type) ([]apis.Target, bool) {
	if src == nil {
		return nil, false
	}
	return r.m.Load(src)
}

// Find returns the entry for id in src's table. Results for registered
// sources are memoized; tables never change once stored.
func (r *registry) Find(src, id reflect.Type) (apis.Target, bool) {
	if src == nil || id == nil {
		return apis.Target{}, false
	}
	key := pair{src: src, id: id}
	if m, ok := r.memo.Get(key); ok {
		return m.t, m.ok
	}
	table, ok := r.m.Load(src)
	if !ok {
		return apis.Target{}, false
	}
	t, found := target.Find(table, id)
	r.memo.Add(key, match{t: t, ok: found})
	return t, found
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(src reflect.Type, table []apis.Target) bool {
		entries = append(entries, apis.Entry{
			Type:    src,
			Targets: append([]apis.Target(nil), table...),
		})
		return true
	})
	return entries
}

// Count returns the number of registered concrete types.
func (r *registry) Count() int {
	return r.m.Size()
}

// Reset clears all registered tables and the match cache.
// Lookups racing with Reset may observe either state.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.memo.Purge()
}
