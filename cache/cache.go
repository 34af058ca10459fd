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

// Package cache provides the bounded memo used by registries to skip the
// linear table scan for (source, target) pairs they have already resolved.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"dirpx.dev/castx/apis"
)

// Cache is a concurrency-safe bounded map.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Add(key K, value V)
	Purge()
	Len() int
}

// New returns a cache implementing strategy s with room for size entries.
// CacheNone or a non-positive size yields a cache that stores nothing.
func New[K comparable, V any](s apis.CacheStrategy, size int) (Cache[K, V], error) {
	if size <= 0 {
		return nop[K, V]{}, nil
	}
	switch s {
	case apis.CacheNone:
		return nop[K, V]{}, nil
	case apis.CacheLRU:
		c, err := lru.New[K, V](size)
		if err != nil {
			return nil, err
		}
		return recent[K, V]{c}, nil
	case apis.CacheTwoQueue:
		c, err := lru.New2Q[K, V](size)
		if err != nil {
			return nil, err
		}
		return twoQueue[K, V]{c}, nil
	default:
		return nil, fmt.Errorf("castx(cache): unsupported strategy %v", s)
	}
}

type recent[K comparable, V any] struct{ c *lru.Cache[K, V] }

func (r recent[K, V]) Get(key K) (V, bool) { return r.c.Get(key) }
func (r recent[K, V]) Add(key K, value V)  { r.c.Add(key, value) }
func (r recent[K, V]) Purge()              { r.c.Purge() }
func (r recent[K, V]) Len() int            { return r.c.Len() }

type twoQueue[K comparable, V any] struct{ c *lru.TwoQueueCache[K, V] }

func (q twoQueue[K, V]) Get(key K) (V, bool) { return q.c.Get(key) }
func (q twoQueue[K, V]) Add(key K, value V)  { q.c.Add(key, value) }
func (q twoQueue[K, V]) Purge()              { q.c.Purge() }
func (q twoQueue[K, V]) Len() int            { return q.c.Len() }

type nop[K comparable, V any] struct{}

func (nop[K, V]) Get(K) (V, bool) {
	var zero V
	return zero, false
}
func (nop[K, V]) Add(K, V) {}
func (nop[K, V]) Purge()   {}
func (nop[K, V]) Len() int { return 0 }
