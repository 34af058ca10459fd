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

package apis

import (
	"fmt"
	"strings"
)

// CacheStrategy selects the eviction policy of a registry's match cache.
//
// The cache memoizes (source type, target interface) lookups. Tables are
// immutable once registered, so entries never go stale; registrations and
// resets purge the cache wholesale.
type CacheStrategy int

const (
	// CacheLRU evicts the least recently used match.
	CacheLRU CacheStrategy = iota
	// CacheTwoQueue separates frequently used matches from recent ones
	// (2Q), which resists scans over many one-off types.
	CacheTwoQueue
	// CacheNone disables memoization; every Find is a linear scan.
	CacheNone
)

func (cs CacheStrategy) String() string {
	switch cs {
	case CacheLRU:
		return "LRU"
	case CacheTwoQueue:
		return "2Q"
	case CacheNone:
		return "None"
	default:
		return fmt.Sprintf("Unknown(%d)", cs)
	}
}

// ParseCacheStrategy parses the textual form produced by String.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseCacheStrategy(s string) (CacheStrategy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return CacheNone, fmt.Errorf("castx(cache): empty strategy")
	}

	switch strings.ToUpper(trimmed) {
	case "LRU":
		return CacheLRU, nil
	case "2Q", "TWOQUEUE":
		return CacheTwoQueue, nil
	case "NONE":
		return CacheNone, nil
	default:
		return CacheNone, fmt.Errorf("castx(cache): unknown strategy %q", s)
	}
}

func (cs CacheStrategy) MarshalText() ([]byte, error) {
	switch cs {
	case CacheLRU, CacheTwoQueue, CacheNone:
		return []byte(cs.String()), nil
	default:
		return nil, fmt.Errorf("castx(cache): cannot marshal unknown strategy %d", cs)
	}
}

func (cs *CacheStrategy) UnmarshalText(text []byte) error {
	value, err := ParseCacheStrategy(string(text))
	if err != nil {
		return err
	}
	*cs = value
	return nil
}
