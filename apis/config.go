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

import "log/slog"

// Config carries read-only knobs that influence registries and dispatch.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// VerifySource makes the dispatcher check an entry's Source against the
	// handle's dynamic type before invoking a conversion. Entries that fail
	// the check are treated as misses.
	VerifySource bool

	// CacheStrategy selects the policy of the registry's (source, target)
	// match cache.
	CacheStrategy CacheStrategy

	// CacheSize bounds the match cache. Values <= 0 disable caching.
	CacheSize int

	// Observer, if set, is notified of every cast outcome.
	Observer Observer

	// Logger receives diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// Log returns the configured logger or the process default.
func (c Config) Log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
