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
	"reflect"
)

// Strategy is a pluggable resolution step. A Resolver can chain multiple
// strategies in order (e.g., Castable -> Registry -> Empty).
type Strategy interface {
	// TryResolve attempts to produce the table for value v.
	// It returns (targets, true) if handled; otherwise (nil, false) to fall through.
	TryResolve(v any, cfg Config) (targets []Target, handled bool)

	// TryResolveType attempts to produce the table for the concrete type t.
	TryResolveType(t reflect.Type, cfg Config) (targets []Target, handled bool)

	// TryFind attempts to locate the entry for id in v's table.
	// found is only meaningful when handled is true.
	TryFind(v any, id reflect.Type, cfg Config) (target Target, found, handled bool)
}
