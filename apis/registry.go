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

import "reflect"

// Registry maps concrete types to their target tables.
// Keep it minimal so implementations can be lock-free on the read path.
type Registry interface {
	// Register publishes the table of the concrete type src.
	// Re-registering an identical table is a no-op; a different table for
	// an already registered type is a conflict.
	Register(src reflect.Type, targets []Target) error
	// Lookup returns the table registered for src.
	Lookup(src reflect.Type) (targets []Target, ok bool)
	// Find returns the entry of src's table whose identity is id.
	Find(src, id reflect.Type) (target Target, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered concrete types.
	Count() int
	// Reset clears all registered tables.
	Reset()
}

// Entry is a single (concrete type, table) association in a Registry snapshot.
type Entry struct {
	// Type is the registered concrete type.
	Type reflect.Type
	// Targets is the registered table.
	Targets []Target
}
