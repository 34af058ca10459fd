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

// Target is one castability relationship: a concrete Source type that can be
// viewed through the interface identified by ID.
//
// ToRef and ToMut are only meaningful for handles whose dynamic type is
// Source. Tables are built by the target package and are immutable once
// published to a Registry or returned from Castable.CastTargets.
type Target struct {
	// ID is the identity of the target interface.
	ID reflect.Type
	// Name is the display name of the target interface (diagnostics only).
	Name string
	// Source is the concrete type the conversions were built for.
	Source reflect.Type
	// ToRef re-expresses a Source handle as a view implementing ID.
	ToRef func(h any) (any, bool)
	// ToMut is the mutable counterpart of ToRef. It is nil when Source
	// cannot alias its storage (non pointer-shaped types).
	ToMut func(h any) (any, bool)
}

// Matches reports whether t describes the interface id.
func (t Target) Matches(id reflect.Type) bool {
	return t.ID != nil && t.ID == id
}

// Castable is implemented by concrete types that carry their own target
// table. Types that do not implement it may still participate through a
// Registry; everything else has an empty table.
type Castable interface {
	// CastTargets returns the full, process-wide constant table of the
	// concrete type behind the receiver. Callers must not modify it.
	CastTargets() []Target
}
