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

// Package castx provides runtime cross-interface downcasting.
//
// Go's type assertion answers "is the value behind this interface exactly
// T" or "does it implement I". castx answers a narrower, declared question:
// "has the concrete type behind this handle declared that it may be viewed
// as I", and hands out the view. A type that implements an interface but
// does not list it in its table is not castable to it.
//
// # Design
//
// Every participating concrete type owns a table of apis.Target entries,
// one per target interface. An entry carries the interface identity
// (a reflect.Type), a display name, the concrete type it was built for, and
// two conversion functions (immutable and mutable view). Tables are built
// once by the target package, which verifies the concrete type really
// implements each interface, and never change afterwards.
//
// A handle finds its table through a Resolver, which tries strategies in
// priority order:
//
//  1. If the value implements apis.Castable, use v.CastTargets().
//  2. If the type was registered (Register), use the registry's table.
//  3. Otherwise the table is empty: only same-type casts succeed.
//
// # Dispatch
//
//	src := &Source{n: 5}
//	var h any = src
//
//	castx.CanBe[Print](h)         // true: Print is declared
//	p, ok := castx.As[Print](h)   // p.Print() == 5
//	castx.Is[*Source](h)          // true: exact concrete type
//	_, ok = castx.As[Other](h)    // false: not declared
//
// Concrete targets use the native type assertion. Interface targets scan the
// table linearly; the first entry whose identity matches wins.
//
// AsMut returns a view aliasing the handle's storage and therefore only
// succeeds for pointer-shaped concrete types. Into transfers a Box's value
// as a view of the same allocation; on failure the Box keeps its value.
//
// MustAs, MustAsMut and MustInto are the unchecked variants. Their
// precondition is that the checked call would succeed; violating it panics
// with a *CastError.
//
// # Global state
//
// Like the registry it wraps, castx keeps a read-mostly snapshot holding
// Config, Registry, Resolver, Builder and an opaque extension payload.
// Readers load it atomically and never lock; writers (SetConfig,
// SetRegistry, SetResolver, SetBuilder, SetExt, SetAll) serialise on a build
// mutex, rebuild unpinned layers, and publish a fresh snapshot.
//
// SetRegistry and SetResolver pin the layer they install, so later
// reconfiguration keeps it until UnpinRegistry / UnpinResolver.
//
// # Registration
//
// Types that cannot implement apis.Castable (or prefer not to) register
// their tables during initialization:
//
//	func init() {
//		castx.MustRegister[*Source](
//			target.MustBind[*Source, Print](),
//		)
//	}
//
// cmd/castgen generates such init functions from a declarative YAML file.
//
// # Concurrency model
//
// Tables are immutable, the registry is safe for concurrent use, and every
// dispatch is a stateless query. Immutable views may coexist freely. Mutable
// views and owned downcasts require the caller to hold exclusive access to
// the object; castx performs no locking or reference counting on handles.
package castx
