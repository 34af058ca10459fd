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

// Package downcast implements the dispatcher: given a handle known only as
// a generic value, it answers whether the handle can be viewed as a
// requested target and produces that view.
//
// A target T is either a concrete type, in which case the native type
// assertion decides, or an interface type, in which case the handle's
// table (resolved through an apis.Resolver) is scanned for an entry whose
// identity is T. Interfaces the concrete type merely happens to implement
// are not castable unless its table declares them.
//
// Every function is a stateless query and is safe for concurrent use with
// any number of readers. Mutable views and owned downcasts require the
// caller to hold exclusive access to the handle; nothing here locks.
package downcast

import (
	"reflect"
	"strings"

	"dirpx.dev/castx/apis"
	"dirpx.dev/castx/target"
	uref "dirpx.dev/castx/utils/reflect"
)

// Is reports whether T is exactly the concrete type of h.
// It is always false for interface T.
func Is[T any](h any) bool {
	if h == nil {
		return false
	}
	return reflect.TypeOf(h) == uref.Of[T]()
}

// CanBe reports whether As[T] would succeed for h.
func CanBe[T any](res apis.Resolver, cfg apis.Config, h any) bool {
	want := uref.Of[T]()
	var ok bool
	if uref.IsInterface(want) {
		_, ok = lookup(res, cfg, h, want)
	} else {
		ok = Is[T](h)
	}
	observe(cfg, apis.OpProbe, h, want, ok)
	return ok
}

// As returns h viewed as T. The view must be treated as read-only; use
// AsMut when the caller holds exclusive access and intends to mutate.
func As[T any](res apis.Resolver, cfg apis.Config, h any) (T, bool) {
	v, ok := view[T](res, cfg, h, false)
	observe(cfg, apis.OpView, h, uref.Of[T](), ok)
	return v, ok
}

// AsMut returns a view of h as T that aliases h's storage. It fails when
// no such view exists, i.e. when the concrete type is not pointer-shaped.
func AsMut[T any](res apis.Resolver, cfg apis.Config, h any) (T, bool) {
	v, ok := view[T](res, cfg, h, true)
	observe(cfg, apis.OpViewMut, h, uref.Of[T](), ok)
	return v, ok
}

// MustAs is the unchecked variant of As.
//
// The caller must already know that As[T] succeeds for h. Calling it
// otherwise is a contract violation and panics with a *CastError.
func MustAs[T any](res apis.Resolver, cfg apis.Config, h any) T {
	v, ok := As[T](res, cfg, h)
	if !ok {
		panic(newCastError(h, uref.Of[T](), ErrNotCastable))
	}
	return v
}

// MustAsMut is the unchecked variant of AsMut, with the same contract as MustAs.
func MustAsMut[T any](res apis.Resolver, cfg apis.Config, h any) T {
	v, ok := AsMut[T](res, cfg, h)
	if !ok {
		panic(newCastError(h, uref.Of[T](), ErrNotCastable))
	}
	return v
}

// Targets returns the table of the concrete type behind h.
// The returned slice is shared and must not be modified.
func Targets(res apis.Resolver, cfg apis.Config, h any) []apis.Target {
	if h == nil || res == nil {
		return nil
	}
	return res.Resolve(h, cfg)
}

// TargetNames returns the display names of h's targets in table order.
func TargetNames(res apis.Resolver, cfg apis.Config, h any) []string {
	return target.Names(Targets(res, cfg, h))
}

// Describe renders the castable interfaces of h, e.g.
// "Castable to {pets.Dog, pets.Cat[string]}". The concrete type itself is
// never listed.
func Describe(res apis.Resolver, cfg apis.Config, h any) string {
	return render(TargetNames(res, cfg, h))
}

func render(names []string) string {
	var sb strings.Builder
	sb.WriteString("Castable to {")
	sb.WriteString(strings.Join(names, ", "))
	sb.WriteString("}")
	return sb.String()
}

// view is the shared body of As and AsMut.
func view[T any](res apis.Resolver, cfg apis.Config, h any, mut bool) (T, bool) {
	var zero T
	if h == nil {
		return zero, false
	}
	want := uref.Of[T]()
	if !uref.IsInterface(want) {
		if mut && !uref.Aliases(want) {
			return zero, false
		}
		v, ok := h.(T)
		return v, ok
	}

	t, ok := lookup(res, cfg, h, want)
	if !ok {
		return zero, false
	}
	conv := t.ToRef
	if mut {
		conv = t.ToMut
	}
	if conv == nil {
		return zero, false
	}
	out, ok := conv(h)
	if !ok {
		return zero, false
	}
	v, ok := out.(T)
	return v, ok
}

// lookup finds the entry for want in h's table, rejecting entries built for
// another concrete type when cfg.VerifySource is set.
func lookup(res apis.Resolver, cfg apis.Config, h any, want reflect.Type) (apis.Target, bool) {
	if h == nil || res == nil {
		return apis.Target{}, false
	}
	t, ok := res.Find(h, want, cfg)
	if !ok {
		return apis.Target{}, false
	}
	if cfg.VerifySource {
		if src := reflect.TypeOf(h); t.Source != src {
			cfg.Log().Warn("castx: rejected cast entry bound to another type",
				"target", t.Name, "entry_source", uref.Name(t.Source), "handle", uref.Name(src))
			return apis.Target{}, false
		}
	}
	return t, true
}

func observe(cfg apis.Config, op apis.Op, h any, want reflect.Type, ok bool) {
	if cfg.Observer == nil {
		return
	}
	cfg.Observer.ObserveCast(op, reflect.TypeOf(h), want, ok)
}
