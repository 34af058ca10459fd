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
	"reflect"

	"dirpx.dev/castx/apis"
	"dirpx.dev/castx/downcast"
	uref "dirpx.dev/castx/utils/reflect"
)

// Box owns a heap-allocated value for owned downcasts (see Into).
type Box = downcast.Box

// CastError describes a failed cast.
type CastError = downcast.CastError

var (
	// ErrNotCastable is returned when a handle cannot be viewed as the target.
	ErrNotCastable = downcast.ErrNotCastable
	// ErrStorageMismatch is returned when a view does not alias the owned allocation.
	ErrStorageMismatch = downcast.ErrStorageMismatch
	// ErrReleased is returned when a Box has already given up its value.
	ErrReleased = downcast.ErrReleased
	// ErrNilBox is returned when a nil Box is provided.
	ErrNilBox = downcast.ErrNilBox
)

// NewBox takes ownership of v.
func NewBox(v any) *Box { return downcast.NewBox(v) }

// Register publishes the table of the concrete type C in the global
// registry. It is meant to run once per type during initialization.
func Register[C any](targets ...apis.Target) error {
	return RegisterType(uref.Of[C](), targets...)
}

// MustRegister is like Register but panics on error.
func MustRegister[C any](targets ...apis.Target) {
	if err := Register[C](targets...); err != nil {
		panic(err)
	}
}

// RegisterType publishes the table of src in the global registry.
func RegisterType(src reflect.Type, targets ...apis.Target) error {
	return st.Load().reg.Register(src, targets)
}

// Is reports whether T is exactly the concrete type of h.
func Is[T any](h any) bool {
	return downcast.Is[T](h)
}

// CanBe reports whether As[T](h) would succeed.
func CanBe[T any](h any) bool {
	s := st.Load()
	return downcast.CanBe[T](s.res, s.cfg, h)
}

// As returns h viewed as T, or false when T is neither h's concrete type
// nor declared in h's table.
func As[T any](h any) (T, bool) {
	s := st.Load()
	return downcast.As[T](s.res, s.cfg, h)
}

// AsMut returns a view of h as T aliasing h's storage. The caller must hold
// exclusive access to h while the view is live.
func AsMut[T any](h any) (T, bool) {
	s := st.Load()
	return downcast.AsMut[T](s.res, s.cfg, h)
}

// MustAs is the unchecked As: it panics with a *CastError unless As would succeed.
func MustAs[T any](h any) T {
	s := st.Load()
	return downcast.MustAs[T](s.res, s.cfg, h)
}

// MustAsMut is the unchecked AsMut: it panics with a *CastError unless AsMut would succeed.
func MustAsMut[T any](h any) T {
	s := st.Load()
	return downcast.MustAsMut[T](s.res, s.cfg, h)
}

// Into moves the value out of b as a T referring to the same allocation.
// On failure b is left intact and the error is a *CastError.
func Into[T any](b *Box) (T, error) {
	s := st.Load()
	return downcast.Into[T](s.res, s.cfg, b)
}

// MustInto is the unchecked Into.
func MustInto[T any](b *Box) T {
	s := st.Load()
	return downcast.MustInto[T](s.res, s.cfg, b)
}

// Targets returns h's table. The slice is shared and must not be modified.
func Targets(h any) []apis.Target {
	s := st.Load()
	return downcast.Targets(s.res, s.cfg, h)
}

// TargetNames returns the display names of h's targets in table order.
func TargetNames(h any) []string {
	s := st.Load()
	return downcast.TargetNames(s.res, s.cfg, h)
}

// Describe renders h's castable interfaces, e.g. "Castable to {pets.Dog}".
func Describe(h any) string {
	s := st.Load()
	return downcast.Describe(s.res, s.cfg, h)
}
