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

package downcast

import (
	"dirpx.dev/castx/apis"
	uref "dirpx.dev/castx/utils/reflect"
)

// Box is the sole owner of a heap-allocated value. Into moves the value out
// of the box as a differently typed view of the same allocation; a failed
// Into leaves the box untouched.
//
// A Box is not safe for concurrent use.
type Box struct {
	v        any
	released bool
}

// NewBox takes ownership of v. Callers should not keep other references.
func NewBox(v any) *Box {
	return &Box{v: v}
}

// Value returns the owned value without releasing it, or nil once released.
func (b *Box) Value() any {
	if b == nil {
		return nil
	}
	return b.v
}

// Released reports whether the box has transferred its value.
func (b *Box) Released() bool {
	return b == nil || b.released
}

// Into transfers ownership of b's value to the caller as a T.
//
// On success the returned T refers to the original allocation and b is
// released. On failure b keeps its value and the error is a *CastError
// wrapping ErrNotCastable or ErrStorageMismatch.
func Into[T any](res apis.Resolver, cfg apis.Config, b *Box) (T, error) {
	var zero T
	want := uref.Of[T]()
	if b == nil {
		return zero, ErrNilBox
	}
	if b.released {
		return zero, ErrReleased
	}

	v, ok := view[T](res, cfg, b.v, true)
	if !ok {
		observe(cfg, apis.OpInto, b.v, want, false)
		return zero, newCastError(b.v, want, ErrNotCastable)
	}
	if !uref.SameStorage(b.v, v) {
		observe(cfg, apis.OpInto, b.v, want, false)
		return zero, newCastError(b.v, want, ErrStorageMismatch)
	}

	observe(cfg, apis.OpInto, b.v, want, true)
	b.v, b.released = nil, true
	return v, nil
}

// MustInto is the unchecked variant of Into. The caller must know that Into
// succeeds; otherwise it panics with the *CastError and b is left intact.
func MustInto[T any](res apis.Resolver, cfg apis.Config, b *Box) T {
	v, err := Into[T](res, cfg, b)
	if err != nil {
		panic(err)
	}
	return v
}
