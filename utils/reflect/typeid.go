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

package reflect

import (
	"errors"
	"reflect"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectNotInterface indicates a target identity that is not an interface type.
	ErrReflectNotInterface = errors.New("reflect: target is not an interface type")
	// ErrReflectSourceIsInterface indicates a source that is not a concrete type.
	ErrReflectSourceIsInterface = errors.New("reflect: source is an interface type")
	// ErrReflectNotImplemented indicates that the source does not implement the target.
	ErrReflectNotImplemented = errors.New("reflect: source does not implement target")
)

// Of returns the identity of T. Unlike reflect.TypeOf it works for
// interface types, which is what target identities are.
func Of[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// IsInterface reports whether t is an interface type.
func IsInterface(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Interface
}

// Aliases reports whether values of t refer to shared storage, so that a
// copy of the value (e.g. inside an interface) still mutates the original.
func Aliases(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// Name returns the display name of t, keeping pointer markers and
// generic instantiation parameters ("*pets.HybridPet[string]").
func Name(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// CheckBinding validates that src can be bound to the interface iface.
//
// Checks, in order:
//   - both types are non-nil;
//   - iface is an interface type;
//   - src is a concrete (non-interface) type;
//   - src implements iface.
func CheckBinding(src, iface reflect.Type) error {
	if src == nil || iface == nil {
		return ErrReflectNilType
	}
	if !IsInterface(iface) {
		return ErrReflectNotInterface
	}
	if IsInterface(src) {
		return ErrReflectSourceIsInterface
	}
	if !src.Implements(iface) {
		return ErrReflectNotImplemented
	}
	return nil
}

// SameStorage reports whether a and b refer to the same underlying
// allocation. Only pointer-shaped values can share storage; everything
// else reports false.
func SameStorage(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != vb.Kind() || !Aliases(va.Type()) {
		return false
	}
	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	default:
		return va.Pointer() == vb.Pointer()
	}
}
