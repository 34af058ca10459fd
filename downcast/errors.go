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
	"errors"
	"fmt"
	"reflect"

	uref "dirpx.dev/castx/utils/reflect"
)

var (
	// ErrNotCastable is returned when the handle cannot be viewed as the target.
	ErrNotCastable = errors.New("castx(downcast): not castable")
	// ErrStorageMismatch is returned when a view does not alias the owned
	// allocation, so ownership cannot be transferred.
	ErrStorageMismatch = errors.New("castx(downcast): view does not share the owned allocation")
	// ErrReleased is returned when a Box has already given up its value.
	ErrReleased = errors.New("castx(downcast): box already released")
	// ErrNilBox is returned when a nil Box is provided.
	ErrNilBox = errors.New("castx(downcast): nil box")
)

// CastError describes a failed cast.
type CastError struct {
	// From is the concrete type of the handle (nil for a nil handle).
	From reflect.Type
	// To is the requested target.
	To reflect.Type
	// Err is the underlying reason.
	Err error
}

func newCastError(h any, to reflect.Type, err error) *CastError {
	return &CastError{From: reflect.TypeOf(h), To: to, Err: err}
}

func (e *CastError) Error() string {
	return fmt.Sprintf("%v: %s -> %s", e.Err, uref.Name(e.From), uref.Name(e.To))
}

func (e *CastError) Unwrap() error { return e.Err }
