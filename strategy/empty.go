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

package strategy

import (
	"reflect"

	"dirpx.dev/castx/apis"
)

// NewEmptyStrategy creates the opt-out apis.Strategy: every type it sees has
// an empty table, so only same-type casts succeed.
func NewEmptyStrategy() apis.Strategy {
	return emptyStrategy{}
}

// emptyStrategy is the universal fallback that terminates a chain.
type emptyStrategy struct{}

// Ensure emptyStrategy implements apis.Strategy.
var _ apis.Strategy = (*emptyStrategy)(nil)

func (emptyStrategy) TryResolve(v any, _ apis.Config) ([]apis.Target, bool) {
	if v == nil {
		return nil, false
	}
	return nil, true
}

func (emptyStrategy) TryResolveType(t reflect.Type, _ apis.Config) ([]apis.Target, bool) {
	if t == nil {
		return nil, false
	}
	return nil, true
}

func (emptyStrategy) TryFind(v any, _ reflect.Type, _ apis.Config) (apis.Target, bool, bool) {
	if v == nil {
		return apis.Target{}, false, false
	}
	return apis.Target{}, false, true
}
