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
	"dirpx.dev/castx/target"
)

// NewCastableStrategy creates an apis.Strategy that uses apis.Castable.
func NewCastableStrategy() apis.Strategy {
	return &castableStrategy{}
}

// castableStrategy is the allocation-free fast path: if v implements
// apis.Castable, its own table is authoritative and the chain stops.
type castableStrategy struct{}

// Ensure castableStrategy implements apis.Strategy.
var _ apis.Strategy = (*castableStrategy)(nil)

// TryResolve returns v.CastTargets() when v implements apis.Castable.
func (*castableStrategy) TryResolve(v any, _ apis.Config) ([]apis.Target, bool) {
	if v == nil {
		return nil, false
	}
	if c, ok := v.(apis.Castable); ok {
		return c.CastTargets(), true
	}
	return nil, false
}

// TryResolveType always returns false: Castable requires an instance.
func (*castableStrategy) TryResolveType(_ reflect.Type, _ apis.Config) ([]apis.Target, bool) {
	return nil, false
}

// TryFind scans v's own table.
func (s *castableStrategy) TryFind(v any, id reflect.Type, cfg apis.Config) (apis.Target, bool, bool) {
	table, handled := s.TryResolve(v, cfg)
	if !handled {
		return apis.Target{}, false, false
	}
	t, found := target.Find(table, id)
	return t, found, true
}
