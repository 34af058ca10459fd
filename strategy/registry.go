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

// NewRegistryStrategy creates an apis.Strategy that uses an apis.Registry.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults tables published at startup through Register.
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryResolve looks up v's dynamic type in the registry.
func (s *registryStrategy) TryResolve(v any, cfg apis.Config) ([]apis.Target, bool) {
	if v == nil {
		return nil, false
	}
	return s.TryResolveType(reflect.TypeOf(v), cfg)
}

// TryResolveType looks up t in the registry.
func (s *registryStrategy) TryResolveType(t reflect.Type, _ apis.Config) ([]apis.Target, bool) {
	if t == nil || s.reg == nil {
		return nil, false
	}
	return s.reg.Lookup(t)
}

// TryFind handles v only when its type has a registered table.
func (s *registryStrategy) TryFind(v any, id reflect.Type, _ apis.Config) (apis.Target, bool, bool) {
	if v == nil || s.reg == nil {
		return apis.Target{}, false, false
	}
	src := reflect.TypeOf(v)
	if t, ok := s.reg.Find(src, id); ok {
		return t, true, true
	}
	if _, registered := s.reg.Lookup(src); registered {
		return apis.Target{}, false, true
	}
	return apis.Target{}, false, false
}
