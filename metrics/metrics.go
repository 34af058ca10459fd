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

// Package metrics exposes cast outcomes as Prometheus counters.
//
//	obs, err := metrics.NewObserver(prometheus.DefaultRegisterer)
//	...
//	castx.Configure(config.WithObserver(obs))
package metrics

import (
	"errors"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/castx/apis"
	uref "dirpx.dev/castx/utils/reflect"
)

const (
	resultHit  = "hit"
	resultMiss = "miss"
)

// Observer is an apis.Observer counting casts by op, source, target and result.
// Label cardinality is bounded by the set of declared (source, target) pairs
// plus the targets actually requested.
type Observer struct {
	casts *prometheus.CounterVec
}

// Ensure Observer implements apis.Observer.
var _ apis.Observer = (*Observer)(nil)

// NewObserver creates an Observer and registers its collector with reg.
// A nil reg skips registration. If an identical collector is already
// registered, the existing one is reused.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	casts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "castx",
		Name:      "casts_total",
		Help:      "Number of downcast attempts by operation, source type, target and result.",
	}, []string{"op", "source", "target", "result"})

	if reg != nil {
		if err := reg.Register(casts); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, err
			}
			existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return nil, err
			}
			casts = existing
		}
	}
	return &Observer{casts: casts}, nil
}

// ObserveCast implements apis.Observer.
func (o *Observer) ObserveCast(op apis.Op, src, target reflect.Type, ok bool) {
	result := resultMiss
	if ok {
		result = resultHit
	}
	o.casts.WithLabelValues(string(op), uref.Name(src), uref.Name(target), result).Inc()
}

// Collector returns the underlying collector, e.g. for custom registries.
func (o *Observer) Collector() prometheus.Collector {
	return o.casts
}
