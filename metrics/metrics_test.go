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

package metrics_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/castx/apis"
	"dirpx.dev/castx/metrics"
)

type Print interface{ Print() int }

type source struct{}

func TestObserver_CountsByResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := metrics.NewObserver(reg)
	require.NoError(t, err)

	src := reflect.TypeOf(&source{})
	printID := reflect.TypeFor[Print]()

	obs.ObserveCast(apis.OpView, src, printID, true)
	obs.ObserveCast(apis.OpView, src, printID, true)
	obs.ObserveCast(apis.OpProbe, src, reflect.TypeFor[fmt.Stringer](), false)

	vec := obs.Collector().(*prometheus.CounterVec)
	assert.Equal(t, 2.0, testutil.ToFloat64(vec.WithLabelValues("view", "*metrics_test.source", "metrics_test.Print", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(vec.WithLabelValues("probe", "*metrics_test.source", "fmt.Stringer", "miss")))
	assert.Equal(t, 2, testutil.CollectAndCount(vec, "castx_casts_total"))
}

func TestObserver_NilHandle(t *testing.T) {
	obs, err := metrics.NewObserver(nil)
	require.NoError(t, err)

	obs.ObserveCast(apis.OpInto, nil, reflect.TypeFor[Print](), false)

	vec := obs.Collector().(*prometheus.CounterVec)
	assert.Equal(t, 1.0, testutil.ToFloat64(vec.WithLabelValues("into", "<nil>", "metrics_test.Print", "miss")))
}

func TestNewObserver_ReusesRegisteredCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := metrics.NewObserver(reg)
	require.NoError(t, err)
	second, err := metrics.NewObserver(reg)
	require.NoError(t, err)

	assert.Same(t, first.Collector(), second.Collector())
}

func TestNewObserver_ConflictingCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "castx",
		Name:      "casts_total",
		Help:      "something else",
	}, []string{"op"}))

	_, err := metrics.NewObserver(reg)
	assert.Error(t, err)
}
