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

package downcast_test

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/castx/apis"
	"dirpx.dev/castx/builder"
	"dirpx.dev/castx/config"
	"dirpx.dev/castx/downcast"
	"dirpx.dev/castx/target"
)

type Print interface{ Print() int }

type Setter interface{ Set(n int) }

// Other is implemented by *Source but never declared.
type Other interface{ Other() string }

type Source struct{ n int }

func (s *Source) Print() int     { return s.n }
func (s *Source) Set(n int)      { s.n = n }
func (s *Source) Other() string  { return "other" }
func (s *Source) String() string { return fmt.Sprint(s.n) }

// Label is a value type; it has no mutable views.
type Label string

func (l Label) String() string { return string(l) }

// forged publishes an entry built for *Source.
type forged struct{ n int }

func (f *forged) Print() int { return f.n }

func (*forged) CastTargets() []apis.Target {
	return []apis.Target{target.MustBind[*Source, Print]()}
}

// copier converts by copying, so its views never alias the handle.
type copier struct{ n int }

func (c *copier) Print() int { return c.n }

var copierTargets = []apis.Target{{
	ID:     reflect.TypeFor[Print](),
	Name:   "downcast_test.Print",
	Source: reflect.TypeOf(&copier{}),
	ToRef: func(h any) (any, bool) {
		c, ok := h.(*copier)
		if !ok {
			return nil, false
		}
		return &copier{n: c.n}, true
	},
	ToMut: func(h any) (any, bool) {
		c, ok := h.(*copier)
		if !ok {
			return nil, false
		}
		return &copier{n: c.n}, true
	},
}}

func (*copier) CastTargets() []apis.Target { return copierTargets }

type record struct {
	op       apis.Op
	src, dst reflect.Type
	ok       bool
}

type recorder struct {
	mu   sync.Mutex
	seen []record
}

func (r *recorder) ObserveCast(op apis.Op, src, dst reflect.Type, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, record{op: op, src: src, dst: dst, ok: ok})
}

func setup(t *testing.T, opts ...config.Option) (apis.Resolver, apis.Config) {
	t.Helper()
	cfg := config.NewConfig(opts...)
	b := builder.New()
	reg := b.BuildRegistry(cfg, nil, nil)
	require.NoError(t, reg.Register(reflect.TypeOf(&Source{}), []apis.Target{
		target.MustBind[*Source, Print](),
		target.MustBind[*Source, Setter](),
	}))
	require.NoError(t, reg.Register(reflect.TypeOf(Label("")), []apis.Target{
		target.MustBind[Label, fmt.Stringer](),
	}))
	return b.BuildResolver(cfg, reg, nil, nil), cfg
}

func TestSourceScenario(t *testing.T) {
	res, cfg := setup(t)
	var h any = &Source{n: 5}

	assert.True(t, downcast.CanBe[Print](res, cfg, h))

	p, ok := downcast.As[Print](res, cfg, h)
	require.True(t, ok)
	assert.Equal(t, 5, p.Print())

	_, ok = downcast.As[Other](res, cfg, h)
	assert.False(t, ok, "undeclared interface must be absent")
	assert.False(t, downcast.CanBe[Other](res, cfg, h))

	assert.True(t, downcast.Is[*Source](h))
	assert.False(t, downcast.Is[Source](h))
	assert.False(t, downcast.Is[Print](h), "Is is false for interfaces")

	box := downcast.NewBox(h)
	owned, err := downcast.Into[Print](res, cfg, box)
	require.NoError(t, err)
	assert.Equal(t, 5, owned.Print())
	assert.True(t, box.Released())
	assert.Nil(t, box.Value())
	assert.Same(t, h.(*Source), owned.(*Source))
}

func TestConcreteTargets(t *testing.T) {
	res, cfg := setup(t)
	s := &Source{n: 1}

	got, ok := downcast.As[*Source](res, cfg, s)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = downcast.As[Label](res, cfg, s)
	assert.False(t, ok)

	// Concrete types never need a table.
	type loose struct{ n int }
	v, ok := downcast.As[loose](res, cfg, loose{n: 3})
	require.True(t, ok)
	assert.Equal(t, 3, v.n)
	assert.True(t, downcast.CanBe[loose](res, cfg, loose{}))

	// A value type has no mutable view of itself.
	_, ok = downcast.AsMut[loose](res, cfg, loose{})
	assert.False(t, ok)

	m, ok := downcast.AsMut[*Source](res, cfg, s)
	require.True(t, ok)
	m.n = 9
	assert.Equal(t, 9, s.n)
}

func TestAsMut_AliasesStorage(t *testing.T) {
	res, cfg := setup(t)
	s := &Source{n: 1}

	set, ok := downcast.AsMut[Setter](res, cfg, s)
	require.True(t, ok)
	set.Set(42)
	assert.Equal(t, 42, s.n)

	p, ok := downcast.As[Print](res, cfg, s)
	require.True(t, ok)
	assert.Equal(t, 42, p.Print())
}

func TestAsMut_ValueTypeHasNoMutableView(t *testing.T) {
	res, cfg := setup(t)

	s, ok := downcast.As[fmt.Stringer](res, cfg, Label("hi"))
	require.True(t, ok)
	assert.Equal(t, "hi", s.String())

	_, ok = downcast.AsMut[fmt.Stringer](res, cfg, Label("hi"))
	assert.False(t, ok)
}

func TestNegativeCases(t *testing.T) {
	res, cfg := setup(t)

	// nil handle
	assert.False(t, downcast.CanBe[Print](res, cfg, nil))
	_, ok := downcast.As[Print](res, cfg, nil)
	assert.False(t, ok)
	assert.False(t, downcast.Is[*Source](nil))

	// unregistered type: empty table
	type bare struct{ n int }
	_, ok = downcast.As[fmt.Stringer](res, cfg, bare{})
	assert.False(t, ok)
	assert.Empty(t, downcast.Targets(res, cfg, bare{}))
	assert.Equal(t, "Castable to {}", downcast.Describe(res, cfg, bare{}))

	// Source (value) is a distinct concrete type from *Source.
	_, ok = downcast.As[Print](res, cfg, Source{n: 1})
	assert.False(t, ok)

	// nil resolver
	_, ok = downcast.As[Print](nil, cfg, &Source{})
	assert.False(t, ok)
	assert.Nil(t, downcast.Targets(nil, cfg, &Source{}))
}

func TestVerifySource(t *testing.T) {
	res, cfg := setup(t)
	h := &forged{n: 1}

	_, ok := downcast.As[Print](res, cfg, h)
	assert.False(t, ok, "entry bound to *Source must be rejected for *forged")
	assert.False(t, downcast.CanBe[Print](res, cfg, h))

	// Without verification the conversion itself still refuses the handle.
	res, cfg = setup(t, config.WithVerifySource(false))
	assert.True(t, downcast.CanBe[Print](res, cfg, h))
	_, ok = downcast.As[Print](res, cfg, h)
	assert.False(t, ok)
}

func TestDescribeAndTargets(t *testing.T) {
	res, cfg := setup(t)
	s := &Source{}

	assert.Equal(t, []string{"downcast_test.Print", "downcast_test.Setter"}, downcast.TargetNames(res, cfg, s))
	assert.Equal(t, "Castable to {downcast_test.Print, downcast_test.Setter}", downcast.Describe(res, cfg, s))
	assert.NotContains(t, downcast.Describe(res, cfg, s), "Source")
	// Deterministic across calls.
	assert.Equal(t, downcast.Describe(res, cfg, s), downcast.Describe(res, cfg, s))
}

func TestMustVariants(t *testing.T) {
	res, cfg := setup(t)
	s := &Source{n: 7}

	assert.Equal(t, 7, downcast.MustAs[Print](res, cfg, s).Print())
	downcast.MustAsMut[Setter](res, cfg, s).Set(8)
	assert.Equal(t, 8, s.n)

	assertCastPanic := func(t *testing.T, fn func()) {
		t.Helper()
		defer func() {
			r := recover()
			require.NotNil(t, r, "expected panic")
			err, ok := r.(*downcast.CastError)
			require.True(t, ok, "panic value %T is not *CastError", r)
			assert.ErrorIs(t, err, downcast.ErrNotCastable)
		}()
		fn()
	}
	assertCastPanic(t, func() { downcast.MustAs[Other](res, cfg, s) })
	assertCastPanic(t, func() { downcast.MustAsMut[fmt.Stringer](res, cfg, Label("x")) })

	box := downcast.NewBox(s)
	assertCastPanic(t, func() { downcast.MustInto[Other](res, cfg, box) })
	assert.False(t, box.Released())
	assert.Equal(t, 8, downcast.MustInto[Print](res, cfg, box).Print())
}

func TestObserver(t *testing.T) {
	rec := &recorder{}
	res, cfg := setup(t, config.WithObserver(rec))
	s := &Source{n: 1}

	downcast.CanBe[Print](res, cfg, s)
	downcast.As[Other](res, cfg, s)
	downcast.AsMut[Setter](res, cfg, s)
	_, _ = downcast.Into[Print](res, cfg, downcast.NewBox(s))

	src := reflect.TypeOf(s)
	assert.Equal(t, []record{
		{op: apis.OpProbe, src: src, dst: reflect.TypeFor[Print](), ok: true},
		{op: apis.OpView, src: src, dst: reflect.TypeFor[Other](), ok: false},
		{op: apis.OpViewMut, src: src, dst: reflect.TypeFor[Setter](), ok: true},
		{op: apis.OpInto, src: src, dst: reflect.TypeFor[Print](), ok: true},
	}, rec.seen)
}

func TestConcurrentViews(t *testing.T) {
	res, cfg := setup(t)
	values := []any{&Source{n: 1}, Label("a"), &forged{}, 3}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				v := values[(i+id)%len(values)]
				_ = downcast.CanBe[Print](res, cfg, v)
				_, _ = downcast.As[fmt.Stringer](res, cfg, v)
				_ = downcast.Describe(res, cfg, v)
			}
		}(w)
	}
	wg.Wait()
}
