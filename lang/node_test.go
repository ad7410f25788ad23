package lang

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/duck/log"
	"github.com/ardnew/duck/typeinfo"
)

type Address struct {
	City string
}

type Order struct {
	Total int
}

type Customer struct {
	Name    string
	Address *Address
	Orders  []Order
	Tags    map[string]string

	nick string
}

func (c *Customer) Nick() string { return c.nick }

func (c *Customer) SetNick(s string) { c.nick = s }

func (c *Customer) Greet(prefix string) string { return prefix + " " + c.Name }

func (c *Customer) Fail() (string, error) { return "", errors.New("boom") }

// Settings answers some lookups itself and indexes the rest.
type Settings map[string]any

func (s Settings) TryGetValue(name string) (any, reflect.Type, bool) {
	if name == "Mode" {
		return "dark", reflect.TypeFor[string](), true
	}

	return nil, nil, false
}

type Lookup struct {
	m map[string]int
}

func (l *Lookup) Get(k string) int { return l.m[k] }

type Calc struct{}

type Inner struct {
	X int
}

type Outer struct {
	Inner Inner
}

type Item struct {
	F string
}

type Counter struct {
	Count int
}

func newCustomer() *Customer {
	return &Customer{
		Name:   "Ada",
		Orders: []Order{{Total: 3}, {Total: 7}},
		Tags:   map[string]string{"tier": "gold"},
	}
}

func newTestEnv(t *testing.T) (*Env, *Customer) {
	t.Helper()

	reg := typeinfo.NewRegistry()
	require.NoError(t, reg.Register("Customer", reflect.TypeFor[Customer](),
		typeinfo.Static{Name: "Default", Value: "anon"},
		typeinfo.Static{Name: "Make", Value: func(name string) *Customer {
			return &Customer{Name: name}
		}},
	))
	require.NoError(t, reg.Register("Calc", reflect.TypeFor[Calc](),
		typeinfo.Static{Name: "Max", Value: func(a, b int) int { return max(a, b) }},
		typeinfo.Static{Name: "Max", Value: func(a, b float64) float64 { return max(a, b) }},
	))
	reg.RegisterGeneric(reflect.TypeFor[Customer](), "Tag", 1,
		func(args ...reflect.Type) (any, error) {
			if args[0] != reflect.TypeFor[string]() {
				return nil, errors.New("unsupported")
			}

			return func(c *Customer, key string) string { return key + ":" + c.Name }, nil
		},
	)

	c := newCustomer()
	env := NewEnv(WithRegistry(reg), WithCache(false)).
		Set("customer", c).
		Set("settings", Settings{"Theme": "blue"}).
		Set("lookup", &Lookup{m: map[string]int{"alpha": 1}}).
		SetTyped("nobody", nil, reflect.TypeFor[*Customer]()).
		Set("count", 4)

	require.NoError(t, env.SetType("Customer", "Customer"))
	require.NoError(t, env.SetType("Calc", "Calc"))

	return env, c
}

func eval(t *testing.T, env *Env, src string) (Value, error) {
	t.Helper()

	e, err := Parse(context.Background(), src, WithRegistry(env.Registry()), WithCache(false))
	require.NoError(t, err, src)

	return e.Evaluate(env)
}

func TestFieldAccess_Evaluate(t *testing.T) {
	env, _ := newTestEnv(t)

	tests := []struct {
		name string
		src  string
		want any
		typ  reflect.Type
	}{
		{"field", "customer.Name", "Ada", reflect.TypeFor[string]()},
		{"slice index", "customer.Orders[1].Total", 7, reflect.TypeFor[int]()},
		{"map bracket", `customer.Tags["tier"]`, "gold", reflect.TypeFor[string]()},
		{"map member", "customer.Tags.tier", "gold", reflect.TypeFor[string]()},
		{"property", "customer.Nick", "", reflect.TypeFor[string]()},
		{"dynamic object", "settings.Mode", "dark", reflect.TypeFor[string]()},
		{"string indexer native", "settings.Theme", "blue", reflect.TypeFor[any]()},
		{"string indexer method", "lookup.alpha", 1, reflect.TypeFor[int]()},
		{"static field", "Customer.Default", "anon", reflect.TypeFor[string]()},
		{"plain variable", "count", 4, reflect.TypeFor[int]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := eval(t, env, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.V)
			assert.Equal(t, tt.typ, v.Type())
		})
	}
}

func TestFieldAccess_NullTarget(t *testing.T) {
	env, _ := newTestEnv(t)

	v, err := eval(t, env, "customer.Address.City")
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.Equal(t, reflect.TypeFor[string](), v.Type())

	v, err = eval(t, env, "nobody.Orders")
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.Equal(t, reflect.TypeFor[[]Order](), v.Type())

	v, err = eval(t, env, "nobody.zzz")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[*Customer](), v.Type())

	v, err = eval(t, env, "missing.Name")
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	_, err = MustParse("nobody.Name").Assign(env, "x")
	require.ErrorIs(t, err, ErrNoInstance)
}

func TestFieldAccess_UnknownMember(t *testing.T) {
	env, _ := newTestEnv(t)

	_, err := eval(t, env, "customer.zzz")
	require.ErrorIs(t, err, ErrUnknownMember)
	assert.Contains(t, err.Error(), "zzz")

	_, err = eval(t, env, "customer.Nme")
	require.ErrorIs(t, err, ErrUnknownMember)

	var lerr *Error
	require.ErrorAs(t, err, &lerr)

	sv, ok := lerr.Attr("suggestions")
	require.True(t, ok)
	assert.Contains(t, sv.Any(), "Name")

	_, err = eval(t, env, "Customer.zzz")
	require.ErrorIs(t, err, ErrUnknownMember)
}

func TestFieldAccess_Assign(t *testing.T) {
	env, c := newTestEnv(t)

	tests := []struct {
		name  string
		src   string
		value any
		check func() any
	}{
		{"field", "customer.Name", "Grace", func() any { return c.Name }},
		{"index", "customer.Orders[0].Total", 5, func() any { return c.Orders[0].Total }},
		{"property", "customer.Nick", "ace", func() any { return c.nick }},
		{"map member", "customer.Tags.tier", "silver", func() any { return c.Tags["tier"] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := MustParse(tt.src, WithRegistry(env.Registry())).Assign(env, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.value, v.V)
			assert.Equal(t, tt.value, tt.check())
		})
	}

	v, err := MustParse("settings.Theme").Assign(env, "red")
	require.NoError(t, err)
	assert.Equal(t, "red", v.V)
}

func TestFieldAccess_AssignNested(t *testing.T) {
	o := &Outer{}
	xs := []Item{{F: "a"}, {F: "b"}}
	env := NewEnv(WithCache(false)).Set("o", o).Set("xs", xs)

	v, err := MustParse("o.Inner.X").Assign(env, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, v.V)
	assert.Equal(t, 5, o.Inner.X)

	v, err = MustParse("xs[1].F").Assign(env, "z")
	require.NoError(t, err)
	assert.Equal(t, "z", v.V)
	assert.Equal(t, []Item{{F: "a"}, {F: "z"}}, xs)

	got, err := eval(t, env, "o.Inner.X")
	require.NoError(t, err)
	assert.Equal(t, 5, got.V)
}

func TestFieldAccess_StaticAndInstanceSameName(t *testing.T) {
	reg := typeinfo.NewRegistry()
	require.NoError(t, reg.Register("Counter", reflect.TypeFor[Counter](),
		typeinfo.Static{Name: "Count", Value: 99},
	))

	env := NewEnv(WithRegistry(reg), WithCache(false)).Set("c", &Counter{Count: 1})
	require.NoError(t, env.SetType("Counter", "Counter"))

	v, err := eval(t, env, "c.Count")
	require.NoError(t, err)
	assert.Equal(t, 1, v.V)

	v, err = eval(t, env, "Counter.Count")
	require.NoError(t, err)
	assert.Equal(t, 99, v.V)
}

func TestFieldAccess_AssignErrors(t *testing.T) {
	env, _ := newTestEnv(t)

	tests := []struct {
		name string
		src  string
		want error
	}{
		{"method group", "customer.Greet", ErrNotAssignable},
		{"call result", "customer.Greet('x')", ErrNotAssignable},
		{"type mismatch", "customer.Name", ErrNotAssignable},
		{"read-only indexer", "lookup.alpha", ErrNotAssignable},
		{"static instance member", "Customer.Name", ErrNoInstance},
		{"null target", "nobody.Name", ErrNoInstance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MustParse(tt.src, WithRegistry(env.Registry())).Assign(env, []int{1})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMethodGroup(t *testing.T) {
	env, _ := newTestEnv(t)
	env.Set("other", &Customer{Name: "Bo"})

	tests := []struct {
		name string
		src  string
		want any
	}{
		{"bound", "customer.Greet('hi')", "hi Ada"},
		{"static", "Customer.Make('Cy').Name", "Cy"},
		{"unbound instance", "Customer.Greet(other, 'yo')", "yo Bo"},
		{"overload int", "Calc.Max(1, 2)", 2},
		{"overload float", "Calc.Max(1.5, 2.5)", 2.5},
		{"generic", "customer.Tag<string>('k')", "k:Ada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := eval(t, env, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.V)
		})
	}

	v, err := eval(t, env, "customer.Greet")
	require.NoError(t, err)

	group, ok := v.V.(*MethodGroup)
	require.True(t, ok)
	assert.True(t, group.Bound())
	assert.Equal(t, "Greet", group.Name)
}

func TestMethodGroup_Errors(t *testing.T) {
	env, _ := newTestEnv(t)

	tests := []struct {
		name string
		src  string
		want error
	}{
		{"no overload", "Calc.Max(1, 2.5)", ErrUnresolvableOverload},
		{"returned error", "customer.Fail()", ErrInvocation},
		{"not callable", "customer.Name()", ErrInvocation},
		{"unbound without receiver", "Customer.Greet()", ErrNoInstance},
		{"unresolved type argument", "customer.Tag<Nope>('k')", ErrUnresolvedType},
		{"unknown generic", "customer.Tag<int>('k')", ErrUnknownMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eval(t, env, tt.src)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenericVariable(t *testing.T) {
	env, _ := newTestEnv(t)

	_, err := eval(t, env, "count<int>")
	require.ErrorIs(t, err, ErrUnsupportedConstruct)

	n, err := NewGenericVariable("count", env.Registry())
	require.NoError(t, err)

	v, err := n.Evaluate(env)
	require.NoError(t, err)
	assert.Equal(t, 4, v.V)
	assert.Equal(t, "count", n.String())

	n, err = NewGenericVariable("gone", env.Registry())
	require.NoError(t, err)

	v, err = n.Evaluate(env)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.Equal(t, Dynamic, v.Type())
}

func TestFieldAccess_TraceLogging(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
	)

	env := NewEnv(WithLogger(logger), WithCache(false)).Set("c", newCustomer())

	v, err := MustParse("c.Address.City", WithCache(false)).Evaluate(env)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.Contains(t, buf.String(), "null target")
}

func TestEvaluate_Concurrent(t *testing.T) {
	env, _ := newTestEnv(t)
	e := MustParse("customer.Orders[1].Total", WithRegistry(env.Registry()))

	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			v, err := e.Evaluate(env)
			assert.NoError(t, err)
			assert.Equal(t, 7, v.V)
		}()
	}

	wg.Wait()
}
