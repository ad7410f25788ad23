package resolve

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/duck/log"
	"github.com/ardnew/duck/typeinfo"
)

type Shape struct {
	ID string
}

func (s *Shape) Area() float64 { return 0 }

func (s *Shape) Scale(f float64) string { return "float64" }

type Tag struct {
	ID string
}

type Square struct {
	Shape

	Side float64
}

func (s *Square) Scale(n int) string { return "int" }

func (s *Square) Describe(a any) string { return "any" }

// Proxy mimics a generated subtype that redeclares a member of its base.
type Proxy struct {
	Square

	Side float64
}

// Mixed embeds two types declaring the same field at the same depth.
type Mixed struct {
	Shape
	Tag
}

type Registry map[string]any

var (
	typeString  = reflect.TypeFor[string]()
	typeInt     = reflect.TypeFor[int]()
	typeFloat64 = reflect.TypeFor[float64]()
	typeAny     = reflect.TypeFor[any]()
)

func TestResolveMember(t *testing.T) {
	r := New(WithRegistry(typeinfo.NewRegistry()))

	tests := []struct {
		name      string
		typ       reflect.Type
		member    string
		count     int
		declaring reflect.Type
	}{
		{"declared", reflect.TypeFor[Square](), "Side", 1, reflect.TypeFor[Square]()},
		{"ancestor field", reflect.TypeFor[Square](), "ID", 1, reflect.TypeFor[Shape]()},
		{"ancestor method", reflect.TypeFor[*Square](), "Area", 1, reflect.TypeFor[Shape]()},
		{"nearest level only", reflect.TypeFor[Square](), "Scale", 1, reflect.TypeFor[Square]()},
		{"redeclared", reflect.TypeFor[Proxy](), "Side", 1, reflect.TypeFor[Proxy]()},
		{"same depth", reflect.TypeFor[Mixed](), "ID", 2, reflect.TypeFor[Shape]()},
		{"missing", reflect.TypeFor[Square](), "zzz", 0, nil},
		{"universal root", typeAny, "zzz", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := r.ResolveMember(tt.typ, tt.member, nil)
			require.Len(t, found, tt.count)

			if tt.count > 0 {
				assert.Equal(t, tt.declaring, found[0].Declaring)
			}
		})
	}
}

func TestResolveMember_Generics(t *testing.T) {
	reg := typeinfo.NewRegistry()
	reg.RegisterGeneric(reflect.TypeFor[Shape](), "As", 1, func(args ...reflect.Type) (any, error) {
		if args[0] != typeString {
			return nil, errors.New("string only")
		}

		return func(s *Shape) string { return "shape " + s.ID }, nil
	})

	r := New(WithRegistry(reg))

	found := r.ResolveMember(reflect.TypeFor[Square](), "As", []reflect.Type{typeString})
	require.Len(t, found, 1)

	out, err := found[0].Call(reflect.ValueOf(&Square{Shape: Shape{ID: "s1"}}), nil)
	require.NoError(t, err)
	assert.Equal(t, "shape s1", out[0].Interface())

	assert.Empty(t, r.ResolveMember(reflect.TypeFor[Square](), "As", []reflect.Type{typeString, typeInt}))
	assert.Empty(t, r.ResolveMember(reflect.TypeFor[Square](), "As", nil))
	assert.Empty(t, r.ResolveMember(reflect.TypeFor[Square](), "Side", []reflect.Type{typeInt}))
}

func method(name string, depth int, params ...reflect.Type) *typeinfo.Member {
	return &typeinfo.Member{
		Name:   name,
		Kind:   typeinfo.KindMethod,
		Params: params,
		Depth:  depth,
	}
}

func TestSelectBestMethod(t *testing.T) {
	r := New()

	byInt := method("Put", 0, typeInt)
	byString := method("Put", 0, typeString)
	byAny := method("Put", 0, typeAny)
	pair := method("Put", 0, typeString, typeInt)
	deepInt := method("Put", 1, typeInt)

	tests := []struct {
		name       string
		candidates []*typeinfo.Member
		args       []reflect.Type
		want       *typeinfo.Member
	}{
		{"none", nil, []reflect.Type{typeInt}, nil},
		{"single ignores arguments", []*typeinfo.Member{byInt}, []reflect.Type{typeString, typeString}, byInt},
		{"exact int", []*typeinfo.Member{byAny, byString, byInt}, []reflect.Type{typeInt}, byInt},
		{"exact string", []*typeinfo.Member{byAny, byInt, byString}, []reflect.Type{typeString}, byString},
		{"assignable", []*typeinfo.Member{byInt, byAny}, []reflect.Type{typeFloat64}, byAny},
		{"arity", []*typeinfo.Member{byString, pair}, []reflect.Type{typeString, typeInt}, pair},
		{"arity mismatch", []*typeinfo.Member{byString, pair}, []reflect.Type{}, nil},
		{"no compatible", []*typeinfo.Member{byInt, byString}, []reflect.Type{typeFloat64}, nil},
		{"nearest wins tie", []*typeinfo.Member{deepInt, byInt}, []reflect.Type{typeInt}, byInt},
		{"order breaks tie", []*typeinfo.Member{byInt, method("Put", 0, typeInt)}, []reflect.Type{typeInt}, byInt},
		{"nil argument", []*typeinfo.Member{byInt, byAny}, []reflect.Type{nil}, byAny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, r.SelectBestMethod(tt.candidates, tt.args))
		})
	}
}

func TestMethod(t *testing.T) {
	r := New(WithRegistry(typeinfo.NewRegistry()))
	typ := reflect.TypeFor[*Square]()

	m := r.Method(typ, "Scale", []reflect.Type{typeFloat64})
	require.NotNil(t, m)
	assert.Equal(t, reflect.TypeFor[Shape](), m.Declaring)

	m = r.Method(typ, "Scale", []reflect.Type{typeInt})
	require.NotNil(t, m)
	assert.Equal(t, reflect.TypeFor[Square](), m.Declaring)

	assert.Nil(t, r.Method(typ, "Scale", []reflect.Type{typeString}))
}

func TestStringIndexer(t *testing.T) {
	r := New(WithRegistry(typeinfo.NewRegistry()))

	ix := r.StringIndexer(reflect.TypeFor[Registry]())
	require.NotNil(t, ix)

	v, err := ix.Index(reflect.ValueOf(Registry{"k": 1}), reflect.ValueOf("k"))
	require.NoError(t, err)
	assert.Equal(t, 1, v.Interface())

	assert.Nil(t, r.StringIndexer(reflect.TypeFor[Square]()))
	assert.Nil(t, r.StringIndexer(reflect.TypeFor[[]string]()))
}

func TestPreferDeclaredOn(t *testing.T) {
	r := New(WithRegistry(typeinfo.NewRegistry()))

	// The walk stops at the runtime type's own level, so a redeclared member
	// is the only candidate.
	found := r.ResolveMember(reflect.TypeFor[Proxy](), "Side", nil)
	require.Len(t, found, 1)
	assert.Same(t, found[0], PreferDeclaredOn(found, reflect.TypeFor[*Proxy]()))

	// Same-depth duplicates resolved against the base types.
	found = r.ResolveMember(reflect.TypeFor[Mixed](), "ID", nil)
	require.Len(t, found, 2)
	assert.Equal(t, reflect.TypeFor[Tag](), PreferDeclaredOn(found, reflect.TypeFor[Tag]()).Declaring)
	assert.Equal(t, reflect.TypeFor[Shape](), PreferDeclaredOn(found, reflect.TypeFor[Mixed]()).Declaring)

	assert.Nil(t, PreferDeclaredOn(nil, reflect.TypeFor[Mixed]()))
}

func TestResolver_TraceLogging(t *testing.T) {
	var buf bytes.Buffer

	r := New(
		WithRegistry(typeinfo.NewRegistry()),
		WithLogger(log.Make(&buf, log.WithLevel(log.LevelTrace), log.WithFormat(log.FormatJSON), log.WithPretty(false))),
	)

	r.ResolveMember(reflect.TypeFor[Square](), "Side", nil)

	out := buf.String()
	assert.True(t, strings.Contains(out, "resolve member"), out)
	assert.Contains(t, out, `"name":"Side"`)
}

func BenchmarkResolveMember(b *testing.B) {
	r := New(WithRegistry(typeinfo.NewRegistry()))
	t := reflect.TypeFor[*Proxy]()

	r.ResolveMember(t, "Area", nil)

	for b.Loop() {
		r.ResolveMember(t, "Area", nil)
	}
}

func BenchmarkSelectBestMethod(b *testing.B) {
	r := New(WithRegistry(typeinfo.NewRegistry()))
	candidates := []*typeinfo.Member{
		method("Scale", 0, typeInt),
		method("Scale", 0, typeFloat64),
		method("Scale", 0, typeAny),
	}
	args := []reflect.Type{typeFloat64}

	for b.Loop() {
		r.SelectBestMethod(candidates, args)
	}
}
