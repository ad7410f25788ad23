package lang

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/duck/typeinfo"
)

func TestAlias(t *testing.T) {
	tests := []struct {
		name string
		want reflect.Type
	}{
		{"int", reflect.TypeFor[int32]()},
		{"INT", reflect.TypeFor[int32]()},
		{"Long", reflect.TypeFor[int64]()},
		{"char", reflect.TypeFor[rune]()},
		{"byte", reflect.TypeFor[uint8]()},
		{"sbyte", reflect.TypeFor[int8]()},
		{"Double", reflect.TypeFor[float64]()},
		{"decimal", reflect.TypeFor[float64]()},
		{"float", reflect.TypeFor[float32]()},
		{"DateTime", reflect.TypeFor[time.Time]()},
		{"TimeSpan", reflect.TypeFor[time.Duration]()},
		{"object", reflect.TypeFor[any]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Alias(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Alias("Customer")
	assert.False(t, ok)
}

func TestResolveTypeName(t *testing.T) {
	reg := typeinfo.NewRegistry()
	require.NoError(t, reg.Register("Customer", reflect.TypeFor[Customer]()))

	tests := []struct {
		name string
		want reflect.Type
	}{
		{"string", reflect.TypeFor[string]()},
		{"int?", reflect.TypeFor[*int32]()},
		{"long[]", reflect.TypeFor[[]int64]()},
		{"long[]?", reflect.TypeFor[*[]int64]()},
		{"Customer", reflect.TypeFor[Customer]()},
		{"Customer?", reflect.TypeFor[*Customer]()},
		{"time.Duration", reflect.TypeFor[time.Duration]()},
		{"customer", nil},
		{"Nope", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTypeName(tt.name, reg))
		})
	}
}

func TestParseGenericToken(t *testing.T) {
	reg := typeinfo.NewRegistry()

	name, args, err := ParseGenericToken("count<int>", reg)
	require.NoError(t, err)
	assert.Equal(t, "count", name)
	assert.Equal(t, []TypeArg{{Name: "int", Type: reflect.TypeFor[int32]()}}, args)

	name, args, err = ParseGenericToken("Map<string, int?>", reg)
	require.NoError(t, err)
	assert.Equal(t, "Map", name)
	assert.Equal(t, []TypeArg{
		{Name: "string", Type: reflect.TypeFor[string]()},
		{Name: "int?", Type: reflect.TypeFor[*int32]()},
	}, args)

	name, args, err = ParseGenericToken("x", reg)
	require.NoError(t, err)
	assert.Equal(t, "x", name)
	assert.Empty(t, args)

	_, args, err = ParseGenericToken("f<Unknown>", reg)
	require.NoError(t, err)
	require.Len(t, args, 1)
	assert.False(t, args[0].Resolved())

	for _, bad := range []string{"<int>", "a<int", "a<int,>", "a<>"} {
		_, _, err := ParseGenericToken(bad, reg)
		require.ErrorIs(t, err, ErrMalformedGenericSyntax, bad)
	}
}
