package lang

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	results := []Result{
		NewResult("x", ValueOf(5)),
		NewResult("y", Null(Dynamic)),
	}

	tests := []struct {
		format string
		indent int
		want   []string
	}{
		{FormatText, 0, []string{"x = 5 (int)\n", "y = null (interface {})\n"}},
		{FormatJSON, 0, []string{`[{"expr":"x","type":"int","value":5},{"expr":"y","type":"interface {}","value":null}]`}},
		{FormatJSON, 2, []string{"\n  {\n    \"expr\": \"x\""}},
		{FormatYAML, 2, []string{"expr: x", "type: int", "value: 5"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer

			require.NoError(t, Format(context.Background(), &buf, tt.format, tt.indent, results...))

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestNewResult(t *testing.T) {
	env, _ := newTestEnv(t)

	v, err := eval(t, env, "customer.Greet")
	require.NoError(t, err)

	r := NewResult("customer.Greet", v)
	assert.Equal(t, "*lang.Customer.Greet", r.Value)

	v, err = eval(t, env, "Customer")
	require.NoError(t, err)
	assert.Equal(t, "Customer", NewResult("Customer", v).Value)
}

func TestBindings(t *testing.T) {
	env := NewEnv()

	require.NoError(t, Bindings(context.Background(), strings.NewReader("name: Ada\ncount: 3\ntags:\n  tier: gold\n"), env))
	assert.Equal(t, []string{"count", "name", "tags"}, env.Names())

	v, err := MustParse("tags.tier").Evaluate(env)
	require.NoError(t, err)
	assert.Equal(t, "gold", v.V)

	v, ok := env.Get("count")
	require.True(t, ok)
	assert.EqualValues(t, 3, v.V)

	require.ErrorIs(t, Bindings(context.Background(), strings.NewReader("a: [1, 2"), env), ErrParse)
	require.NoError(t, Bindings(context.Background(), strings.NewReader(""), NewEnv()))
}

func TestDecodeValue(t *testing.T) {
	v, err := DecodeValue("5")
	require.NoError(t, err)
	assert.EqualValues(t, 5, v)

	v, err = DecodeValue("hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}
