package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flag(name string) *kong.Flag {
	return &kong.Flag{Value: &kong.Value{Name: name}}
}

func TestResolve_Flattens(t *testing.T) {
	src := `
log_level: debug
log:
  format: text
  caller: true
pprof-dir: /tmp/p
vars: [a.yaml, b.yaml]
ratio: 1.5
`

	resolver, err := resolve(context.Background())(strings.NewReader(src))
	require.NoError(t, err)
	require.NoError(t, resolver.Validate(nil))

	tests := []struct {
		name string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "text"},
		{"log-caller", "true"},
		{"pprof-dir", "/tmp/p"},
		{"vars", "a.yaml,b.yaml"},
		{"ratio", "1.5"},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(nil, nil, flag(tt.name))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_InvalidIgnored(t *testing.T) {
	for _, src := range []string{"", "log: [unclosed", "- just\n- a list\n"} {
		resolver, err := resolve(context.Background())(strings.NewReader(src))
		require.NoError(t, err, src)

		got, err := resolver.Resolve(nil, nil, flag("log-level"))
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestLogConfig_Scan(t *testing.T) {
	var f logConfig

	f.scan([]string{
		"eval", "--log-level", "debug",
		"--log-format=json",
		"--no-log-pretty",
		"--log-caller=true",
		"x",
	})

	assert.Equal(t, logLevel("debug"), f.Level)
	assert.Equal(t, logFormat("json"), f.Format)
	assert.False(t, f.Pretty)
	assert.True(t, f.Caller)

	f.scan([]string{"--log-pretty", "--no-log-caller=false"})
	assert.True(t, f.Pretty)
	assert.True(t, f.Caller)
}
