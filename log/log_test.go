package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failure struct{ code int }

func (failure) Error() string { return "failure" }

func (f failure) LogValue() slog.Value {
	return slog.GroupValue(slog.String("error", "failure"), slog.Int("code", f.code))
}

func decode(t *testing.T, line string) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &m), line)

	return m
}

func TestMake_Defaults(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf)

	assert.Equal(t, DefaultLevel, l.Level())
	assert.Equal(t, DefaultFormat, l.Format())
	assert.False(t, l.caller)
	assert.False(t, l.pretty)
	assert.Equal(t, DefaultTimeLayout, l.layout)
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		want  []string
	}{
		{LevelTrace, []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}},
		{LevelDebug, []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{LevelInfo, []string{"INFO", "WARN", "ERROR"}},
		{LevelError, []string{"ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer

			l := Make(&buf, WithLevel(tt.level), WithFormat(FormatJSON))
			l.Trace("m")
			l.Debug("m")
			l.Info("m")
			l.Warn("m")
			l.Error("m")

			var got []string
			for line := range strings.Lines(buf.String()) {
				got = append(got, decode(t, line)["level"].(string))
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogger_Enabled(t *testing.T) {
	var zero Logger

	assert.False(t, zero.Enabled(LevelError))

	l := Make(nil, WithLevel(LevelDebug))
	assert.False(t, l.Enabled(LevelTrace))
	assert.True(t, l.Enabled(LevelDebug))
	assert.True(t, l.Wrap(WithLevel(LevelTrace)).Enabled(LevelTrace))
	assert.False(t, l.Enabled(LevelTrace), "Wrap must not modify the receiver")
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	assert.NotPanics(t, func() {
		l.Trace("x")
		l.InfoContext(context.Background(), "x", slog.Int("n", 1))
		l.With(slog.String("k", "v")).Error("x")
	})
	assert.Equal(t, DefaultLevel, l.Level())
	assert.Equal(t, DefaultFormat, l.Format())
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithFormat(FormatJSON))
	base.With(slog.String("node", "a.b")).Info("eval")
	base.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a.b", decode(t, lines[0])["node"])
	assert.NotContains(t, decode(t, lines[1]), "node")
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithCaller(true))
	l.Info("here")
	l.InfoContext(context.Background(), "here")

	for line := range strings.Lines(buf.String()) {
		src, ok := decode(t, line)["source"].(map[string]any)
		require.True(t, ok, line)
		assert.True(t, strings.HasSuffix(src["file"].(string), "log_test.go"), src["file"])
	}
}

func TestLogger_TimeLayout(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none")).Info("x")
	assert.NotContains(t, decode(t, buf.String()), "time")

	buf.Reset()
	Make(&buf, WithFormat(FormatJSON), WithTimeLayout("2006")).Info("x")
	assert.Len(t, decode(t, buf.String())["time"], 4)
}

func TestTimeLayout(t *testing.T) {
	assert.Equal(t, "", timeLayout(""))
	assert.Equal(t, "", timeLayout("None"))
	assert.Equal(t, "3:04PM", timeLayout("Kitchen"))
	assert.Equal(t, "Jan _2 15:04:05.000", timeLayout("stamp-milli"))
	assert.Equal(t, "15:04", timeLayout("15:04"))
}

func TestPrettyText(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithTimeLayout(""), WithLevel(LevelTrace))
	l.With(slog.String("expr", "a.b")).Trace("failed",
		slog.Any("error", failure{code: 7}),
		slog.Bool("ok", false),
	)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, ansiMagenta+"TRACE"+ansiReset+" failed "), out)
	assert.Contains(t, out, ansiGray+"expr"+ansiReset+"="+ansiCyan+"a.b")
	assert.Contains(t, out, ansiGray+"error.code"+ansiReset+"="+ansiYellow+"7")
	assert.Contains(t, out, ansiGray+"ok"+ansiReset+"="+ansiRed+"false")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestPrettyText_Group(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithTimeLayout(""))
	l.Logger = l.Logger.WithGroup("eval")
	l.Info("x", slog.Int("n", 1))

	assert.Contains(t, buf.String(), "eval.n")
}

func TestPrettyJSON(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithPretty(true), WithFormat(FormatJSON), WithTimeLayout(""))
	l.Info("x", slog.Any("error", failure{code: 3}))
	l.Info("y")

	dec := json.NewDecoder(&buf)

	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, map[string]any{"error": "failure", "code": float64(3)}, first["error"])
	assert.Equal(t, "y", second["msg"])
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer

	for _, pretty := range []bool{false, true} {
		buf.Reset()

		l := Make(&syncWriter{w: &buf}, WithFormat(FormatJSON), WithPretty(pretty))

		var wg sync.WaitGroup
		for i := range 16 {
			wg.Go(func() {
				l.With(slog.Int("worker", i)).Info("tick")
			})
		}

		wg.Wait()

		dec := json.NewDecoder(&buf)

		n := 0
		for {
			var m map[string]any
			if err := dec.Decode(&m); err != nil {
				assert.True(t, errors.Is(err, io.EOF), err)

				break
			}

			n++
		}

		assert.Equal(t, 16, n)
	}
}

type syncWriter struct {
	mu sync.Mutex
	w  *bytes.Buffer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Write(p)
}

func BenchmarkLogger_TraceDisabled(b *testing.B) {
	l := Make(nil)

	for b.Loop() {
		if l.Enabled(LevelTrace) {
			l.Trace("x", slog.String("node", "a.b"))
		}
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	l := Make(nil, WithFormat(FormatJSON))

	for b.Loop() {
		l.Info("x", slog.String("node", "a.b"))
	}
}
