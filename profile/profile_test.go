package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	p := New(WithMode("cpu"), WithPath("/tmp/x"), WithQuiet(true))

	assert.Equal(t, Profiler{Mode: "cpu", Path: "/tmp/x", Quiet: true}, p)
}

func TestStart_NoMode(t *testing.T) {
	ctrl := New(WithPath(t.TempDir())).Start()

	assert.IsType(t, ignore{}, ctrl)
	assert.NotPanics(t, ctrl.Stop)
}

func TestStart_UnknownMode(t *testing.T) {
	ctrl := New(WithMode("bogus"), WithPath(t.TempDir()), WithQuiet(true)).Start()

	assert.IsType(t, ignore{}, ctrl)
	assert.NotContains(t, Modes(), "quiet")
}
