package pkg

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata(t *testing.T) {
	assert.Equal(t, "duck", Name)
	assert.NotEmpty(t, Description)
	assert.NotEmpty(t, Version)
	assert.Equal(t, strings.TrimSpace(Version), Version)
}

func TestError_Chain(t *testing.T) {
	err := ErrConfig.Wrap(fs.ErrPermission)

	assert.Equal(t, "configuration error: permission denied", err.Error())
	require.ErrorIs(t, err, fs.ErrPermission)
	assert.Len(t, ErrConfig, 1, "wrapping must not modify the sentinel")

	inner := errors.New("inner")
	chain := MakeError(nil, inner).Wrapf("outer %d", 1)
	assert.Equal(t, "inner: outer 1", chain.Error())
	require.ErrorIs(t, chain, inner)

	assert.Nil(t, UnwrapErrors(nil))
	assert.Len(t, UnwrapErrors(errors.Join(inner, fs.ErrClosed)), 3)
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, filepath.Join(ConfigDir(), "config.yaml"), ConfigPath("config.yaml"))
	assert.Equal(t, ConfigDir(), ConfigPath())
	assert.Equal(t, Prefix(), filepath.Base(CacheDir()))
	assert.NotEmpty(t, Prefix())
	assert.False(t, strings.HasPrefix(Prefix(), "."))
}
