package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// DirMode is the permission mode of created directories.
const DirMode os.FileMode = 0o700

var (
	debugBin  = regexp.MustCompile(`^__debug_bin\d*$`)
	leadingDots = regexp.MustCompile(`^\.+`)
)

// Prefix is the name of the per-user configuration and cache directories.
// It is the base name of the executable without extension or leading dots.
// Binaries built by the dlv debugger use [Name].
var Prefix = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	base := filepath.Base(exe)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if debugBin.MatchString(base) {
		return Name
	}

	if base = leadingDots.ReplaceAllString(base, ""); base == "" {
		return Name
	}

	return base
})

// ConfigDir is the directory holding the configuration file.
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir is the directory holding transient files such as profiles.
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// userDir returns the Prefix directory inside the directory reported by
// lookup, falling back to home/fallback and then to the working directory.
func userDir(lookup func() (string, error), fallback string) string {
	dir, err := lookup()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// ConfigPath joins elem to [ConfigDir].
func ConfigPath(elem ...string) string {
	return filepath.Join(append([]string{ConfigDir()}, elem...)...)
}

// MkdirAll creates [ConfigDir] and [CacheDir].
func MkdirAll() error {
	for _, dir := range []string{ConfigDir(), CacheDir()} {
		if err := os.MkdirAll(dir, DirMode); err != nil {
			return ErrConfig.Wrap(err)
		}
	}

	return nil
}
