package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/klauspost/readahead"

	"github.com/ardnew/duck/lang"
	"github.com/ardnew/duck/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	bindingFilesKey struct{}

	// BindingFiles are the YAML documents of variable bindings named on the
	// command line, in order.
	BindingFiles interface {
		IsZero() bool
		Readers() []io.Reader
	}

	bindingFiles struct {
		read     []io.Reader
		hasStdin bool
	}
)

// IsZero reports whether there are no binding files.
func (b *bindingFiles) IsZero() bool { return b == nil || len(b.Readers()) == 0 }

// Readers returns a reader per binding file. Stdin, if named, comes last.
func (b *bindingFiles) Readers() []io.Reader {
	if b == nil {
		return nil
	}

	if b.hasStdin {
		return append(b.read[:len(b.read):len(b.read)], os.Stdin)
	}

	return b.read
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithBindingFiles returns a new context.Context holding the binding files
// at the given paths.
//
// Paths naming the same file (through symlinks or relative paths) are read
// once. All occurrences of "-" are replaced with a single stdin reader placed
// after the regular files.
func WithBindingFiles(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, bindingFilesKey{}, buildBindingFiles(paths))
}

func buildBindingFiles(paths []string) BindingFiles {
	if len(paths) == 0 {
		return nil
	}

	var files bindingFiles

	files.read = make([]io.Reader, 0, len(paths))
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, path := range paths {
		if path == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		reader, ok := openUniqueFile(path, seen)
		if !ok {
			continue
		}

		files.read = append(files.read, reader)
	}

	// Stdin may have been included via "-" or as a named file.
	_, files.hasStdin = seen[stdinKey]

	if len(files.read) == 0 && !files.hasStdin {
		return nil
	}

	return &files
}

// openUniqueFile opens the file at path unless a file with the same device
// and inode was already seen.
func openUniqueFile(path string, seen map[fileKey]struct{}) (io.Reader, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false
	}

	if _, exists := seen[key]; exists {
		return nil, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return file, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true
}

func bindingFilesFrom(ctx context.Context) BindingFiles {
	b, _ := ctx.Value(bindingFilesKey{}).(BindingFiles)

	return b
}

// loadEnv returns an evaluation environment holding the bindings of every
// binding file in ctx. Later files override earlier ones.
func loadEnv(ctx context.Context) (*lang.Env, error) {
	env := lang.NewEnv(lang.WithLogger(log.Default()))

	files := bindingFilesFrom(ctx)
	if files == nil {
		return env, nil
	}

	for i, r := range files.Readers() {
		err := loadBindings(ctx, r, env)
		if err != nil {
			return nil, ErrReadBindings.Wrap(err).With(slog.Int("file", i))
		}
	}

	log.DebugContext(ctx, "bindings loaded", slog.Any("names", env.Names()))

	return env, nil
}

func loadBindings(ctx context.Context, r io.Reader, env *lang.Env) error {
	if c, ok := r.(io.Closer); ok && r != os.Stdin {
		defer c.Close()
	}

	ra := readahead.NewReader(r)
	defer ra.Close()

	return lang.Bindings(ctx, ra, env)
}

// stdout returns the writer for command output.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}
