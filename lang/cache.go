package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed expressions keyed by (source_hash:registry).
// Parsed trees are immutable, so one entry may serve any number of callers.
//
//nolint:gochecknoglobals
var globalCache sync.Map

// state tracks the single parse of one cache entry.
type state struct {
	once sync.Once
	expr *Expr
	err  error
}

// ParseReader parses an expression read from r.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Expr, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrParse.Wrap(err).With(slog.String("source", "reader"))
	}

	return Parse(ctx, string(data), opts...)
}

// parseCached parses src once per registry and returns the shared result.
func parseCached(ctx context.Context, src string, cfg config) (*Expr, error) {
	// Type arguments resolve against the registry at parse time, so the
	// registry is part of the key.
	sourceHash := xxh3.HashString(src)
	key := strconv.FormatUint(sourceHash, 36) + ":" + fmt.Sprintf("%p", cfg.registry)

	value, cacheHit := globalCache.LoadOrStore(key, new(state))

	entry, ok := value.(*state)
	if !ok {
		return nil, ErrParse.With(slog.String("issue", "invalid cache entry"))
	}

	cfg.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	entry.once.Do(func() {
		entry.expr, entry.err = parse(ctx, src, cfg)
	})

	return entry.expr, entry.err
}

// ClearCache removes all cached expressions.
func ClearCache() {
	globalCache.Clear()
}
