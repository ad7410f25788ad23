package lang

import (
	"log/slog"

	"github.com/ardnew/duck/log"
)

// trace logs an evaluation step of node at trace level.
// Rendering node is skipped unless tracing is enabled.
func trace(ctx Context, node Node, msg string, attrs ...slog.Attr) {
	logger := ctx.Logger()
	if !logger.Enabled(log.LevelTrace) {
		return
	}

	logger.Trace(msg, append([]slog.Attr{slog.String("node", node.String())}, attrs...)...)
}
