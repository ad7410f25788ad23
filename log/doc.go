// Package log wraps [log/slog] with the small surface duck needs: a
// [Logger] value whose zero value discards everything, a trace level below
// debug, and a process-wide default configured once from the command line.
//
// Loggers are immutable. [Logger.Wrap] and [Logger.With] return copies, so a
// logger handed to an evaluation environment can be shared between
// goroutines without locking.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON))
//	logger.Trace("resolve", slog.String("member", "Name"))
//
// Evaluation code should guard expensive attributes with [Logger.Enabled]
// since node rendering is not free:
//
//	if logger.Enabled(log.LevelTrace) {
//		logger.Trace("evaluate", slog.String("node", n.String()))
//	}
//
// # Output
//
// Two formats are supported, [FormatText] and [FormatJSON]. With
// [WithPretty] enabled, text output is colorized and JSON output is
// indented. Values implementing [slog.LogValuer], such as the errors
// returned by the evaluator, are resolved before they are written.
//
// # Timestamps
//
// [WithTimeLayout] accepts a [time] layout or one of the named layouts
// ("RFC3339", "Kitchen", "StampMilli", ...). An empty layout or "none"
// removes timestamps from the output.
package log
