package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/duck/log"
)

func Example() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"))
	logger.Info("started", slog.String("version", "0.1.0"))
	logger.Debug("hidden")

	// Output:
	// level=INFO msg=started version=0.1.0
}

func ExampleLogger_Enabled() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout("none"),
		log.WithLevel(log.LevelTrace))

	if logger.Enabled(log.LevelTrace) {
		logger.Trace("resolve member", slog.String("name", "Name"))
	}

	// Output:
	// level=TRACE msg="resolve member" name=Name
}

func ExampleLogger_With() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout(""),
		log.WithFormat(log.FormatJSON))

	logger.With(slog.String("expr", "a.b")).Warn("null target")

	// Output:
	// {"level":"WARN","msg":"null target","expr":"a.b"}
}
