package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/duck/lang"
)

// Fmt parses expressions and prints their evaluation trees in canonical
// form, one per line.
type Fmt struct {
	Exprs []string `arg:"" help:"Expressions to format" name:"expr"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	w := stdout(ctx)

	for _, src := range f.Exprs {
		expr, err := lang.Parse(ctx, src)
		if err != nil {
			return ErrEvaluate.Wrap(err).With(slog.String("expr", src))
		}

		if _, err := fmt.Fprintln(w, expr); err != nil {
			return ErrOutput.Wrap(err)
		}
	}

	return nil
}
