package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/duck/lang"
	"github.com/ardnew/duck/log"
)

// Eval evaluates member-access expressions against the variable bindings.
type Eval struct {
	Exprs  []string `arg:"" help:"Expressions to evaluate"                   name:"expr"`
	Format string   `       help:"Output format"                             default:"text" enum:"text,yaml,json" short:"o"`
	Indent int      `       help:"Indent width for yaml and json (0: compact)" default:"2"                         short:"i"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	env, err := loadEnv(ctx)
	if err != nil {
		return err
	}

	results := make([]lang.Result, 0, len(e.Exprs))

	for _, src := range e.Exprs {
		v, err := evaluate(ctx, env, src)
		if err != nil {
			return ErrEvaluate.Wrap(err).With(slog.String("expr", src))
		}

		results = append(results, lang.NewResult(src, v))
	}

	err = lang.Format(ctx, stdout(ctx), e.Format, e.Indent, results...)
	if err != nil {
		return ErrOutput.Wrap(err).With(slog.String("format", e.Format))
	}

	return nil
}

func evaluate(ctx context.Context, env *lang.Env, src string) (lang.Value, error) {
	expr, err := lang.Parse(ctx, src, lang.WithLogger(log.Default()))
	if err != nil {
		return lang.Value{}, err
	}

	log.DebugContext(ctx, "evaluate", slog.String("tree", expr.String()))

	return expr.Evaluate(env)
}
