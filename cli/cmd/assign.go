package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/duck/lang"
	"github.com/ardnew/duck/log"
)

// Assign writes a value through a member-access expression and prints the
// value read back followed by every binding.
type Assign struct {
	Target string `arg:"" help:"Expression to assign through"      name:"target"`
	Value  string `arg:"" help:"YAML-encoded value to assign"      name:"value"`
	Format string `       help:"Output format"                      default:"text" enum:"text,yaml,json" short:"o"`
	Indent int    `       help:"Indent width for yaml and json (0: compact)" default:"2"                 short:"i"`
}

// Run executes the assign command.
func (a *Assign) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	env, err := loadEnv(ctx)
	if err != nil {
		return err
	}

	value, err := lang.DecodeValue(a.Value)
	if err != nil {
		return ErrAssign.Wrap(err).With(slog.String("value", a.Value))
	}

	expr, err := lang.Parse(ctx, a.Target, lang.WithLogger(log.Default()))
	if err != nil {
		return ErrAssign.Wrap(err).With(slog.String("target", a.Target))
	}

	v, err := expr.Assign(env, value)
	if err != nil {
		return ErrAssign.Wrap(err).With(slog.String("target", a.Target))
	}

	results := []lang.Result{lang.NewResult(a.Target, v)}

	for _, name := range env.Names() {
		b, _ := env.Get(name)
		results = append(results, lang.NewResult(name, b))
	}

	err = lang.Format(ctx, stdout(ctx), a.Format, a.Indent, results...)
	if err != nil {
		return ErrOutput.Wrap(err).With(slog.String("format", a.Format))
	}

	return nil
}
