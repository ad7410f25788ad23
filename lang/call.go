package lang

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/ardnew/duck/typeinfo"
)

// Call invokes the method group, or function value, its target evaluates
// to.
type Call struct {
	Target Node
	Args   []Node
}

// Evaluate implements [Node].
func (n *Call) Evaluate(ctx Context) (Value, error) {
	tv, err := n.Target.Evaluate(ctx)
	if err != nil {
		return Value{}, err
	}

	args := make([]Value, len(n.Args))

	for i, a := range n.Args {
		if args[i], err = a.Evaluate(ctx); err != nil {
			return Value{}, err
		}
	}

	switch fn := tv.V.(type) {
	case *MethodGroup:
		trace(ctx, n, "invoke method group",
			slog.String("group", fn.String()),
			slog.Int("args", len(args)),
		)

		return fn.Invoke(args...)

	case nil:
		return Value{}, ErrInvocation.With(
			slog.String("callee", n.Target.String()),
			slog.String("issue", "null callee"),
		)
	}

	if f := tv.Reflect(); f.Kind() == reflect.Func {
		return callFunc(n.Target.String(), f, args)
	}

	return Value{}, ErrInvocation.With(
		slog.String("callee", n.Target.String()),
		slog.String("type", typeName(tv.RuntimeType())),
	)
}

func (n *Call) String() string {
	var sb strings.Builder

	sb.WriteString(n.Target.String())
	sb.WriteByte('(')

	for i, a := range n.Args {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(a.String())
	}

	sb.WriteByte(')')

	return sb.String()
}

// callFunc calls a plain function value bound in the context.
func callFunc(name string, f reflect.Value, args []Value) (Value, error) {
	ft := f.Type()
	if ft.IsVariadic() || ft.NumIn() != len(args) {
		return Value{}, ErrUnresolvableOverload.With(
			slog.String("method", name),
			slog.Int("args", len(args)),
		)
	}

	in := make([]reflect.Value, len(args))

	for i, a := range args {
		cv, err := typeinfo.Convert(a.Reflect(), ft.In(i))
		if err != nil {
			return Value{}, ErrInvocation.Wrap(err).With(slog.String("method", name))
		}

		in[i] = cv
	}

	return results(name, ft, f.Call(in))
}
