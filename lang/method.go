package lang

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/ardnew/duck/resolve"
	"github.com/ardnew/duck/typeinfo"
)

//nolint:gochecknoglobals
var errorType = reflect.TypeFor[error]()

// MethodGroup is a set of same-named methods, either bound to a receiver or
// unbound. Invoking an unbound group calls a static method, or an instance
// method with the receiver passed as the first argument.
type MethodGroup struct {
	Name     string
	Type     reflect.Type
	Methods  []*typeinfo.Member
	Receiver reflect.Value

	resolver *resolve.Resolver
}

// Bound reports whether g has a receiver.
func (g *MethodGroup) Bound() bool { return g.Receiver.IsValid() }

func (g *MethodGroup) String() string {
	var sb strings.Builder

	sb.WriteString(typeName(g.Type))
	sb.WriteByte('.')
	sb.WriteString(g.Name)

	if !g.Bound() {
		sb.WriteString(" (unbound)")
	}

	return sb.String()
}

// Bind chooses the method that best fits args. A group of one method is
// used as is. A group with no methods searches its type for a method named
// after the group.
func (g *MethodGroup) Bind(args []reflect.Type) (*typeinfo.Member, error) {
	res := g.resolver
	if res == nil {
		res = resolve.New()
	}

	var m *typeinfo.Member

	if len(g.Methods) == 0 {
		m = res.Method(g.Type, g.Name, args)
	} else {
		m = res.SelectBestMethod(g.Methods, args)
	}

	if m == nil {
		return nil, ErrUnresolvableOverload.With(
			slog.String("method", g.Name),
			slog.String("type", typeName(g.Type)),
			slog.Int("candidates", len(g.Methods)),
			slog.Int("args", len(args)),
		)
	}

	return m, nil
}

// Invoke selects a method for args and calls it.
func (g *MethodGroup) Invoke(args ...Value) (Value, error) {
	m, recv, rest, err := g.bind(args)
	if err != nil {
		return Value{}, err
	}

	in := make([]reflect.Value, len(rest))
	for i, a := range rest {
		in[i] = a.Reflect()
	}

	out, err := m.Call(recv, in)
	if err != nil {
		return Value{}, ErrInvocation.Wrap(err).With(slog.String("method", g.Name))
	}

	return results(g.Name, m.Type, out)
}

// bind selects the method for args and splits off the receiver of unbound
// instance methods.
func (g *MethodGroup) bind(args []Value) (*typeinfo.Member, reflect.Value, []Value, error) {
	if g.Bound() {
		m, err := g.Bind(valueTypes(args))

		return m, g.Receiver, args, err
	}

	var statics, instances []*typeinfo.Member

	for _, m := range g.Methods {
		if m.Static {
			statics = append(statics, m)
		} else {
			instances = append(instances, m)
		}
	}

	var staticErr error

	if len(statics) > 0 {
		sg := *g
		sg.Methods = statics

		m, err := sg.Bind(valueTypes(args))
		if err == nil {
			return m, reflect.Value{}, args, nil
		}

		staticErr = err
	}

	if len(instances) == 0 || len(args) == 0 {
		if staticErr != nil {
			return nil, reflect.Value{}, nil, staticErr
		}

		return nil, reflect.Value{}, nil, ErrNoInstance.With(slog.String("method", g.Name))
	}

	ig := *g
	ig.Methods = instances

	m, err := ig.Bind(valueTypes(args[1:]))

	return m, args[0].Reflect(), args[1:], err
}

// results converts the results of a call with function type fn. A trailing
// error result is returned as the error.
func results(name string, fn reflect.Type, out []reflect.Value) (Value, error) {
	if n := len(out); n > 0 && fn.Out(n-1) == errorType {
		if err, _ := out[n-1].Interface().(error); err != nil {
			return Value{}, ErrInvocation.Wrap(err).With(slog.String("method", name))
		}

		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return Null(Dynamic), nil
	case 1:
		return Typed(out[0].Interface(), fn.Out(0)), nil
	default:
		all := make([]any, len(out))
		for i, o := range out {
			all[i] = o.Interface()
		}

		return ValueOf(all), nil
	}
}

// valueTypes returns the declared types of vs. Null values of [Dynamic]
// type are reported as nil (untyped).
func valueTypes(vs []Value) []reflect.Type {
	types := make([]reflect.Type, len(vs))

	for i, v := range vs {
		switch {
		case v.IsNull() && v.Type() == Dynamic:
			types[i] = nil
		case v.Type() == Dynamic:
			types[i] = v.RuntimeType()
		default:
			types[i] = v.Type()
		}
	}

	return types
}
