package lang

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/ardnew/duck/typeinfo"
)

// ParseGenericToken splits a token of the form name<T1,T2,...> into the
// variable name and its type arguments. A token without '<' is a plain name
// with no type arguments. Type names that do not resolve are kept with a nil
// Type.
func ParseGenericToken(tok string, reg *typeinfo.Registry) (string, []TypeArg, error) {
	open := strings.IndexByte(tok, '<')
	if open < 0 {
		return tok, nil, nil
	}

	if open == 0 || !strings.HasSuffix(tok, ">") {
		return "", nil, ErrMalformedGenericSyntax.With(slog.String("token", tok))
	}

	names := strings.Split(tok[open+1:len(tok)-1], ",")
	args := make([]TypeArg, 0, len(names))

	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return "", nil, ErrMalformedGenericSyntax.With(slog.String("token", tok))
		}

		args = append(args, TypeArg{Name: n, Type: ResolveTypeName(n, reg)})
	}

	return tok[:open], args, nil
}

// argTypes returns the types of args, failing on the first unresolved one.
func argTypes(args []TypeArg) ([]reflect.Type, error) {
	if len(args) == 0 {
		return nil, nil
	}

	types := make([]reflect.Type, len(args))

	for i, a := range args {
		if !a.Resolved() {
			return nil, ErrUnresolvedType.With(slog.String("type", a.Name))
		}

		types[i] = a.Type
	}

	return types, nil
}

// GenericVariable is a variable reference that may carry type arguments.
// Without type arguments it behaves as a [Variable]. With type arguments it
// parses but does not evaluate: evaluation fails with
// [ErrUnsupportedConstruct].
type GenericVariable struct {
	Name string
	Args []TypeArg
}

// NewGenericVariable parses tok with [ParseGenericToken].
func NewGenericVariable(tok string, reg *typeinfo.Registry) (*GenericVariable, error) {
	name, args, err := ParseGenericToken(tok, reg)
	if err != nil {
		return nil, err
	}

	return &GenericVariable{Name: name, Args: args}, nil
}

// Evaluate implements [Node].
func (n *GenericVariable) Evaluate(ctx Context) (Value, error) {
	if len(n.Args) > 0 {
		return Value{}, ErrUnsupportedConstruct.With(
			slog.String("variable", n.Name),
			slog.Int("type_args", len(n.Args)),
		)
	}

	v, ok := ctx.Get(n.Name)
	if !ok {
		trace(ctx, n, "unbound variable")

		return Null(Dynamic), nil
	}

	return v, nil
}

func (n *GenericVariable) String() string { return n.Name }
