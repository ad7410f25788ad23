package lang

import (
	"log/slog"
	"strconv"
)

// Node is an expression tree node. Nodes are immutable and may be evaluated
// concurrently against independent contexts.
type Node interface {
	Evaluate(ctx Context) (Value, error)
	String() string
}

// Assignable is a node that can be the target of an assignment. Assign
// writes v and returns the value read back afterwards.
type Assignable interface {
	Node
	Assign(ctx Context, v any) (Value, error)
}

// Variable looks up a name in the context. A missing name evaluates to a
// [Dynamic] null.
type Variable struct {
	Name string
}

// Evaluate implements [Node].
func (n *Variable) Evaluate(ctx Context) (Value, error) {
	v, ok := ctx.Get(n.Name)
	if !ok {
		trace(ctx, n, "unbound variable")

		return Null(Dynamic), nil
	}

	return v, nil
}

func (n *Variable) String() string { return n.Name }

// Constant is a literal value.
type Constant struct {
	Value Value
}

// Evaluate implements [Node].
func (n *Constant) Evaluate(Context) (Value, error) { return n.Value, nil }

func (n *Constant) String() string {
	if s, ok := n.Value.V.(string); ok {
		return strconv.Quote(s)
	}

	return n.Value.String()
}

// Expr is a parsed expression together with its source text.
type Expr struct {
	Source string
	Root   Node
}

// Evaluate evaluates the expression against ctx.
func (e *Expr) Evaluate(ctx Context) (Value, error) {
	return e.Root.Evaluate(ctx)
}

// Assign assigns v to the expression, which must be a member access or an
// index expression, and returns the value read back.
func (e *Expr) Assign(ctx Context, v any) (Value, error) {
	a, ok := e.Root.(Assignable)
	if !ok {
		return Value{}, ErrNotAssignable.With(slog.String("expr", e.Source))
	}

	return a.Assign(ctx, v)
}

func (e *Expr) String() string { return e.Root.String() }
