package lang

import (
	"log/slog"
	"reflect"
)

// Index reads or writes the element of its target selected by a key, using
// the nearest indexer whose key type accepts the key.
type Index struct {
	Target Node
	Key    Node
}

// Evaluate implements [Node].
func (n *Index) Evaluate(ctx Context) (Value, error) {
	return n.evaluate(ctx, false, nil)
}

// Assign implements [Assignable].
func (n *Index) Assign(ctx Context, v any) (Value, error) {
	return n.evaluate(ctx, true, v)
}

func (n *Index) String() string {
	return n.Target.String() + "[" + n.Key.String() + "]"
}

func (n *Index) evaluate(ctx Context, assign bool, nv any) (Value, error) {
	tv, err := n.Target.Evaluate(ctx)
	if err != nil {
		return Value{}, err
	}

	kv, err := n.Key.Evaluate(ctx)
	if err != nil {
		return Value{}, err
	}

	if tv.IsNull() {
		if assign {
			return Value{}, ErrNoInstance.With(slog.String("target", n.Target.String()))
		}

		return Null(Dynamic), nil
	}

	t := tv.RuntimeType()
	reg := resolverOf(ctx).Registry()

	ix, ok := reg.Inspect(t).Indexer(valueTypes([]Value{kv})...)
	if !ok {
		ix, ok = reg.Inspect(t).Indexer(reflect.TypeFor[int]())
		if !ok || !isInteger(kv.RuntimeType()) {
			return Value{}, ErrNotIndexable.With(
				slog.String("target", n.Target.String()),
				slog.String("type", reg.NameOf(t)),
				slog.String("key", typeName(kv.RuntimeType())),
			)
		}
	}

	recv := tv.Reflect()

	if assign {
		if err := ix.SetIndex(recv, kv.Reflect(), reflect.ValueOf(nv)); err != nil {
			return Value{}, ErrNotAssignable.Wrap(err).With(slog.String("target", n.Target.String()))
		}
	}

	v, err := ix.Index(recv, kv.Reflect())
	if err != nil {
		return Value{}, ErrInvocation.Wrap(err).With(slog.String("target", n.Target.String()))
	}

	return located(v, ix.Type), nil
}

func isInteger(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64:
		return true
	default:
		return false
	}
}
