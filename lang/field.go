package lang

import (
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/ardnew/duck/resolve"
	"github.com/ardnew/duck/typeinfo"
)

// FieldAccess reads or writes a field, property or string-keyed indexer
// entry of its target, or yields a [MethodGroup] if the name denotes
// methods.
type FieldAccess struct {
	Target   Node
	Member   string
	Generics []TypeArg
}

// Evaluate implements [Node].
func (n *FieldAccess) Evaluate(ctx Context) (Value, error) {
	return n.evaluate(ctx, false, nil)
}

// Assign implements [Assignable]. The member is written and then read back,
// so the result reflects any conversion or side effect of the write.
func (n *FieldAccess) Assign(ctx Context, v any) (Value, error) {
	return n.evaluate(ctx, true, v)
}

func (n *FieldAccess) String() string {
	var sb strings.Builder

	sb.WriteByte('(')
	sb.WriteString(n.Target.String())
	sb.WriteByte('.')
	sb.WriteString(n.Member)

	if len(n.Generics) > 0 {
		sb.WriteByte('<')

		for i, g := range n.Generics {
			if i > 0 {
				sb.WriteByte(',')
			}

			sb.WriteString(g.Name)
		}

		sb.WriteByte('>')
	}

	sb.WriteByte(')')

	return sb.String()
}

func (n *FieldAccess) evaluate(ctx Context, assign bool, nv any) (Value, error) {
	tv, err := n.Target.Evaluate(ctx)
	if err != nil {
		return Value{}, err
	}

	res := resolverOf(ctx)

	var (
		t      reflect.Type
		recv   reflect.Value
		static bool
	)

	if ref, ok := tv.V.(TypeRef); ok {
		t, static = ref.Type, true
	} else {
		if tv.IsNull() {
			if assign {
				return Value{}, ErrNoInstance.With(
					slog.String("member", n.Member),
					slog.String("target", n.Target.String()),
				)
			}

			trace(ctx, n, "null target", slog.String("type", typeName(tv.Type())))

			return nullOf(res.Registry(), tv.Type(), n.Member), nil
		}

		if do, ok := tv.V.(DynamicObject); ok && !assign {
			if v, vt, ok := do.TryGetValue(n.Member); ok {
				trace(ctx, n, "dynamic object hit")

				return Typed(v, vt), nil
			}
		}

		t, recv = tv.RuntimeType(), tv.Reflect()
	}

	generics, err := argTypes(n.Generics)
	if err != nil {
		return Value{}, err
	}

	members := res.ResolveMember(t, n.Member, generics)

	if len(members) == 0 {
		return n.indexFallback(ctx, t, recv, static, assign, nv)
	}

	members = bindable(members, static)

	if members[0].IsMethod() {
		if assign {
			return Value{}, ErrNotAssignable.With(slog.String("member", n.Member))
		}

		group := &MethodGroup{
			Name:     n.Member,
			Type:     t,
			Methods:  members,
			resolver: res,
		}

		if !static {
			group.Receiver = recv
		}

		return ValueOf(group), nil
	}

	m := members[0]
	if len(members) > 1 && !static {
		m = resolve.PreferDeclaredOn(members, t)
	}

	if !m.IsField() && !m.IsProperty() {
		return Value{}, ErrNotAccessibleAsValue.With(
			slog.String("member", n.Member),
			slog.String("kind", m.Kind.String()),
		)
	}

	if static && !m.Static {
		return Value{}, ErrNoInstance.With(
			slog.String("member", n.Member),
			slog.String("type", typeName(t)),
		)
	}

	if assign {
		if err := m.Set(recv, reflect.ValueOf(nv)); err != nil {
			return Value{}, ErrNotAssignable.Wrap(err).With(slog.String("member", n.Member))
		}

		trace(ctx, n, "assigned", slog.Any("member", m))
	}

	v, err := m.Get(recv)
	if err != nil {
		return Value{}, ErrInvocation.Wrap(err).With(slog.String("member", n.Member))
	}

	return located(v, m.Type), nil
}

// indexFallback reads or writes the string-keyed indexer entry named by the
// member, or reports the member unknown.
func (n *FieldAccess) indexFallback(
	ctx Context,
	t reflect.Type,
	recv reflect.Value,
	static, assign bool,
	nv any,
) (Value, error) {
	res := resolverOf(ctx)

	ix := res.StringIndexer(t)
	if ix == nil || static {
		return Value{}, ErrUnknownMember.With(
			slog.String("member", n.Member),
			slog.String("target", n.Target.String()),
			slog.String("type", res.Registry().NameOf(t)),
			slog.Any("suggestions", suggest(res.Registry(), t, n.Member)),
		)
	}

	key := reflect.ValueOf(n.Member)

	if assign {
		if err := ix.SetIndex(recv, key, reflect.ValueOf(nv)); err != nil {
			return Value{}, ErrNotAssignable.Wrap(err).With(slog.String("member", n.Member))
		}
	}

	v, err := ix.Index(recv, key)
	if err != nil {
		return Value{}, ErrInvocation.Wrap(err).With(slog.String("member", n.Member))
	}

	trace(ctx, n, "string indexer", slog.Any("indexer", ix))

	return located(v, ix.Type), nil
}

// resolverOf is used by nodes that may run without a resolver in scope.
func resolverOf(ctx Context) *resolve.Resolver {
	if r := ctx.Resolver(); r != nil {
		return r
	}

	return resolve.New(resolve.WithRegistry(typeinfo.Default))
}

// bindable keeps the members reachable through the target: statics for a
// type reference, instance members otherwise, when any exist.
func bindable(members []*typeinfo.Member, static bool) []*typeinfo.Member {
	kept := slices.DeleteFunc(slices.Clone(members), func(m *typeinfo.Member) bool {
		return m.Static != static
	})
	if len(kept) == 0 {
		return members
	}

	return kept
}
