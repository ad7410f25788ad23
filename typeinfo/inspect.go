package typeinfo

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
)

// Binding selects instance members, static members or both.
type Binding uint8

const (
	BindInstance Binding = 1 << iota
	BindStatic

	BindAll = BindInstance | BindStatic
)

func (b Binding) admits(m *Member) bool {
	if m.Static {
		return b&BindStatic != 0
	}

	return b&BindInstance != 0
}

// Inspector is the query surface over one type. It holds no state besides
// the type and the registry consulted for non-reflective members.
type Inspector struct {
	t   reflect.Type
	reg *Registry
}

// Inspect returns an Inspector for t backed by the [Default] registry.
func Inspect(t reflect.Type) Inspector {
	return Default.Inspect(t)
}

// Inspect returns an Inspector for t backed by r.
func (r *Registry) Inspect(t reflect.Type) Inspector {
	return Inspector{t: t, reg: r}
}

// Type returns the inspected type.
func (in Inspector) Type() reflect.Type { return in.t }

// IsGeneric reports whether the type is an instantiation of a generic type.
func (in Inspector) IsGeneric() bool {
	return in.t != nil && strings.Contains(in.t.Name(), "[")
}

// GenericArguments returns the type arguments of a generic instantiation.
// Arguments whose names the registry cannot resolve are nil.
func (in Inspector) GenericArguments() []reflect.Type {
	if !in.IsGeneric() {
		return nil
	}

	name := in.t.Name()
	open := strings.IndexByte(name, '[')
	names := splitTypeList(name[open+1 : len(name)-1])

	args := make([]reflect.Type, len(names))
	for i, n := range names {
		args[i], _ = in.reg.Lookup(n)
	}

	return args
}

// IsNullable reports whether the type is an optional wrapper (a pointer).
func (in Inspector) IsNullable() bool {
	return in.t != nil && in.t.Kind() == reflect.Pointer
}

// CanBeNull reports whether a value of the type can represent "no value".
func (in Inspector) CanBeNull() bool { return Nilable(in.t) }

// IsValueType reports whether values of the type are never nil.
func (in Inspector) IsValueType() bool { return !Nilable(in.t) }

// IsEnum reports whether the type is a named integer type.
func (in Inspector) IsEnum() bool {
	if in.t == nil || in.t.PkgPath() == "" {
		return false
	}

	switch in.t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64:
		return true
	default:
		return false
	}
}

// RealType returns the type underlying an optional wrapper, or the type.
func (in Inspector) RealType() reflect.Type {
	if in.IsNullable() {
		return in.t.Elem()
	}

	return in.t
}

// BaseType returns the first embedded type, or nil at the root.
func (in Inspector) BaseType() reflect.Type {
	for _, t := range embedded(Deref(in.t)) {
		return t
	}

	return nil
}

// Embedded returns every directly embedded type in field order.
func (in Inspector) Embedded() []reflect.Type {
	var types []reflect.Type

	t := Deref(in.t)
	if t == nil {
		return nil
	}

	for _, e := range embedded(t) {
		types = append(types, e)
	}

	return types
}

// DefaultValue returns the value of an uninitialized instance: nil for
// nil-able types, the zero value otherwise.
func (in Inspector) DefaultValue() any {
	if in.t == nil || in.CanBeNull() {
		return nil
	}

	return reflect.Zero(in.t).Interface()
}

// IsAssignableFrom reports whether a value of type u can be assigned to a
// variable of the inspected type.
func (in Inspector) IsAssignableFrom(u reflect.Type) bool {
	return u != nil && in.t != nil && u.AssignableTo(in.t)
}

// ImplementsOrInherits reports whether the type implements interface u
// (directly or through its pointer), is u, or embeds u at any depth.
func (in Inspector) ImplementsOrInherits(u reflect.Type) bool {
	if in.t == nil || u == nil {
		return false
	}

	if u.Kind() == reflect.Interface {
		return in.t.Implements(u) || reflect.PointerTo(Deref(in.t)).Implements(u)
	}

	_, ok := WalkSingle(in.t, func(l Level) (struct{}, bool) {
		return struct{}{}, l.Type == Deref(u)
	})

	return ok
}

// Fields returns the fields of the type. Unless declaredOnly, fields of
// embedded types follow, nearest first, including shadowed duplicates.
func (in Inspector) Fields(declaredOnly bool) []*Member {
	return in.collect(declaredOnly, func(d *declared) []*Member { return d.fields })
}

// Properties returns the accessor-pair properties of the type.
func (in Inspector) Properties(declaredOnly bool) []*Member {
	return in.collect(declaredOnly, func(d *declared) []*Member { return d.props })
}

// Methods returns the instance methods of the type. Registered static
// methods are listed by [Inspector.Statics].
func (in Inspector) Methods(declaredOnly bool) []*Member {
	return in.collect(declaredOnly, func(d *declared) []*Member { return d.methods })
}

// Indexers returns the indexers of the type.
func (in Inspector) Indexers(declaredOnly bool) []*Member {
	return in.collect(declaredOnly, func(d *declared) []*Member { return d.indexers })
}

// Field returns the nearest field named name.
func (in Inspector) Field(name string) (*Member, bool) {
	return WalkSingle(in.t, func(l Level) (*Member, bool) {
		return find(in.reg.declared(l.Type).fields, name, l)
	})
}

// Property returns the nearest property named name.
func (in Inspector) Property(name string) (*Member, bool) {
	return WalkSingle(in.t, func(l Level) (*Member, bool) {
		return find(in.reg.declared(l.Type).props, name, l)
	})
}

// PropertyGetter returns the nearest getter method of property name: the
// method named name taking no arguments, either paired into a property or
// standing alone.
func (in Inspector) PropertyGetter(name string) (*Member, bool) {
	if p, ok := in.Property(name); ok {
		getter := *p
		getter.Kind = KindMethod
		getter.Type = reflect.FuncOf(nil, []reflect.Type{p.Type}, false)
		getter.set = reflect.Value{}

		return &getter, true
	}

	m, ok := in.Method(name, BindInstance, nil)

	return m, ok
}

// Members returns every field, property and method named name declared on
// the nearest level that declares one. Static members registered for a
// level type belong to that level.
func (in Inspector) Members(name string) []*Member {
	return WalkLevels(in.t, func(l Level) []*Member {
		return in.named(l, name)
	})
}

// GenericMembers returns the instantiations of the generic methods named
// name with len(typeArgs) type parameters registered on the nearest level
// that has any. Instantiations that fail are skipped.
func (in Inspector) GenericMembers(name string, typeArgs []reflect.Type) []*Member {
	return WalkLevels(in.t, func(l Level) []*Member {
		var out []*Member

		for _, g := range in.reg.genericsOf(l.Type) {
			if g.name != name || g.arity != len(typeArgs) {
				continue
			}

			m, err := instantiate(l, g, typeArgs)
			if err != nil {
				continue
			}

			out = append(out, m)
		}

		return out
	})
}

// Indexer returns the nearest indexer whose parameters accept keys.
func (in Inspector) Indexer(keys ...reflect.Type) (*Member, bool) {
	return WalkSingle(in.t, func(l Level) (*Member, bool) {
		for _, ix := range in.reg.declared(l.Type).indexers {
			if _, ok := Score(ix.Params, keys); ok {
				return ix.at(l.Path, l.Depth), true
			}
		}

		return nil, false
	})
}

// Method returns the best method named name admitted by b whose parameters
// accept args, searching the nearest level first. Within a level the highest
// [Score] wins; ties keep declaration order.
func (in Inspector) Method(name string, b Binding, args []reflect.Type) (*Member, bool) {
	return WalkSingle(in.t, func(l Level) (*Member, bool) {
		var (
			best  *Member
			score = -1
		)

		for _, m := range in.named(l, name) {
			if m.Kind != KindMethod || !b.admits(m) {
				continue
			}

			if s, ok := Score(m.Params, args); ok && s > score {
				best, score = m, s
			}
		}

		return best, best != nil
	})
}

// Constructors returns the registered constructors of the type.
func (in Inspector) Constructors() []*Member {
	in.reg.mutex.RLock()
	defer in.reg.mutex.RUnlock()

	return slices.Clone(in.reg.ctors[Deref(in.t)])
}

// Interfaces returns the registered interfaces the type or a pointer to it
// implements.
func (in Inspector) Interfaces() []reflect.Type {
	if in.t == nil {
		return nil
	}

	in.reg.mutex.RLock()
	defer in.reg.mutex.RUnlock()

	var out []reflect.Type

	ptr := reflect.PointerTo(Deref(in.t))

	for _, iface := range in.reg.ifaces {
		if in.t.Implements(iface) || ptr.Implements(iface) {
			out = append(out, iface)
		}
	}

	return out
}

// Statics returns the static members registered for the type.
func (in Inspector) Statics() []*Member {
	return slices.Clone(in.reg.staticsOf(Deref(in.t)))
}

// Attributes returns the annotations of type A registered for the type and,
// if inherit, for every embedded level, nearest first.
func Attributes[A any](in Inspector, inherit bool) []A {
	collect := func(l Level) []A {
		in.reg.mutex.RLock()
		defer in.reg.mutex.RUnlock()

		var out []A

		for _, n := range in.reg.notes[l.Type] {
			if a, ok := n.(A); ok {
				out = append(out, a)
			}
		}

		return out
	}

	if !inherit {
		return collect(Level{Type: Deref(in.t)})
	}

	return WalkAll(in.t, collect)
}

// Attribute returns the nearest annotation of type A.
func Attribute[A any](in Inspector, inherit bool) (A, bool) {
	if all := Attributes[A](in, inherit); len(all) > 0 {
		return all[0], true
	}

	var zero A

	return zero, false
}

// HasAttribute reports whether an annotation of type A is present.
func HasAttribute[A any](in Inspector, inherit bool) bool {
	_, ok := Attribute[A](in, inherit)

	return ok
}

func (in Inspector) collect(
	declaredOnly bool,
	pick func(*declared) []*Member,
) []*Member {
	f := func(l Level) []*Member {
		found := pick(in.reg.declared(l.Type))
		out := make([]*Member, 0, len(found))

		for _, m := range found {
			out = append(out, m.at(l.Path, l.Depth))
		}

		return out
	}

	if declaredOnly {
		return f(Level{Type: Deref(in.t)})
	}

	return WalkAll(in.t, f)
}

// named returns the members named name declared on level l, statics last.
func (in Inspector) named(l Level, name string) []*Member {
	d := in.reg.declared(l.Type)

	var out []*Member

	for _, group := range [][]*Member{d.fields, d.props, d.methods, in.reg.staticsOf(l.Type)} {
		for _, m := range group {
			if m.Name == name {
				out = append(out, m.at(l.Path, l.Depth))
			}
		}
	}

	return out
}

func find(members []*Member, name string, l Level) (*Member, bool) {
	for _, m := range members {
		if m.Name == name {
			return m.at(l.Path, l.Depth), true
		}
	}

	return nil, false
}

func instantiate(l Level, g generic, typeArgs []reflect.Type) (*Member, error) {
	fn, err := g.inst(typeArgs...)
	if err != nil {
		return nil, ErrInstantiate.Wrap(err).With(slog.String("method", g.name))
	}

	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.Type().NumIn() == 0 {
		return nil, ErrInstantiate.With(
			slog.String("method", g.name),
			slog.String("type", fmt.Sprintf("%T", fn)),
		)
	}

	m := &Member{
		Name:      g.name,
		Kind:      KindMethod,
		Declaring: l.Type,
		Type:      methodType(v.Type()),
		Params:    funcParams(v.Type(), 1),
		fn:        v,
	}

	return m.at(l.Path, l.Depth), nil
}

// splitTypeList splits a comma-separated list of type names at bracket
// depth zero.
func splitTypeList(s string) []string {
	var (
		out   []string
		depth int
		start int
	)

	for i, r := range s {
		switch r {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}

	return append(out, strings.TrimSpace(s[start:]))
}
