package typeinfo

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
)

// Kind identifies the shape of a [Member].
type Kind uint8

const (
	KindField       Kind = iota // field
	KindProperty                // property
	KindIndexer                 // indexer
	KindMethod                  // method
	KindConstructor             // constructor
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindProperty:
		return "property"
	case KindIndexer:
		return "indexer"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// indexer strategies.
type indexKind uint8

const (
	indexNone indexKind = iota
	indexMap
	indexSeq
	indexMethod
)

// Member describes one field, property, indexer, method or constructor
// discovered on a type. Members returned from a hierarchy walk carry the
// embedding path from the inspected type to the level that declares them.
type Member struct {
	Name      string
	Kind      Kind
	Declaring reflect.Type   // level type that declares the member
	Type      reflect.Type   // value type; the func type for methods
	Params    []reflect.Type // index keys or call parameters, receiver excluded
	Depth     int            // embedding depth of Declaring
	Static    bool
	Tag       reflect.StructTag

	path    []int         // embedding path; fields append their own index
	fn      reflect.Value // method, getter or constructor; receiver first unless static
	set     reflect.Value // property or indexer setter; receiver first
	value   reflect.Value // static field storage
	index   indexKind
	commaOK bool
}

// IsField reports whether m is a field.
func (m *Member) IsField() bool { return m.Kind == KindField }

// IsProperty reports whether m is an accessor-pair property.
func (m *Member) IsProperty() bool { return m.Kind == KindProperty }

// IsMethod reports whether m is a method.
func (m *Member) IsMethod() bool { return m.Kind == KindMethod }

// IsIndexer reports whether m is an indexer.
func (m *Member) IsIndexer() bool { return m.Kind == KindIndexer }

// HasTag reports whether the member's struct tag defines key.
func (m *Member) HasTag(key string) bool {
	_, ok := m.Tag.Lookup(key)

	return ok
}

// CanRead reports whether the member yields a value through [Member.Get] or
// [Member.Index].
func (m *Member) CanRead() bool {
	switch m.Kind {
	case KindField:
		return true
	case KindProperty, KindIndexer:
		return m.fn.IsValid() || m.index == indexMap || m.index == indexSeq
	default:
		return false
	}
}

// CanWrite reports whether the member accepts a value through [Member.Set]
// or [Member.SetIndex].
func (m *Member) CanWrite() bool {
	switch m.Kind {
	case KindField:
		if m.Static {
			return m.value.CanSet()
		}

		return true
	case KindProperty:
		return m.set.IsValid()
	case KindIndexer:
		if m.index == indexSeq {
			return m.Declaring.Kind() != reflect.String
		}

		return m.set.IsValid() || m.index == indexMap
	default:
		return false
	}
}

// String returns a short signature of the member.
func (m *Member) String() string {
	var sb strings.Builder

	if m.Declaring != nil {
		sb.WriteString(m.Declaring.String())
		sb.WriteByte('.')
	}

	sb.WriteString(m.Name)

	if m.Kind == KindMethod || m.Kind == KindConstructor ||
		m.Kind == KindIndexer {
		open, shut := "(", ")"
		if m.Kind == KindIndexer {
			open, shut = "[", "]"
		}

		sb.WriteString(open)

		for i, p := range m.Params {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(p.String())
		}

		sb.WriteString(shut)
	}

	return sb.String()
}

// LogValue implements slog.LogValuer.
func (m *Member) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", m.Name),
		slog.String("kind", m.Kind.String()),
		slog.String("declaring", typeName(m.Declaring)),
		slog.Int("depth", m.Depth),
		slog.Bool("static", m.Static),
	)
}

// at returns a copy of m relocated below the embedding prefix at depth.
func (m *Member) at(prefix []int, depth int) *Member {
	c := *m
	c.Depth = depth

	if len(prefix) > 0 {
		c.path = append(slices.Clone(prefix), m.path...)
	}

	return &c
}

// Get reads a field or property from recv. Static members ignore recv.
func (m *Member) Get(recv reflect.Value) (reflect.Value, error) {
	switch m.Kind {
	case KindField:
		if m.Static {
			return m.value, nil
		}

		return descend(recv, m.path)

	case KindProperty:
		if !m.fn.IsValid() {
			return reflect.Value{}, ErrWriteOnly.With(slog.String("member", m.Name))
		}

		out, err := m.invoke(m.fn, m.Name, recv, nil, false)
		if err != nil {
			return reflect.Value{}, err
		}

		return out[0], nil

	default:
		return reflect.Value{}, ErrNotCallable.With(
			slog.String("member", m.Name),
			slog.String("kind", m.Kind.String()),
		)
	}
}

// Set writes v into a field or property of recv. The receiver must be
// addressable (reached through a pointer) for fields and pointer-receiver
// setters.
func (m *Member) Set(recv, v reflect.Value) error {
	if !m.CanWrite() {
		return ErrReadOnly.With(slog.String("member", m.Name))
	}

	switch m.Kind {
	case KindField:
		target := m.value

		if !m.Static {
			var err error

			target, err = descend(recv, m.path)
			if err != nil {
				return err
			}
		}

		if !target.CanSet() {
			return ErrNotAddressable.With(slog.String("member", m.Name))
		}

		cv, err := Convert(v, target.Type())
		if err != nil {
			return err
		}

		target.Set(cv)

		return nil

	case KindProperty:
		_, err := m.invoke(m.set, "Set"+m.Name, recv, []reflect.Value{v}, true)

		return err

	default:
		return ErrReadOnly.With(slog.String("member", m.Name))
	}
}

// Index reads the element of recv selected by key. Missing map keys and
// comma-ok getters reporting false yield the zero value of the element type.
func (m *Member) Index(recv reflect.Value, key reflect.Value) (reflect.Value, error) {
	if m.Kind != KindIndexer {
		return reflect.Value{}, ErrNotIndexable.With(slog.String("member", m.Name))
	}

	switch m.index {
	case indexMap, indexSeq:
		target, err := descend(recv, m.path)
		if err != nil {
			return reflect.Value{}, err
		}

		target, err = indirect(target)
		if err != nil {
			return reflect.Value{}, err
		}

		if !target.CanInterface() {
			return reflect.Value{}, ErrUnexported.With(slog.String("member", m.Name))
		}

		k, err := Convert(key, m.Params[0])
		if err != nil {
			return reflect.Value{}, err
		}

		if m.index == indexMap {
			if target.IsNil() {
				return reflect.Zero(m.Type), nil
			}

			v := target.MapIndex(k)
			if !v.IsValid() {
				return reflect.Zero(m.Type), nil
			}

			return v, nil
		}

		i := int(k.Int())
		if i < 0 || i >= target.Len() {
			return reflect.Value{}, ErrArgumentType.With(
				slog.Int("index", i),
				slog.Int("len", target.Len()),
			)
		}

		return target.Index(i), nil

	case indexMethod:
		out, err := m.invoke(m.fn, IndexGetter, recv, []reflect.Value{key}, false)
		if err != nil {
			return reflect.Value{}, err
		}

		if m.commaOK && !out[1].Bool() {
			return reflect.Zero(m.Type), nil
		}

		return out[0], nil

	default:
		return reflect.Value{}, ErrNotIndexable.With(slog.String("member", m.Name))
	}
}

// SetIndex writes v into the element of recv selected by key.
func (m *Member) SetIndex(recv, key, v reflect.Value) error {
	if m.Kind != KindIndexer || !m.CanWrite() {
		return ErrReadOnly.With(slog.String("member", m.Name))
	}

	switch m.index {
	case indexMap, indexSeq:
		target, err := descend(recv, m.path)
		if err != nil {
			return err
		}

		target, err = indirect(target)
		if err != nil {
			return err
		}

		if !target.CanInterface() {
			return ErrUnexported.With(slog.String("member", m.Name))
		}

		k, err := Convert(key, m.Params[0])
		if err != nil {
			return err
		}

		cv, err := Convert(v, m.Type)
		if err != nil {
			return err
		}

		if m.index == indexMap {
			if target.IsNil() {
				return ErrNilReceiver.With(slog.String("member", m.Name))
			}

			target.SetMapIndex(k, cv)

			return nil
		}

		i := int(k.Int())
		if i < 0 || i >= target.Len() {
			return ErrArgumentType.With(
				slog.Int("index", i),
				slog.Int("len", target.Len()),
			)
		}

		elem := target.Index(i)
		if !elem.CanSet() {
			return ErrNotAddressable.With(slog.String("member", m.Name))
		}

		elem.Set(cv)

		return nil

	default:
		_, err := m.invoke(m.set, IndexSetter, recv, []reflect.Value{key, v}, true)

		return err
	}
}

// Call invokes a method or constructor. Instance methods are called on recv;
// static methods and constructors ignore it.
func (m *Member) Call(recv reflect.Value, args []reflect.Value) ([]reflect.Value, error) {
	if m.Kind != KindMethod && m.Kind != KindConstructor {
		return nil, ErrNotCallable.With(
			slog.String("member", m.Name),
			slog.String("kind", m.Kind.String()),
		)
	}

	if len(args) != len(m.Params) {
		return nil, ErrArgumentCount.With(
			slog.String("member", m.Name),
			slog.Int("want", len(m.Params)),
			slog.Int("have", len(args)),
		)
	}

	return m.invoke(m.fn, m.Name, recv, args, false)
}

// invoke calls fn with the receiver reached from recv (unless static)
// followed by args converted to the member's parameter types.
func (m *Member) invoke(
	fn reflect.Value,
	name string,
	recv reflect.Value,
	args []reflect.Value,
	write bool,
) (out []reflect.Value, err error) {
	in := make([]reflect.Value, 0, len(args)+1)

	var params []reflect.Type

	switch {
	case m.Static:
		params = funcParams(fn.Type(), 0)

	case !fn.IsValid():
		// Interface method: dispatch dynamically on the receiver.
		r, err := descend(recv, m.path)
		if err != nil {
			return nil, err
		}

		if r.Kind() == reflect.Interface || r.Kind() == reflect.Pointer {
			if r.IsNil() {
				return nil, ErrNilReceiver.With(slog.String("member", m.Name))
			}
		}

		fn = r.MethodByName(name)
		if !fn.IsValid() {
			return nil, ErrNotCallable.With(slog.String("member", name))
		}

		params = funcParams(fn.Type(), 0)

	default:
		r, err := m.receiver(recv, fn.Type().In(0), write)
		if err != nil {
			return nil, err
		}

		if r.CanInterface() {
			in = append(in, r)
			params = funcParams(fn.Type(), 1)

			break
		}

		// Reached through an unexported embedded field: let the promoted
		// method on the walk root do the selection instead.
		fn = promotedMethod(recv, name)
		if !fn.IsValid() {
			return nil, ErrNotCallable.With(slog.String("member", name))
		}

		params = funcParams(fn.Type(), 0)
	}

	if len(params) != len(args) {
		return nil, ErrArgumentCount.With(
			slog.String("member", m.Name),
			slog.Int("want", len(params)),
			slog.Int("have", len(args)),
		)
	}

	for i, a := range args {
		cv, err := Convert(a, params[i])
		if err != nil {
			return nil, err
		}

		in = append(in, cv)
	}

	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = ErrCallPanicked.Wrap(fmt.Errorf("%v", r)).
				With(slog.String("member", m.Name))
		}
	}()

	return fn.Call(in), nil
}

// receiver walks the embedding path from recv and adapts the result to the
// receiver type want.
func (m *Member) receiver(
	recv reflect.Value,
	want reflect.Type,
	write bool,
) (reflect.Value, error) {
	v, err := descend(recv, m.path)
	if err != nil {
		return reflect.Value{}, err
	}

	for {
		if !v.IsValid() {
			return reflect.Value{}, ErrNilReceiver.With(slog.String("member", m.Name))
		}

		if k := v.Kind(); (k == reflect.Interface || k == reflect.Pointer) && v.IsNil() {
			return reflect.Value{}, ErrNilReceiver.With(slog.String("member", m.Name))
		}

		if v.Type() == want {
			return v, nil
		}

		switch {
		case v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer:
			if v.Type().AssignableTo(want) && v.Kind() == reflect.Pointer {
				return v, nil
			}

			v = v.Elem()

		case want.Kind() == reflect.Pointer && want.Elem() == v.Type():
			if v.CanAddr() {
				return v.Addr(), nil
			}

			if write {
				return reflect.Value{}, ErrNotAddressable.With(slog.String("member", m.Name))
			}

			p := reflect.New(v.Type())
			p.Elem().Set(v)

			return p, nil

		case v.Type().AssignableTo(want):
			return v, nil

		default:
			return reflect.Value{}, ErrArgumentType.With(
				slog.String("member", m.Name),
				slog.String("want", want.String()),
				slog.String("have", v.Type().String()),
			)
		}
	}
}

// promotedMethod selects the method value name on recv, addressing or
// dereferencing it as needed.
func promotedMethod(recv reflect.Value, name string) reflect.Value {
	for recv.IsValid() {
		if fn := recv.MethodByName(name); fn.IsValid() {
			return fn
		}

		if recv.CanAddr() {
			if fn := recv.Addr().MethodByName(name); fn.IsValid() {
				return fn
			}
		}

		if k := recv.Kind(); (k != reflect.Pointer && k != reflect.Interface) ||
			recv.IsNil() {
			break
		}

		recv = recv.Elem()
	}

	return reflect.Value{}
}

// descend follows an embedding (and field) path from v.
func descend(v reflect.Value, path []int) (reflect.Value, error) {
	for _, i := range path {
		var err error

		v, err = indirect(v)
		if err != nil {
			return reflect.Value{}, err
		}

		if v.Kind() != reflect.Struct {
			return reflect.Value{}, ErrArgumentType.With(
				slog.String("want", "struct"),
				slog.String("have", v.Kind().String()),
			)
		}

		v = v.Field(i)
	}

	return v, nil
}

// indirect dereferences pointers and interfaces until a concrete value.
func indirect(v reflect.Value) (reflect.Value, error) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, ErrNilReceiver
		}

		v = v.Elem()
	}

	if !v.IsValid() {
		return reflect.Value{}, ErrNilReceiver
	}

	return v, nil
}

// funcParams returns the parameter types of fn starting at skip.
func funcParams(fn reflect.Type, skip int) []reflect.Type {
	if fn.NumIn() <= skip {
		return nil
	}

	params := make([]reflect.Type, 0, fn.NumIn()-skip)
	for i := skip; i < fn.NumIn(); i++ {
		params = append(params, fn.In(i))
	}

	return params
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	return t.String()
}
