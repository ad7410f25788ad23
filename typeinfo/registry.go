package typeinfo

import (
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/viant/xreflect"
)

// Static describes a static member registered against a type. A func value
// becomes a static method; a non-nil pointer becomes a writable static field
// backed by the pointed-to variable; any other value is a read-only static
// field.
type Static struct {
	Name  string
	Value any
}

// Instantiate produces a concrete function for a generic method given its
// type arguments. The returned function takes the receiver as its first
// parameter, like a method expression.
type Instantiate func(typeArgs ...reflect.Type) (any, error)

type generic struct {
	name  string
	arity int
	inst  Instantiate
}

// Registry maps type names to type identities and records the members Go
// reflection cannot discover on its own: statics, generic methods,
// constructors, interfaces of interest and type annotations.
//
// A Registry is safe for concurrent use. Registration is expected to happen
// during program initialization; lookups may run concurrently afterwards.
type Registry struct {
	mutex    sync.RWMutex
	types    *xreflect.Types
	names    map[reflect.Type]string
	statics  map[reflect.Type][]*Member
	generics map[reflect.Type][]generic
	ctors    map[reflect.Type][]*Member
	ifaces   []reflect.Type
	notes    map[reflect.Type][]any
	cache    *cache
}

// Option configures a [Registry].
type Option func(*Registry)

// WithoutCache disables the read-through cache of declared members. Query
// results are identical with and without the cache.
func WithoutCache() Option {
	return func(r *Registry) {
		r.cache = nil
	}
}

// Default is the process-wide registry used by [Inspect].
//
//nolint:gochecknoglobals
var Default = NewRegistry()

// NewRegistry returns a registry preloaded with the builtin type names.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		types:    xreflect.NewTypes(),
		names:    make(map[reflect.Type]string),
		statics:  make(map[reflect.Type][]*Member),
		generics: make(map[reflect.Type][]generic),
		ctors:    make(map[reflect.Type][]*Member),
		notes:    make(map[reflect.Type][]any),
		cache:    newCache(),
	}

	for _, t := range builtins {
		_ = r.bind(t.String(), t)
		r.names[t] = t.String()
	}

	_ = r.bind("any", reflect.TypeFor[any]())
	_ = r.bind("byte", reflect.TypeFor[byte]())
	_ = r.bind("rune", reflect.TypeFor[rune]())

	for _, opt := range opts {
		opt(r)
	}

	return r
}

//nolint:gochecknoglobals
var builtins = []reflect.Type{
	reflect.TypeFor[bool](),
	reflect.TypeFor[int](),
	reflect.TypeFor[int8](),
	reflect.TypeFor[int16](),
	reflect.TypeFor[int32](),
	reflect.TypeFor[int64](),
	reflect.TypeFor[uint](),
	reflect.TypeFor[uint8](),
	reflect.TypeFor[uint16](),
	reflect.TypeFor[uint32](),
	reflect.TypeFor[uint64](),
	reflect.TypeFor[uintptr](),
	reflect.TypeFor[float32](),
	reflect.TypeFor[float64](),
	reflect.TypeFor[complex64](),
	reflect.TypeFor[complex128](),
	reflect.TypeFor[string](),
	reflect.TypeFor[any](),
	reflect.TypeFor[error](),
	reflect.TypeFor[time.Time](),
	reflect.TypeFor[time.Duration](),
	reflect.TypeFor[time.Month](),
	reflect.TypeFor[time.Weekday](),
}

// Register binds name to t and attaches statics to t. The first name
// registered for a type becomes its canonical name. A dotted name such as
// "time.Time" is bound under the package named by its qualifier.
func (r *Registry) Register(name string, t reflect.Type, statics ...Static) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.bind(name, t); err != nil {
		return ErrRegister.Wrap(err).With(slog.String("name", name))
	}

	if _, ok := r.names[t]; !ok {
		r.names[t] = name
	}

	for _, s := range statics {
		r.statics[Deref(t)] = append(r.statics[Deref(t)], newStatic(Deref(t), s))
	}

	return nil
}

// bind records name in the type table. The caller holds the write lock or
// owns r exclusively.
func (r *Registry) bind(name string, t reflect.Type) error {
	pkg, base := qualify(name)

	return r.types.Register(base, xreflect.WithPackage(pkg), xreflect.WithReflectType(t))
}

// qualify splits a dotted type name into its package qualifier and base
// name. Names inside brackets are not split.
func qualify(name string) (pkg, base string) {
	if strings.ContainsAny(name, "[]*") {
		return "", name
	}

	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i], name[i+1:]
	}

	return "", name
}

// RegisterGeneric records a generic method name with arity type parameters
// on receiver type recv.
func (r *Registry) RegisterGeneric(
	recv reflect.Type,
	name string,
	arity int,
	inst Instantiate,
) {
	recv = Deref(recv)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.generics[recv] = append(r.generics[recv], generic{
		name:  name,
		arity: arity,
		inst:  inst,
	})
}

// RegisterConstructor records fn as a constructor of t. The function must
// return t or a pointer to t as its first result.
func (r *Registry) RegisterConstructor(t reflect.Type, fn any) error {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.Type().NumOut() == 0 ||
		Deref(v.Type().Out(0)) != Deref(t) {
		return ErrNotCallable.With(
			slog.String("type", typeName(t)),
			slog.String("constructor", typeName(v.Type())),
		)
	}

	t = Deref(t)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.ctors[t] = append(r.ctors[t], &Member{
		Name:      "New",
		Kind:      KindConstructor,
		Declaring: t,
		Type:      v.Type().Out(0),
		Params:    funcParams(v.Type(), 0),
		Static:    true,
		fn:        v,
	})

	return nil
}

// RegisterInterface records interface types reported by
// [Inspector.Interfaces].
func (r *Registry) RegisterInterface(ifaces ...reflect.Type) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, t := range ifaces {
		if t.Kind() == reflect.Interface {
			r.ifaces = append(r.ifaces, t)
		}
	}
}

// Annotate attaches attribute values to t.
func (r *Registry) Annotate(t reflect.Type, notes ...any) {
	t = Deref(t)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.notes[t] = append(r.notes[t], notes...)
}

// Lookup resolves a type name. Names of registered or builtin types resolve
// directly; "[]X" and "*X" resolve through the element name. An unknown name
// reports false.
func (r *Registry) Lookup(name string) (reflect.Type, bool) {
	name = strings.TrimSpace(name)

	pkg, base := qualify(name)

	r.mutex.RLock()
	t, err := r.types.Lookup(base, xreflect.WithPackage(pkg))
	r.mutex.RUnlock()

	if err == nil && t != nil {
		return t, true
	}

	switch {
	case strings.HasPrefix(name, "[]"):
		if elem, ok := r.Lookup(name[2:]); ok {
			return reflect.SliceOf(elem), true
		}

	case strings.HasPrefix(name, "*"):
		if elem, ok := r.Lookup(name[1:]); ok {
			return reflect.PointerTo(elem), true
		}
	}

	return nil, false
}

// NameOf returns the canonical registered name of t, or its reflect name.
func (r *Registry) NameOf(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	r.mutex.RLock()
	name, ok := r.names[t]
	r.mutex.RUnlock()

	if ok {
		return name
	}

	return t.String()
}

// declared returns the native declared members of t, through the cache when
// enabled.
func (r *Registry) declared(t reflect.Type) *declared {
	if r.cache == nil {
		return declare(t)
	}

	return r.cache.load(t, declare)
}

func (r *Registry) staticsOf(t reflect.Type) []*Member {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.statics[t]
}

func (r *Registry) genericsOf(t reflect.Type) []generic {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.generics[t]
}

func newStatic(owner reflect.Type, s Static) *Member {
	m := &Member{
		Name:      s.Name,
		Declaring: owner,
		Static:    true,
	}

	v := reflect.ValueOf(s.Value)

	switch {
	case !v.IsValid():
		m.Kind = KindField
		m.Type = reflect.TypeFor[any]()
		m.value = reflect.Zero(m.Type)

	case v.Kind() == reflect.Func:
		m.Kind = KindMethod
		m.Type = v.Type()
		m.Params = funcParams(v.Type(), 0)
		m.fn = v

	case v.Kind() == reflect.Pointer && !v.IsNil():
		m.Kind = KindField
		m.Type = v.Type().Elem()
		m.value = v.Elem()

	default:
		m.Kind = KindField
		m.Type = v.Type()
		m.value = v
	}

	return m
}
