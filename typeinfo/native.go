package typeinfo

import (
	"reflect"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TagKey is the struct tag key consulted for field names.
const TagKey = "duck"

// Conventional names of indexer accessor methods.
const (
	IndexGetter = "Get"
	IndexSetter = "Set"
)

// autogenerated is the file position the toolchain assigns to promotion
// wrappers.
const autogenerated = "<autogenerated>"

// declared holds the members declared directly on one type.
type declared struct {
	fields   []*Member
	props    []*Member
	methods  []*Member
	indexers []*Member
}

// declare is the native, hierarchy-unaware member query: it reports only
// members declared on t itself.
func declare(t reflect.Type) *declared {
	t = Deref(t)

	var d declared

	if t == nil {
		return &d
	}

	d.fields = declareFields(t)
	methods := declareMethods(t)
	d.props, methods = declareProperties(t, methods)
	d.indexers = declareIndexers(t, methods)
	d.methods = methods

	return &d
}

func declareFields(t reflect.Type) []*Member {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []*Member

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := f.Name

		if tag, ok := f.Tag.Lookup(TagKey); ok {
			if tag == "-" {
				continue
			}

			if n, _, _ := strings.Cut(tag, ","); n != "" {
				name = n
			}
		}

		fields = append(fields, &Member{
			Name:      name,
			Kind:      KindField,
			Declaring: t,
			Type:      f.Type,
			Tag:       f.Tag,
			path:      []int{i},
		})
	}

	return fields
}

func declareMethods(t reflect.Type) []*Member {
	if t.Kind() == reflect.Interface {
		methods := make([]*Member, 0, t.NumMethod())

		for i := range t.NumMethod() {
			m := t.Method(i)
			methods = append(methods, &Member{
				Name:      m.Name,
				Kind:      KindMethod,
				Declaring: t,
				Type:      m.Type,
				Params:    funcParams(m.Type, 0),
			})
		}

		return methods
	}

	var methods []*Member

	seen := make(map[string]bool)

	for _, rt := range []reflect.Type{t, reflect.PointerTo(t)} {
		for i := range rt.NumMethod() {
			m := rt.Method(i)
			if seen[m.Name] || !m.IsExported() || promoted(t, m) {
				continue
			}

			seen[m.Name] = true
			methods = append(methods, &Member{
				Name:      m.Name,
				Kind:      KindMethod,
				Declaring: t,
				Type:      methodType(m.Type),
				Params:    funcParams(m.Type, 1),
				fn:        m.Func,
			})
		}
	}

	return methods
}

// declareProperties pairs X() T with SetX(T). The getter leaves the method
// list; the setter stays callable as a method.
func declareProperties(t reflect.Type, methods []*Member) ([]*Member, []*Member) {
	if t.Kind() == reflect.Interface || len(methods) == 0 {
		return nil, methods
	}

	byName := make(map[string]*Member, len(methods))
	for _, m := range methods {
		byName[m.Name] = m
	}

	var props []*Member

	getters := make(map[string]bool)

	for _, set := range methods {
		name, ok := strings.CutPrefix(set.Name, "Set")
		if !ok || !exported(name) {
			continue
		}

		get, ok := byName[name]
		if !ok || len(get.Params) != 0 || get.Type.NumOut() != 1 {
			continue
		}

		if len(set.Params) != 1 || set.Type.NumOut() != 0 ||
			set.Params[0] != get.Type.Out(0) {
			continue
		}

		getters[name] = true
		props = append(props, &Member{
			Name:      name,
			Kind:      KindProperty,
			Declaring: t,
			Type:      get.Type.Out(0),
			fn:        get.fn,
			set:       set.fn,
		})
	}

	if len(props) == 0 {
		return nil, methods
	}

	rest := methods[:0:0]

	for _, m := range methods {
		if !getters[m.Name] {
			rest = append(rest, m)
		}
	}

	return props, rest
}

func declareIndexers(t reflect.Type, methods []*Member) []*Member {
	var indexers []*Member

	switch t.Kind() {
	case reflect.Map:
		indexers = append(indexers, &Member{
			Name:      "[]",
			Kind:      KindIndexer,
			Declaring: t,
			Type:      t.Elem(),
			Params:    []reflect.Type{t.Key()},
			index:     indexMap,
		})

	case reflect.Slice, reflect.Array:
		indexers = append(indexers, &Member{
			Name:      "[]",
			Kind:      KindIndexer,
			Declaring: t,
			Type:      t.Elem(),
			Params:    []reflect.Type{reflect.TypeFor[int]()},
			index:     indexSeq,
		})

	case reflect.String:
		indexers = append(indexers, &Member{
			Name:      "[]",
			Kind:      KindIndexer,
			Declaring: t,
			Type:      reflect.TypeFor[byte](),
			Params:    []reflect.Type{reflect.TypeFor[int]()},
			index:     indexSeq,
		})

	case reflect.Interface:
		return indexers
	}

	var get, set *Member

	for _, m := range methods {
		switch m.Name {
		case IndexGetter:
			get = m
		case IndexSetter:
			set = m
		}
	}

	if get == nil || len(get.Params) != 1 {
		return indexers
	}

	out := get.Type
	commaOK := out.NumOut() == 2 && out.Out(1).Kind() == reflect.Bool

	if out.NumOut() != 1 && !commaOK {
		return indexers
	}

	ix := &Member{
		Name:      IndexGetter,
		Kind:      KindIndexer,
		Declaring: t,
		Type:      out.Out(0),
		Params:    get.Params,
		fn:        get.fn,
		index:     indexMethod,
		commaOK:   commaOK,
	}

	if set != nil && len(set.Params) == 2 && set.Type.NumOut() == 0 &&
		set.Params[0] == ix.Params[0] && set.Params[1] == ix.Type {
		ix.set = set.fn
	}

	return append(indexers, ix)
}

// promoted reports whether method m of t is a compiler-generated wrapper
// for a method inherited from an embedded type.
func promoted(t reflect.Type, m reflect.Method) bool {
	if !m.Func.IsValid() {
		return false
	}

	f := runtime.FuncForPC(m.Func.Pointer())
	if f == nil {
		return false
	}

	if file, _ := f.FileLine(f.Entry()); file != autogenerated {
		return false
	}

	// Methods of generic instantiations are wrappers too; only treat the
	// method as inherited if an embedded type actually provides it.
	return embeddedHas(t, m.Name)
}

func embeddedHas(t reflect.Type, name string) bool {
	if t.Kind() != reflect.Struct {
		return false
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}

		if _, ok := f.Type.MethodByName(name); ok {
			return true
		}

		if k := f.Type.Kind(); k != reflect.Pointer && k != reflect.Interface {
			if _, ok := reflect.PointerTo(f.Type).MethodByName(name); ok {
				return true
			}
		}
	}

	return false
}

// methodType drops the receiver from a method expression type.
func methodType(fn reflect.Type) reflect.Type {
	in := funcParams(fn, 1)

	out := make([]reflect.Type, fn.NumOut())
	for i := range out {
		out[i] = fn.Out(i)
	}

	return reflect.FuncOf(in, out, fn.IsVariadic())
}

func exported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)

	return r != utf8.RuneError && unicode.IsUpper(r)
}

// Deref strips every pointer from t.
func Deref(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}
