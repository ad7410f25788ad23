package lang

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/ardnew/duck/typeinfo"
)

// Dynamic is the type of values whose type is not known statically.
//
//nolint:gochecknoglobals
var Dynamic = reflect.TypeFor[any]()

// Value is a value paired with its declared type. A null value keeps its
// declared type so that later member resolution can still use it.
//
// A Value read from a field, property or element of an addressable
// container also remembers where it lives, so members of a struct-typed
// result can be assigned in place.
type Value struct {
	V any
	T reflect.Type

	ref reflect.Value
}

// ValueOf returns v typed by its runtime type. A nil v is a [Dynamic] null.
func ValueOf(v any) Value {
	if v == nil {
		return Null(Dynamic)
	}

	return Value{V: v, T: reflect.TypeOf(v)}
}

// Typed returns v declared as type t.
func Typed(v any, t reflect.Type) Value {
	if t == nil {
		return ValueOf(v)
	}

	return Value{V: v, T: t}
}

// located returns the value held at r, declared as type t. The location is
// kept when r is addressable.
func located(r reflect.Value, t reflect.Type) Value {
	if r.Kind() == reflect.Interface && !r.IsNil() {
		r = r.Elem()
	}

	v := Typed(r.Interface(), t)
	if r.CanAddr() {
		v.ref = r
	}

	return v
}

// Null returns the null value of type t.
func Null(t reflect.Type) Value {
	if t == nil {
		t = Dynamic
	}

	return Value{T: t}
}

// Type returns the declared type, or [Dynamic] if none was given.
func (v Value) Type() reflect.Type {
	if v.T == nil {
		return Dynamic
	}

	return v.T
}

// RuntimeType returns the type of the held value, or the declared type if
// the value is null.
func (v Value) RuntimeType() reflect.Type {
	if v.V == nil {
		return v.Type()
	}

	return reflect.TypeOf(v.V)
}

// IsNull reports whether v holds no value. A nil pointer, map, slice,
// function or channel stored in v is null too.
func (v Value) IsNull() bool {
	if v.V == nil {
		return true
	}

	r := reflect.ValueOf(v.V)

	switch r.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return r.IsNil()
	default:
		return false
	}
}

// Reflect returns the held value as a [reflect.Value]. If v was read from
// an addressable location, the result is that location.
func (v Value) Reflect() reflect.Value {
	if v.ref.IsValid() {
		return v.ref
	}

	return reflect.ValueOf(v.V)
}

func (v Value) String() string {
	if v.IsNull() {
		return "null"
	}

	return fmt.Sprint(v.V)
}

// LogValue implements slog.LogValuer.
func (v Value) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("value", v.V),
		slog.String("type", typeName(v.Type())),
	)
}

// TypeRef is a value naming a type rather than an instance of it. Member
// access through a TypeRef reaches static members and method groups.
type TypeRef struct {
	Name string
	Type reflect.Type
}

func (r TypeRef) String() string { return r.Name }

// DynamicObject is implemented by host values that answer member lookups
// themselves. A hit bypasses declared-member resolution.
type DynamicObject interface {
	TryGetValue(name string) (value any, typ reflect.Type, ok bool)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	return t.String()
}

// nullOf returns the null value of the type a member named name has on t,
// or of t itself if the member cannot be determined.
func nullOf(reg *typeinfo.Registry, t reflect.Type, name string) Value {
	in := reg.Inspect(t)

	if f, ok := in.Field(name); ok {
		return Null(f.Type)
	}

	if p, ok := in.Property(name); ok {
		return Null(p.Type)
	}

	return Null(t)
}
