package lang

import (
	"reflect"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/ardnew/duck/typeinfo"
)

// aliases maps case-folded short type names to type identities. It is
// built once and never written afterwards.
//
//nolint:gochecknoglobals
var aliases = map[string]reflect.Type{
	"bool":           reflect.TypeFor[bool](),
	"boolean":        reflect.TypeFor[bool](),
	"byte":           reflect.TypeFor[uint8](),
	"sbyte":          reflect.TypeFor[int8](),
	"char":           reflect.TypeFor[rune](),
	"short":          reflect.TypeFor[int16](),
	"int16":          reflect.TypeFor[int16](),
	"ushort":         reflect.TypeFor[uint16](),
	"uint16":         reflect.TypeFor[uint16](),
	"int":            reflect.TypeFor[int32](),
	"int32":          reflect.TypeFor[int32](),
	"uint":           reflect.TypeFor[uint32](),
	"uint32":         reflect.TypeFor[uint32](),
	"long":           reflect.TypeFor[int64](),
	"int64":          reflect.TypeFor[int64](),
	"ulong":          reflect.TypeFor[uint64](),
	"uint64":         reflect.TypeFor[uint64](),
	"float":          reflect.TypeFor[float32](),
	"double":         reflect.TypeFor[float64](),
	"decimal":        reflect.TypeFor[float64](),
	"string":         reflect.TypeFor[string](),
	"datetime":       reflect.TypeFor[time.Time](),
	"datetimeoffset": reflect.TypeFor[time.Time](),
	"timespan":       reflect.TypeFor[time.Duration](),
	"object":         reflect.TypeFor[any](),
}

// Type name suffixes marking array and nullable types.
const (
	arrayMarker    = "[]"
	nullableMarker = "?"
)

// TypeArg is one type argument of a generic token. Type is nil if Name did
// not resolve.
type TypeArg struct {
	Name string
	Type reflect.Type
}

// Resolved reports whether the argument names a known type.
func (a TypeArg) Resolved() bool { return a.Type != nil }

func (a TypeArg) String() string { return a.Name }

// Alias returns the type a short type name stands for. Matching is
// case-insensitive.
func Alias(name string) (reflect.Type, bool) {
	t, ok := aliases[cases.Fold().String(name)]

	return t, ok
}

// ResolveTypeName resolves a type name as written in a type argument list.
// Trailing "[]" and "?" markers are stripped; the core name is looked up in
// the alias table and, failing that, passed verbatim to reg. The markers are
// then reapplied: array first, then nullable. It returns nil if the core
// name does not resolve.
func ResolveTypeName(name string, reg *typeinfo.Registry) reflect.Type {
	core := strings.TrimSpace(name)

	var array, nullable bool

	for {
		if s, ok := strings.CutSuffix(core, arrayMarker); ok {
			core, array = s, true

			continue
		}

		if s, ok := strings.CutSuffix(core, nullableMarker); ok {
			core, nullable = s, true

			continue
		}

		break
	}

	t, ok := Alias(core)
	if !ok {
		if t, ok = reg.Lookup(core); !ok {
			return nil
		}
	}

	if array {
		t = reflect.SliceOf(t)
	}

	if nullable {
		t = reflect.PointerTo(t)
	}

	return t
}
