package typeinfo

import (
	"log/slog"
	"reflect"
)

// Per-parameter match scores used by [Score].
const (
	ScoreAssignable = 1
	ScoreExact      = 2
)

// Score rates how well the argument types args fit the parameter types
// params, position by position. An exact type identity scores
// [ScoreExact], an argument assignable without conversion scores
// [ScoreAssignable], and a nil argument type (untyped nil) scores
// [ScoreAssignable] against a nil-able parameter. Any other argument, or a
// different arity, disqualifies the candidate (ok is false).
func Score(params, args []reflect.Type) (score int, ok bool) {
	if len(params) != len(args) {
		return 0, false
	}

	for i, p := range params {
		a := args[i]

		switch {
		case a == nil:
			if !Nilable(p) {
				return 0, false
			}

			score += ScoreAssignable

		case a == p:
			score += ScoreExact

		case a.AssignableTo(p):
			score += ScoreAssignable

		default:
			return 0, false
		}
	}

	return score, true
}

// Nilable reports whether a value of type t can represent "no value".
func Nilable(t reflect.Type) bool {
	if t == nil {
		return true
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// Convert adapts v to type t for assignment or as a call argument. Values
// already assignable pass through; numeric values convert between numeric
// kinds; values of a named type convert to another type sharing its kind.
// An invalid v converts to the zero value of a nil-able t.
func Convert(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			v = reflect.Value{}
		} else if !v.Type().AssignableTo(t) {
			v = v.Elem()
		}
	}

	if !v.IsValid() {
		if Nilable(t) {
			return reflect.Zero(t), nil
		}

		return reflect.Value{}, ErrArgumentType.With(
			slog.String("want", t.String()),
			slog.String("have", "nil"),
		)
	}

	if v.Type().AssignableTo(t) {
		return v, nil
	}

	if convertible(v.Type(), t) {
		return v.Convert(t), nil
	}

	return reflect.Value{}, ErrArgumentType.With(
		slog.String("want", t.String()),
		slog.String("have", v.Type().String()),
	)
}

func convertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}

	if isNumber(from.Kind()) && isNumber(to.Kind()) {
		return true
	}

	return from.Kind() == to.Kind()
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr, reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
