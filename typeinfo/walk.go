package typeinfo

import (
	"iter"
	"reflect"
	"slices"
)

// Level is one type reached by an embedding walk.
type Level struct {
	Type  reflect.Type // pointer-free level type
	Path  []int        // field index path from the walk root
	Depth int
}

// Levels returns the embedding levels of t, nearest first. Each element
// holds every type found at one embedding depth, in field order. A type
// reachable more than once is visited only at its shallowest occurrence.
func Levels(t reflect.Type) iter.Seq[[]Level] {
	return func(yield func([]Level) bool) {
		t = Deref(t)
		if t == nil {
			return
		}

		seen := map[reflect.Type]bool{t: true}
		cur := []Level{{Type: t}}

		for depth := 1; len(cur) > 0; depth++ {
			if !yield(cur) {
				return
			}

			var next []Level

			for _, l := range cur {
				for i, e := range embedded(l.Type) {
					if seen[e] {
						continue
					}

					seen[e] = true
					next = append(next, Level{
						Type:  e,
						Path:  append(slices.Clone(l.Path), i),
						Depth: depth,
					})
				}
			}

			cur = next
		}
	}
}

// WalkLevels calls f for each type of each embedding level of t and returns
// the combined results of the first level for which f yields anything.
func WalkLevels[R any](t reflect.Type, f func(Level) []R) []R {
	for level := range Levels(t) {
		var found []R

		for _, l := range level {
			found = append(found, f(l)...)
		}

		if len(found) > 0 {
			return found
		}
	}

	return nil
}

// WalkSingle calls f for each level type of t, nearest first, and returns the
// first result f reports.
func WalkSingle[R any](t reflect.Type, f func(Level) (R, bool)) (R, bool) {
	for level := range Levels(t) {
		for _, l := range level {
			if r, ok := f(l); ok {
				return r, true
			}
		}
	}

	var zero R

	return zero, false
}

// WalkAll concatenates the results of f over every level type of t, nearest
// first.
func WalkAll[R any](t reflect.Type, f func(Level) []R) []R {
	var all []R

	for level := range Levels(t) {
		for _, l := range level {
			all = append(all, f(l)...)
		}
	}

	return all
}

// embedded returns the pointer-free types of t's anonymous fields keyed by
// field index.
func embedded(t reflect.Type) iter.Seq2[int, reflect.Type] {
	return func(yield func(int, reflect.Type) bool) {
		if t.Kind() != reflect.Struct {
			return
		}

		for i := range t.NumField() {
			f := t.Field(i)
			if !f.Anonymous {
				continue
			}

			if !yield(i, Deref(f.Type)) {
				return
			}
		}
	}
}
