package lang

import (
	"reflect"
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/duck/typeinfo"
)

// maxSuggestions bounds the names offered for an unknown member.
const maxSuggestions = 3

// suggest returns the member names of t that fuzzily match name, best
// first.
func suggest(reg *typeinfo.Registry, t reflect.Type, name string) []string {
	in := reg.Inspect(t)

	var names []string

	for _, group := range [][]*typeinfo.Member{
		in.Fields(false),
		in.Properties(false),
		in.Methods(false),
		in.Statics(),
	} {
		for _, m := range group {
			if !slices.Contains(names, m.Name) {
				names = append(names, m.Name)
			}
		}
	}

	matches := fuzzy.Find(name, names)

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches[:min(len(matches), maxSuggestions)] {
		out = append(out, m.Str)
	}

	return out
}
