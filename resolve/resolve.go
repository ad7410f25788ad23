package resolve

import (
	"log/slog"
	"reflect"

	"github.com/ardnew/duck/log"
	"github.com/ardnew/duck/typeinfo"
)

// Resolver resolves members and method overloads. It holds no state besides
// its configuration and is safe for concurrent use.
type Resolver struct {
	registry *typeinfo.Registry
	logger   log.Logger
}

// Option configures a [Resolver].
type Option func(*Resolver)

// WithRegistry sets the registry consulted for statics, generic methods and
// type names. The default is [typeinfo.Default].
func WithRegistry(reg *typeinfo.Registry) Option {
	return func(r *Resolver) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// WithLogger sets the logger receiving trace output of each resolution.
func WithLogger(logger log.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New returns a Resolver configured with opts.
func New(opts ...Option) *Resolver {
	r := &Resolver{registry: typeinfo.Default}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Registry returns the registry r consults.
func (r *Resolver) Registry() *typeinfo.Registry { return r.registry }

// ResolveMember returns the members named name on t or on the nearest
// embedded level declaring the name. When generics is non-empty only
// generic methods with a matching number of type parameters are considered,
// instantiated with generics. An empty result is not an error.
func (r *Resolver) ResolveMember(
	t reflect.Type,
	name string,
	generics []reflect.Type,
) []*typeinfo.Member {
	in := r.registry.Inspect(t)

	var found []*typeinfo.Member
	if len(generics) > 0 {
		found = in.GenericMembers(name, generics)
	} else {
		found = in.Members(name)
	}

	if r.logger.Enabled(log.LevelTrace) {
		r.logger.Trace("resolve member",
			slog.String("type", r.registry.NameOf(t)),
			slog.String("name", name),
			slog.Int("generics", len(generics)),
			slog.Int("found", len(found)),
		)
	}

	return found
}

// SelectBestMethod chooses the method among candidates that best fits args.
//
// A single candidate is returned without checking args. Otherwise every
// candidate whose arity and parameter types accept args is scored with
// [typeinfo.Score]; the highest score wins, and ties go to the candidate
// declared nearest the runtime type, then to the earlier candidate. It
// returns nil if no candidate fits.
func (r *Resolver) SelectBestMethod(
	candidates []*typeinfo.Member,
	args []reflect.Type,
) *typeinfo.Member {
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	}

	var (
		best  *typeinfo.Member
		score int
	)

	for _, c := range candidates {
		s, ok := typeinfo.Score(c.Params, args)

		if r.logger.Enabled(log.LevelTrace) {
			r.logger.Trace("score candidate",
				slog.Any("candidate", c),
				slog.Int("score", s),
				slog.Bool("fits", ok),
			)
		}

		if !ok {
			continue
		}

		if best == nil || s > score || (s == score && c.Depth < best.Depth) {
			best, score = c, s
		}
	}

	return best
}

// StringIndexer returns the nearest indexer of t accepting a single string
// key, or nil.
func (r *Resolver) StringIndexer(t reflect.Type) *typeinfo.Member {
	ix, ok := r.registry.Inspect(t).Indexer(reflect.TypeFor[string]())
	if !ok {
		return nil
	}

	return ix
}

// Method returns the best method named name on t accepting args, searching
// each level in turn. Instance and static methods are both eligible.
func (r *Resolver) Method(t reflect.Type, name string, args []reflect.Type) *typeinfo.Member {
	m, ok := r.registry.Inspect(t).Method(name, typeinfo.BindAll, args)
	if !ok {
		return nil
	}

	return m
}

// PreferDeclaredOn returns the member of members declared exactly on
// runtime, or the first member if none is. When several are declared on
// runtime the last one wins.
func PreferDeclaredOn(members []*typeinfo.Member, runtime reflect.Type) *typeinfo.Member {
	if len(members) == 0 {
		return nil
	}

	chosen := members[0]
	runtime = typeinfo.Deref(runtime)

	for _, m := range members[1:] {
		if m.Declaring == runtime {
			chosen = m
		}
	}

	return chosen
}
