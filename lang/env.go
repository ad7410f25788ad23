package lang

import (
	"log/slog"
	"maps"
	"reflect"
	"slices"

	"github.com/ardnew/duck/log"
	"github.com/ardnew/duck/resolve"
	"github.com/ardnew/duck/typeinfo"
)

// Context supplies variable bindings and the services nodes use during
// evaluation.
type Context interface {
	// Get returns the binding of name.
	Get(name string) (Value, bool)
	Resolver() *resolve.Resolver
	Logger() log.Logger
}

// config holds options shared by [Env] and [Parse].
type config struct {
	registry *typeinfo.Registry
	resolver *resolve.Resolver
	logger   log.Logger
	cache    bool
}

// Option configures an [Env] or a call to [Parse].
type Option func(*config)

// WithRegistry sets the type registry used for type names, statics and
// generic methods. The default is [typeinfo.Default].
func WithRegistry(reg *typeinfo.Registry) Option {
	return func(c *config) {
		c.registry = reg
	}
}

// WithResolver sets the member resolver. The default resolves against the
// configured registry.
func WithResolver(r *resolve.Resolver) Option {
	return func(c *config) {
		c.resolver = r
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithCache enables or disables the parse cache. It is enabled by default.
func WithCache(enable bool) Option {
	return func(c *config) {
		c.cache = enable
	}
}

// applyDefaults sets default option values.
func applyDefaults(c *config) {
	c.registry = typeinfo.Default
	c.cache = true
}

// applyOptions applies functional options and fills in dependent defaults.
func applyOptions(c *config, opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}

	if c.registry == nil {
		c.registry = typeinfo.Default
	}

	if c.resolver == nil {
		c.resolver = resolve.New(
			resolve.WithRegistry(c.registry),
			resolve.WithLogger(c.logger),
		)
	}
}

func makeConfig(opts ...Option) config {
	var c config

	applyDefaults(&c)
	applyOptions(&c, opts...)

	return c
}

// Env is a map-backed [Context]. It is not safe for concurrent writes;
// concurrent evaluation against an Env that is no longer modified is safe.
type Env struct {
	config

	vars map[string]Value
}

// NewEnv returns an empty Env configured with opts.
func NewEnv(opts ...Option) *Env {
	return &Env{
		config: makeConfig(opts...),
		vars:   make(map[string]Value),
	}
}

// Get implements [Context].
func (e *Env) Get(name string) (Value, bool) {
	v, ok := e.vars[name]

	return v, ok
}

// Resolver implements [Context].
func (e *Env) Resolver() *resolve.Resolver { return e.resolver }

// Logger implements [Context].
func (e *Env) Logger() log.Logger { return e.logger }

// Registry returns the type registry of e.
func (e *Env) Registry() *typeinfo.Registry { return e.registry }

// Set binds name to v typed by its runtime type. Bind pointers to structs
// whose members are to be assigned.
func (e *Env) Set(name string, v any) *Env {
	return e.SetValue(name, ValueOf(v))
}

// SetTyped binds name to v declared as type t. A nil v binds a null of
// type t.
func (e *Env) SetTyped(name string, v any, t reflect.Type) *Env {
	return e.SetValue(name, Typed(v, t))
}

// SetValue binds name to v.
func (e *Env) SetValue(name string, v Value) *Env {
	e.logger.Trace("bind",
		slog.String("name", name),
		slog.String("type", typeName(v.Type())),
	)

	e.vars[name] = v

	return e
}

// SetType binds name to a [TypeRef] of the registered type typeName.
func (e *Env) SetType(name, typeName string) error {
	t, ok := e.registry.Lookup(typeName)
	if !ok {
		return ErrUnresolvedType.With(slog.String("type", typeName))
	}

	e.SetValue(name, ValueOf(TypeRef{Name: typeName, Type: t}))

	return nil
}

// Names returns the bound names in sorted order.
func (e *Env) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}
