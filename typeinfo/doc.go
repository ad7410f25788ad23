// Package typeinfo provides a uniform query surface over the members of Go
// types: fields, accessor-pair properties, indexers, methods, constructors,
// attributes and interfaces.
//
// # Hierarchy
//
// Go has no class inheritance. The "supertypes" of a struct are its embedded
// (anonymous) struct fields, and member lookup walks them level by level in
// embedding depth order:
//
//	depth 0  the inspected type itself
//	depth 1  the types embedded directly in it, in field order
//	depth 2  the types embedded in those, ...
//
// The native reflect queries used at each level are declared-only: promoted
// fields and compiler-generated promotion wrappers for methods are attributed
// to the level that declares them, not the level that inherits them. The
// walk stops at the first level that yields a non-empty result, which is the
// same shallowest-depth rule the Go selector uses.
//
// # Members
//
//   - Field: an exported struct field. The tag `duck:"name"` renames it and
//     `duck:"-"` hides it.
//   - Property: a getter X() T paired with a setter SetX(T) declared on the
//     same level. A getter without a setter is just a method.
//   - Indexer: map, slice and array types index natively; a type may also
//     declare Get(key) V or Get(key) (V, bool), optionally with Set(key, V).
//   - Method: an exported method declared at a level.
//
// Statics, generic method instantiations, constructors, interfaces and type
// annotations are registered with a [Registry], which is also the host's
// name-to-type resolution facility.
package typeinfo
