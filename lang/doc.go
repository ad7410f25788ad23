// Package lang evaluates member-access expressions against live Go values.
//
// Source text is parsed by expr-lang into an AST and converted into a small
// tree of [Node] values. Tokens the host grammar cannot express, such as
// generic variable references (count<int>) and generic member names
// (obj.Get<string>), are located with the token package before parsing and
// restored into the tree afterwards.
//
// # Nodes
//
//   - [Variable] reads a binding from the [Context].
//   - [GenericVariable] reads a binding named by a generic token.
//   - [FieldAccess] resolves target.member through the resolve package,
//     honoring typed nulls, [DynamicObject] targets and string indexers.
//   - [Index] reads or writes through native or method indexers.
//   - [Call] invokes a [MethodGroup] or a plain func value.
//
// [FieldAccess], [Index] and [Variable] also implement [Assignable].
//
// # Type names
//
// Type arguments are resolved by [ResolveTypeName], which maps the
// case-insensitive aliases of [Alias] (int, long, string, datetime, ...) to
// Go types and otherwise consults the [typeinfo.Registry]. A trailing "?"
// marks a nullable type and becomes a pointer; a trailing "[]" becomes a
// slice.
//
// # Example
//
//	env := lang.NewEnv().Set("order", &Order{Total: 5})
//	expr, err := lang.Parse(ctx, "order.Total")
//	if err != nil { ... }
//	v, err := expr.Evaluate(env)
//
// Parsed expressions are cached by source text and registry. The cache may
// be disabled with [WithCache] or cleared with [ClearCache].
package lang
