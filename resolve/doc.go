// Package resolve finds members by name on a runtime type and selects the
// best-fitting method among same-named candidates.
//
// Resolution walks from the given type through its embedded types, level by
// level, and stops at the first level that declares the name. The resulting
// candidate set is ordered nearest-declaring-type first. Overload selection
// scores each candidate positionally against the actual argument types with
// [typeinfo.Score].
package resolve
