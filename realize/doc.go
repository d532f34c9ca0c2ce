// Package realize implements phases 5 through 7 of the compiler pipeline:
// the Realization Fixpoint, the Requirement Checker, and the Global
// Checker. It runs after schema/internal/complete has bound every
// definition's static and dynamic structure, and produces the compilation
// result: the set of realized schemas, the toplevel (table-generating)
// fieldsets, and their resolved member paths.
//
// Realize and Check run in sequence: Realize computes the monotonic
// realized/toplevel fixpoint (phase 5) and returns no result when it has
// collected an error (a required fieldset whose final implementor is not
// outermost, or a realized final implementation carrying the `abstract`
// modifier); Check then walks the realized set for requirement violations
// (phase 6) and the remaining structural rules (phase 7).
package realize
