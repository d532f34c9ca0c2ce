// Package complete implements phases 1 through 4 of the compiler pipeline
// (spec §4.2-§4.5): the Local Semantic Checker, the Implementation-Tree
// Builder, the Inheritance-Graph Builder, and the Full Name Binder. These
// four phases run in strict sequence over every schema already produced by
// phase 0 (schema/load); each phase batches every violation of its own rules
// before the orchestrator decides whether to continue to the next (spec §5
// "Concurrency & Resource Model").
//
// Phases 5-7 (realization, requirement checking, global checking) live in
// the top-level realize package, since they operate across the whole
// registry's realization fixpoint rather than per-definition and read much
// more naturally as one continued loop than as an extension of this
// package's per-definition walks.
package complete
