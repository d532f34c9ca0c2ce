// Package schema is the public data model for YASDL: Schema, Definition,
// DottedName, and the Registry that holds every loaded schema keyed by
// canonical package name.
//
// # Overview
//
// A Schema is a top-level package loaded from one source document or URI.
// It owns an ordered sequence of outermost Definitions, each polymorphic
// over Tag (schema, fieldset, field, index, constraint, property, deletion).
// Only TagFieldset and TagField definitions participate in the inheritance
// (`ancestors`) and implementation (`implements`) trees built by the
// compiler's phases; see schema/internal/complete for phases 1-4 and the
// realize package for phases 5-7.
//
// # Loading
//
// Schemas are produced by the schema/load package, never constructed
// directly by callers outside this module's own phases:
//
//	s, result, err := load.Load(ctx, "order.yasdl")
//
// schema/build additionally offers a programmatic builder for tests and
// tooling that want to assemble a Definition tree without parsing source
// text.
//
// # Mutability and sealing
//
// Definitions and Schemas are append-only while phases run: each
// phase-derived attribute (Definition.Modifiers, FinalImplementor,
// AncestorsRefs, Members, Realized, ...) is written exactly once by the
// phase that owns it and never mutated again. Seal freezes a Definition or
// Schema once the phase pipeline that touches it has finished; calling a
// setter afterward panics.
//
// # Identity
//
// Definitions are identified by DefinitionID, a (schema source identity,
// sequence number) pair; Schemas are identified by their location.SourceID
// and, separately, by their canonical package name — the Registry enforces
// that the two name spaces each stay globally unique (spec invariant 1).
package schema
