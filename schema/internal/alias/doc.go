// Package alias provides the reserved-word, special-property-name, and
// default-alias-derivation tables consulted during phase 1 (spec §4.2 step
// 2: "identifier legality") and by the loader when resolving an import's
// alias.
//
// # Reserved words
//
// A definition, property, or import alias may not be named after one of the
// keywords recognized by the source grammar: schema, fieldset, field, index,
// fields, modifiers, abstract, final, fallback, required, use, require, as,
// rename, delete, none, true, false, all, any, id.
//
// # Special property names
//
// ancestors, references, implements, unique, fields, index, and property are
// reserved for well-known properties; using one as the name of a non-
// property child definition is rejected.
package alias
