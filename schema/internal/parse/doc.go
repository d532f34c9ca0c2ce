// Package parse provides the hand-written lexer and recursive-descent
// parser for YASDL source text (spec §6), plus the AST types that carry the
// syntax-level parse result before semantic completion.
//
// # AST vs completed schema
//
// The AST types in this package (Document, DefinitionDecl, PropertyDecl,
// ...) preserve exactly what was written in source: dotted names keep their
// `schema.`/`=` markers and bracketed min_classes suffix unresolved, and
// property arguments keep dotted names as ArgKindName literals rather than
// bound definitions. schema/load translates a Document into the Definition
// arena; schema/internal/complete and realize perform the semantic work
// that turns that arena into a fully bound, realized compilation result.
//
// # Lexical structure
//
// Source files are UTF-8 text. Comments start with `#` and run to end of
// line. String literals may be single-, double-, or triple-quoted, with
// backslash escapes for \n, \t, \r, \\, \", and \'. Integer and float
// literals follow ordinary decimal notation; `true`, `false`, `none`, and
// `all` are reserved literal keywords rather than identifiers. Column
// numbers count Unicode code points, not bytes.
package parse
