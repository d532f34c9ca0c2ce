package diag

// CodeCategory represents the semantic domain of an error code.
//
// Categories follow the compiler's phase pipeline: each of phases 0-7 owns
// a category for the diagnostics it emits, plus CategorySentinel for
// internal bookkeeping codes, CategorySyntax for the lexer/parser, and
// CategoryAdapter for the phase-8 driver-config collaborator.
type CodeCategory uint8

const (
	// CategorySentinel is for sentinel codes like E_LIMIT_REACHED and E_INTERNAL.
	CategorySentinel CodeCategory = iota

	// CategorySyntax is for lexer/parser errors, ahead of phase 0.
	CategorySyntax

	// CategoryPhase0 is for Loader & Schema Registry errors (spec §4.1).
	CategoryPhase0

	// CategoryPhase1 is for Local Semantic Checker errors (spec §4.2).
	CategoryPhase1

	// CategoryPhase2 is for Implementation-Tree Builder errors (spec §4.3).
	CategoryPhase2

	// CategoryPhase3 is for Inheritance-Graph Builder errors (spec §4.4).
	CategoryPhase3

	// CategoryPhase4 is for Full Name Binder errors (spec §4.5).
	CategoryPhase4

	// CategoryPhase5 is for Realization Fixpoint errors (spec §4.6).
	CategoryPhase5

	// CategoryPhase6 is for Requirement Checker errors (spec §4.7 first
	// paragraph: the tree-shaped "required member must be realized" check).
	CategoryPhase6

	// CategoryPhase7 is for the Global Checker's non-tree-shaped checks
	// (spec §4.7, numbered items 1-12).
	CategoryPhase7

	// CategoryAdapter is for phase-8 driver type-registry parsing errors.
	CategoryAdapter
)

// String returns a human-readable label for the category.
func (c CodeCategory) String() string {
	switch c {
	case CategorySentinel:
		return "sentinel"
	case CategorySyntax:
		return "syntax"
	case CategoryPhase0:
		return "phase0"
	case CategoryPhase1:
		return "phase1"
	case CategoryPhase2:
		return "phase2"
	case CategoryPhase3:
		return "phase3"
	case CategoryPhase4:
		return "phase4"
	case CategoryPhase5:
		return "phase5"
	case CategoryPhase6:
		return "phase6"
	case CategoryPhase7:
		return "phase7"
	case CategoryAdapter:
		return "adapter"
	default:
		return "unknown"
	}
}

// Code is a stable programmatic identifier for an Issue.
//
// Error codes are stable identifiers that tools can match on, even when
// message text changes. The Code type uses unexported fields to enforce
// a closed set of valid codes—only codes defined in this package are valid.
//
// Code.String() values are globally unique across all categories. The
// CodeCategory is informational metadata for filtering and grouping.
type Code struct {
	value string
	cat   CodeCategory
}

// String returns the code's string representation (e.g., "E_INHERIT_CYCLE").
func (c Code) String() string {
	return c.value
}

// Category returns the programmatic category for this code.
func (c Code) Category() CodeCategory {
	return c.cat
}

// IsZero reports whether the code is unset.
func (c Code) IsZero() bool {
	return c.value == ""
}

// code is the unexported constructor—callers cannot create arbitrary codes.
func code(value string, cat CodeCategory) Code {
	return Code{value: value, cat: cat}
}

// Sentinel codes.
var (
	// E_LIMIT_REACHED is a sentinel code for explicit limit notification.
	// It does not automatically trigger Result.LimitReached(); use
	// Collector.LimitReached() to check limit status. Callers may inject
	// this code manually when desired.
	E_LIMIT_REACHED = code("E_LIMIT_REACHED", CategorySentinel)

	// E_INTERNAL indicates an unexpected invariant failure (internal bug
	// indicator), e.g. a definition with no final implementor after phase 2.
	E_INTERNAL = code("E_INTERNAL", CategorySentinel)
)

// Syntax codes.
var (
	// E_SYNTAX indicates a lexical or grammatical error in the schema source.
	E_SYNTAX = code("E_SYNTAX", CategorySyntax)
)

// Phase 0 codes: Loader & Schema Registry (spec §4.1).
var (
	// E_IO indicates a file read or URI fetch failure.
	E_IO = code("E_IO", CategoryPhase0)

	// E_IMPORT_RESOLVE indicates an import path or URI could not be resolved.
	E_IMPORT_RESOLVE = code("E_IMPORT_RESOLVE", CategoryPhase0)

	// E_IMPORT_CYCLE indicates a schema `use`/`require`s itself, directly or
	// by resolving to its own canonical source identity (spec §4.2 step 1:
	// "a schema must not use/require itself"). Cycles among distinct
	// schemas are permitted (spec §4.1) and are not reported.
	E_IMPORT_CYCLE = code("E_IMPORT_CYCLE", CategoryPhase0)

	// E_INVALID_ALIAS indicates an import alias is not a valid identifier.
	E_INVALID_ALIAS = code("E_INVALID_ALIAS", CategoryPhase0)

	// E_ALIAS_REQUIRED indicates an import target needs an explicit alias
	// (a URI, or a dotted name with more than one segment) but none was
	// given (spec §4.1 step 3).
	E_ALIAS_REQUIRED = code("E_ALIAS_REQUIRED", CategoryPhase0)

	// E_PATH_ESCAPE indicates an import path escapes the allowed directory.
	E_PATH_ESCAPE = code("E_PATH_ESCAPE", CategoryPhase0)

	// E_IMPORT_NOT_ALLOWED indicates imports are not allowed in this context
	// (LoadString/WithDisallowImports).
	E_IMPORT_NOT_ALLOWED = code("E_IMPORT_NOT_ALLOWED", CategoryPhase0)

	// E_DUPLICATE_IMPORT indicates the same schema is imported multiple
	// times under different aliases.
	E_DUPLICATE_IMPORT = code("E_DUPLICATE_IMPORT", CategoryPhase0)

	// E_IMPORT_ALIAS_COLLISION indicates an import alias collides with
	// another import alias or an outermost definition name.
	E_IMPORT_ALIAS_COLLISION = code("E_IMPORT_ALIAS_COLLISION", CategoryPhase0)

	// E_PACKAGE_NAME_MISMATCH indicates a locally loaded schema's declared
	// package name does not match the dotted path used to reach it, or a
	// URI-loaded schema's package name does not start with its host's
	// reverse-DNS (spec §4.1 step 5).
	E_PACKAGE_NAME_MISMATCH = code("E_PACKAGE_NAME_MISMATCH", CategoryPhase0)

	// E_DUPLICATE_PACKAGE_NAME indicates two loaded schemas share a package
	// name (spec §3 invariant 1).
	E_DUPLICATE_PACKAGE_NAME = code("E_DUPLICATE_PACKAGE_NAME", CategoryPhase0)

	// E_UPSTREAM_FAIL indicates an imported schema failed to compile, so
	// this schema cannot proceed past phase 0.
	E_UPSTREAM_FAIL = code("E_UPSTREAM_FAIL", CategoryPhase0)
)

// Phase 1 codes: Local Semantic Checker (spec §4.2).
var (
	// E_RESERVED_NAME indicates a definition, property, or alias uses a
	// reserved word or special property name illegally.
	E_RESERVED_NAME = code("E_RESERVED_NAME", CategoryPhase1)

	// E_INVALID_NAME indicates an identifier does not match the grammar's
	// name pattern.
	E_INVALID_NAME = code("E_INVALID_NAME", CategoryPhase1)

	// E_DUPLICATE_NAME indicates two sibling names collide within one block
	// (spec §3 invariant 2: block-level uniqueness).
	E_DUPLICATE_NAME = code("E_DUPLICATE_NAME", CategoryPhase1)

	// E_MODIFIER_CONFLICT indicates an illegal modifier combination (e.g.
	// abstract and final together).
	E_MODIFIER_CONFLICT = code("E_MODIFIER_CONFLICT", CategoryPhase1)

	// E_IMPLEMENTS_TARGET indicates an `implements` argument did not
	// statically resolve to a fieldset or field.
	E_IMPLEMENTS_TARGET = code("E_IMPLEMENTS_TARGET", CategoryPhase1)

	// E_UNIMPLEMENTED_RENAME indicates use of the reserved-but-unimplemented
	// `rename` statement.
	E_UNIMPLEMENTED_RENAME = code("E_UNIMPLEMENTED_RENAME", CategoryPhase1)
)

// Phase 2 codes: Implementation-Tree Builder (spec §4.3).
var (
	// E_MULTIPLE_IMPLEMENTORS indicates more than one definition names the
	// same `implements` target (spec invariant: at most one direct
	// implementor per definition).
	E_MULTIPLE_IMPLEMENTORS = code("E_MULTIPLE_IMPLEMENTORS", CategoryPhase2)

	// E_IMPLEMENTS_CYCLE indicates a cycle in the `implements` relation.
	E_IMPLEMENTS_CYCLE = code("E_IMPLEMENTS_CYCLE", CategoryPhase2)

	// E_IMPLEMENTS_KIND_MISMATCH indicates `implements` links a fieldset to
	// a field or vice versa.
	E_IMPLEMENTS_KIND_MISMATCH = code("E_IMPLEMENTS_KIND_MISMATCH", CategoryPhase2)

	// E_MODIFIER_CONSISTENCY indicates an abstract-and-required definition
	// is never implemented by a concrete final implementor (spec §4.3.4).
	E_MODIFIER_CONSISTENCY = code("E_MODIFIER_CONSISTENCY", CategoryPhase2)
)

// Phase 3 codes: Inheritance-Graph Builder (spec §4.4).
var (
	// E_ANCESTOR_TARGET indicates an `ancestors` argument did not resolve
	// to a fieldset or field.
	E_ANCESTOR_TARGET = code("E_ANCESTOR_TARGET", CategoryPhase3)

	// E_INHERIT_CYCLE indicates an inheritance chain contains a cycle.
	E_INHERIT_CYCLE = code("E_INHERIT_CYCLE", CategoryPhase3)

	// E_CONTAINMENT_VIOLATION indicates a definition names an ancestor that
	// statically contains it, or is statically contained by it (spec
	// §4.3.5/§4.4.5).
	E_CONTAINMENT_VIOLATION = code("E_CONTAINMENT_VIOLATION", CategoryPhase3)

	// W_UNUSED_DELETE indicates a `delete name` statement whose name did
	// not resolve to an inherited member (spec §4.4 step 7, warning).
	W_UNUSED_DELETE = code("W_UNUSED_DELETE", CategoryPhase3)
)

// Phase 4 codes: Full Name Binder (spec §4.5).
var (
	// E_UNKNOWN_NAME indicates a dotted name did not resolve under dynamic
	// or static binding.
	E_UNKNOWN_NAME = code("E_UNKNOWN_NAME", CategoryPhase4)

	// E_MIN_CLASSES indicates a resolved definition's tag is not in the
	// dotted name's declared bracketed min_classes set.
	E_MIN_CLASSES = code("E_MIN_CLASSES", CategoryPhase4)

	// E_INVALID_REFERENCE indicates a `references` property has more than
	// one argument, or its argument is not a fieldset (or `any`).
	E_INVALID_REFERENCE = code("E_INVALID_REFERENCE", CategoryPhase4)

	// E_INVALID_INDEX indicates an `index` definition is missing `fields`,
	// has a duplicate field, or a field argument does not resolve inside
	// the enclosing fieldset.
	E_INVALID_INDEX = code("E_INVALID_INDEX", CategoryPhase4)

	// E_INVALID_CONSTRAINT indicates a `constraint` definition is missing a
	// `check` property or `check` has no arguments.
	E_INVALID_CONSTRAINT = code("E_INVALID_CONSTRAINT", CategoryPhase4)
)

// Phase 5 codes: Realization Fixpoint (spec §4.6).
var (
	// E_REQUIRED_NOT_OUTERMOST indicates a `required` outermost fieldset's
	// final implementor is not itself outermost.
	E_REQUIRED_NOT_OUTERMOST = code("E_REQUIRED_NOT_OUTERMOST", CategoryPhase5)

	// E_REALIZED_ABSTRACT indicates a realized final implementation carries
	// the `abstract` modifier (spec §4.6 step 6).
	E_REALIZED_ABSTRACT = code("E_REALIZED_ABSTRACT", CategoryPhase5)
)

// Phase 6 codes: Requirement Checker (spec §4.7 first paragraph).
var (
	// E_MISSING_REQUIRED_MEMBER indicates a specification's `required`
	// member is not realized in the final implementation (commonly because
	// it was hidden by a later ancestor or deleted).
	E_MISSING_REQUIRED_MEMBER = code("E_MISSING_REQUIRED_MEMBER", CategoryPhase6)
)

// Phase 7 codes: Global Checker (spec §4.7, numbered items 1-12).
var (
	// E_EMPTY_FIELDSET indicates a realized fieldset has zero realized
	// fields (item 1).
	E_EMPTY_FIELDSET = code("E_EMPTY_FIELDSET", CategoryPhase7)

	// W_OUTERMOST_FIELD_REQUIRED indicates an outermost field carries
	// `required`, which has no effect (item 2, warning).
	W_OUTERMOST_FIELD_REQUIRED = code("W_OUTERMOST_FIELD_REQUIRED", CategoryPhase7)

	// N_MULTIPLE_COPY_RISK indicates a realized toplevel fieldset has a
	// non-outermost specification (item 3, notice).
	N_MULTIPLE_COPY_RISK = code("N_MULTIPLE_COPY_RISK", CategoryPhase7)

	// E_INVALID_TYPE indicates `type` has more than one argument, or is
	// set on a universal reference, or is missing on an otherwise-typed
	// realized field (item 4).
	E_INVALID_TYPE = code("E_INVALID_TYPE", CategoryPhase7)

	// E_INVALID_SIZE_PRECISION indicates `size`/`precision` does not carry
	// exactly one integer argument (item 5).
	E_INVALID_SIZE_PRECISION = code("E_INVALID_SIZE_PRECISION", CategoryPhase7)

	// E_INVALID_FLAG_PROPERTY indicates `notnull`/`unique`/`immutable` does
	// not carry exactly one boolean argument, or appears in the wrong
	// context (item 6).
	E_INVALID_FLAG_PROPERTY = code("E_INVALID_FLAG_PROPERTY", CategoryPhase7)

	// E_DUPLICATE_GUID indicates two definitions share a `guid` value
	// (item 7).
	E_DUPLICATE_GUID = code("E_DUPLICATE_GUID", CategoryPhase7)

	// E_MISSING_GUID indicates a schema or self-realized toplevel fieldset
	// has no `guid` property (item 7).
	E_MISSING_GUID = code("E_MISSING_GUID", CategoryPhase7)

	// E_INVALID_ONACTION indicates `ondelete`/`onupdate` is not one of
	// cascade/setnull/noaction, is used outside fieldset context, or
	// conflicts with `notnull true` (item 8).
	E_INVALID_ONACTION = code("E_INVALID_ONACTION", CategoryPhase7)

	// W_MISSING_LANGUAGE indicates a schema has no `language` property
	// (item 9, warning; default "en" is still applied).
	W_MISSING_LANGUAGE = code("W_MISSING_LANGUAGE", CategoryPhase7)

	// E_INVALID_CLUSTER indicates `cluster` is used outside fieldset
	// context, has more than one argument, or does not reference an index
	// defined at the same level (item 10).
	E_INVALID_CLUSTER = code("E_INVALID_CLUSTER", CategoryPhase7)

	// E_INVALID_REQLEVEL indicates `reqlevel` is not one of
	// optional/desired/required (item 11).
	E_INVALID_REQLEVEL = code("E_INVALID_REQLEVEL", CategoryPhase7)

	// N_REQLEVEL_WITHOUT_NOTNULL indicates `reqlevel required` without
	// `notnull true` (item 11, notice).
	N_REQLEVEL_WITHOUT_NOTNULL = code("N_REQLEVEL_WITHOUT_NOTNULL", CategoryPhase7)

	// E_UNREALIZED_INDEX_FIELD indicates an outermost index of a realized
	// final fieldset names a field argument that is not realized (item 12).
	E_UNREALIZED_INDEX_FIELD = code("E_UNREALIZED_INDEX_FIELD", CategoryPhase7)

	// N_MISSING_NEED_INDEX indicates a realized field references a fieldset
	// without an index covering it and without `need_index false`
	// (supplemented feature, see DESIGN.md).
	N_MISSING_NEED_INDEX = code("N_MISSING_NEED_INDEX", CategoryPhase7)
)

// Adapter codes.
var (
	// E_ADAPTER_PARSE indicates a driver type-registry document failed to
	// parse.
	E_ADAPTER_PARSE = code("E_ADAPTER_PARSE", CategoryAdapter)
)

// allCodes contains all defined codes for AllCodes() and uniqueness verification.
var allCodes = []Code{
	// Sentinel
	E_LIMIT_REACHED,
	E_INTERNAL,
	// Syntax
	E_SYNTAX,
	// Phase 0
	E_IO,
	E_IMPORT_RESOLVE,
	E_IMPORT_CYCLE,
	E_INVALID_ALIAS,
	E_ALIAS_REQUIRED,
	E_PATH_ESCAPE,
	E_IMPORT_NOT_ALLOWED,
	E_DUPLICATE_IMPORT,
	E_IMPORT_ALIAS_COLLISION,
	E_PACKAGE_NAME_MISMATCH,
	E_DUPLICATE_PACKAGE_NAME,
	E_UPSTREAM_FAIL,
	// Phase 1
	E_RESERVED_NAME,
	E_INVALID_NAME,
	E_DUPLICATE_NAME,
	E_MODIFIER_CONFLICT,
	E_IMPLEMENTS_TARGET,
	E_UNIMPLEMENTED_RENAME,
	// Phase 2
	E_MULTIPLE_IMPLEMENTORS,
	E_IMPLEMENTS_CYCLE,
	E_IMPLEMENTS_KIND_MISMATCH,
	E_MODIFIER_CONSISTENCY,
	// Phase 3
	E_ANCESTOR_TARGET,
	E_INHERIT_CYCLE,
	E_CONTAINMENT_VIOLATION,
	W_UNUSED_DELETE,
	// Phase 4
	E_UNKNOWN_NAME,
	E_MIN_CLASSES,
	E_INVALID_REFERENCE,
	E_INVALID_INDEX,
	E_INVALID_CONSTRAINT,
	// Phase 5
	E_REQUIRED_NOT_OUTERMOST,
	E_REALIZED_ABSTRACT,
	// Phase 6
	E_MISSING_REQUIRED_MEMBER,
	// Phase 7
	E_EMPTY_FIELDSET,
	W_OUTERMOST_FIELD_REQUIRED,
	N_MULTIPLE_COPY_RISK,
	E_INVALID_TYPE,
	E_INVALID_SIZE_PRECISION,
	E_INVALID_FLAG_PROPERTY,
	E_DUPLICATE_GUID,
	E_MISSING_GUID,
	E_INVALID_ONACTION,
	W_MISSING_LANGUAGE,
	E_INVALID_CLUSTER,
	E_INVALID_REQLEVEL,
	N_REQLEVEL_WITHOUT_NOTNULL,
	E_UNREALIZED_INDEX_FIELD,
	N_MISSING_NEED_INDEX,
	// Adapter
	E_ADAPTER_PARSE,
}

// AllCodes returns all defined codes.
//
// This function is useful for tooling and testing. The returned slice is a
// copy; modifications do not affect the original.
func AllCodes() []Code {
	result := make([]Code, len(allCodes))
	copy(result, allCodes)
	return result
}

// CodesByCategory returns codes in the given category.
//
// The returned slice is a new allocation; modifications do not affect
// internal state.
func CodesByCategory(cat CodeCategory) []Code {
	var result []Code
	for _, c := range allCodes {
		if c.cat == cat {
			result = append(result, c)
		}
	}
	return result
}
