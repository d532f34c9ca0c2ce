package parse

import (
	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
)

// Document is the syntax-level representation of one parsed YASDL source
// file. It carries only what the parser can determine from text; semantic
// completion (identifier legality, inheritance, binding, realization)
// happens in schema/load and schema/internal/complete.
type Document struct {
	PackageName []string // dotted segments of the `schema <name> { ... }` header
	Doc         string
	Imports     []*ImportDecl
	Members     []*Member
	Span        location.Span
	NameSpan    location.Span
}

// ImportDecl represents a `use` or `require` statement.
type ImportDecl struct {
	Kind     schema.ImportKind
	Target   string // dotted name joined with '.', or the raw URI string
	IsURI    bool
	Alias    string
	HasAlias bool
	Span     location.Span
}

// MemberKind identifies which case of a Member is populated.
type MemberKind uint8

const (
	MemberDefinitionKind MemberKind = iota
	MemberPropertyKind
	MemberDeletionKind
)

// Member is one statically contained statement inside a schema/fieldset/
// field body, in source order: a nested definition, a property statement,
// or a `delete` statement (spec §3 "body", which preserves source order
// across all three).
type Member struct {
	Kind       MemberKind
	Definition *DefinitionDecl
	Property   *PropertyDecl
	Deletion   *DeletionDecl
}

// DefinitionDecl is the parsed form of a fieldset/field/index/constraint
// declaration, before phase 1 validates modifiers and binds `implements`.
type DefinitionDecl struct {
	Tag       schema.Tag
	Modifiers schema.Modifiers
	Name      string
	NameSpan  location.Span
	Ancestor  *DottedNameLit // colon-shorthand single ancestor, or nil
	Members   []*Member
	Doc       string
	Span      location.Span
}

// PropertyDecl is the parsed form of a property statement: a name followed
// by a comma-separated argument list and a terminating semicolon.
type PropertyDecl struct {
	Name     string
	NameSpan location.Span
	Args     []*ArgLit
	Doc      string
	Span     location.Span
}

// DeletionDecl is the parsed form of a `delete name;` statement.
type DeletionDecl struct {
	Target     string
	TargetSpan location.Span
	Span       location.Span
}

// ArgKind mirrors schema.ArgKind at the syntax level, before literals are
// converted to schema.Argument values.
type ArgKind uint8

const (
	ArgKindString ArgKind = iota
	ArgKindInt
	ArgKindFloat
	ArgKindBool
	ArgKindNone
	ArgKindAll
	ArgKindName
)

// ArgLit is one parsed property argument.
type ArgLit struct {
	Kind      ArgKind
	StringVal string
	IntVal    int64
	FloatVal  float64
	BoolVal   bool
	Name      *DottedNameLit
	Span      location.Span
}

// ToSchemaArgument converts the parsed literal into the public
// schema.Argument type.
func (a *ArgLit) ToSchemaArgument() schema.Argument {
	switch a.Kind {
	case ArgKindString:
		return schema.NewStringArg(a.StringVal, a.Span)
	case ArgKindInt:
		return schema.NewIntArg(a.IntVal, a.Span)
	case ArgKindFloat:
		return schema.NewFloatArg(a.FloatVal, a.Span)
	case ArgKindBool:
		return schema.NewBoolArg(a.BoolVal, a.Span)
	case ArgKindNone:
		return schema.NewNoneArg(a.Span)
	case ArgKindAll:
		return schema.NewAllArg(a.Span)
	case ArgKindName:
		return schema.NewNameArg(a.Name.ToSchemaDottedName())
	default:
		panic("parse: unknown ArgLit kind")
	}
}

// DottedNameLit is the parsed form of a dotted name, before the `schema.`
// prefix and `=` imp-name marker are interpreted by the binder (spec §3
// "Dotted name").
type DottedNameLit struct {
	Segments   []string
	Absolute   bool
	ImpName    bool
	MinClasses []schema.Tag
	Span       location.Span
}

// ToSchemaDottedName converts the parsed literal into the public
// schema.DottedName type consumed by later phases.
func (d *DottedNameLit) ToSchemaDottedName() *schema.DottedName {
	if d == nil {
		return nil
	}
	return schema.NewDottedName(d.Segments, d.Absolute, d.ImpName, d.MinClasses, d.Span)
}
