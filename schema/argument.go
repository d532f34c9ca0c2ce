package schema

import (
	"fmt"
	"strconv"

	"github.com/simon-lentz/yasdl/location"
)

// ArgKind identifies which case of the Argument tagged variant is populated.
// Per design note in spec §9, property argument lists are heterogeneous;
// resolution narrows ArgDottedName cases to ArgDefinition in place by calling
// Argument.Bind.
type ArgKind uint8

const (
	ArgString ArgKind = iota
	ArgInt
	ArgFloat
	ArgBool
	ArgNone
	ArgAll
	ArgDottedName
	// ArgDefinition is the post-binding replacement for ArgDottedName: the
	// dotted name has been resolved to a concrete Definition (or, for dynamic
	// binds, a DefinitionPath; see Argument.Path).
	ArgDefinition
)

// String returns the keyword/kind name used in diagnostics.
func (k ArgKind) String() string {
	switch k {
	case ArgString:
		return "string"
	case ArgInt:
		return "integer"
	case ArgFloat:
		return "float"
	case ArgBool:
		return "boolean"
	case ArgNone:
		return "none"
	case ArgAll:
		return "all"
	case ArgDottedName:
		return "name"
	case ArgDefinition:
		return "definition"
	default:
		return "unknown"
	}
}

// Argument is one element of a property's ordered argument list. It is a
// tagged variant over the literal kinds permitted by the source grammar
// (string, integer, float, boolean, `none`, `all`) plus dotted names, which
// start unresolved (ArgDottedName) and are narrowed in place to ArgDefinition
// once a later phase binds them.
type Argument struct {
	kind ArgKind
	span location.Span

	str  string
	i    int64
	f    float64
	b    bool

	name *DottedName

	def  *Definition
	path *DefinitionPath
}

// NewStringArg creates a string-literal argument.
func NewStringArg(s string, span location.Span) Argument {
	return Argument{kind: ArgString, str: s, span: span}
}

// NewIntArg creates an integer-literal argument.
func NewIntArg(v int64, span location.Span) Argument {
	return Argument{kind: ArgInt, i: v, span: span}
}

// NewFloatArg creates a float-literal argument.
func NewFloatArg(v float64, span location.Span) Argument {
	return Argument{kind: ArgFloat, f: v, span: span}
}

// NewBoolArg creates a boolean-literal argument.
func NewBoolArg(v bool, span location.Span) Argument {
	return Argument{kind: ArgBool, b: v, span: span}
}

// NewNoneArg creates a `none` literal argument.
func NewNoneArg(span location.Span) Argument {
	return Argument{kind: ArgNone, span: span}
}

// NewAllArg creates an `all` literal argument.
func NewAllArg(span location.Span) Argument {
	return Argument{kind: ArgAll, span: span}
}

// NewNameArg creates an unresolved dotted-name argument.
func NewNameArg(name *DottedName) Argument {
	return Argument{kind: ArgDottedName, name: name, span: name.Span()}
}

// Kind returns which case of the variant is populated.
func (a Argument) Kind() ArgKind { return a.kind }

// Span returns the source location of this argument.
func (a Argument) Span() location.Span { return a.span }

// String returns the string value. Panics if Kind() != ArgString.
func (a Argument) String() string {
	if a.kind != ArgString {
		panic("schema: Argument.String on non-string argument")
	}
	return a.str
}

// Int returns the integer value. Panics if Kind() != ArgInt.
func (a Argument) Int() int64 {
	if a.kind != ArgInt {
		panic("schema: Argument.Int on non-integer argument")
	}
	return a.i
}

// Float returns the float value. Panics if Kind() != ArgFloat.
func (a Argument) Float() float64 {
	if a.kind != ArgFloat {
		panic("schema: Argument.Float on non-float argument")
	}
	return a.f
}

// Bool returns the boolean value. Panics if Kind() != ArgBool.
func (a Argument) Bool() bool {
	if a.kind != ArgBool {
		panic("schema: Argument.Bool on non-boolean argument")
	}
	return a.b
}

// Name returns the unresolved dotted name. Panics if Kind() != ArgDottedName.
func (a Argument) Name() *DottedName {
	if a.kind != ArgDottedName {
		panic("schema: Argument.Name on non-name argument")
	}
	return a.name
}

// Definition returns the resolved definition. Panics if Kind() != ArgDefinition.
func (a Argument) Definition() *Definition {
	if a.kind != ArgDefinition {
		panic("schema: Argument.Definition on unbound argument")
	}
	return a.def
}

// Path returns the resolved member path for a dynamically bound argument, if
// one was recorded (§4.5 step 6: "the result is a path, not a single node").
// May be nil even for ArgDefinition when the binder resolved via static
// containment rather than a member lookup.
func (a Argument) Path() *DefinitionPath { return a.path }

// Bind returns a copy of an ArgDottedName argument narrowed to ArgDefinition,
// recording both the resolved definition and (if applicable) the
// dynamic-binding path; the receiver is left unchanged, and callers store the
// copy back into the property's argument list. Binding an ArgDefinition
// argument again with the same definition yields an equal argument.
func (a Argument) Bind(def *Definition, path *DefinitionPath) Argument {
	if a.kind != ArgDottedName && a.kind != ArgDefinition {
		panic("schema: Argument.Bind on non-name argument")
	}
	a.kind = ArgDefinition
	a.def = def
	a.path = path
	return a
}

// IsUnresolvedName reports whether this argument is still an unbound dotted
// name.
func (a Argument) IsUnresolvedName() bool { return a.kind == ArgDottedName }

// Display renders the argument's value for diagnostics, independent of kind.
func (a Argument) Display() string {
	switch a.kind {
	case ArgString:
		return strconv.Quote(a.str)
	case ArgInt:
		return strconv.FormatInt(a.i, 10)
	case ArgFloat:
		return strconv.FormatFloat(a.f, 'g', -1, 64)
	case ArgBool:
		return strconv.FormatBool(a.b)
	case ArgNone:
		return "none"
	case ArgAll:
		return "all"
	case ArgDottedName:
		return a.name.String()
	case ArgDefinition:
		if a.def != nil {
			return a.def.Name()
		}
		return "<unbound>"
	default:
		return fmt.Sprintf("<arg kind %d>", a.kind)
	}
}
