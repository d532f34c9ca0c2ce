package schema

import (
	"github.com/simon-lentz/yasdl/location"
)

// Property is a name together with an ordered argument list, attached to the
// definition that declares it (spec §3: "property table: mapping from
// property name to a property node carrying an ordered argument list").
//
// Properties are mutable until their owning Definition is sealed; phase 4
// narrows ArgDottedName arguments to ArgDefinition in place via Argument.Bind.
type Property struct {
	name string
	span location.Span
	doc  string
	args []Argument

	sealed bool
}

// NewProperty creates a Property with the given name, source span, and
// ordered argument list.
func NewProperty(name string, span location.Span, doc string, args []Argument) *Property {
	return &Property{name: name, span: span, doc: doc, args: args}
}

// Name returns the property name (e.g. "type", "size", "references").
func (p *Property) Name() string { return p.name }

// Span returns the source location of the property statement.
func (p *Property) Span() location.Span { return p.span }

// Documentation returns the attached doc comment, if any.
func (p *Property) Documentation() string { return p.doc }

// Args returns the ordered argument list. The returned slice is a defensive
// copy; use ArgsLen/Arg for hot paths that don't need a copy.
func (p *Property) Args() []Argument {
	out := make([]Argument, len(p.args))
	copy(out, p.args)
	return out
}

// ArgsLen returns the number of arguments.
func (p *Property) ArgsLen() int { return len(p.args) }

// Arg returns the i'th argument. Panics if i is out of range.
func (p *Property) Arg(i int) Argument { return p.args[i] }

// SoleArg returns the single argument, and true, when the property carries
// exactly one argument. Used throughout phase 7's single-argument property
// checks (type, size, precision, notnull, unique, ...).
func (p *Property) SoleArg() (Argument, bool) {
	if len(p.args) != 1 {
		return Argument{}, false
	}
	return p.args[0], true
}

// SetArg replaces the i'th argument, used by the binder to install a bound
// Argument in place. Panics if the property is sealed or i is out of range.
func (p *Property) SetArg(i int, a Argument) {
	if p.sealed {
		panic("schema: cannot mutate sealed property")
	}
	p.args[i] = a
}

// Seal freezes the property's argument list against further mutation.
func (p *Property) Seal() { p.sealed = true }

// IsSealed reports whether the property has been sealed.
func (p *Property) IsSealed() bool { return p.sealed }
