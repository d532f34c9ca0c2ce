package schema

// Tag identifies the syntactic kind of a Definition. Every node parsed from a
// schema source carries exactly one tag; only Fieldset and Field participate
// in the inheritance and implementation trees built by later phases.
type Tag uint8

const (
	// TagSchema is the tag of the single root Definition of a loaded source
	// document. A Schema owns exactly one TagSchema Definition as its root.
	TagSchema Tag = iota
	// TagFieldset is a named set of fields and nested fieldsets. It becomes a
	// table when it is outermost and realized, or a column group when nested.
	TagFieldset
	// TagField is a leaf attribute. It may carry a type or a reference to
	// another fieldset.
	TagField
	// TagIndex names a set of fields that should be indexed together.
	TagIndex
	// TagConstraint carries a `check` property naming a database-level check
	// expression; the compiler name-binds its arguments but never evaluates
	// them.
	TagConstraint
	// TagProperty is a property node: a name with an ordered argument list,
	// attached to the definition that declares it.
	TagProperty
	// TagDeletion is a `delete name` statement. It carries no name of its own
	// (Definition.Name is empty) and targets a simple name via DeleteTarget.
	TagDeletion
)

// String returns the lowercase keyword spelling of the tag, as it appears in
// YASDL source text.
func (t Tag) String() string {
	switch t {
	case TagSchema:
		return "schema"
	case TagFieldset:
		return "fieldset"
	case TagField:
		return "field"
	case TagIndex:
		return "index"
	case TagConstraint:
		return "constraint"
	case TagProperty:
		return "property"
	case TagDeletion:
		return "delete"
	default:
		return "unknown"
	}
}

// ParticipatesInInheritance reports whether definitions of this tag are
// eligible for the `ancestors`/`implements` relations (fieldsets and fields
// only, per spec §3).
func (t Tag) ParticipatesInInheritance() bool {
	return t == TagFieldset || t == TagField
}

// Modifiers is a bitset over the modifier keywords recognized on fieldset and
// field definitions: abstract, final, required, fallback.
type Modifiers uint8

const (
	ModAbstract Modifiers = 1 << iota
	ModFinal
	ModRequired
	ModFallback
)

// Has reports whether m includes all bits set in other.
func (m Modifiers) Has(other Modifiers) bool {
	return m&other == other
}

// Abstract reports whether the abstract modifier is set.
func (m Modifiers) Abstract() bool { return m.Has(ModAbstract) }

// Final reports whether the final modifier is set.
func (m Modifiers) Final() bool { return m.Has(ModFinal) }

// Required reports whether the required modifier is set.
func (m Modifiers) Required() bool { return m.Has(ModRequired) }

// Fallback reports whether the fallback modifier is set.
func (m Modifiers) Fallback() bool { return m.Has(ModFallback) }

// String renders the modifier set in a stable, space-separated order.
func (m Modifiers) String() string {
	var out []byte
	add := func(s string) {
		if len(out) > 0 {
			out = append(out, ' ')
		}
		out = append(out, s...)
	}
	if m.Abstract() {
		add("abstract")
	}
	if m.Final() {
		add("final")
	}
	if m.Required() {
		add("required")
	}
	if m.Fallback() {
		add("fallback")
	}
	return string(out)
}
