package schema

import (
	"iter"
	"slices"
	"strings"

	"github.com/simon-lentz/yasdl/location"
)

// MemberEntry is one entry of a definition's computed member table (spec §3
// attribute `members`, phase 3): the definition path used to reach the
// member plus its final implementation, which is what the member table
// actually stores (invariant 8: "every member of every definition is a final
// implementation").
type MemberEntry struct {
	Path  *DefinitionPath
	Final *Definition
}

// Definition is the single polymorphic node type of the compiler's data
// model (spec §3). Every node parsed out of a schema document — the schema
// itself, fieldsets, fields, indexes, constraints, and deletions — is a
// *Definition distinguished by its Tag. Property statements are attached to
// their definition as *Property values (see AddProperty).
//
// Only TagFieldset and TagField definitions participate in the inheritance
// and implementation trees; the phase-derived fields below are zero/empty
// for other tags.
//
// Definitions are append-only during loading and the first four phases, then
// progressively sealed: a field is written exactly once, by the phase that
// owns it, and never mutated again (spec §5 "Shared resources").
type Definition struct {
	tag  Tag
	id   DefinitionID
	name string // lowercase-canonicalized; empty for TagDeletion and TagSchema's own name duplicate of Schema.Name
	orig string // original source casing, retained for diagnostics

	staticParent *Definition // nil for schemas
	sourceID     location.SourceID
	span         location.Span
	nameSpan     location.Span
	doc          string

	body []*Definition // child definitions, source order

	propNames []string // insertion order
	props     map[string]*Property

	deleteTarget string // for TagDeletion: the simple name it removes

	// --- phase-derived, written once each by the owning phase ---

	modifiers Modifiers // phase 1

	implementsRefs []*Definition // phase 1: static bind of `implements` args

	directImplementor *Definition // phase 2
	finalImplementor  *Definition // phase 2
	specifications    []*Definition
	implementations   []*Definition

	ancestorsRefs []*Definition // phase 3: effective (imp-name dereferenced)
	descendants   []*Definition // phase 3

	memberNames []string // phase 3, insertion order
	members     map[string]MemberEntry

	realized bool // phase 5
	toplevel bool // phase 5

	sealed bool
}

// NewDefinition creates a Definition. Used by the parser/loader to build the
// initial arena and by schema/build for programmatic construction.
func NewDefinition(tag Tag, name, orig string, sourceID location.SourceID, span location.Span, doc string) *Definition {
	return &Definition{
		tag:      tag,
		name:     name,
		orig:     orig,
		sourceID: sourceID,
		span:     span,
		doc:      doc,
		props:    make(map[string]*Property),
		members:  make(map[string]MemberEntry),
	}
}

// Tag returns the syntactic kind of this definition.
func (d *Definition) Tag() Tag { return d.tag }

// ID returns the stable identity of this definition.
func (d *Definition) ID() DefinitionID { return d.id }

// SetID installs the definition's identity. Called once by the loader while
// populating the arena.
func (d *Definition) SetID(id DefinitionID) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	d.id = id
}

// Name returns the lowercase-canonicalized simple name. Empty for
// TagDeletion.
func (d *Definition) Name() string { return d.name }

// OriginalName returns the name exactly as written in source (spec §9
// "case insensitivity": retained only for diagnostics).
func (d *Definition) OriginalName() string {
	if d.orig != "" {
		return d.orig
	}
	return d.name
}

// StaticParent returns the lexically enclosing definition, or nil for a
// schema's root definition.
func (d *Definition) StaticParent() *Definition { return d.staticParent }

// SetStaticParent installs the enclosing definition. Called by the loader
// while assembling the body tree.
func (d *Definition) SetStaticParent(parent *Definition) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	d.staticParent = parent
}

// SourceID returns the source identity of the owning schema.
func (d *Definition) SourceID() location.SourceID { return d.sourceID }

// Span returns the full source range of the definition.
func (d *Definition) Span() location.Span { return d.span }

// NameSpan returns the precise span of just the name token, for
// go-to-definition. Zero if not set.
func (d *Definition) NameSpan() location.Span { return d.nameSpan }

// SetNameSpan records the precise name-token span.
func (d *Definition) SetNameSpan(span location.Span) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	d.nameSpan = span
}

// Documentation returns the attached doc comment, if any.
func (d *Definition) Documentation() string { return d.doc }

// DeleteTarget returns the simple name targeted by a TagDeletion node.
// Empty (and meaningless) for other tags.
func (d *Definition) DeleteTarget() string { return d.deleteTarget }

// SetDeleteTarget records the target name of a `delete` statement.
func (d *Definition) SetDeleteTarget(name string) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	d.deleteTarget = name
}

// --- static body (source order) ---

// Body returns an iterator over the statically contained child definitions,
// in source order: nested fieldset/field/index/constraint definitions and
// `delete` statements. Property statements are not body entries; they are
// attached to the definition directly via AddProperty/Properties.
func (d *Definition) Body() iter.Seq[*Definition] {
	return func(yield func(*Definition) bool) {
		for _, c := range d.body {
			if !yield(c) {
				return
			}
		}
	}
}

// BodySlice returns a defensive copy of the static body.
func (d *Definition) BodySlice() []*Definition { return slices.Clone(d.body) }

// SetBody installs the static child list, in source order.
func (d *Definition) SetBody(body []*Definition) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	d.body = body
}

// StaticChild returns the statically contained, non-deletion, non-property
// child with the given name, if any (used by phase-1 block uniqueness and
// phase-4 "mixed binding").
func (d *Definition) StaticChild(name string) (*Definition, bool) {
	for _, c := range d.body {
		if c.tag != TagProperty && c.tag != TagDeletion && c.name == name {
			return c, true
		}
	}
	return nil, false
}

// StaticallyContains reports whether d lexically encloses other, directly or
// transitively (spec §3 invariant 6, "static containment").
func (d *Definition) StaticallyContains(other *Definition) bool {
	for p := other.staticParent; p != nil; p = p.staticParent {
		if p == d {
			return true
		}
	}
	return false
}

// --- properties ---

// Property returns the property with the given name, if declared directly
// on this definition.
func (d *Definition) Property(name string) (*Property, bool) {
	p, ok := d.props[name]
	return p, ok
}

// Properties returns an iterator over this definition's own properties, in
// declaration order.
func (d *Definition) Properties() iter.Seq[*Property] {
	return func(yield func(*Property) bool) {
		for _, name := range d.propNames {
			if !yield(d.props[name]) {
				return
			}
		}
	}
}

// PropertiesSlice returns a defensive copy of own properties, in declaration
// order.
func (d *Definition) PropertiesSlice() []*Property {
	out := make([]*Property, 0, len(d.propNames))
	for _, name := range d.propNames {
		out = append(out, d.props[name])
	}
	return out
}

// AddProperty appends a property, in source order. The loader calls this
// once per parsed property statement.
func (d *Definition) AddProperty(p *Property) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	if _, exists := d.props[p.name]; !exists {
		d.propNames = append(d.propNames, p.name)
	}
	d.props[p.name] = p
}

// --- phase 1: modifiers, implements ---

// Modifiers returns the resolved modifier set.
func (d *Definition) Modifiers() Modifiers { return d.modifiers }

// SetModifiers installs the modifier set. Written once by phase 1.
func (d *Definition) SetModifiers(m Modifiers) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	d.modifiers = m
}

// ImplementsRefs returns the statically bound `implements` targets.
func (d *Definition) ImplementsRefs() []*Definition { return slices.Clone(d.implementsRefs) }

// SetImplementsRefs installs the resolved `implements` targets. Written once
// by phase 1.
func (d *Definition) SetImplementsRefs(refs []*Definition) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	d.implementsRefs = refs
}

// --- phase 2: implementation tree ---

// DirectImplementor returns the unique definition whose `implements` lists
// this one, or nil.
func (d *Definition) DirectImplementor() *Definition { return d.directImplementor }

// SetDirectImplementor installs the direct implementor. Written once by
// phase 2.
func (d *Definition) SetDirectImplementor(impl *Definition) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	d.directImplementor = impl
}

// FinalImplementor returns the root of this definition's implementation
// tree; every definition has exactly one, possibly itself (spec invariant 7).
func (d *Definition) FinalImplementor() *Definition { return d.finalImplementor }

// SetFinalImplementor installs the cached final implementor. Written once by
// phase 2.
func (d *Definition) SetFinalImplementor(fi *Definition) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	d.finalImplementor = fi
}

// IsSelfFinalImplementor reports whether d is its own final implementor
// (singleton implementation tree, or tree root).
func (d *Definition) IsSelfFinalImplementor() bool { return d.finalImplementor == d }

// Specifications returns the closure of this definition's specifications
// (every node whose implementation tree leads here), phase-2 cache.
func (d *Definition) Specifications() []*Definition { return slices.Clone(d.specifications) }

// SetSpecifications installs the specifications closure. Written once by
// phase 2.
func (d *Definition) SetSpecifications(specs []*Definition) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	d.specifications = specs
}

// Implementations returns the chain of definitions that (transitively)
// implement this one, from its direct implementor up to its final
// implementor, phase-2 cache.
func (d *Definition) Implementations() []*Definition { return slices.Clone(d.implementations) }

// SetImplementations installs the implementations closure. Written once by
// phase 2.
func (d *Definition) SetImplementations(impls []*Definition) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	d.implementations = impls
}

// --- phase 3: inheritance graph ---

// AncestorsRefs returns the effective (imp-name-dereferenced) ancestor list,
// in declared order.
func (d *Definition) AncestorsRefs() []*Definition { return slices.Clone(d.ancestorsRefs) }

// SetAncestorsRefs installs the effective ancestor list. Written once by
// phase 3.
func (d *Definition) SetAncestorsRefs(refs []*Definition) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	d.ancestorsRefs = refs
}

// Descendants returns the inverse of AncestorsRefs, accumulated across every
// definition that names d as an ancestor.
func (d *Definition) Descendants() []*Definition { return slices.Clone(d.descendants) }

// SetDescendants installs the descendant set. Written once by phase 3.
func (d *Definition) SetDescendants(desc []*Definition) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	d.descendants = desc
}

// Member looks up a synthesized member by name (phase 3's central
// algorithm). The returned entry's Final field is always a final
// implementation (invariant 8).
func (d *Definition) Member(name string) (MemberEntry, bool) {
	e, ok := d.members[name]
	return e, ok
}

// Members returns an iterator over the member table in insertion order
// (spec §4.4 step 6: overwrite updates value but not position, unless the
// overwrite came from a statically contained child, which does move
// position).
func (d *Definition) Members() iter.Seq2[string, MemberEntry] {
	return func(yield func(string, MemberEntry) bool) {
		for _, name := range d.memberNames {
			if !yield(name, d.members[name]) {
				return
			}
		}
	}
}

// MemberNames returns the member table's keys in insertion order.
func (d *Definition) MemberNames() []string { return slices.Clone(d.memberNames) }

// SetMembers installs the member table, replacing any previous one. Written
// once by phase 3; accepts ordered names plus the lookup map so callers don't
// need to rebuild an index.
func (d *Definition) SetMembers(names []string, table map[string]MemberEntry) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	d.memberNames = names
	d.members = table
}

// --- phase 5: realization ---

// Realized reports whether this definition was selected for database object
// generation.
func (d *Definition) Realized() bool { return d.realized }

// Toplevel reports whether this definition is realized, outermost, and
// destined to become a table.
func (d *Definition) Toplevel() bool { return d.toplevel }

// SetRealized marks the realized/toplevel flags. Phase 5 only ever sets
// these to true (monotonic fixpoint); it never clears them.
func (d *Definition) SetRealized(realized, toplevel bool) {
	if d.sealed {
		panic("schema: cannot mutate sealed definition")
	}
	if realized {
		d.realized = true
	}
	if toplevel {
		d.toplevel = true
	}
}

// IsOutermost reports whether this definition's static parent is a schema
// (i.e. it is not nested inside another fieldset/field).
func (d *Definition) IsOutermost() bool {
	return d.staticParent != nil && d.staticParent.tag == TagSchema
}

// Seal freezes the definition against further mutation. Called after phase 7
// completes.
func (d *Definition) Seal() { d.sealed = true }

// IsSealed reports whether the definition has been sealed.
func (d *Definition) IsSealed() bool { return d.sealed }

// String renders a debug-friendly dotted path from the schema root.
func (d *Definition) String() string {
	var parts []string
	for cur := d; cur != nil && cur.tag != TagSchema; cur = cur.staticParent {
		parts = append([]string{cur.name}, parts...)
	}
	return strings.Join(parts, ".")
}
