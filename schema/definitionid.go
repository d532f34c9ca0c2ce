package schema

import (
	"strconv"

	"github.com/simon-lentz/yasdl/location"
)

// DefinitionID is the stable, comparable identity of a Definition, usable as
// a map key. Relations between definitions (direct implementor, ancestors,
// members, path steps, ...) are held as *Definition pointers, not as
// DefinitionIDs; a DefinitionID names a definition but is not used as an edge.
//
// A DefinitionID combines the canonical source identity of the owning schema
// with a sequence number assigned in document order by the loader; sequence
// numbers are unique only within one schema, so both fields participate in
// equality.
type DefinitionID struct {
	schemaPath location.SourceID
	seq        int
}

// NewDefinitionID constructs a DefinitionID from its parts. Intended for use
// by the loader while building the arena; ordinary callers obtain
// DefinitionIDs from Definition.ID.
func NewDefinitionID(schemaPath location.SourceID, seq int) DefinitionID {
	return DefinitionID{schemaPath: schemaPath, seq: seq}
}

// SchemaPath returns the source identity of the schema owning this definition.
func (id DefinitionID) SchemaPath() location.SourceID { return id.schemaPath }

// Seq returns the document-order sequence number within the owning schema.
func (id DefinitionID) Seq() int { return id.seq }

// IsZero reports whether id is the zero value.
func (id DefinitionID) IsZero() bool {
	return id.schemaPath.IsZero() && id.seq == 0
}

// String renders a debug-friendly identifier: "<schema path>#<seq>".
func (id DefinitionID) String() string {
	return id.schemaPath.String() + "#" + strconv.Itoa(id.seq)
}

// DefinitionPath is an ordered sequence of (member name, definition) pairs
// from a root definition down to a leaf. Spec §3: "used for realization
// names because the same definition can be contained multiple times through
// different members." The dynamic binder (§4.5 step 6) returns a
// DefinitionPath rather than a bare Definition for exactly this reason.
type DefinitionPath struct {
	steps []PathStep
}

// PathStep is one hop of a DefinitionPath: the member name used to reach
// Def from the previous step (or from the path's root).
type PathStep struct {
	MemberName string
	Def        *Definition
}

// NewDefinitionPath builds a path from its steps, root first.
func NewDefinitionPath(steps ...PathStep) *DefinitionPath {
	return &DefinitionPath{steps: steps}
}

// Steps returns the path's steps, root first.
func (p *DefinitionPath) Steps() []PathStep {
	if p == nil {
		return nil
	}
	return p.steps
}

// Leaf returns the final definition reached by the path, or nil if empty.
func (p *DefinitionPath) Leaf() *Definition {
	if p == nil || len(p.steps) == 0 {
		return nil
	}
	return p.steps[len(p.steps)-1].Def
}

// Append returns a new path with one more step appended.
func (p *DefinitionPath) Append(memberName string, def *Definition) *DefinitionPath {
	steps := append(append([]PathStep(nil), p.Steps()...), PathStep{MemberName: memberName, Def: def})
	return &DefinitionPath{steps: steps}
}

// String renders the path as a dot-joined member-name chain, e.g. "a.b.c".
func (p *DefinitionPath) String() string {
	if p == nil {
		return ""
	}
	s := ""
	for i, step := range p.steps {
		if i > 0 {
			s += "."
		}
		s += step.MemberName
	}
	return s
}
