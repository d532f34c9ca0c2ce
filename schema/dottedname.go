package schema

import (
	"strings"

	"github.com/simon-lentz/yasdl/location"
)

// DottedName is a syntactic reference to a definition, preserving exactly
// what was written in source: a sequence of simple names, an optional
// `schema.` absolute prefix or `=` imp-name prefix, and an optional
// `min_classes` bracketed suffix (spec §3 "Dotted name").
//
// DottedName is produced by the parser and consumed by the binder in phases
// 1, 3, and 4; it is never itself the identity of a definition (use
// DefinitionID for that).
type DottedName struct {
	segments   []string
	absolute   bool // `schema.` prefix: start lookup at the enclosing schema
	impName    bool // `=` prefix: "final implementation of"
	minClasses []Tag
	span       location.Span
}

// NewDottedName constructs a DottedName from its parsed parts.
func NewDottedName(segments []string, absolute, impName bool, minClasses []Tag, span location.Span) *DottedName {
	return &DottedName{
		segments:   segments,
		absolute:   absolute,
		impName:    impName,
		minClasses: minClasses,
		span:       span,
	}
}

// Segments returns the dot-separated simple names, in order.
func (n *DottedName) Segments() []string {
	if n == nil {
		return nil
	}
	return n.segments
}

// IsAbsolute reports whether the name carries the `schema.` prefix.
func (n *DottedName) IsAbsolute() bool { return n != nil && n.absolute }

// IsImpName reports whether the name carries the `=` prefix, meaning "the
// final implementation of" rather than the name itself. Valid only in
// `ancestors` and after the `→` reference operator (spec §4.4, glossary).
func (n *DottedName) IsImpName() bool { return n != nil && n.impName }

// MinClasses returns the declared bracketed kind restriction, or nil if none
// was written (in which case the binding context supplies a default per
// spec §3).
func (n *DottedName) MinClasses() []Tag {
	if n == nil {
		return nil
	}
	return n.minClasses
}

// AllowsTag reports whether tag is permitted by the declared min_classes set.
// An empty set permits any tag (no restriction was written).
func (n *DottedName) AllowsTag(tag Tag) bool {
	if n == nil || len(n.minClasses) == 0 {
		return true
	}
	for _, t := range n.minClasses {
		if t == tag {
			return true
		}
	}
	return false
}

// Span returns the source location of the name as written.
func (n *DottedName) Span() location.Span {
	if n == nil {
		return location.Span{}
	}
	return n.span
}

// Head returns the first segment, used as the starting lookup key in both
// static and dynamic binding.
func (n *DottedName) Head() string {
	if n == nil || len(n.segments) == 0 {
		return ""
	}
	return n.segments[0]
}

// Tail returns the remaining segments after Head.
func (n *DottedName) Tail() []string {
	if n == nil || len(n.segments) < 2 {
		return nil
	}
	return n.segments[1:]
}

// IsSimple reports whether the name is a single unqualified segment (used by
// the loader's "alias mandatory unless single simple name" rule, §4.1 step
// 3).
func (n *DottedName) IsSimple() bool {
	return n != nil && len(n.segments) == 1 && !n.absolute && !n.impName
}

// String renders the name as it would appear in source, including any `=`
// prefix, `schema.` prefix, and bracketed min_classes suffix.
func (n *DottedName) String() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	if n.impName {
		b.WriteByte('=')
	}
	if n.absolute {
		b.WriteString("schema.")
	}
	b.WriteString(strings.Join(n.segments, "."))
	if len(n.minClasses) > 0 {
		b.WriteByte('[')
		for i, t := range n.minClasses {
			if i > 0 {
				b.WriteByte('|')
			}
			b.WriteString(t.String())
		}
		b.WriteByte(']')
	}
	return b.String()
}

// IsZero reports whether n is nil or the zero value.
func (n *DottedName) IsZero() bool {
	return n == nil || (len(n.segments) == 0 && !n.absolute && !n.impName)
}
