package complete

import (
	"github.com/simon-lentz/yasdl/schema"
)

// staticBind resolves a dotted name by pure lexical scoping (spec §4.2 step
// 6, §4.4 step 1): starting at from's own block, look for the head segment
// among from's statically contained children; if absent, retry at from's
// static parent, and so on outward to the schema root, whose own children
// are the schema's outermost definitions. An import alias as the head
// segment switches the search into the aliased schema's own root instead.
//
// An absolute name (the `schema.` prefix) skips the outward walk and starts
// directly at the owning schema's root.
//
// excludeSelf, when non-nil, is skipped wherever it is encountered as a
// candidate match (spec §4.4.1: ancestors binding excludes the referencing
// definition itself, which permits idioms like `fieldset x : x` to instead
// resolve to an enclosing same-named definition, or fail outright if there
// is none).
func staticBind(owner *schema.Schema, from *schema.Definition, name *schema.DottedName, excludeSelf *schema.Definition) (*schema.Definition, bool) {
	segs := name.Segments()
	if len(segs) == 0 {
		return nil, false
	}
	head := segs[0]

	if name.IsAbsolute() {
		d, ok := owner.Outermost(head)
		if !ok || d == excludeSelf {
			return nil, false
		}
		return descend(d, name.Tail())
	}

	scope := from
	for {
		if c, ok := scope.StaticChild(head); ok && c != excludeSelf {
			return descend(c, name.Tail())
		}
		parent := scope.StaticParent()
		if parent == nil {
			break
		}
		scope = parent
	}

	if imp, ok := owner.ImportByAlias(head); ok && imp.Schema() != nil {
		rest := name.Tail()
		if len(rest) == 0 {
			return nil, false
		}
		d, ok := imp.Schema().Outermost(rest[0])
		if !ok {
			return nil, false
		}
		return descend(d, rest[1:])
	}

	return nil, false
}

// descend resolves the remaining dotted-name segments by pure static
// containment from a head definition already found.
func descend(head *schema.Definition, tail []string) (*schema.Definition, bool) {
	cur := head
	for _, seg := range tail {
		c, ok := cur.StaticChild(seg)
		if !ok {
			return nil, false
		}
		cur = c
	}
	return cur, true
}

// allDefinitions returns every definition in schema s, in a deterministic
// pre-order walk of its outermost list and their static bodies. Deletion
// nodes are included; properties are not body entries and are not returned.
func allDefinitions(s *schema.Schema) []*schema.Definition {
	var out []*schema.Definition
	var walk func(d *schema.Definition)
	walk = func(d *schema.Definition) {
		out = append(out, d)
		for c := range d.Body() {
			walk(c)
		}
	}
	for d := range s.OutermostDefinitions() {
		walk(d)
	}
	return out
}
