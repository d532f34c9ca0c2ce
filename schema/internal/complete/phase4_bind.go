package complete

import (
	"github.com/simon-lentz/yasdl/diag"
	"github.com/simon-lentz/yasdl/schema"
)

// runPhase4 runs the Full Name Binder (spec §4.5): every property argument
// except `ancestors` and `implements` (already bound in phases 1 and 3) is
// dynamically bound, then the `references`, `index`, and `constraint`
// structural rules are checked against the now-bound arguments.
func runPhase4(schemas []*schema.Schema, collector *diag.Collector) bool {
	for _, s := range schemas {
		for _, d := range allDefinitions(s) {
			bindRemainingProperties(s, d, collector)
		}
	}
	for _, s := range schemas {
		for _, d := range allDefinitions(s) {
			switch d.Tag() {
			case schema.TagField:
				checkReferences(d, collector)
			case schema.TagIndex:
				checkIndex(d, collector)
			case schema.TagConstraint:
				checkConstraint(d, collector)
			}
		}
	}
	return !collector.HasErrors()
}

// bindRemainingProperties dynamically binds every dotted-name argument of
// every property on d other than `ancestors`/`implements` (spec §4.5).
func bindRemainingProperties(s *schema.Schema, d *schema.Definition, collector *diag.Collector) {
	for p := range d.Properties() {
		if p.Name() == "ancestors" || p.Name() == "implements" {
			continue
		}
		for i := 0; i < p.ArgsLen(); i++ {
			a := p.Arg(i)
			if a.Kind() != schema.ArgDottedName {
				continue
			}
			name := a.Name()
			path, ok := bindDynamic(s, d, name)
			if !ok {
				collector.Collect(diag.NewIssue(diag.Error, diag.E_UNKNOWN_NAME,
					`"`+name.String()+`" did not bind to any member visible from "`+d.String()+`"`).
					WithSpan(a.Span()).
					Build())
				continue
			}
			leaf := path.Leaf()
			if !name.AllowsTag(leaf.Tag()) {
				collector.Collect(diag.NewIssue(diag.Error, diag.E_MIN_CLASSES,
					`"`+name.String()+`" resolved to a `+leaf.Tag().String()+`, which its bracketed kind restriction excludes`).
					WithSpan(a.Span()).
					Build())
				continue
			}
			p.SetArg(i, a.Bind(leaf, path))
		}
	}
}

// bindDynamic implements spec §4.5's dynamic binding algorithm: member-table
// lookup with static-child fallback (dereferenced to final_implementor) at
// from's own scope, acquisition-style retry outward through static_parent,
// an absolute name starting directly at the schema root, and an import
// alias consulted once the outward walk is exhausted. The result is a path,
// since the same definition may occupy more than one member position.
func bindDynamic(s *schema.Schema, from *schema.Definition, name *schema.DottedName) (*schema.DefinitionPath, bool) {
	segs := name.Segments()
	if len(segs) == 0 {
		return nil, false
	}

	if name.IsAbsolute() {
		head, ok := resolveHead(s.Root(), segs[0])
		if !ok {
			return nil, false
		}
		return continuePath(schema.NewDefinitionPath(schema.PathStep{MemberName: segs[0], Def: head}), head, segs[1:])
	}

	for scope := from; scope != nil; scope = scope.StaticParent() {
		if head, ok := resolveHead(scope, segs[0]); ok {
			return continuePath(schema.NewDefinitionPath(schema.PathStep{MemberName: segs[0], Def: head}), head, segs[1:])
		}
	}

	if imp, ok := s.ImportByAlias(segs[0]); ok && imp.Schema() != nil && len(segs) >= 2 {
		head, ok := resolveHead(imp.Schema().Root(), segs[1])
		if !ok {
			return nil, false
		}
		return continuePath(schema.NewDefinitionPath(schema.PathStep{MemberName: segs[1], Def: head}), head, segs[2:])
	}

	return nil, false
}

// resolveHead resolves a single name segment at scope: first against
// scope's own member table, then against its statically contained
// children, dereferencing a static-child hit to its final implementor so
// that a reference survives reimplementation under a different name.
func resolveHead(scope *schema.Definition, name string) (*schema.Definition, bool) {
	if entry, ok := scope.Member(name); ok {
		return entry.Final, true
	}
	if c, ok := scope.StaticChild(name); ok {
		return c.FinalImplementor(), true
	}
	return nil, false
}

func continuePath(path *schema.DefinitionPath, cur *schema.Definition, tail []string) (*schema.DefinitionPath, bool) {
	for _, seg := range tail {
		next, ok := resolveHead(cur, seg)
		if !ok {
			return nil, false
		}
		path = path.Append(seg, next)
		cur = next
	}
	return path, true
}

// checkReferences enforces spec §4.5's `references` rule for fields: zero or
// one argument, resolving to a fieldset other than the field's own enclosing
// fieldset, or the `all` literal, which is accepted as the universal-reference
// marker. A bare `any` argument is bound as an ordinary name. The realized and
// outermost requirements are checked in phase 5, once realization has run.
func checkReferences(d *schema.Definition, collector *diag.Collector) {
	prop, ok := d.Property("references")
	if !ok {
		return
	}
	if prop.ArgsLen() > 1 {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_REFERENCE,
			`"`+d.String()+`" references takes at most one argument`).
			WithSpan(prop.Span()).
			Build())
		return
	}
	if prop.ArgsLen() == 0 {
		return
	}
	a, _ := prop.SoleArg()
	if a.Kind() == schema.ArgAll {
		return
	}
	if a.Kind() != schema.ArgDefinition {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_REFERENCE,
			`"`+d.String()+`" references argument did not bind to a fieldset`).
			WithSpan(a.Span()).
			Build())
		return
	}
	target := a.Definition()
	if target.Tag() != schema.TagFieldset {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_REFERENCE,
			`"`+target.String()+`" is not a fieldset`).
			WithSpan(a.Span()).
			Build())
		return
	}
	if target == d.StaticParent() {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_REFERENCE,
			`"`+d.String()+`" references its own enclosing fieldset`).
			WithSpan(a.Span()).
			Build())
	}
}

// checkIndex enforces spec §4.5's `index` rule: a `fields` property with at
// least one argument, every argument resolving to a field or fieldset
// statically contained by the index's own enclosing fieldset, with no
// duplicates.
func checkIndex(d *schema.Definition, collector *diag.Collector) {
	prop, ok := d.Property("fields")
	if !ok {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_INDEX,
			`"`+d.String()+`" is missing its fields property`).
			WithSpan(d.Span()).
			Build())
		return
	}
	if prop.ArgsLen() == 0 {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_INDEX,
			`"`+d.String()+`" fields must name at least one field`).
			WithSpan(prop.Span()).
			Build())
		return
	}
	enclosing := d.StaticParent()
	seen := make(map[*schema.Definition]bool)
	for i := 0; i < prop.ArgsLen(); i++ {
		a := prop.Arg(i)
		if a.Kind() != schema.ArgDefinition {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_INDEX,
				`"`+d.String()+`" fields argument did not bind to a field or fieldset`).
				WithSpan(a.Span()).
				Build())
			continue
		}
		target := a.Definition()
		if target.Tag() != schema.TagField && target.Tag() != schema.TagFieldset {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_INDEX,
				`"`+target.String()+`" is not a field or fieldset`).
				WithSpan(a.Span()).
				Build())
			continue
		}
		if enclosing == nil || !enclosing.StaticallyContains(target) {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_INDEX,
				`"`+target.String()+`" is not inside the index's own enclosing fieldset`).
				WithSpan(a.Span()).
				Build())
			continue
		}
		if seen[target] {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_INDEX,
				`"`+target.String()+`" appears more than once in the same index`).
				WithSpan(a.Span()).
				Build())
			continue
		}
		seen[target] = true
	}
}

// checkConstraint enforces spec §4.5's `constraint` rule: a `check` property
// with at least one argument, each a string or a field reference.
func checkConstraint(d *schema.Definition, collector *diag.Collector) {
	prop, ok := d.Property("check")
	if !ok {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_CONSTRAINT,
			`"`+d.String()+`" is missing its check property`).
			WithSpan(d.Span()).
			Build())
		return
	}
	if prop.ArgsLen() == 0 {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_CONSTRAINT,
			`"`+d.String()+`" check must have at least one argument`).
			WithSpan(prop.Span()).
			Build())
		return
	}
	for i := 0; i < prop.ArgsLen(); i++ {
		switch prop.Arg(i).Kind() {
		case schema.ArgString, schema.ArgDefinition:
		default:
			collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_CONSTRAINT,
				`"`+d.String()+`" check argument must be a string or a field reference`).
				WithSpan(prop.Arg(i).Span()).
				Build())
		}
	}
}
