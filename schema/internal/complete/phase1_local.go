package complete

import (
	"github.com/simon-lentz/yasdl/diag"
	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
	"github.com/simon-lentz/yasdl/schema/internal/alias"
)

// runPhase1 runs the Local Semantic Checker (spec §4.2) over every schema,
// batching every violation before reporting whether the pipeline may
// continue to phase 2.
func runPhase1(schemas []*schema.Schema, collector *diag.Collector) bool {
	for _, s := range schemas {
		defs := allDefinitions(s)
		for _, d := range defs {
			checkIdentifierLegality(d, collector)
			checkRenameUnimplemented(d, collector)
		}
		for _, d := range defs {
			checkBlockUniqueness(d, collector)
		}
		for _, d := range defs {
			if d.Tag().ParticipatesInInheritance() {
				checkModifierConflict(d, collector)
				resolveImplements(s, d, collector)
			}
		}
		checkImplementsAcyclic(s, collector)
	}
	return !collector.HasErrors()
}

// checkIdentifierLegality applies spec §4.2 step 2 to a single named
// definition: reserved words and `id` are rejected, special property names
// used as a non-property child are rejected, and the name must match the
// grammar's identifier pattern.
func checkIdentifierLegality(d *schema.Definition, collector *diag.Collector) {
	switch d.Tag() {
	case schema.TagFieldset, schema.TagField, schema.TagIndex, schema.TagConstraint:
	default:
		return
	}
	name, orig := d.Name(), d.OriginalName()

	if name == "id" || alias.IsReservedWord(name) {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_RESERVED_NAME,
			`"`+orig+`" is a reserved word and cannot name a definition`).
			WithSpan(d.NameSpan()).
			WithDetail(diag.DetailKeyName, orig).
			Build())
		return
	}
	if alias.IsSpecialPropertyName(name) {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_RESERVED_NAME,
			`"`+orig+`" is a special property name and cannot name a non-property child`).
			WithSpan(d.NameSpan()).
			WithDetail(diag.DetailKeyName, orig).
			Build())
		return
	}
	if !alias.IsValidAlias(orig) {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INVALID_NAME,
			`"`+orig+`" is not a legal identifier`).
			WithSpan(d.NameSpan()).
			WithDetail(diag.DetailKeyName, orig).
			Build())
	}
}

// checkRenameUnimplemented rejects the reserved-but-unimplemented `rename`
// statement (spec §4.2 step 2 footnote; see diag.E_UNIMPLEMENTED_RENAME).
func checkRenameUnimplemented(d *schema.Definition, collector *diag.Collector) {
	if p, ok := d.Property("rename"); ok {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_UNIMPLEMENTED_RENAME,
			"rename is reserved but not implemented").
			WithSpan(p.Span()).
			Build())
	}
}

// checkBlockUniqueness enforces spec invariant 2: within one block, every
// child name (field, fieldset, index, constraint, property) is pairwise
// distinct. Deletions carry no name of their own and are excluded.
func checkBlockUniqueness(d *schema.Definition, collector *diag.Collector) {
	seen := make(map[string]location.Span)
	check := func(name string, span location.Span) {
		if name == "" {
			return
		}
		if prev, ok := seen[name]; ok {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_DUPLICATE_NAME,
				`"`+name+`" is already defined in this block`).
				WithSpan(span).
				WithRelated(location.RelatedInfo{Span: prev, Message: location.MsgPreviousDefinition}).
				WithDetail(diag.DetailKeyName, name).
				Build())
			return
		}
		seen[name] = span
	}
	for c := range d.Body() {
		if c.Tag() == schema.TagDeletion {
			continue
		}
		check(c.Name(), c.NameSpan())
	}
	for p := range d.Properties() {
		check(p.Name(), p.Span())
	}
}

// checkModifierConflict rejects the abstract+final combination (spec §4.2
// step 5).
func checkModifierConflict(d *schema.Definition, collector *diag.Collector) {
	if d.Modifiers().Abstract() && d.Modifiers().Final() {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_MODIFIER_CONFLICT,
			`"`+d.OriginalName()+`" cannot be both abstract and final`).
			WithSpan(d.Span()).
			Build())
	}
}

// resolveImplements statically binds d's `implements` property (spec §4.2
// step 6), expanding an `all` argument against a lightweight, non-diagnostic
// pre-resolution of d's own `ancestors` property (full ancestor resolution
// is phase 3's job and hasn't run yet). Resolved targets are installed via
// Definition.SetImplementsRefs even when d has no `implements` property at
// all, so later phases can rely on the field always being populated for
// field/fieldset definitions.
func resolveImplements(s *schema.Schema, d *schema.Definition, collector *diag.Collector) {
	prop, ok := d.Property("implements")
	if !ok {
		d.SetImplementsRefs(nil)
		return
	}
	var refs []*schema.Definition
	for i, a := range prop.Args() {
		switch a.Kind() {
		case schema.ArgAll:
			for _, anc := range preResolveAncestors(s, d) {
				if validateImplementsTarget(d, anc, anc.Span(), collector) {
					refs = append(refs, anc)
				}
			}
		case schema.ArgDottedName:
			target, found := staticBind(s, d, a.Name(), nil)
			if !found {
				collector.Collect(diag.NewIssue(diag.Error, diag.E_IMPLEMENTS_TARGET,
					`implements target "`+a.Name().String()+`" did not statically resolve`).
					WithSpan(a.Span()).
					Build())
				continue
			}
			if !validateImplementsTarget(d, target, a.Span(), collector) {
				continue
			}
			prop.SetArg(i, a.Bind(target, nil))
			refs = append(refs, target)
		default:
			collector.Collect(diag.NewIssue(diag.Error, diag.E_IMPLEMENTS_TARGET,
				"implements argument must be a name or `all`").
				WithSpan(a.Span()).
				Build())
		}
	}
	d.SetImplementsRefs(refs)
}

// validateImplementsTarget applies the structural rules an implements target
// must satisfy: it must be a fieldset or field, distinct from the
// referencing definition, and in no static containment relation with it
// (spec §4.2 step 6).
func validateImplementsTarget(d, target *schema.Definition, span location.Span, collector *diag.Collector) bool {
	if !target.Tag().ParticipatesInInheritance() {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_IMPLEMENTS_TARGET,
			`implements target "`+target.String()+`" is not a fieldset or field`).
			WithSpan(span).
			Build())
		return false
	}
	if target == d {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_IMPLEMENTS_TARGET,
			"a definition cannot implement itself").
			WithSpan(span).
			Build())
		return false
	}
	if d.StaticallyContains(target) || target.StaticallyContains(d) {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_IMPLEMENTS_TARGET,
			`implements target "`+target.String()+`" is in a static containment relation with its implementor`).
			WithSpan(span).
			WithRelated(location.RelatedInfo{Span: target.Span(), Message: location.MsgDeclaredHere}).
			Build())
		return false
	}
	return true
}

// preResolveAncestors performs a lightweight, non-diagnostic static bind of
// d's own `ancestors` property for the sole purpose of expanding an
// `implements all` argument (spec §4.2 step 6). Full ancestor resolution,
// including imp-name dereferencing and error reporting, is phase 3's job;
// unresolved or wrongly-kinded names are silently skipped here since phase 3
// reports them properly once it runs.
func preResolveAncestors(s *schema.Schema, d *schema.Definition) []*schema.Definition {
	prop, ok := d.Property("ancestors")
	if !ok {
		return nil
	}
	var out []*schema.Definition
	for _, a := range prop.Args() {
		if a.Kind() != schema.ArgDottedName {
			continue
		}
		target, found := staticBind(s, d, a.Name(), d)
		if !found || !target.Tag().ParticipatesInInheritance() {
			continue
		}
		out = append(out, target)
	}
	return out
}

// checkImplementsAcyclic detects a cycle in the raw `implements` graph built
// by resolveImplements (spec §4.2 step 7). Only the first cycle encountered
// is reported; once phase 1 reports any implements-related error, phase 2
// never runs, so there is no benefit in reporting more than one.
func checkImplementsAcyclic(s *schema.Schema, collector *diag.Collector) {
	const (
		white = iota
		gray
		black
	)
	color := make(map[*schema.Definition]int)
	var stack []*schema.Definition
	reported := false

	var visit func(d *schema.Definition)
	visit = func(d *schema.Definition) {
		if reported {
			return
		}
		color[d] = gray
		stack = append(stack, d)
		for _, next := range d.ImplementsRefs() {
			if reported {
				return
			}
			switch color[next] {
			case white:
				visit(next)
			case gray:
				reportImplementsCycle(stack, next, collector)
				reported = true
			}
		}
		if !reported {
			stack = stack[:len(stack)-1]
		}
		color[d] = black
	}

	for _, d := range allDefinitions(s) {
		if reported {
			return
		}
		if d.Tag().ParticipatesInInheritance() && color[d] == white {
			visit(d)
		}
	}
}

func reportImplementsCycle(stack []*schema.Definition, closesAt *schema.Definition, collector *diag.Collector) {
	start := 0
	for i, d := range stack {
		if d == closesAt {
			start = i
			break
		}
	}
	cycle := stack[start:]
	related := make([]location.RelatedInfo, 0, len(cycle))
	for _, d := range cycle {
		related = append(related, location.RelatedInfo{Span: d.Span(), Message: location.MsgDeclaredHere})
	}
	collector.Collect(diag.NewIssue(diag.Error, diag.E_IMPLEMENTS_CYCLE,
		`implements cycle detected starting at "`+closesAt.String()+`"`).
		WithSpan(cycle[0].Span()).
		WithRelated(related...).
		Build())
}
