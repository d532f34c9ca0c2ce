package complete

import (
	"github.com/simon-lentz/yasdl/diag"
	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
)

// runPhase3 runs the Inheritance-Graph Builder (spec §4.4) over every
// schema: ancestors resolution (with imp-name dereferencing), acyclicity,
// the member-synthesis algorithm, descendant accumulation, and the
// unused-delete warning.
func runPhase3(schemas []*schema.Schema, collector *diag.Collector) bool {
	var all []*schema.Definition
	for _, s := range schemas {
		for _, d := range allDefinitions(s) {
			if d.Tag().ParticipatesInInheritance() {
				all = append(all, d)
			}
		}
	}

	for _, s := range schemas {
		for _, d := range allDefinitions(s) {
			if d.Tag().ParticipatesInInheritance() {
				resolveAncestors(s, d, collector)
			}
		}
	}
	if collector.HasErrors() {
		return false
	}

	checkInheritAcyclic(all, collector)
	if collector.HasErrors() {
		return false
	}

	memo := make(map[*schema.Definition]bool)
	for _, d := range all {
		computeMembers(d, memo, collector)
	}
	computeDescendants(all)

	return !collector.HasErrors()
}

// resolveAncestors statically binds d's `ancestors` property (spec §4.4
// step 1), excluding d itself from the search, dereferencing imp-name
// (`=`-prefixed) entries to their final implementor, and enforcing
// self-ancestry, containment, and the no-impl rule.
func resolveAncestors(s *schema.Schema, d *schema.Definition, collector *diag.Collector) {
	prop, ok := d.Property("ancestors")
	if !ok {
		d.SetAncestorsRefs(nil)
		return
	}
	var refs []*schema.Definition
	for i, a := range prop.Args() {
		if a.Kind() != schema.ArgDottedName {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_ANCESTOR_TARGET,
				"ancestors argument must be a name").
				WithSpan(a.Span()).
				Build())
			continue
		}
		name := a.Name()
		target, found := staticBind(s, d, name, d)
		if !found {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_ANCESTOR_TARGET,
				`ancestor "`+name.String()+`" did not statically resolve`).
				WithSpan(a.Span()).
				Build())
			continue
		}
		if !target.Tag().ParticipatesInInheritance() {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_ANCESTOR_TARGET,
				`ancestor "`+target.String()+`" is not a fieldset or field`).
				WithSpan(a.Span()).
				Build())
			continue
		}

		effective := target
		if name.IsImpName() {
			effective = target.FinalImplementor()
			if d.DirectImplementor() != nil {
				collector.Collect(diag.NewIssue(diag.Error, diag.E_ANCESTOR_TARGET,
					`"`+d.String()+`" has an imp-name ancestor and so cannot itself be implemented`).
					WithSpan(a.Span()).
					WithRelated(location.RelatedInfo{Span: d.DirectImplementor().Span(), Message: location.MsgDeclaredHere}).
					Build())
				continue
			}
		}

		if effective == d {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_ANCESTOR_TARGET,
				"a definition cannot be its own ancestor").
				WithSpan(a.Span()).
				Build())
			continue
		}
		if d.StaticallyContains(effective) || effective.StaticallyContains(d) {
			collector.Collect(diag.NewIssue(diag.Error, diag.E_CONTAINMENT_VIOLATION,
				`ancestor "`+effective.String()+`" is in a static containment relation with "`+d.String()+`"`).
				WithSpan(a.Span()).
				WithRelated(location.RelatedInfo{Span: effective.Span(), Message: location.MsgDeclaredHere}).
				Build())
			continue
		}

		prop.SetArg(i, a.Bind(effective, nil))
		refs = append(refs, effective)
	}
	d.SetAncestorsRefs(refs)
}

// checkInheritAcyclic detects a cycle in the effective `ancestors` graph
// (spec §4.4 step 2). Only the first cycle encountered is reported.
func checkInheritAcyclic(all []*schema.Definition, collector *diag.Collector) {
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
		for _, next := range d.AncestorsRefs() {
			if reported {
				return
			}
			switch color[next] {
			case white:
				visit(next)
			case gray:
				reportInheritCycle(stack, next, collector)
				reported = true
			}
		}
		if !reported {
			stack = stack[:len(stack)-1]
		}
		color[d] = black
	}

	for _, d := range all {
		if reported {
			return
		}
		if color[d] == white {
			visit(d)
		}
	}
}

func reportInheritCycle(stack []*schema.Definition, closesAt *schema.Definition, collector *diag.Collector) {
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
	collector.Collect(diag.NewIssue(diag.Error, diag.E_INHERIT_CYCLE,
		`inheritance cycle detected starting at "`+closesAt.String()+`"`).
		WithSpan(cycle[0].Span()).
		WithRelated(related...).
		Build())
}

// computeMembers implements the member-synthesis algorithm (spec §4.4 step
// 6): for each effective ancestor in declared order, merge its own already-
// final member table into d's, skipping (and marking used) any name removed
// by one of d's `delete` statements; then merge d's own statically contained
// field/fieldset children, whose insertion always moves the name to the end
// if it already existed. Every member value is a final implementation by
// construction, since ancestor tables already hold final implementations and
// d's own children are replaced by their FinalImplementor. Recursion is
// memoized and safe because checkInheritAcyclic has already run.
func computeMembers(d *schema.Definition, memo map[*schema.Definition]bool, collector *diag.Collector) {
	if memo[d] {
		return
	}
	memo[d] = true

	var names []string
	table := make(map[string]schema.MemberEntry)

	type delNode struct {
		target string
		span   location.Span
	}
	var deletions []delNode
	deletedSet := make(map[string]bool)
	for c := range d.Body() {
		if c.Tag() == schema.TagDeletion {
			deletions = append(deletions, delNode{target: c.DeleteTarget(), span: c.Span()})
			deletedSet[c.DeleteTarget()] = true
		}
	}

	used := make(map[string]bool)
	for _, anc := range d.AncestorsRefs() {
		computeMembers(anc, memo, collector)
		for name, entry := range anc.Members() {
			if deletedSet[name] {
				used[name] = true
				continue
			}
			if _, exists := table[name]; !exists {
				names = append(names, name)
			}
			table[name] = entry
		}
	}

	for _, c := range d.BodySlice() {
		if !c.Tag().ParticipatesInInheritance() {
			continue
		}
		final := c.FinalImplementor()
		if _, exists := table[c.Name()]; exists {
			names = removeName(names, c.Name())
		}
		names = append(names, c.Name())
		table[c.Name()] = schema.MemberEntry{
			Path:  schema.NewDefinitionPath(schema.PathStep{MemberName: c.Name(), Def: final}),
			Final: final,
		}
	}

	d.SetMembers(names, table)

	for _, del := range deletions {
		if !used[del.target] {
			collector.Collect(diag.NewIssue(diag.Warning, diag.W_UNUSED_DELETE,
				`delete "`+del.target+`" did not remove any inherited member`).
				WithSpan(del.span).
				Build())
		}
	}
}

func removeName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}

// computeDescendants installs the direct inverse of AncestorsRefs on every
// definition (spec §4.4 step 4).
func computeDescendants(all []*schema.Definition) {
	desc := make(map[*schema.Definition][]*schema.Definition)
	for _, d := range all {
		for _, anc := range d.AncestorsRefs() {
			desc[anc] = append(desc[anc], d)
		}
	}
	for _, d := range all {
		d.SetDescendants(desc[d])
	}
}
