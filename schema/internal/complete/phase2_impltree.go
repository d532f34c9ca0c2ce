package complete

import (
	"github.com/simon-lentz/yasdl/diag"
	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
)

// runPhase2 runs the Implementation-Tree Builder (spec §4.3) over every
// schema: direct-implementor assignment, kind matching, final-implementor
// computation, modifier consistency, intra-tree containment, and the
// specifications/implementations closure caches.
func runPhase2(schemas []*schema.Schema, collector *diag.Collector) bool {
	var all []*schema.Definition
	for _, s := range schemas {
		for _, d := range allDefinitions(s) {
			if d.Tag().ParticipatesInInheritance() {
				all = append(all, d)
			}
		}
	}

	assignDirectImplementors(all, collector)
	if collector.HasErrors() {
		return false
	}

	computeFinalImplementors(all, collector)
	if collector.HasErrors() {
		return false
	}

	for _, d := range all {
		checkModifierConsistency(d, collector)
	}
	checkIntraTreeContainment(all, collector)
	computeTreeClosures(all)

	return !collector.HasErrors()
}

// assignDirectImplementors sets D.direct_implementor := I for every I and
// every D in I.ImplementsRefs(), checking both that no D is claimed twice
// (spec §4.3 step 1, E_MULTIPLE_IMPLEMENTORS) and that the kinds match (spec
// §4.3 step 2, E_IMPLEMENTS_KIND_MISMATCH).
func assignDirectImplementors(all []*schema.Definition, collector *diag.Collector) {
	assignedBy := make(map[*schema.Definition]*schema.Definition)
	for _, implementor := range all {
		for _, implemented := range implementor.ImplementsRefs() {
			if implementor.Tag() != implemented.Tag() {
				collector.Collect(diag.NewIssue(diag.Error, diag.E_IMPLEMENTS_KIND_MISMATCH,
					`"`+implementor.String()+`" ("`+implementor.Tag().String()+`") cannot implement "`+
						implemented.String()+`" ("`+implemented.Tag().String()+`")`).
					WithSpan(implementor.Span()).
					WithRelated(location.RelatedInfo{Span: implemented.Span(), Message: location.MsgDeclaredHere}).
					Build())
				continue
			}
			if prior, ok := assignedBy[implemented]; ok && prior != implementor {
				collector.Collect(diag.NewIssue(diag.Error, diag.E_MULTIPLE_IMPLEMENTORS,
					`"`+implemented.String()+`" is implemented by more than one definition`).
					WithSpan(implementor.Span()).
					WithRelated(location.RelatedInfo{Span: prior.Span(), Message: location.MsgPreviousDefinition}).
					Build())
				continue
			}
			assignedBy[implemented] = implementor
			implemented.SetDirectImplementor(implementor)
		}
	}
	for _, d := range all {
		if _, ok := assignedBy[d]; !ok {
			d.SetDirectImplementor(nil)
		}
	}
}

// computeFinalImplementors follows direct_implementor upward from every
// definition to the root of its implementation tree (spec §4.3 step 3). A
// cycle here would mean phase 1's acyclicity check failed to catch an
// implements cycle, which is an internal invariant violation, not a
// user-facing diagnostic.
func computeFinalImplementors(all []*schema.Definition, collector *diag.Collector) {
	cache := make(map[*schema.Definition]*schema.Definition)
	var resolve func(d *schema.Definition, visiting map[*schema.Definition]bool) *schema.Definition
	resolve = func(d *schema.Definition, visiting map[*schema.Definition]bool) *schema.Definition {
		if fi, ok := cache[d]; ok {
			return fi
		}
		impl := d.DirectImplementor()
		if impl == nil {
			cache[d] = d
			return d
		}
		if visiting[d] {
			collector.Collect(diag.NewIssue(diag.Fatal, diag.E_INTERNAL,
				`implementation-tree cycle reached "`+d.String()+`" after phase 1 reported none`).
				WithSpan(d.Span()).
				Build())
			cache[d] = d
			return d
		}
		visiting[d] = true
		fi := resolve(impl, visiting)
		delete(visiting, d)
		cache[d] = fi
		return fi
	}
	for _, d := range all {
		d.SetFinalImplementor(resolve(d, make(map[*schema.Definition]bool)))
	}
}

// checkModifierConsistency enforces spec §4.3 step 4: a `final` definition
// must equal its own final implementor (nothing may implement it further),
// and an `abstract required` definition must never be its own final
// implementor (it must always be implemented by something concrete) unless
// it carries `fallback`, in which case standing in as its own implementor is
// exactly what the modifier is for.
func checkModifierConsistency(d *schema.Definition, collector *diag.Collector) {
	if d.Modifiers().Final() && d.FinalImplementor() != d {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_MODIFIER_CONSISTENCY,
			`"`+d.String()+`" is final but is implemented by "`+d.FinalImplementor().String()+`"`).
			WithSpan(d.Span()).
			WithRelated(location.RelatedInfo{Span: d.FinalImplementor().Span(), Message: location.MsgDeclaredHere}).
			Build())
	}
	if d.Modifiers().Abstract() && d.Modifiers().Required() && d.IsSelfFinalImplementor() && !d.Modifiers().Fallback() {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_MODIFIER_CONSISTENCY,
			`"`+d.String()+`" is abstract and required but is never implemented`).
			WithSpan(d.Span()).
			Build())
	}
}

// checkIntraTreeContainment enforces spec §4.3 step 5: within one
// implementation tree, no two definitions may be in a static containment
// relation with each other.
func checkIntraTreeContainment(all []*schema.Definition, collector *diag.Collector) {
	trees := make(map[*schema.Definition][]*schema.Definition)
	for _, d := range all {
		root := d.FinalImplementor()
		trees[root] = append(trees[root], d)
	}
	for _, members := range trees {
		for i, a := range members {
			for _, b := range members[i+1:] {
				if a.StaticallyContains(b) || b.StaticallyContains(a) {
					collector.Collect(diag.NewIssue(diag.Error, diag.E_CONTAINMENT_VIOLATION,
						`"`+a.String()+`" and "`+b.String()+`" are in the same implementation tree and in a static containment relation`).
						WithSpan(a.Span()).
						WithRelated(location.RelatedInfo{Span: b.Span(), Message: location.MsgDeclaredHere}).
						Build())
				}
			}
		}
	}
}

// computeTreeClosures installs the Specifications/Implementations caches
// (spec §4.3 step 6): Specifications(x) is every other definition sharing
// x's final implementor; Implementations(x) is the chain from x's own direct
// implementor up to (and including) its final implementor.
func computeTreeClosures(all []*schema.Definition) {
	byRoot := make(map[*schema.Definition][]*schema.Definition)
	for _, d := range all {
		root := d.FinalImplementor()
		byRoot[root] = append(byRoot[root], d)
	}
	for _, d := range all {
		group := byRoot[d.FinalImplementor()]
		specs := make([]*schema.Definition, 0, len(group))
		for _, d2 := range group {
			if d2 != d {
				specs = append(specs, d2)
			}
		}
		d.SetSpecifications(specs)

		var chain []*schema.Definition
		for cur := d.DirectImplementor(); cur != nil; cur = cur.DirectImplementor() {
			chain = append(chain, cur)
		}
		d.SetImplementations(chain)
	}
}
