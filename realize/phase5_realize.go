package realize

import (
	"github.com/simon-lentz/yasdl/diag"
	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
)

// Result is the compilation result produced by phase 5 (spec §6 "Produced
// interface"): the realized schemas, the toplevel (table-generating)
// fieldsets and the embedded realized fieldsets and fields reachable from
// them.
type Result struct {
	RealizedSchemas   []*schema.Schema
	ToplevelFieldsets []*schema.Definition
	EmbeddedFieldsets []*schema.Definition
	RealizedFields    []*schema.Definition
	GUIDIndex         map[string]*schema.Definition
}

// Realize runs the realization fixpoint (spec §4.6) starting from topIDs,
// the schemas named on the command line. It returns the compilation result
// and whether the pipeline may proceed to Check; a false result means a
// phase-5 error (a required outermost fieldset whose final implementor is
// not outermost, or a realized abstract final implementation) was
// collected.
func Realize(registry *schema.Registry, topIDs []location.SourceID, collector *diag.Collector) (*Result, bool) {
	realizedSchemas := seedRealizedSchemas(registry, topIDs)

	queue := make([]*schema.Definition, 0)
	enqueued := make(map[*schema.Definition]bool)
	enqueue := func(d *schema.Definition) {
		if !enqueued[d] {
			enqueued[d] = true
			queue = append(queue, d)
		}
	}

	for _, s := range realizedSchemas {
		for d := range s.OutermostDefinitions() {
			if d.Tag() != schema.TagFieldset || !d.Modifiers().Required() {
				continue
			}
			fi := d.FinalImplementor()
			if !fi.IsOutermost() {
				collector.Collect(diag.NewIssue(diag.Error, diag.E_REQUIRED_NOT_OUTERMOST,
					`"`+d.String()+`" is required but its final implementor "`+fi.String()+`" is not outermost`).
					WithSpan(d.Span()).
					WithRelated(location.RelatedInfo{Span: fi.Span(), Message: location.MsgDeclaredHere}).
					Build())
				continue
			}
			fi.SetRealized(true, true)
			enqueue(fi)
		}
	}
	if collector.HasErrors() {
		return nil, false
	}

	for len(queue) > 0 {
		d := queue[0]
		queue = queue[1:]

		switch d.Tag() {
		case schema.TagFieldset:
			for _, entry := range d.MemberNames() {
				member, _ := d.Member(entry)
				if member.Final == nil || member.Final.Realized() {
					if member.Final != nil {
						enqueue(member.Final)
					}
					continue
				}
				member.Final.SetRealized(true, false)
				enqueue(member.Final)
			}
		case schema.TagField:
			if prop, ok := d.Property("references"); ok && prop.ArgsLen() == 1 {
				a, _ := prop.SoleArg()
				if a.Kind() == schema.ArgDefinition {
					target := a.Definition()
					if !target.Realized() || !target.Toplevel() {
						target.SetRealized(true, true)
					}
					enqueue(target)
				}
			}
		}
	}

	var toplevel, embedded, fields []*schema.Definition
	for _, s := range realizedSchemas {
		for _, d := range allRealizedDefinitions(s) {
			switch {
			case d.Tag() == schema.TagFieldset && d.Toplevel():
				toplevel = append(toplevel, d)
			case d.Tag() == schema.TagFieldset && d.Realized():
				embedded = append(embedded, d)
			case d.Tag() == schema.TagField && d.Realized():
				fields = append(fields, d)
			}
			if d.Realized() && d.IsSelfFinalImplementor() && d.Modifiers().Abstract() {
				collector.Collect(diag.NewIssue(diag.Error, diag.E_REALIZED_ABSTRACT,
					`"`+d.String()+`" is realized but abstract`).
					WithSpan(d.Span()).
					Build())
			}
		}
	}
	if collector.HasErrors() {
		return nil, false
	}

	return &Result{
		RealizedSchemas:   realizedSchemas,
		ToplevelFieldsets: toplevel,
		EmbeddedFieldsets: embedded,
		RealizedFields:    fields,
		GUIDIndex:         make(map[string]*schema.Definition),
	}, true
}

// seedRealizedSchemas marks every top schema realized, then follows
// `require` imports (never `use`) from realized schemas until no new
// schema is reached (spec §4.6 step 1).
func seedRealizedSchemas(registry *schema.Registry, topIDs []location.SourceID) []*schema.Schema {
	realized := make(map[location.SourceID]*schema.Schema)
	var queue []*schema.Schema

	for _, id := range topIDs {
		if s, ok := registry.LookupBySourceID(id); ok {
			if _, seen := realized[s.SourceID()]; !seen {
				realized[s.SourceID()] = s
				queue = append(queue, s)
			}
		}
	}

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for imp := range s.Imports() {
			if imp.Kind() != schema.ImportRequire || imp.Schema() == nil {
				continue
			}
			target := imp.Schema()
			if _, seen := realized[target.SourceID()]; !seen {
				realized[target.SourceID()] = target
				queue = append(queue, target)
			}
		}
	}

	out := make([]*schema.Schema, 0, len(realized))
	for _, s := range realized {
		out = append(out, s)
	}
	return out
}

// allRealizedDefinitions returns every definition in s in a deterministic
// pre-order walk, for final realized-set accounting.
func allRealizedDefinitions(s *schema.Schema) []*schema.Definition {
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
