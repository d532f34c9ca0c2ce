package realize

import (
	"github.com/simon-lentz/yasdl/diag"
	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
)

// checkRequiredMembers enforces spec §4.7's requirement checker (phases 6):
// for every realized final implementation FI, walk FI itself and every
// specification of FI (the rest of its implementation tree); for each
// direct member of that specification carrying the `required` modifier,
// verify a same-named member exists in FI and is itself realized.
func checkRequiredMembers(res *Result, collector *diag.Collector) {
	for _, fi := range res.ToplevelFieldsets {
		checkRequiredMembersOf(fi, collector)
	}
	for _, fi := range res.EmbeddedFieldsets {
		checkRequiredMembersOf(fi, collector)
	}
}

func checkRequiredMembersOf(fi *schema.Definition, collector *diag.Collector) {
	specs := append([]*schema.Definition{fi}, fi.Specifications()...)
	for _, s := range specs {
		for _, c := range s.BodySlice() {
			if !c.Tag().ParticipatesInInheritance() || !c.Modifiers().Required() {
				continue
			}
			entry, ok := fi.Member(c.Name())
			reason := "absent"
			if ok && entry.Final != nil && !entry.Final.Realized() {
				reason = "unrealized"
			}
			if !ok || entry.Final == nil || !entry.Final.Realized() {
				collector.Collect(diag.NewIssue(diag.Error, diag.E_MISSING_REQUIRED_MEMBER,
					`specification "`+s.String()+`" requires member "`+c.Name()+`", which is not realized in "`+fi.String()+`"`).
					WithSpan(c.Span()).
					WithDetail(diag.DetailKeyReason, reason).
					WithRelated(location.RelatedInfo{Span: fi.Span(), Message: location.MsgRequiredBy}).
					Build())
			}
		}
	}
}
