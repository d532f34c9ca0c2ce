package realize

import (
	"testing"

	"github.com/simon-lentz/yasdl/diag"
	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
	"github.com/simon-lentz/yasdl/schema/build"
)

func requireHasCode(t *testing.T, res diag.Result, code diag.Code) {
	t.Helper()
	for issue := range res.Issues() {
		if issue.Code() == code {
			return
		}
	}
	t.Fatalf("expected an issue with code %s, got: %v", code, res.Messages())
}

// sealTrivialImplementationTree installs the phase 2/3 bookkeeping realize
// itself never computes: d is its own final implementor, has no ancestors,
// specifications, or implementations, and no members unless setMembers is
// called separately. Realize/Check only read these fields; they never
// recompute them, so fixtures exercising just phases 5-7 must fake phase
// 1-4's output by hand.
func sealTrivialImplementationTree(d *schema.Definition) {
	d.SetDirectImplementor(nil)
	d.SetFinalImplementor(d)
	d.SetAncestorsRefs(nil)
	d.SetSpecifications(nil)
	d.SetImplementations(nil)
	d.SetImplementsRefs(nil)
}

func setSoleMember(fi, field *schema.Definition, name string) {
	entry := schema.MemberEntry{
		Path:  schema.NewDefinitionPath(schema.PathStep{MemberName: name, Def: field}),
		Final: field,
	}
	fi.SetMembers([]string{name}, map[string]schema.MemberEntry{name: entry})
}

// addMember appends name to fi's existing member table instead of replacing
// it, for fixtures that add a member on top of newRequiredInvoiceFixture's
// initial "total" member.
func addMember(fi, field *schema.Definition, name string) {
	names := append(append([]string{}, fi.MemberNames()...), name)
	table := make(map[string]schema.MemberEntry, len(names))
	for _, n := range fi.MemberNames() {
		entry, _ := fi.Member(n)
		table[n] = entry
	}
	table[name] = schema.MemberEntry{
		Path:  schema.NewDefinitionPath(schema.PathStep{MemberName: name, Def: field}),
		Final: field,
	}
	fi.SetMembers(names, table)
}

// simpleName builds a single-segment relative dotted name.
func simpleName(segment string) *schema.DottedName {
	return schema.NewDottedName([]string{segment}, false, false, nil, location.Span{})
}

// newRequiredInvoiceFixture builds a one-schema registry containing a single
// required, realizable "invoice" fieldset with one "total" field already
// wired as a fully-completed (phase 1-4 output) schema, ready to run through
// Realize/Check. Returns the registry, the schema's SourceID, and the
// fieldset/field definitions for the caller to adjust further.
func newRequiredInvoiceFixture() (*schema.Registry, location.SourceID, *schema.Definition, *schema.Definition) {
	var fieldset, field *schema.Definition
	registry := schema.NewRegistry()

	s, _ := build.NewBuilder().
		WithName("invoicing").
		WithGUID("11111111-1111-1111-1111-111111111111").
		WithRegistry(registry).
		AddFieldset("invoice", func(fs *build.DefBuilder) {
			fs.WithModifiers(schema.ModRequired)
			fs.WithProperty("guid", schema.NewStringArg("22222222-2222-2222-2222-222222222222", location.Span{}))
			fs.AddField("total", func(f *build.DefBuilder) {
				f.WithProperty("type", schema.NewStringArg("decimal", location.Span{}))
			})
		}).
		Build()

	fieldset, _ = s.Outermost("invoice")
	field, _ = fieldset.StaticChild("total")

	// checkSchemaGUID reads the root definition's own "guid" property, not
	// Schema.GUID() — WithGUID alone (which only sets the latter) would leave
	// the fixture failing that check, so install it as a property directly.
	// language is deliberately left unset: checkLanguage only warns on its
	// absence, which callers that need a clean "no diagnostics at all" fixture
	// can still add for themselves.
	s.Root().AddProperty(schema.NewProperty("guid", location.Span{}, "", []schema.Argument{
		schema.NewStringArg("11111111-1111-1111-1111-111111111111", location.Span{}),
	}))

	sealTrivialImplementationTree(fieldset)
	sealTrivialImplementationTree(field)
	setSoleMember(fieldset, field, "total")

	return registry, s.SourceID(), fieldset, field
}
