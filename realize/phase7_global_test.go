package realize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simon-lentz/yasdl/diag"
	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
	"github.com/simon-lentz/yasdl/schema/build"
)

func realizeFixture(t *testing.T) (*Result, *schema.Registry, location.SourceID, *schema.Definition, *schema.Definition) {
	t.Helper()
	registry, sourceID, fieldset, field := newRequiredInvoiceFixture()
	collector := diag.NewCollectorUnlimited()
	result, ok := Realize(registry, []location.SourceID{sourceID}, collector)
	require.True(t, ok, collector.Result().Messages())
	return result, registry, sourceID, fieldset, field
}

func TestCheckGlobal_CleanFixturePasses(t *testing.T) {
	result, _, _, _, _ := realizeFixture(t)
	collector := diag.NewCollectorUnlimited()
	checkGlobal(result, collector)
	require.False(t, collector.HasErrors(), collector.Result().Messages())
}

func TestCheckGlobal_MissingLanguageWarns(t *testing.T) {
	result, _, _, _, _ := realizeFixture(t)

	collector := diag.NewCollectorUnlimited()
	checkGlobal(result, collector)
	requireHasCode(t, collector.Result(), diag.W_MISSING_LANGUAGE)
}

func TestCheckGlobal_MissingGUIDIsError(t *testing.T) {
	registry := schema.NewRegistry()
	s, res := build.NewBuilder().
		WithName("no_guid").
		WithRegistry(registry).
		AddFieldset("widget", func(fs *build.DefBuilder) {
			fs.WithModifiers(schema.ModRequired)
			fs.AddField("name", func(f *build.DefBuilder) {
				f.WithProperty("type", schema.NewStringArg("text", location.Span{}))
			})
		}).
		Build()
	require.False(t, res.HasErrors())

	fieldset, _ := s.Outermost("widget")
	field, _ := fieldset.StaticChild("name")
	sealTrivialImplementationTree(fieldset)
	sealTrivialImplementationTree(field)
	setSoleMember(fieldset, field, "name")

	collector := diag.NewCollectorUnlimited()
	result, ok := Realize(registry, []location.SourceID{s.SourceID()}, collector)
	require.True(t, ok, collector.Result().Messages())

	collector2 := diag.NewCollectorUnlimited()
	checkGlobal(result, collector2)
	requireHasCode(t, collector2.Result(), diag.E_MISSING_GUID)
}

func TestCheckGlobal_DuplicateGUIDIsError(t *testing.T) {
	registry, sourceID, fieldset, _ := newRequiredInvoiceFixture()
	s, _ := registry.LookupBySourceID(sourceID)

	dup := schema.NewDefinition(schema.TagFieldset, "other_invoice", "other_invoice",
		fieldset.SourceID(), location.Span{}, "")
	dup.SetID(schema.NewDefinitionID(fieldset.SourceID(), 4000))
	dup.SetModifiers(schema.ModRequired)
	dup.SetStaticParent(s.Root())
	dup.AddProperty(schema.NewProperty("guid", location.Span{}, "", []schema.Argument{
		schema.NewStringArg("22222222-2222-2222-2222-222222222222", location.Span{}),
	}))
	sealTrivialImplementationTree(dup)
	dupField := schema.NewDefinition(schema.TagField, "name", "name",
		fieldset.SourceID(), location.Span{}, "")
	dupField.SetID(schema.NewDefinitionID(fieldset.SourceID(), 4001))
	dupField.SetStaticParent(dup)
	dupField.AddProperty(schema.NewProperty("type", location.Span{}, "", []schema.Argument{
		schema.NewStringArg("text", location.Span{}),
	}))
	sealTrivialImplementationTree(dupField)
	dup.SetBody([]*schema.Definition{dupField})
	setSoleMember(dup, dupField, "name")

	s.SetOutermost(append(s.OutermostSlice(), dup))
	s.Root().SetBody(append(s.Root().BodySlice(), dup))

	collector := diag.NewCollectorUnlimited()
	result, ok := Realize(registry, []location.SourceID{sourceID}, collector)
	require.True(t, ok, collector.Result().Messages())

	collector2 := diag.NewCollectorUnlimited()
	checkGlobal(result, collector2)
	requireHasCode(t, collector2.Result(), diag.E_DUPLICATE_GUID)
}

func TestCheckGlobal_EmptyFieldsetIsError(t *testing.T) {
	registry, sourceID, fieldset, field := newRequiredInvoiceFixture()
	// A realized fieldset with no realized field member is an error; force
	// this by clearing the member table after Realize has already walked it.
	collector := diag.NewCollectorUnlimited()
	result, ok := Realize(registry, []location.SourceID{sourceID}, collector)
	require.True(t, ok, collector.Result().Messages())
	field.SetRealized(false, false)
	fieldset.SetMembers(nil, nil)

	collector2 := diag.NewCollectorUnlimited()
	checkGlobal(result, collector2)
	requireHasCode(t, collector2.Result(), diag.E_EMPTY_FIELDSET)
}

func TestCheckGlobal_InvalidReqLevelValue(t *testing.T) {
	result, _, _, _, field := realizeFixture(t)
	field.AddProperty(schema.NewProperty("reqlevel", location.Span{}, "", []schema.Argument{
		schema.NewStringArg("urgent", location.Span{}),
	}))

	collector := diag.NewCollectorUnlimited()
	checkGlobal(result, collector)
	requireHasCode(t, collector.Result(), diag.E_INVALID_REQLEVEL)
}

func TestCheckGlobal_ReqLevelRequiredWithoutNotNullNotices(t *testing.T) {
	result, _, _, _, field := realizeFixture(t)
	field.AddProperty(schema.NewProperty("reqlevel", location.Span{}, "", []schema.Argument{
		schema.NewStringArg("required", location.Span{}),
	}))

	collector := diag.NewCollectorUnlimited()
	checkGlobal(result, collector)
	requireHasCode(t, collector.Result(), diag.N_REQLEVEL_WITHOUT_NOTNULL)
}

func TestCheckGlobal_OnDeleteInvalidValue(t *testing.T) {
	result, _, _, fieldset, _ := realizeFixture(t)
	fieldset.AddProperty(schema.NewProperty("ondelete", location.Span{}, "", []schema.Argument{
		schema.NewStringArg("explode", location.Span{}),
	}))

	collector := diag.NewCollectorUnlimited()
	checkGlobal(result, collector)
	requireHasCode(t, collector.Result(), diag.E_INVALID_ONACTION)
}
