package schema

import (
	"testing"

	"github.com/simon-lentz/yasdl/location"
	"github.com/stretchr/testify/require"
)

func testSourceID(t *testing.T) location.SourceID {
	t.Helper()
	return location.MustNewSourceID("test://unit/order.yasdl")
}

func TestDefinition_StaticContainment(t *testing.T) {
	sid := testSourceID(t)
	outer := NewDefinition(TagFieldset, "outer", "outer", sid, location.Span{}, "")
	inner := NewDefinition(TagFieldset, "inner", "inner", sid, location.Span{}, "")
	inner.SetStaticParent(outer)

	require.True(t, outer.StaticallyContains(inner))
	require.False(t, inner.StaticallyContains(outer))
	require.False(t, outer.StaticallyContains(outer))
}

func TestDefinition_PropertiesPreserveOrder(t *testing.T) {
	sid := testSourceID(t)
	d := NewDefinition(TagField, "f1", "f1", sid, location.Span{}, "")
	d.AddProperty(NewProperty("type", location.Span{}, "", []Argument{NewStringArg("char", location.Span{})}))
	d.AddProperty(NewProperty("size", location.Span{}, "", []Argument{NewIntArg(100, location.Span{})}))

	var names []string
	for p := range d.Properties() {
		names = append(names, p.Name())
	}
	require.Equal(t, []string{"type", "size"}, names)

	p, ok := d.Property("size")
	require.True(t, ok)
	arg, ok := p.SoleArg()
	require.True(t, ok)
	require.Equal(t, int64(100), arg.Int())
}

func TestDefinition_SealPreventsMutation(t *testing.T) {
	sid := testSourceID(t)
	d := NewDefinition(TagFieldset, "a", "a", sid, location.Span{}, "")
	d.Seal()
	require.Panics(t, func() { d.SetModifiers(ModAbstract) })
}

func TestDefinition_FinalImplementorIdempotent(t *testing.T) {
	sid := testSourceID(t)
	spec := NewDefinition(TagField, "name", "name", sid, location.Span{}, "")
	impl := NewDefinition(TagField, "goodname", "goodname", sid, location.Span{}, "")

	spec.SetDirectImplementor(impl)
	spec.SetFinalImplementor(impl)
	impl.SetFinalImplementor(impl)

	require.Equal(t, impl, spec.FinalImplementor())
	require.True(t, impl.IsSelfFinalImplementor())
	require.False(t, spec.IsSelfFinalImplementor())
}

func TestModifiers_String(t *testing.T) {
	m := ModAbstract | ModRequired
	require.Equal(t, "abstract required", m.String())
	require.True(t, m.Abstract())
	require.True(t, m.Required())
	require.False(t, m.Final())
}
