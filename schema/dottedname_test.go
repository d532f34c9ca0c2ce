package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDottedName_String(t *testing.T) {
	n := NewDottedName([]string{"partner", "name"}, false, true, []Tag{TagField, TagFieldset}, location0())
	require.Equal(t, "=partner.name[field|fieldset]", n.String())
	require.True(t, n.IsImpName())
	require.False(t, n.IsAbsolute())
	require.Equal(t, "partner", n.Head())
	require.Equal(t, []string{"name"}, n.Tail())
}

func TestDottedName_IsSimple(t *testing.T) {
	simple := NewDottedName([]string{"venus"}, false, false, nil, location0())
	require.True(t, simple.IsSimple())

	qualified := NewDottedName([]string{"a", "b"}, false, false, nil, location0())
	require.False(t, qualified.IsSimple())

	absolute := NewDottedName([]string{"venus"}, true, false, nil, location0())
	require.False(t, absolute.IsSimple())
}

func TestDottedName_AllowsTag(t *testing.T) {
	n := NewDottedName([]string{"x"}, false, false, []Tag{TagIndex}, location0())
	require.True(t, n.AllowsTag(TagIndex))
	require.False(t, n.AllowsTag(TagField))

	unrestricted := NewDottedName([]string{"x"}, false, false, nil, location0())
	require.True(t, unrestricted.AllowsTag(TagField))
	require.True(t, unrestricted.AllowsTag(TagIndex))
}
