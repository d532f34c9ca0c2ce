package complete

import (
	"github.com/simon-lentz/yasdl/location"
	"github.com/simon-lentz/yasdl/schema"
)

// location0 returns a zero span, used throughout these tests wherever a
// source position doesn't matter to the assertion being made.
func location0() location.Span {
	return location.Span{}
}

// simpleName builds a single-segment relative dotted name, e.g. for an
// `implements`/`ancestors` property argument.
func simpleName(segment string) *schema.DottedName {
	return schema.NewDottedName([]string{segment}, false, false, nil, location.Span{})
}

// dottedName builds a multi-segment relative dotted name.
func dottedName(segments ...string) *schema.DottedName {
	return schema.NewDottedName(segments, false, false, nil, location.Span{})
}

// impName builds an imp-name (`=`-prefixed) dotted name, used for ancestor
// references that dereference to a final implementor.
func impName(segment string) *schema.DottedName {
	return schema.NewDottedName([]string{segment}, false, true, nil, location.Span{})
}
