package schema

import "github.com/simon-lentz/yasdl/location"

// location0 returns the zero Span, used where tests don't exercise
// diagnostic rendering and only need a placeholder.
func location0() location.Span {
	return location.Span{}
}
