// Package span builds location.Span values for the hand-written YASDL lexer
// and parser. Unlike an ANTLR-based frontend, the lexer tracks byte, line,
// and column directly as it scans, so no rune-to-byte conversion layer is
// needed; Builder only wraps the bookkeeping of turning two (line, column,
// byte) positions into a Span for a single source.
package span

import (
	"github.com/simon-lentz/yasdl/location"
)

// Builder accumulates Spans for one source document.
type Builder struct {
	sourceID location.SourceID
}

// NewBuilder creates a Builder for the given source.
func NewBuilder(sourceID location.SourceID) *Builder {
	return &Builder{sourceID: sourceID}
}

// Source returns the source identity this builder constructs spans for.
func (b *Builder) Source() location.SourceID { return b.sourceID }

// Point builds a zero-width Span at a single position.
func (b *Builder) Point(line, column, byteOffset int) location.Span {
	return location.PointWithByte(b.sourceID, line, column, byteOffset)
}

// Range builds a Span covering [start, end) given explicit line/column/byte
// triples for both ends.
func (b *Builder) Range(startLine, startCol, startByte, endLine, endCol, endByte int) location.Span {
	return location.RangeWithBytes(b.sourceID, startLine, startCol, startByte, endLine, endCol, endByte)
}

// Between builds a Span from one Position to another, both already resolved
// against this builder's source.
func (b *Builder) Between(start, end location.Position) location.Span {
	return location.RangeWithBytes(b.sourceID, start.Line, start.Column, start.Byte, end.Line, end.Column, end.Byte)
}
