package jspan

import (
	"bytes"
	"fmt"

	"github.com/creachadair/jspan/decode"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the length of the span in bytes.
func (s Span) Len() int { return s.End - s.Pos }

// Contains reports whether offset lies within s.
func (s Span) Contains(offset int) bool { return s.Pos <= offset && offset < s.End }

// Slice returns the bytes of src covered by s. It panics if s does not lie
// within src.
func (s Span) Slice(src []byte) []byte { return src[s.Pos:s.End] }

func (s Span) String() string { return fmt.Sprintf("%d..%d", s.Pos, s.End) }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol = decode.LineCol

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

// Locate returns the location of span in src. Last is the location of the
// end of the span, which is one byte past its final byte.
func Locate(src []byte, span Span) Location {
	return Location{
		Span:  span,
		First: lineColAt(src, span.Pos),
		Last:  lineColAt(src, span.End),
	}
}

func lineColAt(src []byte, offset int) LineCol {
	offset = min(max(offset, 0), len(src))
	head := src[:offset]
	return LineCol{
		Line:   bytes.Count(head, []byte("\n")) + 1,
		Column: offset - (bytes.LastIndexByte(head, '\n') + 1),
	}
}
