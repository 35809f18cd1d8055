package libdiff

import "fmt"

// Kind classifies a span of difference.
type Kind int

const (
	// Changed spans carry bytes on both sides.
	Changed Kind = iota
	// Added spans carry bytes present only in the new buffer.
	Added
	// Removed spans carry bytes present only in the old buffer.
	Removed
)

func (k Kind) String() string {
	switch k {
	case Changed:
		return "changed"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return fmt.Sprintf("<err: %d is not a span kind>", int(k))
	}
}

// Span is a maximal contiguous region of difference between an old and a
// new buffer.  Offset is the absolute position in the old buffer; for a
// pure-addition span at end of file it equals the old buffer's length.
//
// Spans produced by [Compute] have strictly increasing offsets, never
// overlap, and are maximal: a single matching byte between two mismatches
// separates them into two spans.
type Span struct {
	Offset int
	Kind   Kind
	Old    []byte
	New    []byte
}

// Len reports how many bytes of the old buffer the span covers.
func (s *Span) Len() int {
	return len(s.Old)
}
