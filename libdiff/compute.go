package libdiff

import (
	"bytes"

	"github.com/binfiddle/binfiddle/debug"
)

// Compute walks old and new position by position and returns the spans
// where they differ.  If the buffers are identical it returns nil.
//
// Masked positions compare equal; a masked position inside an otherwise
// open span closes it, the span does not skip over the gap.  When the
// buffers have unequal length, exactly one trailing Added or Removed span
// covers the tail of the longer buffer.
//
// Compute runs in O(n) of the shared length and never backtracks.
func Compute(old, new []byte, mask IgnoreMask) []Span {
	n := min(len(old), len(new))
	var (
		spans []Span
		open  = -1
	)
	for i := 0; i < n; i++ {
		if mask.Covers(i) || old[i] == new[i] {
			if open >= 0 {
				spans = append(spans, changedSpan(old, new, open, i))
				open = -1
			}
			continue
		}
		if open < 0 {
			open = i
		}
	}
	if open >= 0 {
		spans = append(spans, changedSpan(old, new, open, n))
	}
	switch {
	case len(old) > len(new):
		spans = append(spans, Span{
			Offset: n,
			Kind:   Removed,
			Old:    bytes.Clone(old[n:]),
		})
	case len(new) > len(old):
		spans = append(spans, Span{
			Offset: n,
			Kind:   Added,
			New:    bytes.Clone(new[n:]),
		})
	}
	if debug.Diff() {
		debug.Logf("libdiff: %d spans over %d/%d bytes\n", len(spans), len(old), len(new))
	}
	return spans
}

func changedSpan(old, new []byte, start, end int) Span {
	return Span{
		Offset: start,
		Kind:   Changed,
		Old:    bytes.Clone(old[start:end]),
		New:    bytes.Clone(new[start:end]),
	}
}
