package patchfile

import (
	"github.com/binfiddle/binfiddle/libdiff"
)

// Entry is one difference in a patch document.  Old and New mirror the
// sides of a [libdiff.Span]; an empty side encodes absence.
type Entry struct {
	Offset int
	Old    []byte
	New    []byte
}

// Kind derives the span kind from which sides of the entry are populated.
func (e *Entry) Kind() libdiff.Kind {
	switch {
	case len(e.Old) == 0:
		return libdiff.Added
	case len(e.New) == 0:
		return libdiff.Removed
	default:
		return libdiff.Changed
	}
}

// Document is an ordered sequence of patch entries plus the labels of the
// buffers the diff was computed from.
type Document struct {
	Source  string
	Target  string
	Entries []Entry
}

// FromSpans converts a span sequence into a patch document, one entry per
// span.
func FromSpans(spans []libdiff.Span, source, target string) *Document {
	doc := &Document{
		Source:  source,
		Target:  target,
		Entries: make([]Entry, 0, len(spans)),
	}
	for _, s := range spans {
		doc.Entries = append(doc.Entries, Entry{
			Offset: s.Offset,
			Old:    s.Old,
			New:    s.New,
		})
	}
	return doc
}

// Spans converts the document back into a span sequence.
func (d *Document) Spans() []libdiff.Span {
	spans := make([]libdiff.Span, 0, len(d.Entries))
	for i := range d.Entries {
		e := &d.Entries[i]
		spans = append(spans, libdiff.Span{
			Offset: e.Offset,
			Kind:   e.Kind(),
			Old:    e.Old,
			New:    e.New,
		})
	}
	return spans
}
