package binfiddle

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/binfiddle/binfiddle/debug"
	"github.com/binfiddle/binfiddle/patchfile"
)

// FailReason classifies a per-entry validation failure.
type FailReason int

const (
	// ContentMismatch: the target's bytes at the entry offset do not
	// match the entry's expected side.
	ContentMismatch FailReason = iota
	// OutOfBounds: the entry's offset or length exceeds the target.
	OutOfBounds
	// Overlap: the entry's range intersects a preceding entry's range.
	Overlap
)

func (r FailReason) String() string {
	switch r {
	case ContentMismatch:
		return "content mismatch"
	case OutOfBounds:
		return "out of bounds"
	case Overlap:
		return "overlapping entry"
	default:
		return fmt.Sprintf("<err: %d is not a fail reason>", int(r))
	}
}

// EntryError records why one patch entry failed validation.  Index is the
// entry's position in the document.
type EntryError struct {
	Index  int
	Entry  patchfile.Entry
	Reason FailReason
	Detail string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %d at 0x%08x: %s: %s", e.Index, e.Entry.Offset, e.Reason, e.Detail)
}

// Outcome is the result of one Apply invocation.
type Outcome struct {
	Succeeded []patchfile.Entry
	Failed    []EntryError
}

// OK reports whether every entry validated.
func (o *Outcome) OK() bool {
	return len(o.Failed) == 0
}

// FailedByIndex returns the failure for the entry at index i, or nil.
func (o *Outcome) FailedByIndex(i int) *EntryError {
	for j := range o.Failed {
		if o.Failed[j].Index == i {
			return &o.Failed[j]
		}
	}
	return nil
}

type ApplyConfig struct {
	Revert bool
	DryRun bool
}

type ApplyOpt func(*ApplyConfig)

// ApplyRevert applies the patch in reverse, undoing a forward application.
func ApplyRevert(v bool) ApplyOpt {
	return func(c *ApplyConfig) { c.Revert = v }
}

// ApplyDryRun validates every entry but never produces a mutated buffer.
func ApplyDryRun(v bool) ApplyOpt {
	return func(c *ApplyConfig) { c.DryRun = v }
}

// Apply validates every entry of doc against target and, only if all of
// them validate and the run is not a dry run, rebuilds the patched buffer.
//
// The returned buffer is nil whenever any entry failed or ApplyDryRun was
// set; target itself is never mutated, so the caller keeps the
// pre-mutation bytes for backups.  In forward mode an entry expects its
// old bytes at the entry offset and writes its new bytes; ApplyRevert
// swaps those roles, it is not a separate algorithm.
//
// Entries are processed in ascending offset order.  Length-changing
// entries keep later offsets correct because the output is rebuilt into a
// fresh allocation rather than spliced in place.  An entry whose expected
// range intersects a preceding entry's fails validation with Overlap, so
// the rebuild only ever sees disjoint ranges.
func Apply(target []byte, doc *patchfile.Document, opts ...ApplyOpt) (*Outcome, []byte, error) {
	cfg := &ApplyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	entries := sortedEntries(doc)
	outcome := &Outcome{}
	prevEnd := 0
	for _, se := range entries {
		expected := se.entry.Old
		if cfg.Revert {
			expected = se.entry.New
		}
		fail := validateEntry(target, se.entry.Offset, expected)
		if fail == nil && se.entry.Offset < prevEnd {
			fail = &EntryError{
				Reason: Overlap,
				Detail: fmt.Sprintf("offset %d is inside a preceding entry's range ending at %d",
					se.entry.Offset, prevEnd),
			}
		}
		if fail != nil {
			fail.Index = se.index
			fail.Entry = *se.entry
			outcome.Failed = append(outcome.Failed, *fail)
			continue
		}
		prevEnd = se.entry.Offset + len(expected)
		outcome.Succeeded = append(outcome.Succeeded, *se.entry)
	}
	if debug.Patch() {
		debug.Logf("apply: %d ok, %d failed, revert=%v dry=%v\n",
			len(outcome.Succeeded), len(outcome.Failed), cfg.Revert, cfg.DryRun)
	}
	if !outcome.OK() || cfg.DryRun {
		return outcome, nil, nil
	}

	out := make([]byte, 0, len(target))
	pos := 0
	for _, se := range entries {
		expected, replacement := se.entry.Old, se.entry.New
		if cfg.Revert {
			expected, replacement = replacement, expected
		}
		out = append(out, target[pos:se.entry.Offset]...)
		out = append(out, replacement...)
		pos = se.entry.Offset + len(expected)
	}
	out = append(out, target[pos:]...)
	return outcome, out, nil
}

func validateEntry(target []byte, offset int, expected []byte) *EntryError {
	if offset < 0 || offset > len(target) || offset+len(expected) > len(target) {
		return &EntryError{
			Reason: OutOfBounds,
			Detail: fmt.Sprintf("%d bytes at %d exceed target length %d",
				len(expected), offset, len(target)),
		}
	}
	if !bytes.Equal(target[offset:offset+len(expected)], expected) {
		return &EntryError{
			Reason: ContentMismatch,
			Detail: fmt.Sprintf("target has % x, patch expects % x",
				target[offset:offset+len(expected)], expected),
		}
	}
	return nil
}

type sortedEntry struct {
	index int
	entry *patchfile.Entry
}

// sortedEntries orders entries by ascending offset while remembering each
// entry's document position for reporting.
func sortedEntries(doc *patchfile.Document) []sortedEntry {
	entries := make([]sortedEntry, len(doc.Entries))
	for i := range doc.Entries {
		entries[i] = sortedEntry{index: i, entry: &doc.Entries[i]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].entry.Offset < entries[j].entry.Offset
	})
	return entries
}
