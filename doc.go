// Package binfiddle is a toolkit for inspecting and manipulating binary
// data: byte-range edits, positional diffing, transactional patching,
// searching, and statistical analysis of in-memory buffers.
//
// # Usage
//
//	// Compute a diff and turn it into a patch document.
//	spans := binfiddle.Diff(old, new)
//	doc := patchfile.FromSpans(spans, "old.bin", "new.bin")
//
//	// Apply it back, all or nothing.
//	outcome, patched, err := binfiddle.Apply(old, doc)
//	if err != nil {
//	    return err
//	}
//	if !outcome.OK() {
//	    // every failure is recorded, nothing was written
//	}
//
// # Related Packages
//
//   - github.com/binfiddle/binfiddle/libdiff - diff engine
//   - github.com/binfiddle/binfiddle/patchfile - patch text format
//   - github.com/binfiddle/binfiddle/render - diff rendering
//   - github.com/binfiddle/binfiddle/search - pattern search
package binfiddle
