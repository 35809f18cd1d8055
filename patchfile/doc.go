// Package patchfile reads and writes the binfiddle patch text format.
//
// # Usage
//
//	doc := patchfile.FromSpans(spans, "old.bin", "new.bin")
//	if err := patchfile.Encode(w, doc); err != nil {
//	    return err
//	}
//
//	doc, err := patchfile.Parse(data)
//
// The format is line based.  Lines beginning with '#' are comments and
// every data line is
//
//	0x{8-hex-digit-offset}:{old-hex}:{new-hex}
//
// with lowercase hex throughout.  An empty old side encodes an addition,
// an empty new side a removal; both sides empty is invalid only in the
// sense that it encodes nothing.
//
// # Related Packages
//
//   - github.com/binfiddle/binfiddle/libdiff - span computation
package patchfile
