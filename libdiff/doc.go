// Package libdiff computes positional byte-level differences between two
// in-memory buffers.
//
// # Usage
//
//	spans := libdiff.Compute(old, new, nil)
//	for _, s := range spans {
//	    fmt.Printf("0x%08x %s\n", s.Offset, s.Kind)
//	}
//
//	// Swap the direction of a computed diff.
//	rev := libdiff.Reverse(spans)
//
// The diff is positional: byte i of old is compared with byte i of new, and
// no sequence alignment is attempted. This matches the patch model, where
// every entry applies at an exact offset.
//
// # Related Packages
//
//   - github.com/binfiddle/binfiddle/patchfile - patch text format
//   - github.com/binfiddle/binfiddle/render - human-readable rendering
package libdiff
