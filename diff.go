package binfiddle

import (
	"github.com/binfiddle/binfiddle/libdiff"
)

// Diff produces the byte-level differences between old and new.  If there
// are no differences, Diff returns nil.
//
// A resulting diff may be reversed using [libdiff.Reverse], serialized
// with [patchfile.FromSpans], and applied with [Apply].
func Diff(old, new []byte, opts ...DiffOpt) []libdiff.Span {
	cfg := &DiffConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return libdiff.Compute(old, new, cfg.Ignore)
}

type DiffConfig struct {
	Ignore libdiff.IgnoreMask
}

type DiffOpt func(*DiffConfig)

// DiffIgnore excludes the masked offset ranges from comparison.
func DiffIgnore(mask libdiff.IgnoreMask) DiffOpt {
	return func(c *DiffConfig) { c.Ignore = mask }
}
