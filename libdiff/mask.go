package libdiff

// Range is a half-open [Start, End) byte interval.
type Range struct {
	Start int
	End   int
}

// IgnoreMask is a set of offset ranges excluded from comparison.  A masked
// position compares equal regardless of content, so it can never start or
// extend a span.
type IgnoreMask []Range

// Covers reports whether offset falls inside any range of the mask.
func (m IgnoreMask) Covers(offset int) bool {
	for _, r := range m {
		if offset >= r.Start && offset < r.End {
			return true
		}
	}
	return false
}
