package libdiff

// Reverse returns a copy of spans with the direction of every span
// swapped: Added becomes Removed, Removed becomes Added, and Changed spans
// exchange their old and new bytes.  Applying a reversed diff undoes the
// original one.
func Reverse(spans []Span) []Span {
	if spans == nil {
		return nil
	}
	res := make([]Span, len(spans))
	for i, s := range spans {
		rs := Span{
			Offset: s.Offset,
			Old:    s.New,
			New:    s.Old,
		}
		switch s.Kind {
		case Added:
			rs.Kind = Removed
		case Removed:
			rs.Kind = Added
		default:
			rs.Kind = Changed
		}
		res[i] = rs
	}
	return res
}
