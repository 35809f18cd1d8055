package libdiff

import (
	"bytes"
	"testing"
)

type computeTest struct {
	Name string
	Old  []byte
	New  []byte
	Mask IgnoreMask
	Want []Span
}

func TestCompute(t *testing.T) {
	tests := []computeTest{
		{
			Name: "identical",
			Old:  []byte{0xde, 0xad, 0xbe, 0xef},
			New:  []byte{0xde, 0xad, 0xbe, 0xef},
		},
		{
			Name: "empty",
		},
		{
			Name: "two single byte changes",
			Old:  []byte{0xde, 0xad, 0xbe, 0xef},
			New:  []byte{0xde, 0xff, 0xbe, 0xca},
			Want: []Span{
				{Offset: 1, Kind: Changed, Old: []byte{0xad}, New: []byte{0xff}},
				{Offset: 3, Kind: Changed, Old: []byte{0xef}, New: []byte{0xca}},
			},
		},
		{
			Name: "runs coalesce",
			Old:  []byte{0x00, 0x11, 0x22, 0x33, 0x44},
			New:  []byte{0x00, 0xaa, 0xbb, 0x33, 0x44},
			Want: []Span{
				{Offset: 1, Kind: Changed, Old: []byte{0x11, 0x22}, New: []byte{0xaa, 0xbb}},
			},
		},
		{
			Name: "entirely different",
			Old:  []byte{0x00, 0x11},
			New:  []byte{0xff, 0xee},
			Want: []Span{
				{Offset: 0, Kind: Changed, Old: []byte{0x00, 0x11}, New: []byte{0xff, 0xee}},
			},
		},
		{
			Name: "trailing addition",
			Old:  []byte{0xde, 0xad, 0xbe, 0xef},
			New:  []byte{0xde, 0xad, 0xbe, 0xef, 0xca, 0xfe},
			Want: []Span{
				{Offset: 4, Kind: Added, New: []byte{0xca, 0xfe}},
			},
		},
		{
			Name: "trailing removal",
			Old:  []byte{0xde, 0xad, 0xbe},
			New:  []byte{0xde, 0xad},
			Want: []Span{
				{Offset: 2, Kind: Removed, Old: []byte{0xbe}},
			},
		},
		{
			Name: "change then trailing addition",
			Old:  []byte{0x00, 0x11},
			New:  []byte{0x00, 0x22, 0x33},
			Want: []Span{
				{Offset: 1, Kind: Changed, Old: []byte{0x11}, New: []byte{0x22}},
				{Offset: 2, Kind: Added, New: []byte{0x33}},
			},
		},
		{
			Name: "old empty",
			New:  []byte{0xde, 0xad},
			Want: []Span{
				{Offset: 0, Kind: Added, New: []byte{0xde, 0xad}},
			},
		},
		{
			Name: "mask suppresses differences",
			Old:  []byte{0x00, 0x11, 0x22, 0x33},
			New:  []byte{0x00, 0xff, 0xff, 0x33},
			Mask: IgnoreMask{{Start: 1, End: 3}},
		},
		{
			Name: "mask splits a span",
			Old:  []byte{0x10, 0x11, 0x12, 0x13, 0x14},
			New:  []byte{0xa0, 0xa1, 0xa2, 0xa3, 0xa4},
			Mask: IgnoreMask{{Start: 2, End: 3}},
			Want: []Span{
				{Offset: 0, Kind: Changed, Old: []byte{0x10, 0x11}, New: []byte{0xa0, 0xa1}},
				{Offset: 3, Kind: Changed, Old: []byte{0x13, 0x14}, New: []byte{0xa3, 0xa4}},
			},
		},
		{
			Name: "mask covers whole file",
			Old:  []byte{0x00, 0x11, 0x22},
			New:  []byte{0xff, 0xee, 0xdd},
			Mask: IgnoreMask{{Start: 0, End: 3}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			got := Compute(tc.Old, tc.New, tc.Mask)
			if len(got) != len(tc.Want) {
				t.Fatalf("got %d spans, want %d: %+v", len(got), len(tc.Want), got)
			}
			for i := range got {
				assertSpanEqual(t, i, &got[i], &tc.Want[i])
			}
		})
	}
}

func assertSpanEqual(t *testing.T, i int, got, want *Span) {
	t.Helper()
	if got.Offset != want.Offset {
		t.Errorf("span %d: offset %d, want %d", i, got.Offset, want.Offset)
	}
	if got.Kind != want.Kind {
		t.Errorf("span %d: kind %s, want %s", i, got.Kind, want.Kind)
	}
	if !bytes.Equal(got.Old, want.Old) {
		t.Errorf("span %d: old % x, want % x", i, got.Old, want.Old)
	}
	if !bytes.Equal(got.New, want.New) {
		t.Errorf("span %d: new % x, want % x", i, got.New, want.New)
	}
}

func TestComputeOffsetsStrictlyIncrease(t *testing.T) {
	old := []byte("the quick brown fox jumps over the lazy dog")
	new := []byte("the quack brown cat jumps over the hazy dog!")
	spans := Compute(old, new, nil)
	if len(spans) == 0 {
		t.Fatal("expected spans")
	}
	last := -1
	for _, s := range spans {
		if s.Offset <= last {
			t.Fatalf("offsets not strictly increasing: %d after %d", s.Offset, last)
		}
		if s.Kind == Changed {
			last = s.Offset + len(s.Old) - 1
		} else {
			last = s.Offset
		}
	}
}

func TestComputeDoesNotAliasInputs(t *testing.T) {
	old := []byte{0x01, 0x02}
	new := []byte{0x01, 0xff}
	spans := Compute(old, new, nil)
	new[1] = 0x00
	if spans[0].New[0] != 0xff {
		t.Fatal("span aliases the input buffer")
	}
}
