package libdiff

import (
	"bytes"
	"testing"
)

func TestReverse(t *testing.T) {
	spans := []Span{
		{Offset: 1, Kind: Changed, Old: []byte{0xad}, New: []byte{0xff}},
		{Offset: 4, Kind: Added, New: []byte{0xca, 0xfe}},
	}
	rev := Reverse(spans)
	if len(rev) != 2 {
		t.Fatalf("got %d spans, want 2", len(rev))
	}
	if rev[0].Kind != Changed || !bytes.Equal(rev[0].Old, []byte{0xff}) || !bytes.Equal(rev[0].New, []byte{0xad}) {
		t.Errorf("changed span not swapped: %+v", rev[0])
	}
	if rev[1].Kind != Removed || !bytes.Equal(rev[1].Old, []byte{0xca, 0xfe}) || rev[1].New != nil {
		t.Errorf("added span should reverse to removed: %+v", rev[1])
	}
}

func TestReverseTwiceIsIdentity(t *testing.T) {
	old := []byte{0x00, 0x11, 0x22}
	new := []byte{0x00, 0xaa, 0x22, 0x33}
	spans := Compute(old, new, nil)
	back := Reverse(Reverse(spans))
	if len(back) != len(spans) {
		t.Fatalf("got %d spans, want %d", len(back), len(spans))
	}
	for i := range spans {
		assertSpanEqual(t, i, &back[i], &spans[i])
	}
}

func TestReverseNil(t *testing.T) {
	if Reverse(nil) != nil {
		t.Fatal("reverse of nil should be nil")
	}
}
