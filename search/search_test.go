package search

import (
	"bytes"
	"errors"
	"testing"
)

func mustPattern(t *testing.T, input, format string) *Pattern {
	t.Helper()
	p, err := ParsePattern(input, format)
	if err != nil {
		t.Fatalf("ParsePattern(%q, %q): %v", input, format, err)
	}
	return p
}

func offsets(ms []Match) []int {
	var offs []int
	for _, m := range ms {
		offs = append(offs, m.Offset)
	}
	return offs
}

func TestFindExactSingle(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef, 0xca, 0xfe}
	ms, err := Find(data, mustPattern(t, "beef", "hex"), All())
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 1 || ms[0].Offset != 2 || !bytes.Equal(ms[0].Data, []byte{0xbe, 0xef}) {
		t.Fatalf("got %+v", ms)
	}
}

func TestFindExactMultiple(t *testing.T) {
	data := []byte{0x00, 0x01, 0x00, 0x02, 0x00}
	ms, err := Find(data, mustPattern(t, "00", "hex"), All())
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 2, 4}
	got := offsets(ms)
	if len(got) != len(want) {
		t.Fatalf("got offsets %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got offsets %v, want %v", got, want)
		}
	}
}

func TestFindFirstOnly(t *testing.T) {
	data := []byte{0x00, 0x01, 0x00}
	ms, err := Find(data, mustPattern(t, "00", "hex"))
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 1 || ms[0].Offset != 0 {
		t.Fatalf("got %+v, want single match at 0", ms)
	}
}

func TestFindNoOverlap(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x00}
	ms, err := Find(data, mustPattern(t, "0000", "hex"), All(), NoOverlap())
	if err != nil {
		t.Fatal(err)
	}
	got := offsets(ms)
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("got offsets %v, want [0 2]", got)
	}
}

func TestFindOverlapping(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x00}
	ms, err := Find(data, mustPattern(t, "0000", "hex"), All())
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 3 {
		t.Fatalf("got %d matches, want 3", len(ms))
	}
}

func TestFindRegex(t *testing.T) {
	data := []byte("ABCDEF_ABXYZ")
	ms, err := Find(data, mustPattern(t, "AB.", "regex"), All())
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 2 {
		t.Fatalf("got %d matches, want 2", len(ms))
	}
	if ms[0].Offset != 0 || !bytes.Equal(ms[0].Data, []byte("ABC")) {
		t.Errorf("match 0: %+v", ms[0])
	}
	if ms[1].Offset != 7 || !bytes.Equal(ms[1].Data, []byte("ABX")) {
		t.Errorf("match 1: %+v", ms[1])
	}
}

func TestFindMask(t *testing.T) {
	data := []byte{0x00, 0xde, 0xad, 0xbe, 0xef, 0x00}
	ms, err := Find(data, mustPattern(t, "de ?? be ??", "mask"), All())
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 1 || ms[0].Offset != 1 {
		t.Fatalf("got %+v, want single match at 1", ms)
	}
	if !bytes.Equal(ms[0].Data, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Errorf("match data %x", ms[0].Data)
	}
}

func TestFindMaskMultiple(t *testing.T) {
	data := []byte{0xaa, 0x00, 0xbb, 0x00, 0xcc, 0x00}
	ms, err := Find(data, mustPattern(t, "?? 00", "mask"), All())
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 3 {
		t.Fatalf("got %d matches, want 3", len(ms))
	}
}

func TestFindChunked(t *testing.T) {
	// One needle inside a chunk, one straddling a chunk boundary.
	data := make([]byte, 64)
	copy(data[10:], []byte{0xbe, 0xef})
	copy(data[15:], []byte{0xbe, 0xef})
	p := mustPattern(t, "beef", "hex")
	ms, err := Find(data, p, All(), ChunkSize(16))
	if err != nil {
		t.Fatal(err)
	}
	got := offsets(ms)
	if len(got) != 2 || got[0] != 10 || got[1] != 15 {
		t.Fatalf("got offsets %v, want [10 15]", got)
	}
}

func TestFindChunkedBoundary(t *testing.T) {
	data := make([]byte, 32)
	copy(data[15:], []byte{0xca, 0xfe})
	ms, err := Find(data, mustPattern(t, "cafe", "hex"), All(), ChunkSize(16))
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 1 || ms[0].Offset != 15 {
		t.Fatalf("got %+v, want single match at 15", ms)
	}
}

func TestFindPatternLongerThanData(t *testing.T) {
	ms, err := Find([]byte{0x01}, mustPattern(t, "0102", "hex"), All())
	if err != nil {
		t.Fatal(err)
	}
	if ms != nil {
		t.Fatalf("got %+v, want nil", ms)
	}
}

func TestParsePattern(t *testing.T) {
	p := mustPattern(t, "hello", "ascii")
	if !bytes.Equal(p.Exact, []byte("hello")) {
		t.Errorf("ascii pattern: %q", p.Exact)
	}
	p = mustPattern(t, "222 173", "dec")
	if !bytes.Equal(p.Exact, []byte{0xde, 0xad}) {
		t.Errorf("dec pattern: %x", p.Exact)
	}
	p = mustPattern(t, "de ?? be ef", "mask")
	want := []MaskByte{{Value: 0xde}, {Wild: true}, {Value: 0xbe}, {Value: 0xef}}
	if len(p.Mask) != len(want) {
		t.Fatalf("mask length %d, want %d", len(p.Mask), len(want))
	}
	for i := range want {
		if p.Mask[i] != want[i] {
			t.Errorf("mask[%d]: got %+v, want %+v", i, p.Mask[i], want[i])
		}
	}
}

func TestParsePatternErrors(t *testing.T) {
	for _, tc := range []struct {
		input, format string
		sentinel      error
	}{
		{"", "hex", ErrEmptyPattern},
		{"", "mask", ErrEmptyPattern},
		{"[", "regex", ErrPattern},
		{"?", "mask", ErrPattern},
		{"de", "nope", ErrPattern},
	} {
		if _, err := ParsePattern(tc.input, tc.format); !errors.Is(err, tc.sentinel) {
			t.Errorf("ParsePattern(%q, %q): got %v, want %v", tc.input, tc.format, err, tc.sentinel)
		}
	}
}
