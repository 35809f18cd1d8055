package parseutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/binfiddle/binfiddle/libdiff"
)

func TestParseNumber(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int
		err  bool
	}{
		{"0", 0, false},
		{"10", 10, false},
		{"0x10", 16, false},
		{"0X10", 16, false},
		{"0100", 256, false},
		{"0xff", 255, false},
		{" 42 ", 42, false},
		{"", 0, true},
		{"0x", 0, true},
		{"zz", 0, true},
		{"-1", 0, true},
	} {
		got, err := ParseNumber(tc.in)
		if tc.err {
			if err == nil {
				t.Errorf("ParseNumber(%q): expected error, got %d", tc.in, got)
			} else if !errors.Is(err, ErrSyntax) {
				t.Errorf("ParseNumber(%q): error %v is not ErrSyntax", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseNumber(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseNumber(%q): got %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseRange(t *testing.T) {
	const n = 100
	for _, tc := range []struct {
		in         string
		start, end int
	}{
		{"10", 10, 11},
		{"10..20", 10, 20},
		{"..20", 0, 20},
		{"10..", 10, n},
		{"..", 0, n},
		{"0x10..0x20", 16, 32},
		{"0..100", 0, 100},
		{"99", 99, 100},
	} {
		start, end, err := ParseRange(tc.in, n)
		if err != nil {
			t.Errorf("ParseRange(%q, %d): %v", tc.in, n, err)
			continue
		}
		if start != tc.start || end != tc.end {
			t.Errorf("ParseRange(%q, %d): got [%d, %d), want [%d, %d)",
				tc.in, n, start, end, tc.start, tc.end)
		}
	}
}

func TestParseRangeErrors(t *testing.T) {
	const n = 100
	for _, tc := range []struct {
		in       string
		sentinel error
	}{
		{"100", ErrBounds},
		{"0..101", ErrBounds},
		{"101..", ErrBounds},
		{"20..10", ErrBounds},
		{"10..10", ErrBounds},
		{"a..b..c", ErrSyntax},
		{"x..y", ErrSyntax},
	} {
		_, _, err := ParseRange(tc.in, n)
		if err == nil {
			t.Errorf("ParseRange(%q, %d): expected error", tc.in, n)
			continue
		}
		if !errors.Is(err, tc.sentinel) {
			t.Errorf("ParseRange(%q, %d): error %v does not wrap %v", tc.in, n, err, tc.sentinel)
		}
	}
}

func TestParseIgnoreRanges(t *testing.T) {
	mask, err := ParseIgnoreRanges("0x0..0x10,0x100..0x200")
	if err != nil {
		t.Fatal(err)
	}
	want := libdiff.IgnoreMask{{Start: 0, End: 16}, {Start: 256, End: 512}}
	if len(mask) != len(want) {
		t.Fatalf("got %d ranges, want %d", len(mask), len(want))
	}
	for i := range want {
		if mask[i] != want[i] {
			t.Errorf("range %d: got %+v, want %+v", i, mask[i], want[i])
		}
	}
}

func TestParseIgnoreRangesSingleIndex(t *testing.T) {
	mask, err := ParseIgnoreRanges("5")
	if err != nil {
		t.Fatal(err)
	}
	if len(mask) != 1 || mask[0].Start != 5 || mask[0].End != 6 {
		t.Fatalf("got %+v, want single range [5, 6)", mask)
	}
}

func TestParseIgnoreRangesEmpty(t *testing.T) {
	mask, err := ParseIgnoreRanges("")
	if err != nil {
		t.Fatal(err)
	}
	if mask != nil {
		t.Fatalf("got %+v, want nil", mask)
	}
}

func TestParseIgnoreRangesError(t *testing.T) {
	if _, err := ParseIgnoreRanges("nope"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("got %v, want ErrSyntax", err)
	}
}

func TestParseInput(t *testing.T) {
	for _, tc := range []struct {
		in     string
		format string
		want   []byte
	}{
		{"deadbeef", FormatHex, []byte{0xde, 0xad, 0xbe, 0xef}},
		{"de ad be ef", FormatHex, []byte{0xde, 0xad, 0xbe, 0xef}},
		{"0xde,0xad", FormatHex, []byte{0xde, 0xad}},
		{"de:ad:be:ef", FormatHex, []byte{0xde, 0xad, 0xbe, 0xef}},
		{"", FormatHex, []byte{}},
		{"1 2 255", FormatDec, []byte{1, 2, 255}},
		{"377 0", FormatOct, []byte{0xff, 0}},
		{"11111111 00000001", FormatBin, []byte{0xff, 1}},
		{"hello", FormatASCII, []byte("hello")},
	} {
		got, err := ParseInput(tc.in, tc.format)
		if err != nil {
			t.Errorf("ParseInput(%q, %q): %v", tc.in, tc.format, err)
			continue
		}
		if !bytes.Equal(got, tc.want) {
			t.Errorf("ParseInput(%q, %q): got %x, want %x", tc.in, tc.format, got, tc.want)
		}
	}
}

func TestParseInputErrors(t *testing.T) {
	for _, tc := range []struct {
		in     string
		format string
	}{
		{"abc", FormatHex},
		{"zz", FormatHex},
		{"256", FormatDec},
		{"400", FormatOct},
		{"2", FormatBin},
		{"x", "nope"},
	} {
		if _, err := ParseInput(tc.in, tc.format); !errors.Is(err, ErrSyntax) {
			t.Errorf("ParseInput(%q, %q): got %v, want ErrSyntax", tc.in, tc.format, err)
		}
	}
}
