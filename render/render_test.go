package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/binfiddle/binfiddle/libdiff"
)

func TestParseMode(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Mode
	}{
		{"simple", ModeSimple},
		{"unified", ModeUnified},
		{"side-by-side", ModeSideBySide},
		{"sidebyside", ModeSideBySide},
		{"side", ModeSideBySide},
		{"patch", ModePatch},
		{"summary", ModeSummary},
	} {
		got, err := ParseMode(tc.in)
		if err != nil {
			t.Errorf("ParseMode(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseMode("yaml"); err == nil {
		t.Error("ParseMode(\"yaml\"): expected error")
	}
}

func TestModeString(t *testing.T) {
	if got := ModeSideBySide.String(); got != "side-by-side" {
		t.Errorf("String() = %q", got)
	}
	if got := Mode(99).String(); !strings.Contains(got, "<err:") {
		t.Errorf("String() = %q, want err marker", got)
	}
}

func TestAutoSelect(t *testing.T) {
	for _, tc := range []struct {
		diffBytes, size int
		want            Mode
	}{
		{0, 10000, ModeSimple},
		{50, 10000, ModeSimple},
		{3000, 10000, ModeUnified},
		{8000, 10000, ModeSummary},
		{5, 0, ModeSimple},
	} {
		if got := AutoSelect(tc.diffBytes, tc.size); got != tc.want {
			t.Errorf("AutoSelect(%d, %d) = %v, want %v",
				tc.diffBytes, tc.size, got, tc.want)
		}
	}
}

func diffSpans(t *testing.T, old, new []byte) []libdiff.Span {
	t.Helper()
	return libdiff.Compute(old, new, nil)
}

func TestRenderSimple(t *testing.T) {
	old := []byte{0x00, 0x11, 0x22, 0x33}
	new := []byte{0x00, 0xff, 0x22, 0x33, 0x44}
	spans := diffSpans(t, old, new)

	var buf bytes.Buffer
	if err := Render(&buf, spans, old, new); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "0x00000001: 0x11 != 0xff") {
		t.Errorf("missing changed line in:\n%s", out)
	}
	if !strings.Contains(out, "0x00000004: EOF != 0x44") {
		t.Errorf("missing added line in:\n%s", out)
	}
}

func TestRenderSimpleRemoved(t *testing.T) {
	old := []byte{0xaa, 0xbb, 0xcc}
	new := []byte{0xaa}
	spans := diffSpans(t, old, new)

	var buf bytes.Buffer
	if err := Render(&buf, spans, old, new); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "0x00000001: 0xbbcc != EOF") {
		t.Errorf("missing removed line in:\n%s", buf.String())
	}
}

func TestRenderUnified(t *testing.T) {
	old := make([]byte, 64)
	new := make([]byte, 64)
	copy(new, old)
	new[10] = 0xff
	spans := diffSpans(t, old, new)

	var buf bytes.Buffer
	err := Render(&buf, spans, old, new,
		WithMode(ModeUnified), WithLabels("a.bin", "b.bin"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"--- a.bin",
		"+++ b.bin",
		"@@ -0x7,0x",
		"-0x00000007: ",
		"+0x00000007: ",
		"|",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderUnifiedPastEOF(t *testing.T) {
	old := []byte{0x01, 0x02}
	new := []byte{0x01, 0x02, 0x03, 0x04}
	spans := diffSpans(t, old, new)

	var buf bytes.Buffer
	if err := Render(&buf, spans, old, new, WithMode(ModeUnified)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "--") {
		t.Errorf("missing EOF filler in:\n%s", buf.String())
	}
}

func TestRenderSideBySide(t *testing.T) {
	old := []byte{0x01, 0x02, 0x03, 0x04}
	new := []byte{0x01, 0xff, 0x03, 0x04}
	spans := diffSpans(t, old, new)

	var buf bytes.Buffer
	err := Render(&buf, spans, old, new,
		WithMode(ModeSideBySide), WithWidth(4))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, " ! ") {
		t.Errorf("missing diff separator in:\n%s", out)
	}
	if !strings.Contains(out, "01 ff 03 04") {
		t.Errorf("missing new bytes in:\n%s", out)
	}
}

func TestRenderSideBySideHeaderAlignment(t *testing.T) {
	// Wrapping markers stand in for color escapes; the column width must
	// follow the label's visible length, not the decorated string's.
	wrap := func(f string, a ...any) string { return "<" + fmt.Sprintf(f, a...) + ">" }
	colors := &Colors{
		Default: func(f string, a ...any) string { return fmt.Sprintf(f, a...) },
		Map: map[ColorAttr]func(string, ...any) string{
			OldColor: wrap,
			NewColor: wrap,
		},
	}

	old := []byte{0x01, 0x02, 0x03, 0x04}
	new := []byte{0x01, 0xff, 0x03, 0x04}
	spans := diffSpans(t, old, new)

	var buf bytes.Buffer
	err := Render(&buf, spans, old, new,
		WithMode(ModeSideBySide), WithWidth(4), WithColors(colors))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	half := 4*3 + 12
	want := "<old>" + strings.Repeat(" ", half-len("old")) + " | <new>"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("missing aligned header %q in:\n%s", want, buf.String())
	}
}

func TestRenderPatch(t *testing.T) {
	old := []byte{0x01, 0x02}
	new := []byte{0x01, 0xff}
	spans := diffSpans(t, old, new)

	var buf bytes.Buffer
	if err := Render(&buf, spans, old, new, WithMode(ModePatch)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "# binfiddle patch file") {
		t.Errorf("missing patch header in:\n%s", out)
	}
	if !strings.Contains(out, "0x00000001:02:ff") {
		t.Errorf("missing patch entry in:\n%s", out)
	}
}

func TestRenderSummaryMode(t *testing.T) {
	old := make([]byte, 100)
	new := make([]byte, 100)
	for i := 0; i < 30; i += 2 {
		new[i] = 0xff
	}
	spans := diffSpans(t, old, new)

	var buf bytes.Buffer
	if err := Render(&buf, spans, old, new, WithMode(ModeSummary)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Binary Diff Summary",
		"Differing bytes: 15",
		"moderate differences",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSummaryLine(t *testing.T) {
	spans := []libdiff.Span{
		{Offset: 0, Kind: libdiff.Changed, Old: []byte{1}, New: []byte{2}},
		{Offset: 4, Kind: libdiff.Added, New: []byte{3, 4}},
	}
	got := Summary(spans, 4, 6)
	for _, want := range []string{
		"2 span(s)", "1 changed", "1 added", "0 removed", "(+2 bytes)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Summary() = %q, missing %q", got, want)
		}
	}
}

func TestDiffBytes(t *testing.T) {
	spans := []libdiff.Span{
		{Offset: 0, Kind: libdiff.Changed, Old: []byte{1, 2}, New: []byte{3}},
		{Offset: 8, Kind: libdiff.Added, New: []byte{4, 5, 6}},
	}
	if got := DiffBytes(spans); got != 5 {
		t.Errorf("DiffBytes() = %d, want 5", got)
	}
}

func TestGroupHunks(t *testing.T) {
	mk := func(offsets ...int) []libdiff.Span {
		spans := make([]libdiff.Span, len(offsets))
		for i, off := range offsets {
			spans[i] = libdiff.Span{
				Offset: off, Kind: libdiff.Changed,
				Old: []byte{0}, New: []byte{1},
			}
		}
		return spans
	}
	for _, tc := range []struct {
		name  string
		spans []libdiff.Span
		want  int
	}{
		{"empty", nil, 0},
		{"single", mk(0), 1},
		{"close spans merge", mk(0, 10, 20), 1},
		{"distant spans split", mk(0, 1000), 2},
		{"moderate gap merges", mk(0, 60), 1},
	} {
		if got := len(groupHunks(tc.spans, 3)); got != tc.want {
			t.Errorf("%s: got %d hunks, want %d", tc.name, got, tc.want)
		}
	}
}

func TestRenderEmptySpans(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, nil, nil, nil, WithMode(ModeUnified)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
