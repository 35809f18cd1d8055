// Package render formats byte diffs for terminal output.
//
// Spans from [github.com/binfiddle/binfiddle/libdiff] are rendered in
// one of five modes: simple lists one line per span, unified groups
// spans into hunks with hex dump context, side-by-side prints both
// inputs in two columns, patch emits the machine readable patch format,
// and summary prints statistics only.
//
// # Usage
//
//	err := render.Render(os.Stdout, spans, old, new,
//		render.WithMode(render.ModeUnified),
//		render.WithLabels("a.bin", "b.bin"))
//
// # Related Packages
//
//   - [github.com/binfiddle/binfiddle/patchfile] implements the patch
//     mode's wire format.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/binfiddle/binfiddle/libdiff"
	"github.com/binfiddle/binfiddle/patchfile"
)

// Config holds rendering settings.
type Config struct {
	Mode        Mode
	Context     int
	Width       int
	SourceLabel string
	TargetLabel string
	Colors      *Colors
}

// Opt configures rendering.
type Opt func(*Config)

// WithMode sets the output format.
func WithMode(m Mode) Opt {
	return func(c *Config) { c.Mode = m }
}

// WithContext sets the number of context bytes around each hunk.
func WithContext(n int) Opt {
	return func(c *Config) { c.Context = n }
}

// WithWidth sets the number of bytes per output line.
func WithWidth(n int) Opt {
	return func(c *Config) { c.Width = n }
}

// WithLabels sets the source and target names shown in headers.
func WithLabels(source, target string) Opt {
	return func(c *Config) {
		c.SourceLabel = source
		c.TargetLabel = target
	}
}

// WithColors sets the color table.  nil renders plain text.
func WithColors(colors *Colors) Opt {
	return func(c *Config) { c.Colors = colors }
}

// Render writes spans to w in the configured mode.
func Render(w io.Writer, spans []libdiff.Span, old, new []byte, opts ...Opt) error {
	cfg := &Config{
		Mode:        ModeSimple,
		Context:     3,
		Width:       16,
		SourceLabel: "old",
		TargetLabel: "new",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Width < 1 {
		cfg.Width = 16
	}
	switch cfg.Mode {
	case ModeSimple:
		return renderSimple(w, spans, cfg)
	case ModeUnified:
		return renderUnified(w, spans, old, new, cfg)
	case ModeSideBySide:
		return renderSideBySide(w, spans, old, new, cfg)
	case ModePatch:
		return patchfile.Encode(w, patchfile.FromSpans(spans, cfg.SourceLabel, cfg.TargetLabel))
	case ModeSummary:
		return renderSummary(w, spans, len(old), len(new), cfg)
	}
	return fmt.Errorf("%w: %d", ErrBadMode, int(cfg.Mode))
}

// DiffBytes returns the number of differing byte positions the spans
// cover, counting the longer side of each span.
func DiffBytes(spans []libdiff.Span) int {
	n := 0
	for i := range spans {
		n += max(len(spans[i].Old), len(spans[i].New))
	}
	return n
}

// Summary returns a one line description of the spans.
func Summary(spans []libdiff.Span, oldLen, newLen int) string {
	var changed, added, removed int
	for i := range spans {
		switch spans[i].Kind {
		case libdiff.Changed:
			changed++
		case libdiff.Added:
			added++
		case libdiff.Removed:
			removed++
		}
	}
	return fmt.Sprintf("%d span(s): %d changed, %d added, %d removed; %s -> %s (%+d bytes)",
		len(spans), changed, added, removed,
		humanize.Bytes(uint64(oldLen)), humanize.Bytes(uint64(newLen)), newLen-oldLen)
}

func renderSimple(w io.Writer, spans []libdiff.Span, cfg *Config) error {
	for i := range spans {
		s := &spans[i]
		offset := cfg.Colors.Color(OffsetColor, fmt.Sprintf("0x%08x", s.Offset))
		if _, err := fmt.Fprintf(w, "%s: %s != %s\n",
			offset, sideString(s.Old, OldColor, cfg), sideString(s.New, NewColor, cfg)); err != nil {
			return err
		}
	}
	return nil
}

func sideString(side []byte, attr ColorAttr, cfg *Config) string {
	if len(side) == 0 {
		return cfg.Colors.Color(EOFColor, "EOF")
	}
	return cfg.Colors.Color(attr, fmt.Sprintf("0x%x", side))
}

// spanEnd is the exclusive end offset of the longer side of the span.
func spanEnd(s *libdiff.Span) int {
	return s.Offset + max(len(s.Old), len(s.New))
}

// groupHunks merges spans into hunks with adaptive gap thresholds.
// Nearby spans always merge, and larger hunks tolerate larger gaps so
// dense diffs do not fragment.
func groupHunks(spans []libdiff.Span, context int) [][]libdiff.Span {
	if len(spans) == 0 {
		return nil
	}
	var hunks [][]libdiff.Span
	current := []libdiff.Span{spans[0]}
	for _, s := range spans[1:] {
		gap := s.Offset - spanEnd(&current[len(current)-1])
		merge := false
		switch {
		case gap <= 16:
			merge = true
		case len(current) > 100 && gap <= 256:
			merge = true
		case len(current) > 20 && gap <= 128:
			merge = true
		case gap <= 64:
			merge = true
		case gap <= 2*context+1:
			merge = true
		}
		if merge {
			current = append(current, s)
		} else {
			hunks = append(hunks, current)
			current = []libdiff.Span{s}
		}
	}
	return append(hunks, current)
}

// diffSet marks every byte position a hunk's spans cover.
func diffSet(hunk []libdiff.Span) map[int]bool {
	set := map[int]bool{}
	for i := range hunk {
		for off := hunk[i].Offset; off < spanEnd(&hunk[i]); off++ {
			set[off] = true
		}
	}
	return set
}

func renderUnified(w io.Writer, spans []libdiff.Span, old, new []byte, cfg *Config) error {
	if len(spans) == 0 {
		return nil
	}
	fmt.Fprintf(w, "%s\n", cfg.Colors.Color(OldColor, "--- "+cfg.SourceLabel))
	fmt.Fprintf(w, "%s\n", cfg.Colors.Color(NewColor, "+++ "+cfg.TargetLabel))

	for _, hunk := range groupHunks(spans, cfg.Context) {
		start := max(hunk[0].Offset-cfg.Context, 0)
		last := spanEnd(&hunk[len(hunk)-1])
		end1 := min(last+cfg.Context, len(old))
		end2 := min(last+cfg.Context, len(new))
		end := max(end1, end2)

		header := fmt.Sprintf("@@ -0x%x,0x%x +0x%x,0x%x @@",
			start, max(end1-start, 0), start, max(end2-start, 0))
		fmt.Fprintf(w, "%s\n", cfg.Colors.Color(HunkColor, header))

		set := diffSet(hunk)
		for off := start; off < end; off += cfg.Width {
			lineEnd := min(off+cfg.Width, end)
			hasDiff := false
			for o := off; o < lineEnd; o++ {
				if set[o] {
					hasDiff = true
					break
				}
			}
			if hasDiff {
				writeDumpLine(w, old, off, lineEnd, '-', OldColor, set, cfg)
				writeDumpLine(w, new, off, lineEnd, '+', NewColor, set, cfg)
			} else {
				writeDumpLine(w, old, off, lineEnd, ' ', MarkerColor, set, cfg)
			}
		}
	}
	return nil
}

func writeDumpLine(w io.Writer, data []byte, start, end int, marker byte, attr ColorAttr, set map[int]bool, cfg *Config) {
	var b strings.Builder
	if marker == ' ' {
		b.WriteByte(' ')
	} else {
		b.WriteString(cfg.Colors.Color(attr, string(marker)))
	}
	fmt.Fprintf(&b, "0x%08x: ", start)
	for off := start; off < end; off++ {
		if off >= len(data) {
			b.WriteString(cfg.Colors.Color(EOFColor, "--"))
			b.WriteByte(' ')
			continue
		}
		cell := fmt.Sprintf("%02x", data[off])
		if set[off] {
			cell = cfg.Colors.Color(attr, cell)
		}
		b.WriteString(cell)
		b.WriteByte(' ')
	}
	b.WriteString(" |")
	for off := start; off < end; off++ {
		if off >= len(data) {
			b.WriteByte(' ')
			continue
		}
		c := data[off]
		if c < 0x20 || c > 0x7e {
			c = '.'
		}
		cell := string(c)
		if set[off] {
			cell = cfg.Colors.Color(attr, cell)
		}
		b.WriteString(cell)
	}
	b.WriteString("|\n")
	io.WriteString(w, b.String())
}

func renderSideBySide(w io.Writer, spans []libdiff.Span, old, new []byte, cfg *Config) error {
	if len(spans) == 0 {
		return nil
	}
	half := cfg.Width*3 + 12
	fmt.Fprintf(w, "%s | %s\n",
		padColumn(cfg.Colors.Color(OldColor, cfg.SourceLabel), len(cfg.SourceLabel), half),
		padColumn(cfg.Colors.Color(NewColor, cfg.TargetLabel), len(cfg.TargetLabel), half))
	fmt.Fprintf(w, "%s-+-%s\n", strings.Repeat("-", half), strings.Repeat("-", half))

	set := diffSet(spans)
	for _, hunk := range groupHunks(spans, cfg.Context) {
		start := max(hunk[0].Offset-cfg.Context, 0)
		start = start / cfg.Width * cfg.Width
		last := spanEnd(&hunk[len(hunk)-1])
		end := max(min(last+cfg.Context, len(old)), min(last+cfg.Context, len(new)))

		for off := start; off < end; off += cfg.Width {
			lineEnd := min(off+cfg.Width, end)
			hasDiff := false
			for o := off; o < lineEnd; o++ {
				if set[o] {
					hasDiff = true
					break
				}
			}
			sep := " | "
			if hasDiff {
				sep = " " + cfg.Colors.Color(MarkerColor, "!") + " "
			}
			left := sideLine(old, off, lineEnd, OldColor, set, cfg)
			right := sideLine(new, off, lineEnd, NewColor, set, cfg)
			fmt.Fprintf(w, "%s%s%s\n", left, sep, right)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// padColumn pads s to width based on its visible length, so color escape
// sequences do not widen the column.
func padColumn(s string, visible, width int) string {
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func sideLine(data []byte, start, end int, attr ColorAttr, set map[int]bool, cfg *Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "0x%08x: ", start)
	for off := start; off < end; off++ {
		if off >= len(data) {
			b.WriteString("   ")
			continue
		}
		cell := fmt.Sprintf("%02x", data[off])
		if set[off] {
			cell = cfg.Colors.Color(attr, cell)
		}
		b.WriteString(cell)
		b.WriteByte(' ')
	}
	return b.String()
}

func renderSummary(w io.Writer, spans []libdiff.Span, oldLen, newLen int, cfg *Config) error {
	fmt.Fprintln(w, "Binary Diff Summary")
	fmt.Fprintln(w, "===================")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Source: %s (%s)\n", cfg.SourceLabel, humanize.Bytes(uint64(oldLen)))
	fmt.Fprintf(w, "Target: %s (%s)\n", cfg.TargetLabel, humanize.Bytes(uint64(newLen)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, Summary(spans, oldLen, newLen))

	size := max(oldLen, newLen)
	if size == 0 {
		fmt.Fprintln(w, "Both inputs are empty")
		return nil
	}
	diffBytes := DiffBytes(spans)
	percent := float64(diffBytes) / float64(size) * 100
	fmt.Fprintf(w, "Differing bytes: %d (%.1f%% of larger input)\n", diffBytes, percent)
	fmt.Fprintln(w)
	switch {
	case percent > 80:
		fmt.Fprintln(w, "Inputs are substantially different (>80% changed)")
	case percent > 50:
		fmt.Fprintln(w, "Inputs have major differences (50-80% changed)")
	case percent > 10:
		fmt.Fprintln(w, "Inputs have moderate differences (10-50% changed)")
	case percent > 0:
		fmt.Fprintln(w, "Inputs have minor differences (<10% changed)")
	default:
		fmt.Fprintln(w, "Inputs are identical")
	}
	return nil
}
