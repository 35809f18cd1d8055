package analyze

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Output selects how analysis results are rendered.
type Output int

const (
	OutputHuman Output = iota
	OutputCSV
	OutputJSON
)

// ParseOutput parses an output format name.
func ParseOutput(s string) (Output, error) {
	switch strings.ToLower(s) {
	case "human", "text":
		return OutputHuman, nil
	case "csv":
		return OutputCSV, nil
	case "json":
		return OutputJSON, nil
	default:
		return 0, fmt.Errorf("unknown output format %q, valid: human, csv, json", s)
	}
}

type blockJSON struct {
	Offset int     `json:"offset"`
	Size   int     `json:"size"`
	Value  float64 `json:"value"`
}

type blocksJSON struct {
	Analysis string      `json:"analysis"`
	Blocks   []blockJSON `json:"blocks"`
}

// FormatEntropy renders entropy block statistics.
func FormatEntropy(stats []BlockStat, blockSize int, out Output) (string, error) {
	switch out {
	case OutputHuman:
		return formatBlocksHuman(stats, blockSize, "Entropy Analysis", "%.4f bits/byte", InterpretEntropy), nil
	case OutputCSV:
		return formatBlocksCSV(stats, "entropy", "%.6f"), nil
	case OutputJSON:
		return formatBlocksJSON(stats, "entropy")
	}
	return "", fmt.Errorf("unknown output format %d", int(out))
}

// FormatIC renders index of coincidence block statistics.
func FormatIC(stats []BlockStat, blockSize int, out Output) (string, error) {
	switch out {
	case OutputHuman:
		s := formatBlocksHuman(stats, blockSize, "Index of Coincidence Analysis", "%.6f", InterpretIC)
		return s + "\nReference values:\n  Random data:  ~0.0039 (1/256)\n  English text: ~0.0667\n", nil
	case OutputCSV:
		return formatBlocksCSV(stats, "ic", "%.8f"), nil
	case OutputJSON:
		return formatBlocksJSON(stats, "ic")
	}
	return "", fmt.Errorf("unknown output format %d", int(out))
}

func formatBlocksHuman(stats []BlockStat, blockSize int, title, valueFmt string, interpret func(float64) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n", title)
	if len(stats) > 1 {
		lo, hi, sum := stats[0].Value, stats[0].Value, 0.0
		for _, s := range stats {
			lo = min(lo, s.Value)
			hi = max(hi, s.Value)
			sum += s.Value
		}
		fmt.Fprintf(&b, "Blocks: %d\n", len(stats))
		fmt.Fprintf(&b, "Block size: %d bytes\n", blockSize)
		fmt.Fprintf(&b, "Min: "+valueFmt+"\n", lo)
		fmt.Fprintf(&b, "Max: "+valueFmt+"\n", hi)
		fmt.Fprintf(&b, "Avg: "+valueFmt+"\n", sum/float64(len(stats)))
		b.WriteString("\n--- Block Details ---\n")
		for _, s := range stats {
			fmt.Fprintf(&b, "Offset 0x%08x: "+valueFmt+" (%s)\n", s.Offset, s.Value, interpret(s.Value))
		}
		return b.String()
	}
	for _, s := range stats {
		fmt.Fprintf(&b, "Size: %d bytes\n", s.Size)
		fmt.Fprintf(&b, "Value: "+valueFmt+"\n", s.Value)
		fmt.Fprintf(&b, "Interpretation: %s\n", interpret(s.Value))
	}
	return b.String()
}

func formatBlocksCSV(stats []BlockStat, name, valueFmt string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "offset,size,%s\n", name)
	for _, s := range stats {
		fmt.Fprintf(&b, "%d,%d,"+valueFmt+"\n", s.Offset, s.Size, s.Value)
	}
	return b.String()
}

func formatBlocksJSON(stats []BlockStat, name string) (string, error) {
	doc := blocksJSON{Analysis: name}
	for _, s := range stats {
		doc.Blocks = append(doc.Blocks, blockJSON{Offset: s.Offset, Size: s.Size, Value: s.Value})
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type histogramJSON struct {
	TotalBytes   int        `json:"total_bytes"`
	UniqueValues int        `json:"unique_values"`
	Frequencies  []freqJSON `json:"frequencies"`
}

type freqJSON struct {
	Byte       int     `json:"byte"`
	Hex        string  `json:"hex"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// FormatHistogram renders a byte frequency histogram.  Human output
// shows the top 20 values with a proportional bar.
func FormatHistogram(hist []Frequency, totalBytes int, out Output) (string, error) {
	switch out {
	case OutputHuman:
		return formatHistogramHuman(hist, totalBytes), nil
	case OutputCSV:
		var b strings.Builder
		b.WriteString("byte_value,hex,count,percentage\n")
		for _, f := range hist {
			fmt.Fprintf(&b, "%d,0x%02x,%d,%.4f\n", f.Byte, f.Byte, f.Count, f.Percentage)
		}
		return b.String(), nil
	case OutputJSON:
		doc := histogramJSON{TotalBytes: totalBytes, UniqueValues: len(hist)}
		for _, f := range hist {
			doc.Frequencies = append(doc.Frequencies, freqJSON{
				Byte:       int(f.Byte),
				Hex:        fmt.Sprintf("0x%02x", f.Byte),
				Count:      f.Count,
				Percentage: f.Percentage,
			})
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unknown output format %d", int(out))
}

func formatHistogramHuman(hist []Frequency, totalBytes int) string {
	var b strings.Builder
	b.WriteString("=== Byte Frequency Histogram ===\n")
	fmt.Fprintf(&b, "Total bytes: %d\n", totalBytes)
	fmt.Fprintf(&b, "Unique byte values: %d\n\n", len(hist))
	b.WriteString("Top 20 most frequent bytes:\n")
	b.WriteString("Byte   Hex   Count      Percentage  Bar\n")
	for i, f := range hist {
		if i >= 20 {
			break
		}
		barLen := min(int(f.Percentage/2+0.5), 25)
		printable := "   "
		if f.Byte >= 0x20 && f.Byte <= 0x7e {
			printable = fmt.Sprintf("'%c'", f.Byte)
		}
		fmt.Fprintf(&b, "%3s  0x%02x %10d  %6.2f%%     %s\n",
			printable, f.Byte, f.Count, f.Percentage, strings.Repeat("#", barLen))
	}
	return b.String()
}
