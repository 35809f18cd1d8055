// Package display formats raw bytes into textual representations.
//
// Bytes are split into chunks of a given bit width, extracted MSB first,
// and rendered in hex, decimal, octal, binary, or ASCII.
//
// # Usage
//
//	s, err := display.Bytes(data, "hex", 8, 16)
//
// # Related Packages
//
//   - [github.com/binfiddle/binfiddle/parseutil] parses the inverse
//     textual forms back into bytes.
package display

import (
	"errors"
	"fmt"
	"strings"
)

var ErrFormat = errors.New("unknown display format")

// Bytes formats data in the given format.  chunkSize is the number of
// bits per chunk (1..64) and width the number of chunks per line, with 0
// meaning no wrapping.  ASCII output requires 8-bit chunks.
func Bytes(data []byte, format string, chunkSize, width int) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if chunkSize < 1 || chunkSize > 64 {
		return "", fmt.Errorf("chunk size %d out of range 1..64", chunkSize)
	}
	switch strings.ToLower(format) {
	case "hex":
		return chunked(data, chunkSize, width, formatHex), nil
	case "dec":
		return chunked(data, chunkSize, width, formatDec), nil
	case "oct":
		return chunked(data, chunkSize, width, formatOct), nil
	case "bin":
		return chunked(data, chunkSize, width, formatBin), nil
	case "ascii":
		if chunkSize != 8 {
			return "", fmt.Errorf("ascii output requires 8-bit chunks, got %d", chunkSize)
		}
		return ascii(data, width), nil
	default:
		return "", fmt.Errorf("%w: %q, supported: hex, dec, oct, bin, ascii", ErrFormat, format)
	}
}

// Match formats a single search match as offset plus data.
func Match(offset int, data []byte, format string, chunkSize int) (string, error) {
	s, err := Bytes(data, format, chunkSize, 0)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("0x%08x: %s", offset, s), nil
}

// MatchContext formats a match together with surrounding bytes.
func MatchContext(offset int, match, before, after []byte, format string, chunkSize int) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Match at 0x%08x:\n", offset)
	if len(before) > 0 {
		s, err := Bytes(before, format, chunkSize, 0)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "  Before: %s\n", s)
	}
	s, err := Bytes(match, format, chunkSize, 0)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "  Match:  %s\n", s)
	if len(after) > 0 {
		s, err := Bytes(after, format, chunkSize, 0)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "  After:  %s", s)
	}
	return b.String(), nil
}

func chunked(data []byte, chunkSize, width int, formatFn func(uint64, int) string) string {
	var b strings.Builder
	totalBits := len(data) * 8
	chunksOnLine := 0
	for bitOffset := 0; bitOffset < totalBits; bitOffset += chunkSize {
		n := min(chunkSize, totalBits-bitOffset)
		if chunksOnLine > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatFn(extractBits(data, bitOffset, n), n))
		chunksOnLine++
		if width > 0 && chunksOnLine >= width && bitOffset+chunkSize < totalBits {
			b.WriteByte('\n')
			chunksOnLine = 0
		}
	}
	return b.String()
}

// extractBits reads bitCount bits starting at bitOffset, MSB first within
// each byte.
func extractBits(data []byte, bitOffset, bitCount int) uint64 {
	var v uint64
	for i := 0; i < bitCount; i++ {
		pos := bitOffset + i
		byteIndex := pos / 8
		if byteIndex >= len(data) {
			break
		}
		bit := (data[byteIndex] >> (7 - pos%8)) & 1
		v = v<<1 | uint64(bit)
	}
	return v
}

func formatHex(v uint64, bitCount int) string {
	return fmt.Sprintf("%0*x", (bitCount+3)/4, v)
}

func formatDec(v uint64, _ int) string {
	return fmt.Sprintf("%d", v)
}

func formatOct(v uint64, _ int) string {
	return fmt.Sprintf("%o", v)
}

func formatBin(v uint64, bitCount int) string {
	return fmt.Sprintf("%0*b", bitCount, v)
}

func ascii(data []byte, width int) string {
	var b strings.Builder
	charsOnLine := 0
	for i, c := range data {
		if c >= 0x20 && c <= 0x7e {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
		charsOnLine++
		if width > 0 && charsOnLine >= width && i+1 < len(data) {
			b.WriteByte('\n')
			charsOnLine = 0
		}
	}
	return b.String()
}
