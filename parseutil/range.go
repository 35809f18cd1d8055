package parseutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/binfiddle/binfiddle/libdiff"
)

// ParseRange parses a range specification against data of length dataLen
// and returns a half-open [start, end) interval.
//
// Accepted forms:
//
//	"10"          single byte, [10, 11)
//	"10..20"      [10, 20)
//	"..20"        [0, 20)
//	"10.."        [10, dataLen)
//	".."          [0, dataLen)
//	"0x100..0x200" hex bounds
func ParseRange(s string, dataLen int) (int, int, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "..") {
		idx, err := ParseNumber(s)
		if err != nil {
			return 0, 0, err
		}
		if idx >= dataLen {
			return 0, 0, fmt.Errorf("%w: index %d (data length %d)", ErrBounds, idx, dataLen)
		}
		return idx, idx + 1, nil
	}

	parts := strings.Split(s, "..")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: invalid range %q, expected 'start..end', '..end', 'start..' or '..'",
			ErrSyntax, s)
	}
	start, end := 0, dataLen
	var err error
	if parts[0] != "" {
		if start, err = ParseNumber(parts[0]); err != nil {
			return 0, 0, err
		}
	}
	explicitEnd := parts[1] != ""
	if explicitEnd {
		if end, err = ParseNumber(parts[1]); err != nil {
			return 0, 0, err
		}
	}
	if start > dataLen {
		return 0, 0, fmt.Errorf("%w: start %d exceeds data length %d", ErrBounds, start, dataLen)
	}
	if explicitEnd {
		if end > dataLen {
			return 0, 0, fmt.Errorf("%w: end %d exceeds data length %d", ErrBounds, end, dataLen)
		}
		if start >= end {
			return 0, 0, fmt.Errorf("%w: start %d must be less than end %d", ErrBounds, start, end)
		}
	}
	return start, end, nil
}

// ParseIgnoreRanges parses a comma-separated list of range specifications
// into an ignore mask.  A bare index covers a single byte.  The empty
// string yields a nil mask.
func ParseIgnoreRanges(s string) (libdiff.IgnoreMask, error) {
	if s == "" {
		return nil, nil
	}
	var mask libdiff.IgnoreMask
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		start, end, err := ParseRange(part, math.MaxInt)
		if err != nil {
			return nil, fmt.Errorf("ignore range %q: %w", part, err)
		}
		mask = append(mask, libdiff.Range{Start: start, End: end})
	}
	return mask, nil
}

// ParseNumber parses a decimal or hexadecimal number.  A 0x prefix forces
// hex, and a leading zero followed by hex digits implies hex ("0100" is
// 256).
func ParseNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty number", ErrSyntax)
	}
	if rest, ok := cutHexPrefix(s); ok {
		v, err := strconv.ParseUint(rest, 16, 63)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid hexadecimal %q", ErrSyntax, s)
		}
		return int(v), nil
	}
	if len(s) > 1 && s[0] == '0' && allHexDigits(s[1:]) {
		v, err := strconv.ParseUint(s[1:], 16, 63)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid hexadecimal %q", ErrSyntax, s)
		}
		return int(v), nil
	}
	v, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid decimal %q", ErrSyntax, s)
	}
	return int(v), nil
}

func cutHexPrefix(s string) (string, bool) {
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		return rest, true
	}
	return strings.CutPrefix(s, "0X")
}

func allHexDigits(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
