package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/binfiddle/binfiddle/parseutil"
)

// MaskByte is one position of a mask pattern.  A wild byte matches any
// value.
type MaskByte struct {
	Value byte
	Wild  bool
}

// Pattern is a compiled search pattern.  Exactly one of Exact, Regex, or
// Mask is set.
type Pattern struct {
	Exact []byte
	Regex *regexp.Regexp
	Mask  []MaskByte
}

// Len returns the match length in bytes, or 0 for regex patterns whose
// match length is not fixed.
func (p *Pattern) Len() int {
	switch {
	case p.Exact != nil:
		return len(p.Exact)
	case p.Mask != nil:
		return len(p.Mask)
	}
	return 0
}

// ParsePattern compiles input in the given format.  Formats hex, ascii,
// dec, oct, and bin produce exact patterns, regex compiles a [regexp]
// over raw bytes, and mask parses hex pairs where "??" or "xx" is a
// wildcard.
func ParsePattern(input, format string) (*Pattern, error) {
	switch strings.ToLower(format) {
	case "hex", "ascii", "dec", "oct", "bin", "":
		if format == "" {
			format = parseutil.FormatHex
		}
		data, err := parseutil.ParseInput(input, strings.ToLower(format))
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			return nil, ErrEmptyPattern
		}
		return &Pattern{Exact: data}, nil
	case "regex":
		re, err := regexp.Compile(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPattern, err)
		}
		return &Pattern{Regex: re}, nil
	case "mask":
		mask, err := parseMask(input)
		if err != nil {
			return nil, err
		}
		return &Pattern{Mask: mask}, nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q, supported: hex, ascii, dec, oct, bin, regex, mask",
			ErrPattern, format)
	}
}

func parseMask(input string) ([]MaskByte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
			return r
		case r == '?', r == 'x', r == 'X':
			return r
		}
		return -1
	}, input)
	if len(cleaned)%2 != 0 {
		return nil, fmt.Errorf("%w: mask needs pairs of characters, got %d", ErrPattern, len(cleaned))
	}
	var mask []MaskByte
	for i := 0; i < len(cleaned); i += 2 {
		pair := strings.ToLower(cleaned[i : i+2])
		if pair == "??" || pair == "xx" {
			mask = append(mask, MaskByte{Wild: true})
			continue
		}
		v, err := strconv.ParseUint(pair, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: bad mask byte %q", ErrPattern, pair)
		}
		mask = append(mask, MaskByte{Value: byte(v)})
	}
	if len(mask) == 0 {
		return nil, ErrEmptyPattern
	}
	return mask, nil
}
