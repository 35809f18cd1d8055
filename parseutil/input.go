package parseutil

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Input formats accepted by ParseInput.
const (
	FormatHex   = "hex"
	FormatDec   = "dec"
	FormatOct   = "oct"
	FormatBin   = "bin"
	FormatASCII = "ascii"
)

// ParseInput parses textual byte data in the given format.  Hex input may
// contain spaces, commas, colons, or 0x prefixes between bytes.  Decimal,
// octal, and binary input is whitespace or comma separated, one byte per
// token.  ASCII input is taken verbatim.
func ParseInput(s, format string) ([]byte, error) {
	switch format {
	case FormatHex, "":
		return parseHexInput(s)
	case FormatDec:
		return parseNumericInput(s, 10)
	case FormatOct:
		return parseNumericInput(s, 8)
	case FormatBin:
		return parseNumericInput(s, 2)
	case FormatASCII:
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("%w: unknown input format %q", ErrSyntax, format)
	}
}

func parseHexInput(s string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ',', ':', '_':
			return -1
		}
		return r
	}, s)
	cleaned = strings.ReplaceAll(cleaned, "0x", "")
	cleaned = strings.ReplaceAll(cleaned, "0X", "")
	if len(cleaned)%2 != 0 {
		return nil, fmt.Errorf("%w: hex input has odd number of digits (%d)", ErrSyntax, len(cleaned))
	}
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hex input: %v", ErrSyntax, err)
	}
	return data, nil
}

func parseNumericInput(s string, base int) ([]byte, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ','
	})
	data := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, base, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid base-%d byte %q", ErrSyntax, base, f)
		}
		data = append(data, byte(v))
	}
	return data, nil
}
