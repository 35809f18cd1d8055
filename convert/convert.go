// Package convert transforms text encodings, line endings, and byte
// order marks in binary data.
//
// Supported encodings are UTF-8, UTF-16LE, UTF-16BE, Latin-1, and
// Windows-1252.  The conversion pipeline strips any leading BOM,
// decodes from the source encoding, rewrites line endings, encodes to
// the target encoding, and finally applies the BOM mode.
//
// # Usage
//
//	out, err := convert.Convert(data,
//		convert.From(convert.UTF16LE),
//		convert.To(convert.UTF8),
//		convert.Newlines(convert.NewlineUnix))
package convert

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var ErrEncoding = errors.New("encoding error")

// Encoding identifies a supported text encoding.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF16LE
	UTF16BE
	Latin1
	Windows1252
)

// ParseEncoding parses an encoding name.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return UTF8, nil
	case "utf-16le", "utf16le":
		return UTF16LE, nil
	case "utf-16be", "utf16be":
		return UTF16BE, nil
	case "latin-1", "latin1", "iso-8859-1":
		return Latin1, nil
	case "windows-1252", "cp1252":
		return Windows1252, nil
	default:
		return 0, fmt.Errorf("unsupported encoding %q, supported: utf-8, utf-16le, utf-16be, latin-1, windows-1252", name)
	}
}

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "UTF-8"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	case Latin1:
		return "Latin-1"
	case Windows1252:
		return "Windows-1252"
	}
	return fmt.Sprintf("<err: %d is not an encoding>", int(e))
}

// NewlineMode selects line ending conversion.
type NewlineMode int

const (
	NewlineKeep NewlineMode = iota
	NewlineUnix
	NewlineWindows
	NewlineMac
)

// ParseNewlineMode parses a newline mode name.
func ParseNewlineMode(s string) (NewlineMode, error) {
	switch strings.ToLower(s) {
	case "keep", "preserve":
		return NewlineKeep, nil
	case "unix", "lf":
		return NewlineUnix, nil
	case "windows", "crlf", "dos":
		return NewlineWindows, nil
	case "mac", "cr":
		return NewlineMac, nil
	default:
		return 0, fmt.Errorf("unknown newline mode %q, supported: unix, windows, mac, keep", s)
	}
}

// BOMMode selects byte order mark handling.
type BOMMode int

const (
	// BOMKeep emits a BOM only if the input had one.
	BOMKeep BOMMode = iota
	// BOMAdd always emits the target encoding's BOM.
	BOMAdd
	// BOMRemove never emits a BOM.
	BOMRemove
)

// ParseBOMMode parses a BOM mode name.
func ParseBOMMode(s string) (BOMMode, error) {
	switch strings.ToLower(s) {
	case "keep", "preserve":
		return BOMKeep, nil
	case "add", "yes", "true":
		return BOMAdd, nil
	case "remove", "strip", "no", "false":
		return BOMRemove, nil
	default:
		return 0, fmt.Errorf("unknown BOM mode %q, supported: add, remove, keep", s)
	}
}

// ErrorMode selects handling of bytes or characters that do not fit the
// source or target encoding.
type ErrorMode int

const (
	// ErrorReplace substitutes undecodable bytes with U+FFFD and
	// unencodable characters with '?'.
	ErrorReplace ErrorMode = iota
	// ErrorStrict fails the conversion.
	ErrorStrict
	// ErrorIgnore drops the offending bytes or characters.
	ErrorIgnore
)

// ParseErrorMode parses an error mode name.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(s) {
	case "replace", "substitute":
		return ErrorReplace, nil
	case "strict", "error", "fail":
		return ErrorStrict, nil
	case "ignore", "skip":
		return ErrorIgnore, nil
	default:
		return 0, fmt.Errorf("unknown error mode %q, supported: strict, replace, ignore", s)
	}
}

// Config holds conversion settings.
type Config struct {
	From     Encoding
	To       Encoding
	Newlines NewlineMode
	BOM      BOMMode
	OnError  ErrorMode
}

// Opt configures a conversion.
type Opt func(*Config)

// From sets the source encoding.
func From(e Encoding) Opt {
	return func(c *Config) { c.From = e }
}

// To sets the target encoding.
func To(e Encoding) Opt {
	return func(c *Config) { c.To = e }
}

// Newlines sets the line ending mode.
func Newlines(m NewlineMode) Opt {
	return func(c *Config) { c.Newlines = m }
}

// BOM sets the byte order mark mode.
func BOM(m BOMMode) Opt {
	return func(c *Config) { c.BOM = m }
}

// OnError sets the error handling mode.
func OnError(m ErrorMode) Opt {
	return func(c *Config) { c.OnError = m }
}

var (
	bomUTF8    = []byte{0xef, 0xbb, 0xbf}
	bomUTF16BE = []byte{0xfe, 0xff}
	bomUTF16LE = []byte{0xff, 0xfe}
)

// Convert runs the conversion pipeline on input.
func Convert(input []byte, opts ...Opt) ([]byte, error) {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}

	body, hadBOM := stripBOM(input)
	text, err := decode(body, cfg.From, cfg.OnError)
	if err != nil {
		return nil, err
	}
	text = convertNewlines(text, cfg.Newlines)
	out, err := encode(text, cfg.To, cfg.OnError)
	if err != nil {
		return nil, err
	}

	switch cfg.BOM {
	case BOMAdd:
		return append(append([]byte{}, bomFor(cfg.To)...), out...), nil
	case BOMKeep:
		if hadBOM {
			return append(append([]byte{}, bomFor(cfg.To)...), out...), nil
		}
	}
	return out, nil
}

// Detect reports the encoding implied by a leading BOM, if any.
func Detect(data []byte) (Encoding, bool) {
	switch {
	case hasPrefix(data, bomUTF8):
		return UTF8, true
	case hasPrefix(data, bomUTF16BE):
		return UTF16BE, true
	case hasPrefix(data, bomUTF16LE):
		return UTF16LE, true
	}
	return 0, false
}

func hasPrefix(data, prefix []byte) bool {
	if len(data) < len(prefix) {
		return false
	}
	for i := range prefix {
		if data[i] != prefix[i] {
			return false
		}
	}
	return true
}

func stripBOM(input []byte) ([]byte, bool) {
	switch {
	case hasPrefix(input, bomUTF8):
		return input[len(bomUTF8):], true
	case hasPrefix(input, bomUTF16BE):
		return input[len(bomUTF16BE):], true
	case hasPrefix(input, bomUTF16LE):
		return input[len(bomUTF16LE):], true
	}
	return input, false
}

func bomFor(e Encoding) []byte {
	switch e {
	case UTF8:
		return bomUTF8
	case UTF16BE:
		return bomUTF16BE
	case UTF16LE:
		return bomUTF16LE
	}
	return nil
}

func decode(input []byte, from Encoding, onError ErrorMode) (string, error) {
	switch from {
	case UTF8:
		if utf8.Valid(input) {
			return string(input), nil
		}
		switch onError {
		case ErrorStrict:
			return "", fmt.Errorf("%w: input is not valid %s", ErrEncoding, UTF8)
		case ErrorIgnore:
			return strings.ToValidUTF8(string(input), ""), nil
		}
		return strings.ToValidUTF8(string(input), "�"), nil
	case UTF16LE, UTF16BE:
		endian := unicode.LittleEndian
		if from == UTF16BE {
			endian = unicode.BigEndian
		}
		dec := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()
		decoded, err := dec.Bytes(input)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		s := string(decoded)
		if strings.ContainsRune(s, utf8.RuneError) {
			switch onError {
			case ErrorStrict:
				return "", fmt.Errorf("%w: input contains invalid sequences for %s", ErrEncoding, from)
			case ErrorIgnore:
				return strings.ReplaceAll(s, "�", ""), nil
			}
		}
		return s, nil
	case Latin1:
		return decodeCharmap(input, charmap.ISO8859_1)
	case Windows1252:
		return decodeCharmap(input, charmap.Windows1252)
	}
	return "", fmt.Errorf("%w: unsupported source encoding %d", ErrEncoding, int(from))
}

// decodeCharmap never fails since single byte charmaps map every byte.
func decodeCharmap(input []byte, cm *charmap.Charmap) (string, error) {
	var b strings.Builder
	b.Grow(len(input))
	for _, c := range input {
		b.WriteRune(cm.DecodeByte(c))
	}
	return b.String(), nil
}

func encode(text string, to Encoding, onError ErrorMode) ([]byte, error) {
	switch to {
	case UTF8:
		return []byte(text), nil
	case UTF16LE, UTF16BE:
		endian := unicode.LittleEndian
		if to == UTF16BE {
			endian = unicode.BigEndian
		}
		enc := unicode.UTF16(endian, unicode.IgnoreBOM).NewEncoder()
		out, err := enc.Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		return out, nil
	case Latin1:
		return encodeCharmap(text, charmap.ISO8859_1, to, onError)
	case Windows1252:
		return encodeCharmap(text, charmap.Windows1252, to, onError)
	}
	return nil, fmt.Errorf("%w: unsupported target encoding %d", ErrEncoding, int(to))
}

func encodeCharmap(text string, cm *charmap.Charmap, to Encoding, onError ErrorMode) ([]byte, error) {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := cm.EncodeRune(r)
		if ok {
			out = append(out, b)
			continue
		}
		switch onError {
		case ErrorStrict:
			return nil, fmt.Errorf("%w: %q cannot be represented in %s", ErrEncoding, r, to)
		case ErrorIgnore:
		default:
			out = append(out, '?')
		}
	}
	return out, nil
}

func convertNewlines(text string, mode NewlineMode) string {
	switch mode {
	case NewlineUnix:
		return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
	case NewlineWindows:
		lf := strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
		return strings.ReplaceAll(lf, "\n", "\r\n")
	case NewlineMac:
		return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\r"), "\n", "\r")
	}
	return text
}
