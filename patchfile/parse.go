package patchfile

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Parse reads a patch document from its text form.  Comment and blank
// lines are skipped; each remaining line must have exactly three
// colon-separated fields.  An empty hex field is a legal encoding of an
// absent side.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			scanHeaderLabel(doc, text)
			continue
		}
		entry, err := parseLine(line, text)
		if err != nil {
			return nil, err
		}
		doc.Entries = append(doc.Entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading patch: %w", err)
	}
	return doc, nil
}

func parseLine(line int, text string) (Entry, error) {
	fields := strings.Split(text, ":")
	if len(fields) != 3 {
		return Entry{}, &ParseError{
			Line: line,
			Msg:  fmt.Sprintf("expected 3 fields, got %d", len(fields)),
		}
	}
	offText := strings.TrimPrefix(strings.TrimPrefix(fields[0], "0x"), "0X")
	offset, err := strconv.ParseUint(offText, 16, 63)
	if err != nil {
		return Entry{}, &ParseError{
			Line: line,
			Msg:  fmt.Sprintf("invalid offset %q", fields[0]),
		}
	}
	old, err := parseHexField(line, "old", fields[1])
	if err != nil {
		return Entry{}, err
	}
	new, err := parseHexField(line, "new", fields[2])
	if err != nil {
		return Entry{}, err
	}
	return Entry{Offset: int(offset), Old: old, New: new}, nil
}

func parseHexField(line int, side, field string) ([]byte, error) {
	if field == "" {
		return nil, nil
	}
	if len(field)%2 != 0 {
		return nil, &ParseError{
			Line: line,
			Msg:  fmt.Sprintf("%s hex has odd digit count %d", side, len(field)),
		}
	}
	b, err := hex.DecodeString(field)
	if err != nil {
		return nil, &ParseError{
			Line: line,
			Msg:  fmt.Sprintf("invalid %s hex %q", side, field),
		}
	}
	return b, nil
}

// scanHeaderLabel recovers the source/target labels from the comment
// header so a parsed document round-trips through Encode.
func scanHeaderLabel(doc *Document, text string) {
	if v, ok := strings.CutPrefix(text, "# source: "); ok {
		doc.Source = v
	} else if v, ok := strings.CutPrefix(text, "# target: "); ok {
		doc.Target = v
	}
}
