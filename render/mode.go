package render

import (
	"errors"
	"fmt"
)

// Mode selects the diff output format.
type Mode int

const (
	ModeSimple Mode = iota
	ModeUnified
	ModeSideBySide
	ModePatch
	ModeSummary
)

var ErrBadMode = errors.New("bad diff format")

// ParseMode parses a diff format name.
func ParseMode(v string) (Mode, error) {
	m, ok := map[string]Mode{
		"simple":       ModeSimple,
		"unified":      ModeUnified,
		"side-by-side": ModeSideBySide,
		"sidebyside":   ModeSideBySide,
		"side":         ModeSideBySide,
		"patch":        ModePatch,
		"summary":      ModeSummary,
	}[v]
	if ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadMode, v)
}

func (m Mode) String() string {
	d, err := m.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case ModeSimple:
		return []byte("simple"), nil
	case ModeUnified:
		return []byte("unified"), nil
	case ModeSideBySide:
		return []byte("side-by-side"), nil
	case ModePatch:
		return []byte("patch"), nil
	case ModeSummary:
		return []byte("summary"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a diff format>", m)
	}
}

func (m *Mode) UnmarshalText(d []byte) error {
	pm, err := ParseMode(string(d))
	if err != nil {
		return err
	}
	*m = pm
	return nil
}

// AutoSelect picks a format from the differing byte count relative to
// the larger input size.  Sparse diffs list every span, moderate diffs
// get grouped hunks, and heavily divergent inputs get a summary.
func AutoSelect(diffBytes, size int) Mode {
	if size == 0 || diffBytes == 0 {
		return ModeSimple
	}
	ratio := float64(diffBytes) / float64(size)
	switch {
	case ratio < 0.01:
		return ModeSimple
	case ratio < 0.50:
		return ModeUnified
	default:
		return ModeSummary
	}
}
