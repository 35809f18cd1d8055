package patchfile

import (
	"errors"
	"fmt"
)

var ErrParse = errors.New("patch parse error")

// ParseError reports a malformed patch line.  It unwraps to [ErrParse].
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", ErrParse.Error(), e.Line, e.Msg)
}
