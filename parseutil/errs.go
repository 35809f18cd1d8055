package parseutil

import "errors"

var (
	ErrSyntax = errors.New("syntax error")
	ErrBounds = errors.New("out of bounds")
)
