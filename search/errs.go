package search

import "errors"

var (
	ErrEmptyPattern = errors.New("empty search pattern")
	ErrPattern      = errors.New("invalid search pattern")
)
