package binfiddle

import (
	"bytes"
	"errors"
	"fmt"
)

var ErrRange = errors.New("invalid range")

// Buffer is a mutable in-memory byte buffer with bounds-checked range
// operations.  A single command invocation owns its buffer exclusively;
// Buffer is not safe for concurrent use.
type Buffer struct {
	data []byte
}

// NewBuffer wraps data in a Buffer.  The buffer takes ownership of data.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the underlying bytes without copying.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// ReadRange returns a copy of [start, end).
func (b *Buffer) ReadRange(start, end int) ([]byte, error) {
	if err := b.checkRange(start, end); err != nil {
		return nil, err
	}
	return bytes.Clone(b.data[start:end]), nil
}

// WriteRange overwrites len(p) bytes at start.
func (b *Buffer) WriteRange(start int, p []byte) error {
	if start < 0 || start+len(p) > len(b.data) {
		return fmt.Errorf("%w: write of %d bytes at %d exceeds length %d",
			ErrRange, len(p), start, len(b.data))
	}
	copy(b.data[start:], p)
	return nil
}

// Insert splices p into the buffer at pos, growing it by len(p).
func (b *Buffer) Insert(pos int, p []byte) error {
	if pos < 0 || pos > len(b.data) {
		return fmt.Errorf("%w: insert position %d out of bounds (length %d)",
			ErrRange, pos, len(b.data))
	}
	b.data = append(b.data[:pos], append(bytes.Clone(p), b.data[pos:]...)...)
	return nil
}

// RemoveRange deletes [start, end), shrinking the buffer.
func (b *Buffer) RemoveRange(start, end int) error {
	if err := b.checkRange(start, end); err != nil {
		return err
	}
	b.data = append(b.data[:start], b.data[end:]...)
	return nil
}

// Replace substitutes [start, end) with p, adjusting length as needed.
func (b *Buffer) Replace(start, end int, p []byte) error {
	if err := b.RemoveRange(start, end); err != nil {
		return err
	}
	return b.Insert(start, p)
}

func (b *Buffer) checkRange(start, end int) error {
	if start < 0 || start >= len(b.data) || end > len(b.data) || start >= end {
		return fmt.Errorf("%w: [%d, %d) of %d bytes", ErrRange, start, end, len(b.data))
	}
	return nil
}
