package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortBuffer is returned when a read runs past the end of the input.
var ErrShortBuffer = errors.New("binary: short buffer")

// Reader reads big-endian NDEF header fields from a byte slice with position tracking.
// Reads never copy; Slice returns views into the underlying buffer.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Need reports whether at least n more bytes are available.
func (r *Reader) Need(n int) bool {
	return n >= 0 && r.Remaining() >= n
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, r.wrapError(ErrShortBuffer)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadU16BE reads a big-endian uint16 (fixed 2 bytes).
func (r *Reader) ReadU16BE() (uint16, error) {
	buf, err := r.Slice(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// ReadU32BE reads a big-endian uint32 (fixed 4 bytes).
func (r *Reader) ReadU32BE() (uint32, error) {
	buf, err := r.Slice(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

// Slice returns the next n bytes without copying and advances the position.
func (r *Reader) Slice(n int) ([]byte, error) {
	if !r.Need(n) {
		return nil, r.wrapError(ErrShortBuffer)
	}
	b := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) wrapError(err error) error {
	return fmt.Errorf("at position %d: %w", r.pos, err)
}
