package binary

import (
	"encoding/binary"
)

// GrowFunc returns a fresh buffer of exactly n bytes, or an error when the
// allocation cannot be satisfied.
type GrowFunc func(n int) ([]byte, error)

// Writer is an append-only output buffer that grows by amortized doubling
// through a caller-supplied GrowFunc. A failed grow leaves the buffer untouched.
type Writer struct {
	buf  []byte
	grow GrowFunc
}

// NewWriter creates a new Writer. A nil grow allocates from the Go heap.
func NewWriter(grow GrowFunc) *Writer {
	if grow == nil {
		grow = func(n int) ([]byte, error) { return make([]byte, n), nil }
	}
	return &Writer{grow: grow}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Cap returns the current capacity of the buffer.
func (w *Writer) Cap() int {
	return cap(w.buf)
}

// Truncate discards everything after the first n bytes.
func (w *Writer) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(w.buf) {
		w.buf = w.buf[:n]
	}
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) error {
	if err := w.ensure(1); err != nil {
		return err
	}
	w.buf = append(w.buf, b)
	return nil
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := w.ensure(len(data)); err != nil {
		return err
	}
	w.buf = append(w.buf, data...)
	return nil
}

// WriteU16BE writes a big-endian uint16 (fixed 2 bytes).
func (w *Writer) WriteU16BE(v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return w.WriteBytes(buf[:])
}

// WriteU32BE writes a big-endian uint32 (fixed 4 bytes).
func (w *Writer) WriteU32BE(v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return w.WriteBytes(buf[:])
}

func (w *Writer) ensure(n int) error {
	need := len(w.buf) + n
	if need <= cap(w.buf) {
		return nil
	}
	newCap := cap(w.buf)
	if newCap == 0 {
		newCap = 1
	}
	for newCap < need {
		newCap *= 2
	}
	nb, err := w.grow(newCap)
	if err != nil {
		return err
	}
	nb = nb[:len(w.buf)]
	copy(nb, w.buf)
	w.buf = nb
	return nil
}
