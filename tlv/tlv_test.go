package tlv

import (
	"bytes"
	"testing"

	"github.com/wippyai/go-ndef/errors"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		header []byte
	}{
		{"empty", 0, []byte{0x03, 0x00}},
		{"short", 15, []byte{0x03, 0x0F}},
		{"largest short", 254, []byte{0x03, 0xFE}},
		{"smallest long", 255, []byte{0x03, 0xFF, 0x00, 0xFF}},
		{"long", 0x1234, []byte{0x03, 0xFF, 0x12, 0x34}},
		{"largest", MaxLength, []byte{0x03, 0xFF, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := bytes.Repeat([]byte{0xAA}, tt.size)
			got, err := Wrap(msg)
			if err != nil {
				t.Fatalf("Wrap: %v", err)
			}
			if !bytes.HasPrefix(got, tt.header) {
				t.Errorf("header = % x, want % x", got[:len(tt.header)], tt.header)
			}
			if len(got) != len(tt.header)+tt.size+1 || got[len(got)-1] != TagTerminator {
				t.Errorf("len = %d, last = 0x%02x", len(got), got[len(got)-1])
			}
		})
	}
}

func TestWrapTooLarge(t *testing.T) {
	_, err := Wrap(make([]byte, MaxLength+1))
	if !errors.Is(err, errors.ErrTooLarge) {
		t.Errorf("err = %v, want too_large", err)
	}
}

func TestFind(t *testing.T) {
	msg := []byte{0xD1, 0x01, 0x02, 'U', 0x00, 'a'}

	tests := []struct {
		name string
		data []byte
	}{
		{"bare", append([]byte{0x03, 0x06}, append(msg, 0xFE)...)},
		{"leading nulls", append([]byte{0x00, 0x00, 0x03, 0x06}, msg...)},
		{"after lock and memory control", append([]byte{
			0x01, 0x03, 0xA0, 0x10, 0x44,
			0x02, 0x03, 0x00, 0x00, 0x00,
			0x03, 0x06,
		}, msg...)},
		{"after proprietary long block", append(append([]byte{0xFD, 0xFF, 0x01, 0x00}, make([]byte, 256)...), append([]byte{0x03, 0x06}, msg...)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(tt.data)
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			if !bytes.Equal(got, msg) {
				t.Errorf("Find = % x, want % x", got, msg)
			}
		})
	}
}

func TestFindErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want *errors.Error
	}{
		{"empty", nil, errors.ErrNoInput},
		{"terminator first", []byte{0xFE, 0x03, 0x01, 0x00}, errors.ErrNoInput},
		{"only nulls", []byte{0x00, 0x00}, errors.ErrNoInput},
		{"missing length", []byte{0x03}, errors.ErrTruncated},
		{"short long length", []byte{0x03, 0xFF, 0x01}, errors.ErrTruncated},
		{"value cut", []byte{0x03, 0x05, 0xD1}, errors.ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Find(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWrapFindRoundTrip(t *testing.T) {
	for _, size := range []int{1, 254, 255, 1000} {
		msg := bytes.Repeat([]byte{byte(size)}, size)
		wrapped, err := Wrap(msg)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Find(wrapped)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if !bytes.Equal(got, msg) {
			t.Errorf("size %d: round trip mismatch", size)
		}
	}
}
