// Package tlv wraps NDEF messages in the TLV blocks used by NFC Forum Type 2
// tags and finds them again in a tag's data area.
//
// A data area is a sequence of blocks. NULL and Terminator blocks are a
// single tag byte; every other block carries a length of one byte, or 0xFF
// followed by a big-endian uint16 for lengths of 255 and above:
//
//	03 0F D1 01 0B 55 04 ... FE
//	^  ^  NDEF message      ^ terminator
//	|  length
//	NDEF message TLV
package tlv

import (
	"fmt"

	"github.com/wippyai/go-ndef/errors"
	"github.com/wippyai/go-ndef/internal/binary"
)

// Block tags.
const (
	TagNull        byte = 0x00
	TagLockControl byte = 0x01
	TagMemControl  byte = 0x02
	TagNDEF        byte = 0x03
	TagProprietary byte = 0xFD
	TagTerminator  byte = 0xFE
)

const (
	longLength = 0xFF
	// MaxLength is the largest value a TLV length field can express.
	MaxLength = 0xFFFF
)

// Wrap returns msg as an NDEF message TLV followed by a Terminator TLV.
func Wrap(msg []byte) ([]byte, error) {
	if len(msg) > MaxLength {
		return nil, errors.TooLarge(errors.PhaseEncode, "tlv", len(msg), MaxLength)
	}

	w := binary.NewWriter(nil)
	// The heap writer never fails.
	_ = w.Byte(TagNDEF)
	if len(msg) < longLength {
		_ = w.Byte(byte(len(msg)))
	} else {
		_ = w.Byte(longLength)
		_ = w.WriteU16BE(uint16(len(msg)))
	}
	_ = w.WriteBytes(msg)
	_ = w.Byte(TagTerminator)
	return w.Bytes(), nil
}

// Find returns the value of the first NDEF message TLV in data. The returned
// slice aliases data.
//
// It fails with errors.KindNoInput if a Terminator block or the end of data
// is reached first, and with errors.KindTruncated if a block runs past the
// end of data.
func Find(data []byte) ([]byte, error) {
	r := binary.NewReader(data)
	for r.Remaining() > 0 {
		start := r.Position()
		tag, _ := r.ReadByte()
		switch tag {
		case TagNull:
			continue
		case TagTerminator:
			return nil, notFound(start)
		}

		n, err := readLength(r)
		if err != nil {
			return nil, truncated(start, err)
		}
		value, err := r.Slice(n)
		if err != nil {
			return nil, truncated(start, err)
		}
		if tag == TagNDEF {
			return value, nil
		}
	}
	return nil, notFound(len(data))
}

func readLength(r *binary.Reader) (int, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if b != longLength {
		return int(b), nil
	}
	v, err := r.ReadU16BE()
	return int(v), err
}

func notFound(offset int) error {
	return errors.New(errors.PhaseParse, errors.KindNoInput).
		Value(offset).
		Detail("no NDEF message TLV before offset %d", offset).
		Build()
}

func truncated(offset int, cause error) error {
	return errors.Wrap(errors.PhaseParse, errors.KindTruncated, cause, fmt.Sprintf("TLV block at offset %d", offset))
}
