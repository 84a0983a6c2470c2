package ndef

import (
	"github.com/wippyai/go-ndef/errors"
	"github.com/wippyai/go-ndef/internal/binary"
)

// minRecordLen is the smallest possible record: flags, type length and a
// short payload length.
const minRecordLen = 3

// DecodeRaw decodes one physical record from the start of data.
//
// It returns the record and the number of bytes consumed. When data does not
// hold the complete record it returns errors.KindTruncated, consumes nothing
// and returns no partial record. Type, payload and id are copied into fresh
// buffers from a; zero-length fields are nil.
func DecodeRaw(data []byte, a Allocator) (RawRecord, int, error) {
	a = allocOrDefault(a)

	if len(data) < minRecordLen {
		return RawRecord{}, 0, errors.Truncated(errors.PhaseDecode, minRecordLen, len(data))
	}

	r := binary.NewReader(data)
	flags, _ := r.ReadByte()
	rec := RawRecord{
		Begin:           flags&FlagMB != 0,
		End:             flags&FlagME != 0,
		Chunked:         flags&FlagCF != 0,
		ShortRecord:     flags&FlagSR != 0,
		IDLengthPresent: flags&FlagIL != 0,
		TNF:             TNF(flags & TNFMask),
		AbstractIndex:   -1,
	}

	header := 2
	if rec.ShortRecord {
		header++
	} else {
		header += 4
	}
	if rec.IDLengthPresent {
		header++
	}
	if len(data) < header {
		return RawRecord{}, 0, errors.Truncated(errors.PhaseDecode, header, len(data))
	}

	typeLen, _ := r.ReadByte()
	var payloadLen uint64
	if rec.ShortRecord {
		b, _ := r.ReadByte()
		payloadLen = uint64(b)
	} else {
		v, _ := r.ReadU32BE()
		payloadLen = uint64(v)
	}
	var idLen byte
	if rec.IDLengthPresent {
		idLen, _ = r.ReadByte()
	}

	total := uint64(header) + uint64(typeLen) + payloadLen + uint64(idLen)
	if uint64(len(data)) < total {
		Logger().Sugar().Debugf("record header 0x%02x: type=%d payload=%d id=%d", flags, typeLen, payloadLen, idLen)
		return RawRecord{}, 0, errors.Truncated(errors.PhaseDecode, int(min(total, uint64(maxInt))), len(data))
	}

	// The length check above guarantees these slices succeed.
	typ, _ := r.Slice(int(typeLen))
	payload, _ := r.Slice(int(payloadLen))
	id, _ := r.Slice(int(idLen))

	var err error
	if rec.Type, err = cloneBytes(a, typ); err != nil {
		return RawRecord{}, 0, err
	}
	if rec.Payload, err = cloneBytes(a, payload); err != nil {
		return RawRecord{}, 0, err
	}
	if rec.ID, err = cloneBytes(a, id); err != nil {
		return RawRecord{}, 0, err
	}

	return rec, r.Position(), nil
}

const maxInt = int(^uint(0) >> 1)

// Encoder appends encoded records to a growable output buffer. A record that
// fails to encode leaves the buffer exactly as it was before that record;
// previously written records are kept.
type Encoder struct {
	w *binary.Writer
}

// NewEncoder creates an Encoder whose buffer grows through a.
func NewEncoder(a Allocator) *Encoder {
	a = allocOrDefault(a)
	return &Encoder{w: binary.NewWriter(a.Alloc)}
}

// Bytes returns everything encoded so far.
func (e *Encoder) Bytes() []byte {
	return e.w.Bytes()
}

// Len returns the number of bytes encoded so far.
func (e *Encoder) Len() int {
	return e.w.Len()
}

// WriteRaw encodes one physical record. The flags byte and length fields are
// taken from rec as given: the id length byte and id bytes are written iff
// IDLengthPresent is set, and the payload length width follows ShortRecord.
func (e *Encoder) WriteRaw(rec *RawRecord) error {
	if err := rec.Record().Validate(errors.PhaseEncode); err != nil {
		return err
	}
	if rec.ShortRecord && len(rec.Payload) > 0xFF {
		return errors.TooLarge(errors.PhaseEncode, "payload", len(rec.Payload), 0xFF)
	}

	start := e.w.Len()
	if err := e.writeRaw(rec); err != nil {
		e.w.Truncate(start)
		return errors.Wrap(errors.PhaseEncode, errors.KindOutOfMemory, err, "grow output buffer")
	}
	return nil
}

func (e *Encoder) writeRaw(rec *RawRecord) error {
	if err := e.w.Byte(rec.Flags()); err != nil {
		return err
	}
	if err := e.w.Byte(byte(len(rec.Type))); err != nil {
		return err
	}
	if rec.ShortRecord {
		if err := e.w.Byte(byte(len(rec.Payload))); err != nil {
			return err
		}
	} else if err := e.w.WriteU32BE(uint32(len(rec.Payload))); err != nil {
		return err
	}
	if rec.IDLengthPresent {
		if err := e.w.Byte(byte(len(rec.ID))); err != nil {
			return err
		}
	}
	if err := e.w.WriteBytes(rec.Type); err != nil {
		return err
	}
	if err := e.w.WriteBytes(rec.Payload); err != nil {
		return err
	}
	if rec.IDLengthPresent {
		if err := e.w.WriteBytes(rec.ID); err != nil {
			return err
		}
	}
	return nil
}
