package ndef

import (
	"strconv"

	"github.com/wippyai/go-ndef/errors"
)

// Message is an ordered sequence of abstract records together with an
// optional cache of the raw records they were decoded from.
//
// The zero value is an empty message that allocates from the Go heap.
// A Message is not safe for concurrent use.
type Message struct {
	alloc   Allocator
	records []Record
	raw     []RawRecord
}

// Option configures a Message.
type Option func(*Message)

// WithAllocator makes the message obtain every buffer from a.
func WithAllocator(a Allocator) Option {
	return func(m *Message) {
		m.alloc = a
	}
}

// NewMessage creates an empty message.
func NewMessage(opts ...Option) *Message {
	m := &Message{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Allocator returns the allocator the message draws buffers from.
func (m *Message) Allocator() Allocator {
	return allocOrDefault(m.alloc)
}

// DecodeResult is the outcome of a best-effort message decode.
type DecodeResult struct {
	// Message holds every record decoded before the first failure.
	// It is nil only when the input was empty.
	Message *Message
	// Cause is the error that stopped decoding when Partial is set.
	Cause error
	// Consumed is the number of input bytes that decoded into records.
	Consumed int
	// Partial reports that decoding stopped before the end of the input.
	Partial bool
}

// Decode parses data as an NDEF message.
//
// Decoding is best-effort: records are read until the input is exhausted or
// a record fails to decode, and whatever decoded successfully is returned
// with Partial set. Empty input yields a result with a nil Message.
//
// Chunked records are not reassembled; every physical record is promoted
// into its own abstract record.
func Decode(data []byte, opts ...Option) DecodeResult {
	if len(data) == 0 {
		return DecodeResult{}
	}

	m := NewMessage(opts...)
	res := DecodeResult{Message: m}
	for res.Consumed < len(data) {
		rec, n, err := DecodeRaw(data[res.Consumed:], m.Allocator())
		if err == nil {
			err = m.addDecoded(rec)
		}
		if err != nil {
			res.Partial = true
			res.Cause = err
			break
		}
		res.Consumed += n
	}

	if res.Partial {
		Logger().Debug("decoding is partial")
		Logger().Sugar().Debugf("stopped at offset %d of %d: %v", res.Consumed, len(data), res.Cause)
	}
	return res
}

// DecodeStrict parses data as an NDEF message and fails unless every byte
// belongs to a well-formed record.
func DecodeStrict(data []byte, opts ...Option) (*Message, error) {
	if len(data) == 0 {
		return nil, errors.NoInput(errors.PhaseDecode)
	}
	res := Decode(data, opts...)
	if res.Partial {
		return nil, errors.TrailingData(errors.PhaseDecode, res.Consumed, len(data)-res.Consumed, res.Cause)
	}
	return res.Message, nil
}

// addDecoded appends rec to the raw cache and immediately promotes it into
// an abstract record. Chunk runs are not reassembled. If promotion fails the
// raw record is dropped again so the two lists stay parallel.
func (m *Message) addDecoded(rec RawRecord) error {
	raw, err := growSlice(m.Allocator(), m.raw, 1, rawRecordSize)
	if err != nil {
		return err
	}
	i := len(raw)
	// Unlinked until promotion succeeds so insert does not shift it.
	rec.AbstractIndex = -1
	m.raw = append(raw, rec)

	abs := rec.Record()
	abs.RawIndex = i
	abs.RawLen = 1
	if err := m.insert(len(m.records), Copy, []Record{abs}, true); err != nil {
		m.raw[i] = RawRecord{}
		m.raw = m.raw[:i]
		return err
	}
	m.raw[i].AbstractIndex = len(m.records) - 1
	return nil
}

// Encode serializes the message.
//
// Any cached raw records are discarded first. Message-begin and message-end
// flags are recomputed from record positions, payloads up to 255 bytes use
// the short form and the id length is written only for records with an id.
// If any record fails to encode, no output is produced.
func (m *Message) Encode() ([]byte, error) {
	m.RawClear()

	enc := NewEncoder(m.Allocator())
	n := len(m.records)
	for i, r := range m.records {
		raw := RawRecord{
			TNF:             r.TNF,
			Type:            r.Type,
			Payload:         r.Payload,
			ID:              r.ID,
			AbstractIndex:   i,
			Begin:           i == 0,
			End:             i == n-1,
			Chunked:         false,
			ShortRecord:     uint64(len(r.Payload))&0xFFFFFF00 == 0,
			IDLengthPresent: len(r.ID) != 0,
		}
		if err := enc.WriteRaw(&raw); err != nil {
			return nil, errors.New(errors.PhaseEncode, kindOf(err)).
				Path("record", strconv.Itoa(i)).
				Cause(err).
				Detail("encode record %d of %d", i, n).
				Build()
		}
	}
	return enc.Bytes(), nil
}

func kindOf(err error) errors.Kind {
	var e *errors.Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return errors.KindInvalidInput
}
