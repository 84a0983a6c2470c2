package ndef

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wippyai/go-ndef/errors"
)

// TNF is the 3-bit Type Name Format of a record.
type TNF uint8

// Type Name Format values as defined by the NFC Forum.
const (
	TNFEmpty     TNF = 0x00 // Empty record
	TNFWellKnown TNF = 0x01 // NFC Forum well-known type
	TNFMime      TNF = 0x02 // Media-type (RFC 2046)
	TNFURI       TNF = 0x03 // Absolute URI (RFC 3986)
	TNFExternal  TNF = 0x04 // NFC Forum external type
	TNFUnknown   TNF = 0x05 // Unknown
	TNFUnchanged TNF = 0x06 // Unchanged (chunk continuation)
	TNFReserved  TNF = 0x07 // Reserved
)

// Flag bits of the record header byte.
const (
	FlagMB  byte = 0x80 // message begin
	FlagME  byte = 0x40 // message end
	FlagCF  byte = 0x20 // chunk flag
	FlagSR  byte = 0x10 // short record
	FlagIL  byte = 0x08 // id length present
	TNFMask byte = 0x07
)

// Field length limits imposed by the wire format.
const (
	MaxTypeLen    = math.MaxUint8
	MaxIDLen      = math.MaxUint8
	MaxPayloadLen = math.MaxUint32
)

var tnfNames = [...]string{
	"EMPTY",
	"WELL_KNOWN",
	"MIME",
	"URI",
	"EXTERNAL",
	"UNKNOWN",
	"UNCHANGED",
	"RESERVED",
}

func (t TNF) String() string {
	if int(t) < len(tnfNames) {
		return tnfNames[t]
	}
	return fmt.Sprintf("TNF(%d)", uint8(t))
}

// Record is an abstract NDEF record: what an application sees once physical
// records have been promoted. Absent fields are nil.
//
// RawIndex and RawLen link the record to the raw records it was decoded
// from; both are zero for a freshly constructed record.
type Record struct {
	Type     []byte
	Payload  []byte
	ID       []byte
	RawIndex int
	RawLen   int
	TNF      TNF
}

// NewRecord builds a record from its fields. The slices are used as given;
// they become owned by a Message only through Insert/Append.
func NewRecord(tnf TNF, typ, payload, id []byte) Record {
	return Record{
		TNF:     tnf & TNF(TNFMask),
		Type:    nilIfEmpty(typ),
		Payload: nilIfEmpty(payload),
		ID:      nilIfEmpty(id),
	}
}

// Validate checks that every field fits its wire length.
func (r Record) Validate(phase errors.Phase) error {
	if len(r.Type) > MaxTypeLen {
		return errors.TooLarge(phase, "type", len(r.Type), MaxTypeLen)
	}
	if len(r.ID) > MaxIDLen {
		return errors.TooLarge(phase, "id", len(r.ID), MaxIDLen)
	}
	if uint64(len(r.Payload)) > MaxPayloadLen {
		return errors.TooLarge(phase, "payload", len(r.Payload), MaxPayloadLen)
	}
	return nil
}

// Equal reports whether two records carry the same TNF, type, payload and id.
// Raw links are not compared.
func (r Record) Equal(o Record) bool {
	return r.TNF == o.TNF &&
		bytes.Equal(r.Type, o.Type) &&
		bytes.Equal(r.Payload, o.Payload) &&
		bytes.Equal(r.ID, o.ID)
}

// IsEmpty reports whether the record carries nothing worth showing.
func (r Record) IsEmpty() bool {
	return r.TNF == TNFEmpty || (len(r.Type) == 0 && len(r.Payload) == 0 && len(r.ID) == 0)
}

// Clone returns a deep copy whose buffers come from a. On failure nothing
// allocated so far is retained.
func (r Record) Clone(a Allocator) (Record, error) {
	a = allocOrDefault(a)
	out := r
	var err error
	if out.Type, err = cloneBytes(a, r.Type); err != nil {
		return Record{}, err
	}
	if out.Payload, err = cloneBytes(a, r.Payload); err != nil {
		return Record{}, err
	}
	if out.ID, err = cloneBytes(a, r.ID); err != nil {
		return Record{}, err
	}
	return out, nil
}

// RawRecord is one physical record as it appears on the wire.
// A RawRecord always owns independent copies of its fields.
type RawRecord struct {
	Type    []byte
	Payload []byte
	ID      []byte
	// AbstractIndex is the index of the abstract record this raw record
	// was promoted into, or -1 when it is not linked.
	AbstractIndex   int
	TNF             TNF
	Begin           bool
	End             bool
	Chunked         bool
	ShortRecord     bool
	IDLengthPresent bool
}

// Flags returns the header byte for this record.
func (r *RawRecord) Flags() byte {
	flags := byte(r.TNF) & TNFMask
	if r.Begin {
		flags |= FlagMB
	}
	if r.End {
		flags |= FlagME
	}
	if r.Chunked {
		flags |= FlagCF
	}
	if r.ShortRecord {
		flags |= FlagSR
	}
	if r.IDLengthPresent {
		flags |= FlagIL
	}
	return flags
}

// Record returns the abstract view of the raw record's fields, sharing buffers.
func (r *RawRecord) Record() Record {
	return Record{TNF: r.TNF, Type: r.Type, Payload: r.Payload, ID: r.ID}
}

func (r RawRecord) clone(a Allocator) (RawRecord, error) {
	out := r
	var err error
	if out.Type, err = cloneBytes(a, r.Type); err != nil {
		return RawRecord{}, err
	}
	if out.Payload, err = cloneBytes(a, r.Payload); err != nil {
		return RawRecord{}, err
	}
	if out.ID, err = cloneBytes(a, r.ID); err != nil {
		return RawRecord{}, err
	}
	return out, nil
}

func nilIfEmpty(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
