// Package ndef decodes and encodes NDEF (NFC Data Exchange Format) messages.
//
// An NDEF message is a sequence of typed records as stored on NFC tags and
// exchanged between NFC devices. This package implements the binary record
// codec, the message codec and the ordered record store; interpreters for
// the NFC Forum well-known URI, Text and Smart Poster records live in the
// wellknown package.
//
// # Architecture Overview
//
//	ndef/                Records, raw record codec, message codec, record store
//	├── wellknown/       URI, Text and Smart Poster record interpreters
//	├── inspect/         Depth-bounded diagnostic tree and hexdump rendering
//	├── tlv/             Type 2 tag TLV container (tag memory dumps)
//	├── errors/          Structured error types
//	└── cmd/ndef/        Command line inspector and encoder
//
// # Record Format
//
// Every physical record starts with a flags byte:
//
//	bit 7  MB   message begin
//	bit 6  ME   message end
//	bit 5  CF   chunk flag
//	bit 4  SR   short record (1-byte payload length)
//	bit 3  IL   id length present
//	bit 2-0     type name format (TNF)
//
// followed by the type length (1 byte), the payload length (1 byte when SR is
// set, otherwise 4 bytes big-endian), the id length (1 byte, only when IL is
// set), and then the type, payload and id bytes in that order.
//
// # Decoding
//
// Decode is best-effort. It returns every record that decoded before the
// first malformed one and reports the rest through DecodeResult.Partial:
//
//	res := ndef.Decode(data)
//	if res.Message == nil {
//	    return errNoData
//	}
//	if res.Partial {
//	    log.Printf("partial decode: %v", res.Cause)
//	}
//	for _, rec := range res.Message.Records() {
//	    fmt.Println(rec.TNF, string(rec.Type))
//	}
//
// DecodeStrict rejects any input that is not entirely well-formed.
//
// Chunked records (CF) are not reassembled: each physical record becomes
// its own abstract record.
//
// # Encoding
//
//	msg := ndef.NewMessage()
//	_ = msg.Append(ndef.Move, wellknown.NewURIRecord("https://example.com"))
//	data, err := msg.Encode()
//
// Encode recomputes the MB/ME flags, picks the short form for payloads up to
// 255 bytes and writes the id length only for records that carry an id.
//
// # Ownership and Memory
//
// A Message owns its records' buffers. Insert and Append take records either
// by Copy (fields are cloned) or by Move (the caller's slices are stored and
// must not be used by the caller afterwards). Every store operation is
// atomic: if it fails, the message is unchanged.
//
// All buffers come from the message's Allocator. The default allocates from
// the Go heap; a Budget caps the total number of bytes a message may use,
// which bounds the work done on untrusted tag data:
//
//	res := ndef.Decode(data, ndef.WithAllocator(ndef.NewBudget(64<<10)))
//
// # Thread Safety
//
// A Message is not safe for concurrent use. Separate messages share no state.
package ndef
