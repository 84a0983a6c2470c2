package ndef

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/wippyai/go-ndef/errors"
)

func TestDecodeRaw(t *testing.T) {
	long := bytes.Repeat([]byte{0xAB}, 256)

	tests := []struct {
		name     string
		data     []byte
		want     RawRecord
		consumed int
	}{
		{
			name: "short well-known",
			data: []byte{0xD1, 0x01, 0x05, 'U', 0x04, 'x', '.', 'i', 'o'},
			want: RawRecord{
				Begin: true, End: true, ShortRecord: true, TNF: TNFWellKnown,
				Type: []byte("U"), Payload: []byte{0x04, 'x', '.', 'i', 'o'},
				AbstractIndex: -1,
			},
			consumed: 9,
		},
		{
			name: "long mime",
			data: append([]byte{0xC2, 0x0A, 0x00, 0x00, 0x01, 0x00}, append([]byte("text/plain"), long...)...),
			want: RawRecord{
				Begin: true, End: true, TNF: TNFMime,
				Type: []byte("text/plain"), Payload: long,
				AbstractIndex: -1,
			},
			consumed: 6 + 10 + 256,
		},
		{
			name: "id after payload",
			data: []byte{0x99, 0x01, 0x01, 0x02, 'T', 'x', 'i', 'd'},
			want: RawRecord{
				Begin: true, ShortRecord: true, IDLengthPresent: true, TNF: TNFWellKnown,
				Type: []byte("T"), Payload: []byte("x"), ID: []byte("id"),
				AbstractIndex: -1,
			},
			consumed: 8,
		},
		{
			name: "empty record",
			data: []byte{0xD0, 0x00, 0x00},
			want: RawRecord{
				Begin: true, End: true, ShortRecord: true, TNF: TNFEmpty,
				AbstractIndex: -1,
			},
			consumed: 3,
		},
		{
			name: "chunk flag is kept",
			data: []byte{0xB5, 0x00, 0x01, 0x42, 0xFF},
			want: RawRecord{
				Begin: true, Chunked: true, ShortRecord: true, TNF: TNFUnknown,
				Payload: []byte{0x42}, AbstractIndex: -1,
			},
			consumed: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := DecodeRaw(tt.data, nil)
			if err != nil {
				t.Fatalf("DecodeRaw: %v", err)
			}
			if n != tt.consumed {
				t.Errorf("consumed = %d, want %d", n, tt.consumed)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("record = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeRawCopiesFields(t *testing.T) {
	data := []byte{0xD1, 0x01, 0x02, 'U', 0x00, 'a'}
	rec, _, err := DecodeRaw(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	data[3] = 'X'
	data[5] = 'b'
	if string(rec.Type) != "U" || rec.Payload[1] != 'a' {
		t.Errorf("decoded record aliases the input: %+v", rec)
	}
}

func TestDecodeRawTruncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"one byte", []byte{0xD1}},
		{"two bytes", []byte{0xD1, 0x01}},
		{"long length cut", []byte{0xC1, 0x01, 0x00, 0x00}},
		{"id length missing", []byte{0xD9, 0x01, 0x01}},
		{"type cut", []byte{0xD1, 0x04, 0x00, 'a', 'b'}},
		{"payload cut", []byte{0xD1, 0x01, 0x05, 'U', 0x01, 'a'}},
		{"id cut", []byte{0xD9, 0x01, 0x01, 0x03, 'T', 'x', 'i'}},
		{"huge long length", []byte{0xC1, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, n, err := DecodeRaw(tt.data, nil)
			if !errors.Is(err, errors.ErrTruncated) {
				t.Fatalf("err = %v, want truncated", err)
			}
			if n != 0 {
				t.Errorf("consumed = %d, want 0", n)
			}
			if !reflect.DeepEqual(rec, RawRecord{}) {
				t.Errorf("partial record returned: %+v", rec)
			}
		})
	}
}

func TestDecodeRawAllocationFailure(t *testing.T) {
	data := []byte{0xD1, 0x01, 0x02, 'U', 0x00, 'a'}
	_, n, err := DecodeRaw(data, &faultAllocator{failAt: 2})
	if !errors.Is(err, errors.ErrOutOfMemory) {
		t.Fatalf("err = %v, want out_of_memory", err)
	}
	if n != 0 {
		t.Errorf("consumed = %d, want 0", n)
	}
}

func TestEncoderWriteRaw(t *testing.T) {
	tests := []struct {
		name string
		rec  RawRecord
		want []byte
	}{
		{
			name: "short record",
			rec: RawRecord{
				Begin: true, End: true, ShortRecord: true, TNF: TNFWellKnown,
				Type: []byte("U"), Payload: []byte{0x01, 'a'},
			},
			want: []byte{0xD1, 0x01, 0x02, 'U', 0x01, 'a'},
		},
		{
			name: "long record",
			rec: RawRecord{
				TNF: TNFMime, Type: []byte("a/b"), Payload: []byte{1, 2},
			},
			want: []byte{0x02, 0x03, 0x00, 0x00, 0x00, 0x02, 'a', '/', 'b', 1, 2},
		},
		{
			name: "id written after payload",
			rec: RawRecord{
				ShortRecord: true, IDLengthPresent: true, TNF: TNFExternal,
				Type: []byte("t"), Payload: []byte("p"), ID: []byte("id"),
			},
			want: []byte{0x1C, 0x01, 0x01, 0x02, 't', 'p', 'i', 'd'},
		},
		{
			name: "id length flag without id",
			rec: RawRecord{
				ShortRecord: true, IDLengthPresent: true, TNF: TNFUnknown,
			},
			want: []byte{0x1D, 0x00, 0x00, 0x00},
		},
		{
			name: "id ignored without flag",
			rec: RawRecord{
				ShortRecord: true, TNF: TNFUnknown, ID: []byte("lost"),
			},
			want: []byte{0x15, 0x00, 0x00},
		},
		{
			name: "tnf masked to three bits",
			rec: RawRecord{
				ShortRecord: true, TNF: TNF(0x0F),
			},
			want: []byte{0x17, 0x00, 0x00},
		},
		{
			name: "chunk flag",
			rec: RawRecord{
				Chunked: true, ShortRecord: true, TNF: TNFUnchanged, Payload: []byte{9},
			},
			want: []byte{0x36, 0x00, 0x01, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewEncoder(nil)
			if err := enc.WriteRaw(&tt.rec); err != nil {
				t.Fatalf("WriteRaw: %v", err)
			}
			if !bytes.Equal(enc.Bytes(), tt.want) {
				t.Errorf("encoded = % x, want % x", enc.Bytes(), tt.want)
			}
		})
	}
}

func TestEncoderRejectsOversizedFields(t *testing.T) {
	enc := NewEncoder(nil)

	err := enc.WriteRaw(&RawRecord{Type: make([]byte, 256)})
	if !errors.Is(err, errors.ErrTooLarge) {
		t.Errorf("type 256: got %v", err)
	}

	err = enc.WriteRaw(&RawRecord{ShortRecord: true, Payload: make([]byte, 256)})
	if !errors.Is(err, errors.ErrTooLarge) {
		t.Errorf("short payload 256: got %v", err)
	}

	if enc.Len() != 0 {
		t.Errorf("rejected records left %d bytes", enc.Len())
	}
}

func TestEncoderRollsBackFailedRecord(t *testing.T) {
	rec := RawRecord{
		ShortRecord: true, TNF: TNFWellKnown,
		Type: []byte("U"), Payload: []byte{0x04, 'x', '.', 'i', 'o'},
	}

	// The first record grows the buffer to 1, 2, 4 and then 16 bytes.
	enc := NewEncoder(NewBudget(31))
	if err := enc.WriteRaw(&rec); err != nil {
		t.Fatalf("first record: %v", err)
	}
	first := append([]byte(nil), enc.Bytes()...)

	err := enc.WriteRaw(&rec)
	if !errors.Is(err, errors.ErrOutOfMemory) {
		t.Fatalf("second record: got %v, want out_of_memory", err)
	}
	if !bytes.Equal(enc.Bytes(), first) {
		t.Errorf("buffer after failed record = % x, want % x", enc.Bytes(), first)
	}
}

func TestRawRecordRoundTrip(t *testing.T) {
	in := RawRecord{
		Begin: true, IDLengthPresent: true, TNF: TNFURI,
		Type: []byte("urn:x"), Payload: bytes.Repeat([]byte("z"), 300), ID: []byte{7},
		AbstractIndex: -1,
	}
	enc := NewEncoder(nil)
	if err := enc.WriteRaw(&in); err != nil {
		t.Fatal(err)
	}
	out, n, err := DecodeRaw(enc.Bytes(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != enc.Len() {
		t.Errorf("consumed %d of %d", n, enc.Len())
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
