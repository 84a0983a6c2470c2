package ndef

import (
	"strconv"
	"unsafe"

	"github.com/wippyai/go-ndef/errors"
)

// InsertMode selects how Insert takes records from the caller.
type InsertMode int

const (
	// Copy clones every field of the inserted records; the caller keeps
	// its buffers and the message never aliases them.
	Copy InsertMode = iota
	// Move stores the caller's buffers verbatim. Ownership passes to the
	// message only if the call succeeds; on failure the caller still owns
	// the records.
	Move
)

func (m InsertMode) String() string {
	switch m {
	case Copy:
		return "copy"
	case Move:
		return "move"
	default:
		return "InsertMode(" + strconv.Itoa(int(m)) + ")"
	}
}

const (
	recordSize    = int(unsafe.Sizeof(Record{}))
	rawRecordSize = int(unsafe.Sizeof(RawRecord{}))
)

// Len returns the number of abstract records.
func (m *Message) Len() int {
	return len(m.records)
}

// Record returns the abstract record at index i. The returned buffers belong
// to the message and must not be modified.
func (m *Message) Record(i int) Record {
	return m.records[i]
}

// Records returns the abstract records in order. The slice and its buffers
// belong to the message and must not be modified.
func (m *Message) Records() []Record {
	return m.records[:len(m.records):len(m.records)]
}

// RawLen returns the number of cached raw records.
func (m *Message) RawLen() int {
	return len(m.raw)
}

// RawRecords returns the cached raw records in wire order. The slice and its
// buffers belong to the message and must not be modified.
func (m *Message) RawRecords() []RawRecord {
	return m.raw[:len(m.raw):len(m.raw)]
}

// Insert inserts recs before index, which is clamped to [0, Len()].
//
// Inserted records do not get corresponding raw records and their raw links
// are reset. The call is atomic: when growing the record list or cloning a
// field fails, the message is left exactly as it was and, in Move mode, the
// caller retains ownership of recs. Allocator charges made before the
// failure are not returned.
func (m *Message) Insert(index int, mode InsertMode, recs ...Record) error {
	return m.insert(index, mode, recs, false)
}

// Append inserts recs after the last record.
func (m *Message) Append(mode InsertMode, recs ...Record) error {
	return m.insert(len(m.records), mode, recs, false)
}

func (m *Message) insert(index int, mode InsertMode, recs []Record, keepLinks bool) error {
	if len(recs) == 0 {
		return nil
	}
	for i := range recs {
		if err := recs[i].Validate(errors.PhaseStore); err != nil {
			return errors.New(errors.PhaseStore, errors.KindTooLarge).
				Path("records", strconv.Itoa(i)).
				Cause(err).
				Detail("insert record %d", i).
				Build()
		}
	}

	index = min(max(index, 0), len(m.records))
	a := m.Allocator()

	grown, err := growSlice(a, m.records, len(recs), recordSize)
	if err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindOutOfMemory, err, "grow record list")
	}

	staged := recs
	if mode != Move {
		staged = make([]Record, len(recs))
		for i, r := range recs {
			c, err := r.Clone(a)
			if err != nil {
				// Clones made so far are unreachable once staged is dropped.
				return errors.New(errors.PhaseStore, errors.KindOutOfMemory).
					Path("records", strconv.Itoa(i)).
					Cause(err).
					Detail("clone record %d of %d", i, len(recs)).
					Build()
			}
			staged[i] = c
		}
	}

	old := len(grown)
	grown = grown[:old+len(recs)]
	copy(grown[index+len(recs):], grown[index:old])
	copy(grown[index:], staged)
	if !keepLinks {
		for i := index; i < index+len(recs); i++ {
			grown[i].RawIndex = 0
			grown[i].RawLen = 0
		}
	}
	m.records = grown

	for i := range m.raw {
		if m.raw[i].AbstractIndex >= index {
			m.raw[i].AbstractIndex += len(recs)
		}
	}
	return nil
}

// Splice removes count records starting at index and releases their buffers.
// Raw records owned by the removed records are dropped from the raw cache and
// the raw links of surviving records are rewritten. Out-of-range arguments
// are clamped; a count that runs past the end removes the tail.
func (m *Message) Splice(index, count int) {
	n := len(m.records)
	index = max(index, 0)
	if index >= n || count <= 0 {
		return
	}
	count = min(count, n-index)
	end := index + count

	if len(m.raw) > 0 {
		m.spliceRaw(index, end)
	}

	copy(m.records[index:], m.records[end:])
	clear(m.records[n-count:])
	m.records = m.records[:n-count]
}

// spliceRaw drops the raw records owned by abstract records [index, end) and
// rewrites every surviving link in both directions.
func (m *Message) spliceRaw(index, end int) {
	drop := make([]bool, len(m.raw))
	for _, r := range m.records[index:end] {
		for j := r.RawIndex; j < r.RawIndex+r.RawLen && j < len(m.raw); j++ {
			if j >= 0 {
				drop[j] = true
			}
		}
	}
	count := end - index

	newPos := make([]int, len(m.raw))
	kept := 0
	for j := range m.raw {
		ai := m.raw[j].AbstractIndex
		if drop[j] || (ai >= index && ai < end) {
			newPos[j] = -1
			continue
		}
		if ai >= end {
			m.raw[j].AbstractIndex = ai - count
		}
		newPos[j] = kept
		m.raw[kept] = m.raw[j]
		kept++
	}
	clear(m.raw[kept:])
	m.raw = m.raw[:kept]

	relink := func(r *Record) {
		if r.RawLen == 0 {
			return
		}
		if r.RawIndex < 0 || r.RawIndex >= len(newPos) || newPos[r.RawIndex] < 0 {
			r.RawIndex, r.RawLen = 0, 0
			return
		}
		r.RawIndex = newPos[r.RawIndex]
	}
	for i := 0; i < index; i++ {
		relink(&m.records[i])
	}
	for i := end; i < len(m.records); i++ {
		relink(&m.records[i])
	}
}

// RawClear discards the cached raw records and unlinks every abstract record
// from them. The abstract records are untouched otherwise.
func (m *Message) RawClear() {
	clear(m.raw)
	m.raw = nil
	for i := range m.records {
		m.records[i].RawIndex = 0
		m.records[i].RawLen = 0
	}
}

// Clear discards every abstract and raw record.
func (m *Message) Clear() {
	clear(m.records)
	m.records = nil
	m.RawClear()
}

// Clone returns a deep copy of the message, both record lists included, that
// shares no buffers with m. The copy uses the same allocator.
func (m *Message) Clone() (*Message, error) {
	a := m.Allocator()
	out := &Message{alloc: m.alloc}

	if len(m.records) > 0 {
		if err := a.Reserve(len(m.records) * recordSize); err != nil {
			return nil, errors.Wrap(errors.PhaseStore, errors.KindOutOfMemory, err, "clone record list")
		}
		out.records = make([]Record, len(m.records))
		for i, r := range m.records {
			c, err := r.Clone(a)
			if err != nil {
				return nil, errors.Wrap(errors.PhaseStore, errors.KindOutOfMemory, err, "clone record "+strconv.Itoa(i))
			}
			out.records[i] = c
		}
	}

	if len(m.raw) > 0 {
		if err := a.Reserve(len(m.raw) * rawRecordSize); err != nil {
			return nil, errors.Wrap(errors.PhaseStore, errors.KindOutOfMemory, err, "clone raw record list")
		}
		out.raw = make([]RawRecord, len(m.raw))
		for i, r := range m.raw {
			c, err := r.clone(a)
			if err != nil {
				return nil, errors.Wrap(errors.PhaseStore, errors.KindOutOfMemory, err, "clone raw record "+strconv.Itoa(i))
			}
			out.raw[i] = c
		}
	}

	return out, nil
}

// growSlice makes room for extra more elements, doubling the capacity until
// it fits. The allocator is charged for the new backing array before it is
// made; on failure s is returned untouched alongside the error.
func growSlice[T any](a Allocator, s []T, extra, elemSize int) ([]T, error) {
	need := len(s) + extra
	if need <= cap(s) {
		return s, nil
	}
	newCap := cap(s)
	if newCap == 0 {
		newCap = 1
	}
	for newCap < need {
		newCap *= 2
	}
	if err := a.Reserve(newCap * elemSize); err != nil {
		return s, err
	}
	grown := make([]T, len(s), newCap)
	copy(grown, s)
	return grown, nil
}
