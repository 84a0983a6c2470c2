package ndef

import (
	"github.com/wippyai/go-ndef/errors"
)

// Allocator supplies every buffer a Message or Encoder owns. Go allocation
// does not fail recoverably, so the allocator is where memory limits and
// out-of-memory conditions are expressed.
type Allocator interface {
	// Alloc returns a fresh zeroed buffer of n bytes.
	Alloc(n int) ([]byte, error)
	// Reserve accounts for n bytes of bookkeeping memory, such as growth of
	// a record slice, that is not handed out as a byte buffer.
	Reserve(n int) error
}

// HeapAllocator allocates from the Go heap and never fails.
type HeapAllocator struct{}

// Alloc implements Allocator.
func (HeapAllocator) Alloc(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// Reserve implements Allocator.
func (HeapAllocator) Reserve(int) error {
	return nil
}

// Budget is an Allocator with a cumulative byte limit. Requests that would
// exceed the limit fail with errors.KindOutOfMemory and are not counted.
// Granted requests stay charged for the life of the Budget, including those
// made by an operation that later fails and is rolled back, and memory a
// message drops through Splice or Clear. A Budget therefore bounds the total
// work done against it, not the live size of a message.
// A Budget is not safe for concurrent use.
type Budget struct {
	limit int64
	used  int64
}

// NewBudget creates a Budget that allows up to limit bytes in total.
func NewBudget(limit int64) *Budget {
	return &Budget{limit: limit}
}

// Alloc implements Allocator.
func (b *Budget) Alloc(n int) ([]byte, error) {
	if err := b.take(n); err != nil {
		return nil, err
	}
	return make([]byte, n), nil
}

// Reserve implements Allocator.
func (b *Budget) Reserve(n int) error {
	return b.take(n)
}

// Used returns the number of bytes handed out so far.
func (b *Budget) Used() int64 {
	return b.used
}

// Remaining returns the number of bytes still available.
func (b *Budget) Remaining() int64 {
	return b.limit - b.used
}

func (b *Budget) take(n int) error {
	if n < 0 || b.used+int64(n) > b.limit {
		Logger().Sugar().Debugf("allocation of %d bytes refused (%d of %d used)", n, b.used, b.limit)
		return errors.OutOfMemory(errors.PhaseStore, n)
	}
	b.used += int64(n)
	return nil
}

func allocOrDefault(a Allocator) Allocator {
	if a == nil {
		return HeapAllocator{}
	}
	return a
}

// cloneBytes copies b into a buffer from a. Empty input yields nil so that
// absent fields stay absent.
func cloneBytes(a Allocator, b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, nil
	}
	buf, err := a.Alloc(len(b))
	if err != nil {
		return nil, err
	}
	copy(buf, b)
	return buf, nil
}
