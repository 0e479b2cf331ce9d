// Package buffer provides the growable byte region the tokenizer scans.
//
// A Buffer holds length valid bytes out of its capacity. Bytes before the
// consumed mark have been fully tokenized and are dropped by CompactOrGrow;
// bytes after it belong to a cell that is still being accumulated.
package buffer

import "io"

// Buffer is an owned, growable byte region with a consumed/unconsumed split.
// Invariant: 0 <= consumed <= length <= len(data).
type Buffer struct {
	data     []byte
	length   int
	consumed int
}

// New returns an empty Buffer with the given capacity. Capacities below one
// byte are raised to one so that a read always has room.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{data: make([]byte, capacity)}
}

// Bytes returns the whole backing array. Only the first Len bytes are valid.
// The slice is invalidated by the next CompactOrGrow.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of valid bytes.
func (b *Buffer) Len() int {
	return b.length
}

// Cap returns the current capacity.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Consumed returns the offset before which bytes may be discarded.
func (b *Buffer) Consumed() int {
	return b.consumed
}

// Leftover returns the number of valid bytes that are not yet consumed.
func (b *Buffer) Leftover() int {
	return b.length - b.consumed
}

// Free returns the number of bytes available at the tail.
func (b *Buffer) Free() int {
	return len(b.data) - b.length
}

// Consume marks every byte before offset as tokenized. offset is clamped to
// the valid range.
func (b *Buffer) Consume(offset int) {
	switch {
	case offset < 0:
		offset = 0
	case offset > b.length:
		offset = b.length
	}
	b.consumed = offset
}

// Fill reads once from r into the free tail of the buffer and returns the
// number of bytes appended. It follows io.Reader semantics: n > 0 may come
// with a non-nil error, and the caller must process those bytes first.
func (b *Buffer) Fill(r io.Reader) (int, error) {
	if b.Free() == 0 {
		return 0, io.ErrShortBuffer
	}
	n, err := r.Read(b.data[b.length:])
	if n < 0 || n > b.Free() {
		return 0, io.ErrNoProgress
	}
	b.length += n
	return n, err
}

// CompactOrGrow drops the consumed prefix. When more than half of the valid
// bytes are still unconsumed the capacity is doubled, otherwise the leftover
// is shifted to the front in place. It returns the number of bytes dropped
// and whether the buffer grew. Capacity never shrinks.
func (b *Buffer) CompactOrGrow() (shift int, grew bool) {
	leftover := b.length - b.consumed
	shift = b.consumed

	if leftover > b.length>>1 {
		data := make([]byte, len(b.data)<<1)
		copy(data, b.data[b.consumed:b.length])
		b.data = data
		grew = true
	} else {
		copy(b.data, b.data[b.consumed:b.length])
	}

	b.length = leftover
	b.consumed = 0
	return shift, grew
}

// Reset empties the buffer while keeping its capacity.
func (b *Buffer) Reset() {
	b.length = 0
	b.consumed = 0
}
