package ring

import (
	"fmt"
	"unsafe"

	"github.com/cwbudde/algo-stream/dsp/core"
)

// Scalar enumerates the fixed-width element types a Buffer can store.
type Scalar interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Buffer is a fixed-capacity FIFO ring over elements of type T.
//
// Enqueue never overwrites unread elements: when free space runs out the
// excess input is dropped. Dequeue returns fewer elements than requested
// when the live span is shorter. Both are counted results, not errors.
type Buffer[T Scalar] struct {
	data  []T
	front int // index of the oldest live element
	count int // number of live elements
}

// New returns an empty Buffer with owned, zeroed storage for capacity elements.
func New[T Scalar](capacity int) (*Buffer[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring: capacity must be > 0: %d", capacity)
	}
	return &Buffer[T]{data: make([]T, capacity)}, nil
}

// FromSlice returns an empty Buffer backed by an existing slice without
// copying. Capacity equals len(s); prior contents are zeroed, and mutations
// through the Buffer stay visible in s.
func FromSlice[T Scalar](s []T) (*Buffer[T], error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("ring: storage slice must not be empty")
	}
	core.Zero(s)
	return &Buffer[T]{data: s}, nil
}

// ElemSize returns the width of one element in bytes.
func (b *Buffer[T]) ElemSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Len returns the number of live elements.
func (b *Buffer[T]) Len() int {
	return b.count
}

// Cap returns the fixed capacity in elements.
func (b *Buffer[T]) Cap() int {
	return len(b.data)
}

// IsEmpty reports whether no live elements are stored.
func (b *Buffer[T]) IsEmpty() bool {
	return b.count == 0
}

// IsFull reports whether the buffer holds exactly Cap() live elements.
func (b *Buffer[T]) IsFull() bool {
	return b.count == len(b.data)
}

// Enqueue appends elements from src, advancing the write position, and
// returns the number of elements accepted. When src exceeds the free space,
// only the leading free-space worth of elements is stored and the remainder
// is dropped; live data is never overwritten. A full buffer accepts nothing.
func (b *Buffer[T]) Enqueue(src []T) int {
	n := len(b.data) - b.count
	if n > len(src) {
		n = len(src)
	}
	if n == 0 {
		return 0
	}
	rear := b.front + b.count
	if rear >= len(b.data) {
		rear -= len(b.data)
	}
	written := copy(b.data[rear:], src[:n])
	if written < n {
		// Wrap: remainder continues at the start of storage.
		copy(b.data, src[written:n])
	}
	b.count += n
	return n
}

// Dequeue removes up to len(dst) of the oldest elements into dst, advancing
// the read position, and returns the number of elements copied. An empty
// buffer copies nothing and leaves dst untouched.
func (b *Buffer[T]) Dequeue(dst []T) int {
	n := b.count
	if n > len(dst) {
		n = len(dst)
	}
	if n == 0 {
		return 0
	}
	read := copy(dst[:n], b.data[b.front:])
	if read < n {
		// Wrap: remainder continues at the start of storage.
		copy(dst[read:n], b.data)
	}
	b.front += n
	if b.front >= len(b.data) {
		b.front -= len(b.data)
	}
	b.count -= n
	return n
}

// Flush logically empties the buffer. Storage contents are left as-is;
// previously live elements become unreachable through Dequeue.
func (b *Buffer[T]) Flush() {
	b.front = 0
	b.count = 0
}
