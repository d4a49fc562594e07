// SPDX-License-Identifier: EPL-2.0

package ring

import (
	"fmt"
	"sync/atomic"
)

// DefaultCapacity is about 750ms of mono audio at 44.1kHz.
const DefaultCapacity = 32768

// Buffer is a lock-free SPSC ring of float32 samples.
type Buffer struct {
	// Cursors live on separate cache lines so producer and consumer do not
	// invalidate each other on every store.
	write atomic.Uint64 // producer owned, in [0, size)
	_pad1 [56]byte
	read  atomic.Uint64 // consumer owned, in [0, size)
	_pad2 [56]byte

	cells []float32
	size  uint64
}

// New creates a buffer with room for capacity-1 samples.
func New(capacity int) (*Buffer, error) {
	if capacity < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	return &Buffer{
		cells: make([]float32, capacity),
		size:  uint64(capacity),
	}, nil
}

// Cap returns the number of slots, including the one that is never filled.
func (b *Buffer) Cap() int { return int(b.size) }

func (b *Buffer) used(w, r uint64) uint64 {
	return (w + b.size - r) % b.size
}

// AvailableToRead returns the number of samples waiting to be popped.
func (b *Buffer) AvailableToRead() int {
	return int(b.used(b.write.Load(), b.read.Load()))
}

// AvailableToWrite returns the number of samples Push would accept now.
func (b *Buffer) AvailableToWrite() int {
	return int(b.size - 1 - b.used(b.write.Load(), b.read.Load()))
}

// Push copies as many leading samples as fit and returns how many were
// written. It never blocks and never overwrites unread samples; a short
// count tells the producer to retry the remainder later.
// Producer only.
func (b *Buffer) Push(samples []float32) int {
	w := b.write.Load()
	free := b.size - 1 - b.used(w, b.read.Load())

	n := min(uint64(len(samples)), free)
	if n == 0 {
		return 0
	}

	// At most two segments: up to the end of cells, then from the start.
	first := min(n, b.size-w)
	copy(b.cells[w:w+first], samples[:first])
	copy(b.cells[:n-first], samples[first:n])

	// Publishing the cursor makes the cells above visible to the consumer.
	b.write.Store((w + n) % b.size)

	return int(n)
}

// Pop removes the oldest sample. ok is false when the buffer is empty.
// Consumer only.
func (b *Buffer) Pop() (sample float32, ok bool) {
	r := b.read.Load()
	if r == b.write.Load() {
		return 0, false
	}

	sample = b.cells[r]

	r++
	if r == b.size {
		r = 0
	}
	b.read.Store(r)

	return sample, true
}

// Clear drops everything buffered and zeroes the cells.
// Producer only, and never while a Pop is in flight.
func (b *Buffer) Clear() {
	clear(b.cells)
	b.read.Store(0)
	b.write.Store(0)
}
