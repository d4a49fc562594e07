// SPDX-License-Identifier: EPL-2.0

// Package ring provides a fixed-capacity, lock-free, single-producer /
// single-consumer ring buffer of float32 audio samples.
//
// The buffer is the hand-off point between a non-real-time producer
// (decoders, synthesizers, network receivers) and a real-time audio
// callback. Neither side ever blocks:
//
//	buf, _ := ring.New(ring.DefaultCapacity)
//
//	// producer goroutine
//	n := buf.Push(samples) // n < len(samples) means "come back later"
//
//	// audio callback
//	s, ok := buf.Pop()     // ok == false means underrun
//
// # Capacity
//
// A buffer created with capacity N holds at most N-1 samples. One slot is
// always left empty so that a full buffer can be told apart from an empty
// one using only the two cursors:
//
//	AvailableToRead()  == (write - read) mod N
//	AvailableToWrite() == N - 1 - AvailableToRead()
//
// # Concurrency
//
// Exactly one goroutine may call Push and Clear, and exactly one goroutine
// may call Pop. The write cursor is stored only by the producer and the
// read cursor only by the consumer. Each side loads the other's cursor only
// to compute how much it may move. A stale load makes the count
// conservative; it never lets a cell be read before it is written or
// overwritten before it is read.
//
// Clear is not real-time safe. It must not overlap a Pop.
package ring
