// SPDX-License-Identifier: EPL-2.0

package stream

// DefaultFramesPerBuffer is the block size requested from the driver.
const DefaultFramesPerBuffer = 256

// RenderFunc fills out with the next len(out) mono frames. Drivers call it
// from their real-time thread.
type RenderFunc func(out []float32)

// StreamConfig describes the stream a session asks the driver for. Samples
// are always 32-bit float.
type StreamConfig struct {
	SampleRate      int
	InputChannels   int
	OutputChannels  int
	FramesPerBuffer int
}

// Stream is an opened driver stream.
type Stream interface {
	// Start begins invoking the render function.
	Start() error
	// Stop halts the render function. No call is in flight once it returns.
	Stop() error
	// Close releases the stream and any driver resources acquired by Open.
	Close() error
}

// Driver opens output streams on an audio device.
type Driver interface {
	// Open acquires the device and registers render. On error nothing is
	// left acquired.
	Open(cfg StreamConfig, render RenderFunc) (Stream, error)
}
