// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides test doubles for sources and drivers.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrSourceFailed is returned by a source built with FailAfter.
var ErrSourceFailed = errors.New("mock source failed")

// MockSource generates frames from a waveform function.
// It satisfies audio.Source.
type MockSource struct {
	sampleRate int
	channels   int
	total      int // frames to generate
	generated  int
	waveform   func(frame, channel int) float32

	failAfter int // frames; <0 disables
	closed    bool
}

// NewMockSource creates a source of total frames. waveform gives the value
// for a frame index and channel.
func NewMockSource(sampleRate, channels, total int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		total:      total,
		waveform:   waveform,
		failAfter:  -1,
	}
}

// NewSilentSource generates silence.
func NewSilentSource(sampleRate, channels, total int) *MockSource {
	return NewConstantSource(sampleRate, channels, total, 0)
}

// NewConstantSource generates a constant value on every channel.
func NewConstantSource(sampleRate, channels, total int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, total, func(int, int) float32 { return value })
}

// NewSineSource generates a sine wave at frequency Hz.
func NewSineSource(sampleRate, channels, total int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, total, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewCountingSource generates frame/scale on every channel, which makes
// order and loss easy to check.
func NewCountingSource(sampleRate, channels, total int, scale float32) *MockSource {
	return NewMockSource(sampleRate, channels, total, func(frame, _ int) float32 {
		return float32(frame) / scale
	})
}

// FailAfter makes ReadSamples return ErrSourceFailed once frames frames
// have been produced.
func (m *MockSource) FailAfter(frames int) *MockSource {
	m.failAfter = frames
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) Closed() bool    { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.failAfter >= 0 && m.generated >= m.failAfter {
		return 0, ErrSourceFailed
	}
	if m.generated >= m.total {
		return 0, io.EOF
	}

	limit := m.total
	if m.failAfter >= 0 {
		limit = min(limit, m.failAfter)
	}
	frames := min(len(dst)/m.channels, limit-m.generated)

	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.total {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}
