// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"sync"

	"github.com/ik5/audring/stream"
)

// ErrDevice is a canned driver failure.
var ErrDevice = errors.New("mock device error")

// Driver is a stream.Driver whose streams never run on their own. Tests
// pull audio with Stream.Render, standing in for the device thread.
type Driver struct {
	OpenErr  error
	StartErr error
	StopErr  error
	CloseErr error

	mu      sync.Mutex
	streams []*Stream
}

// Open records cfg and render and returns a manual stream.
func (d *Driver) Open(cfg stream.StreamConfig, render stream.RenderFunc) (stream.Stream, error) {
	if d.OpenErr != nil {
		return nil, d.OpenErr
	}

	s := &Stream{
		Config:   cfg,
		render:   render,
		startErr: d.StartErr,
		stopErr:  d.StopErr,
		closeErr: d.CloseErr,
	}

	d.mu.Lock()
	d.streams = append(d.streams, s)
	d.mu.Unlock()

	return s, nil
}

// Streams returns every stream opened so far.
func (d *Driver) Streams() []*Stream {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]*Stream(nil), d.streams...)
}

// Last returns the most recently opened stream, or nil.
func (d *Driver) Last() *Stream {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.streams) == 0 {
		return nil
	}
	return d.streams[len(d.streams)-1]
}

// Stream is a stream.Stream driven by the test.
type Stream struct {
	Config stream.StreamConfig

	render                      stream.RenderFunc
	startErr, stopErr, closeErr error

	mu                       sync.Mutex
	started, stopped, closed bool
}

func (s *Stream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.startErr != nil {
		return s.startErr
	}
	s.started = true
	return nil
}

func (s *Stream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	return s.stopErr
}

func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return s.closeErr
}

func (s *Stream) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *Stream) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func (s *Stream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Render invokes the registered callback for frames frames and returns
// what it wrote.
func (s *Stream) Render(frames int) []float32 {
	out := make([]float32, frames)
	s.RenderInto(out)
	return out
}

// RenderInto invokes the registered callback on out.
func (s *Stream) RenderInto(out []float32) {
	s.render(out)
}
