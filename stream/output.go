// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audring/ring"
)

// Output is the producer-facing handle of a mono real-time output. Start
// and Stop may be called from any goroutine. Push, Clear and FadeOut belong
// to the single producer goroutine; the query methods may be called from
// anywhere.
type Output struct {
	driver   Driver
	capacity int
	frames   int
	log      logrus.FieldLogger

	mu      sync.Mutex // serialises Start and Stop
	current atomic.Pointer[session]
}

// Option configures an Output.
type Option func(*Output)

// WithCapacity sets the ring buffer capacity. capacity-1 samples can be
// buffered.
func WithCapacity(capacity int) Option {
	return func(o *Output) { o.capacity = capacity }
}

// WithFramesPerBuffer sets the block size requested from the driver.
func WithFramesPerBuffer(frames int) Option {
	return func(o *Output) { o.frames = frames }
}

// WithLogger replaces the standard logrus logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Output) { o.log = l }
}

// NewOutput returns an inactive Output that will open streams on drv.
func NewOutput(drv Driver, opts ...Option) (*Output, error) {
	o := &Output{
		driver:   drv,
		capacity: ring.DefaultCapacity,
		frames:   DefaultFramesPerBuffer,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if drv == nil {
		return nil, ErrNoDriver
	}
	if o.capacity < 2 {
		return nil, fmt.Errorf("%w: got %d", ring.ErrInvalidCapacity, o.capacity)
	}
	if o.frames <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFramesPerBuffer, o.frames)
	}

	return o, nil
}

// Start opens and starts a mono float32 stream at sampleRate with a fresh
// buffer and fade state. On failure the output stays inactive and nothing
// acquired from the driver is left open.
func (o *Output) Start(sampleRate int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current.Load() != nil {
		o.log.WithFields(logrus.Fields{
			"function":    "Output.Start",
			"sample_rate": sampleRate,
		}).Warn("Start rejected: stream already active")
		return ErrAlreadyActive
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampleRate, sampleRate)
	}

	s, err := newSession(sampleRate, o.capacity)
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}

	cfg := StreamConfig{
		SampleRate:      sampleRate,
		InputChannels:   0,
		OutputChannels:  1,
		FramesPerBuffer: o.frames,
	}

	st, err := o.driver.Open(cfg, s.callback.Render)
	if err != nil {
		o.log.WithFields(logrus.Fields{
			"function":    "Output.Start",
			"sample_rate": sampleRate,
			"error":       err.Error(),
		}).Error("Failed to open audio stream")
		return fmt.Errorf("%w: open stream: %w", ErrDriverInit, err)
	}

	if err := st.Start(); err != nil {
		if cerr := st.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		o.log.WithFields(logrus.Fields{
			"function":    "Output.Start",
			"sample_rate": sampleRate,
			"error":       err.Error(),
		}).Error("Failed to start audio stream")
		return fmt.Errorf("%w: start stream: %w", ErrDriverInit, err)
	}

	s.stream = st
	o.current.Store(s)

	o.log.WithFields(logrus.Fields{
		"function":          "Output.Start",
		"sample_rate":       sampleRate,
		"capacity":          o.capacity,
		"frames_per_buffer": o.frames,
		"fade_samples":      s.fader.FadeSamples(),
	}).Info("Audio stream started")

	return nil
}

// Stop stops and closes the active stream. It reports false if there was
// nothing to stop. The session is dropped even if the driver returns an
// error.
func (o *Output) Stop() (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := o.current.Swap(nil)
	if s == nil {
		return false, nil
	}

	var errs []error
	if err := s.stream.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stop stream: %w", err))
	}
	if err := s.stream.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close stream: %w", err))
	}

	err := errors.Join(errs...)
	fields := logrus.Fields{
		"function":    "Output.Stop",
		"sample_rate": s.sampleRate,
		"discarded":   s.buf.AvailableToRead(),
	}
	if err != nil {
		fields["error"] = err.Error()
		o.log.WithFields(fields).Error("Audio stream stopped with errors")
	} else {
		o.log.WithFields(fields).Info("Audio stream stopped")
	}

	return true, err
}

// Active reports whether a stream is running.
func (o *Output) Active() bool { return o.current.Load() != nil }

// SampleRate of the active stream, or 0.
func (o *Output) SampleRate() int {
	if s := o.current.Load(); s != nil {
		return s.sampleRate
	}
	return 0
}

// Push queues as many leading samples as fit and returns how many were
// taken. A short count is backpressure: retry the rest later.
func (o *Output) Push(samples []float32) (int, error) {
	s := o.current.Load()
	if s == nil {
		return 0, ErrNotActive
	}
	return s.buf.Push(samples), nil
}

// Available is the number of samples Push would accept now. When inactive
// it reports an empty buffer of the configured capacity.
func (o *Output) Available() int {
	if s := o.current.Load(); s != nil {
		return s.buf.AvailableToWrite()
	}
	return o.capacity - 1
}

// Buffered is the number of samples waiting to be played. Stop drops the
// session's buffer, so an inactive output reports 0 even if samples were
// left unplayed.
func (o *Output) Buffered() int {
	if s := o.current.Load(); s != nil {
		return s.buf.AvailableToRead()
	}
	return 0
}

// Capacity is the ring size; Available()+Buffered() == Capacity()-1.
func (o *Output) Capacity() int { return o.capacity }

// Clear discards buffered samples. Fade and mute state are left as they
// are. It is an application-level reset: call it from the producer only.
func (o *Output) Clear() {
	s := o.current.Load()
	if s == nil {
		return
	}

	dropped := s.buf.AvailableToRead()
	s.buf.Clear()

	o.log.WithFields(logrus.Fields{
		"function": "Output.Clear",
		"dropped":  dropped,
	}).Debug("Cleared output buffer")
}

// FadeOut starts a 20ms ramp to silence that ends muted. Repeated calls
// do not restart the ramp. It does nothing when inactive.
func (o *Output) FadeOut() {
	s := o.current.Load()
	if s == nil {
		o.log.WithField("function", "Output.FadeOut").Debug("Fade requested on inactive output")
		return
	}

	if !s.fader.Fading() {
		o.log.WithFields(logrus.Fields{
			"function":     "Output.FadeOut",
			"fade_samples": s.fader.FadeSamples(),
			"buffered":     s.buf.AvailableToRead(),
		}).Info("Fading out")
	}
	s.fader.Trigger()
}

// Faded reports whether a requested fade has reached zero gain.
func (o *Output) Faded() bool {
	if s := o.current.Load(); s != nil {
		return s.fader.Faded()
	}
	return false
}

// Muted reports whether the output is silenced.
func (o *Output) Muted() bool {
	if s := o.current.Load(); s != nil {
		return s.fader.Muted()
	}
	return false
}
