// SPDX-License-Identifier: EPL-2.0

// Package oto plays output streams through Oto.
//
// Oto pulls audio through an io.Reader instead of calling back with a frame
// buffer. The adapter here renders into a preallocated block and encodes it
// as little-endian float32 on each Read.
//
// Oto allows one context per process. It is created on the first Open and
// kept for the life of the process, so every later stream must use the same
// sample rate.
package oto

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audring/stream"
)

var (
	ErrUnsupportedConfig = errors.New("oto driver supports mono output only")
	ErrRateMismatch      = errors.New("oto context already running at a different sample rate")
)

const bytesPerSample = 4

var (
	ctxMu   sync.Mutex
	ctx     *oto.Context
	ctxRate int
)

func sharedContext(rate, frames int) (*oto.Context, error) {
	ctxMu.Lock()
	defer ctxMu.Unlock()

	if ctx != nil {
		if rate != ctxRate {
			return nil, fmt.Errorf("%w: running at %d, asked for %d", ErrRateMismatch, ctxRate, rate)
		}
		return ctx, nil
	}

	c, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(frames) * time.Second / time.Duration(rate),
	})
	if err != nil {
		return nil, fmt.Errorf("new context: %w", err)
	}
	<-ready

	ctx, ctxRate = c, rate
	return ctx, nil
}

// Driver opens Oto players.
type Driver struct {
	Logger logrus.FieldLogger
}

func (d Driver) Open(cfg stream.StreamConfig, render stream.RenderFunc) (stream.Stream, error) {
	if cfg.InputChannels != 0 || cfg.OutputChannels != 1 {
		return nil, fmt.Errorf("%w: %d in / %d out", ErrUnsupportedConfig, cfg.InputChannels, cfg.OutputChannels)
	}

	c, err := sharedContext(cfg.SampleRate, cfg.FramesPerBuffer)
	if err != nil {
		return nil, err
	}

	r := newRenderReader(render, cfg.FramesPerBuffer)
	p := c.NewPlayer(r)
	p.SetBufferSize(cfg.FramesPerBuffer * bytesPerSample)

	log := d.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithFields(logrus.Fields{
		"function":    "oto.Driver.Open",
		"sample_rate": cfg.SampleRate,
	}).Debug("Oto player created")

	return &otoStream{player: p, reader: r}, nil
}

type otoStream struct {
	player *oto.Player
	reader *renderReader
}

func (s *otoStream) Start() error {
	s.reader.setRunning(true)
	s.player.Play()
	return nil
}

// Stop pauses the player and waits for a Read in progress, so the render
// func is not running once Stop returns.
func (s *otoStream) Stop() error {
	s.player.Pause()
	s.reader.setRunning(false)
	return nil
}

func (s *otoStream) Close() error {
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("close player: %w", err)
	}
	return nil
}

// renderReader turns a RenderFunc into the io.Reader Oto pulls from.
// While not running it yields silence without calling render.
type renderReader struct {
	render stream.RenderFunc
	block  []float32

	mu      sync.Mutex
	running bool
}

// setRunning returns only after any Read in progress has finished.
func (r *renderReader) setRunning(running bool) {
	r.mu.Lock()
	r.running = running
	r.mu.Unlock()
}

func newRenderReader(render stream.RenderFunc, frames int) *renderReader {
	return &renderReader{
		render: render,
		block:  make([]float32, frames),
	}
}

// Read never returns an error: underruns are rendered as silence.
func (r *renderReader) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerSample
	written := 0

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		clear(p[:frames*bytesPerSample])
		return frames * bytesPerSample, nil
	}

	for frames > 0 {
		blk := r.block[:min(frames, len(r.block))]
		r.render(blk)

		for _, s := range blk {
			binary.LittleEndian.PutUint32(p[written:], math.Float32bits(s))
			written += bytesPerSample
		}
		frames -= len(blk)
	}

	return written, nil
}
