// SPDX-License-Identifier: EPL-2.0

// Package wavfile renders an output stream into a 16-bit mono WAV file.
//
// A background goroutine stands in for the device thread: it invokes the
// render function once per block, paced by a ticker at the block duration
// (divided by Speed), and appends the block to the file. It is useful for
// headless machines, CI and listening tests.
package wavfile

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audring/stream"
	"github.com/ik5/audring/utils"
)

var ErrUnsupportedConfig = errors.New("wav file driver supports mono output only")

const (
	bitDepth  = 16
	pcmFormat = 1
)

// Driver writes every opened stream to Path, truncating it.
type Driver struct {
	Path string
	// Speed multiplies the render pace; values <= 0 mean real time.
	Speed  float64
	Logger logrus.FieldLogger
}

func (d Driver) Open(cfg stream.StreamConfig, render stream.RenderFunc) (stream.Stream, error) {
	if cfg.InputChannels != 0 || cfg.OutputChannels != 1 {
		return nil, fmt.Errorf("%w: %d in / %d out", ErrUnsupportedConfig, cfg.InputChannels, cfg.OutputChannels)
	}

	f, err := os.Create(d.Path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", d.Path, err)
	}

	speed := d.Speed
	if speed <= 0 {
		speed = 1
	}
	period := time.Duration(float64(cfg.FramesPerBuffer) / float64(cfg.SampleRate) / speed * float64(time.Second))

	log := d.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &fileStream{
		file:   f,
		enc:    wav.NewEncoder(f, cfg.SampleRate, bitDepth, 1, pcmFormat),
		render: render,
		period: max(period, time.Microsecond),
		block:  make([]float32, cfg.FramesPerBuffer),
		pcm: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: 1, SampleRate: cfg.SampleRate},
			Data:           make([]int, cfg.FramesPerBuffer),
			SourceBitDepth: bitDepth,
		},
		log: log.WithFields(logrus.Fields{
			"function": "wavfile",
			"path":     d.Path,
		}),
	}, nil
}

type fileStream struct {
	file   *os.File
	enc    *wav.Encoder
	render stream.RenderFunc
	period time.Duration
	block  []float32
	pcm    *goaudio.IntBuffer
	log    logrus.FieldLogger

	mu       sync.Mutex
	stop     chan struct{}
	done     chan struct{}
	frames   int
	writeErr error
}

func (s *fileStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		return nil
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.run(s.stop, s.done)
	return nil
}

func (s *fileStream) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		s.render(s.block)
		for i, v := range s.block {
			s.pcm.Data[i] = int(utils.Float32ToInt16(v))
		}
		if err := s.enc.Write(s.pcm); err != nil {
			s.writeErr = fmt.Errorf("write block: %w", err)
			s.log.WithField("error", err.Error()).Error("WAV write failed, rendering stopped")
			return
		}
		s.frames += len(s.block)
	}
}

// Stop halts rendering and waits for the goroutine to exit. It returns the
// first write error, if any.
func (s *fileStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop == nil {
		return nil
	}
	close(s.stop)
	<-s.done
	s.stop = nil

	return s.writeErr
}

// Close stops rendering if needed, then finalizes the WAV header and closes
// the file.
func (s *fileStream) Close() error {
	stopErr := s.Stop()

	var errs []error
	if stopErr != nil {
		errs = append(errs, stopErr)
	}
	if err := s.enc.Close(); err != nil {
		errs = append(errs, fmt.Errorf("finalize wav: %w", err))
	}
	if err := s.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close file: %w", err))
	}

	s.log.WithField("frames", s.frames).Debug("WAV file closed")
	return errors.Join(errs...)
}
