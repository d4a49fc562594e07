// SPDX-License-Identifier: EPL-2.0

// Package portaudio opens output streams on the default PortAudio device.
//
// PortAudio calls the render function on its own real-time thread, once per
// block of FramesPerBuffer frames. The package needs cgo and the PortAudio
// library at build time.
package portaudio

import (
	"errors"
	"fmt"

	pa "github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audring/stream"
)

// Driver opens streams on the default output device.
type Driver struct {
	// Logger defaults to the standard logrus logger.
	Logger logrus.FieldLogger
}

func (d Driver) logger() logrus.FieldLogger {
	if d.Logger == nil {
		return logrus.StandardLogger()
	}
	return d.Logger
}

// Open initializes PortAudio and opens the default stream. Every failure
// terminates PortAudio again before returning.
func (d Driver) Open(cfg stream.StreamConfig, render stream.RenderFunc) (stream.Stream, error) {
	log := d.logger().WithFields(logrus.Fields{
		"function":          "portaudio.Driver.Open",
		"sample_rate":       cfg.SampleRate,
		"output_channels":   cfg.OutputChannels,
		"frames_per_buffer": cfg.FramesPerBuffer,
	})

	if err := pa.Initialize(); err != nil {
		log.WithField("error", err.Error()).Error("Pa_Initialize failed")
		return nil, fmt.Errorf("Pa_Initialize: %w", err)
	}

	s, err := pa.OpenDefaultStream(
		cfg.InputChannels,
		cfg.OutputChannels,
		float64(cfg.SampleRate),
		cfg.FramesPerBuffer,
		(func([]float32))(render),
	)
	if err != nil {
		log.WithField("error", err.Error()).Error("Pa_OpenDefaultStream failed")
		return nil, errors.Join(fmt.Errorf("Pa_OpenDefaultStream: %w", err), terminate())
	}

	log.Debug("PortAudio stream opened")
	return &paStream{s: s, log: log}, nil
}

func terminate() error {
	if err := pa.Terminate(); err != nil {
		return fmt.Errorf("Pa_Terminate: %w", err)
	}
	return nil
}

type paStream struct {
	s   *pa.Stream
	log logrus.FieldLogger
}

func (p *paStream) Start() error {
	if err := p.s.Start(); err != nil {
		return fmt.Errorf("Pa_StartStream: %w", err)
	}
	return nil
}

func (p *paStream) Stop() error {
	if err := p.s.Stop(); err != nil {
		return fmt.Errorf("Pa_StopStream: %w", err)
	}
	return nil
}

// Close closes the stream and terminates PortAudio.
func (p *paStream) Close() error {
	var errs []error
	if err := p.s.Close(); err != nil {
		errs = append(errs, fmt.Errorf("Pa_CloseStream: %w", err))
	}
	errs = append(errs, terminate())

	err := errors.Join(errs...)
	if err == nil {
		p.log.Debug("PortAudio stream closed")
	}
	return err
}
