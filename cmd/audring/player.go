// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/audring/audio"
	"github.com/ik5/audring/driver/oto"
	"github.com/ik5/audring/driver/portaudio"
	"github.com/ik5/audring/driver/wavfile"
	"github.com/ik5/audring/internal/config"
	"github.com/ik5/audring/stream"
)

const progressInterval = time.Second

func newDriver(cfg *config.Config, logger logrus.FieldLogger) stream.Driver {
	switch cfg.Output.Backend {
	case config.BackendOto:
		return oto.Driver{Logger: logger}
	case config.BackendWAV:
		return wavfile.Driver{
			Path:   cfg.Output.WAVPath,
			Speed:  cfg.Output.WAVSpeed,
			Logger: logger,
		}
	default:
		return portaudio.Driver{Logger: logger}
	}
}

// play pushes src through a fresh output on drv until the source is played
// out or ctx is cancelled. Cancellation is the normal way to interrupt
// playback and is not reported as an error.
func play(ctx context.Context, cfg *config.Config, drv stream.Driver, src audio.Source, logger logrus.FieldLogger) error {
	log := logger.WithFields(logrus.Fields{
		"function":    "play",
		"sample_rate": src.SampleRate(),
		"channels":    src.Channels(),
	})

	out, err := stream.NewOutput(drv,
		stream.WithCapacity(cfg.Output.Capacity),
		stream.WithFramesPerBuffer(cfg.Output.FramesPerBuffer),
		stream.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	rate := cfg.Output.SampleRate
	if rate == 0 {
		rate = src.SampleRate()
	}
	if rate != src.SampleRate() {
		log.WithField("output_rate", rate).Warn("Output rate differs from the source; playback speed will change")
	}

	if err := out.Start(rate); err != nil {
		return err
	}

	err = pump(ctx, cfg, out, src, log)
	interrupted := errors.Is(err, context.Canceled) && ctx.Err() != nil
	if interrupted {
		log.Info("Interrupted")
		err = nil
	}

	if err == nil && (interrupted || cfg.FadeOnExit) {
		fadeOut(cfg, out, log)
	}

	if _, serr := out.Stop(); serr != nil {
		err = errors.Join(err, serr)
	}
	return err
}

// pump runs the feeder alongside a monitor that reports the buffer level
// and returns once everything fed has been played.
func pump(ctx context.Context, cfg *config.Config, out *stream.Output, src audio.Source, log logrus.FieldLogger) error {
	g, gctx := errgroup.WithContext(ctx)
	fed := make(chan struct{})

	g.Go(func() error {
		defer close(fed)

		n, err := stream.Feed(gctx, out, src, stream.FeedOptions{
			ChunkSize:    cfg.Feed.ChunkSize,
			PollInterval: cfg.Feed.PollInterval,
			Logger:       log,
		})
		log.WithField("samples", n).Debug("Feeder finished")
		return err
	})

	g.Go(func() error {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-fed:
				return stream.WaitDrained(gctx, out, cfg.Feed.PollInterval)
			case <-ticker.C:
				log.WithFields(logrus.Fields{
					"buffered":  out.Buffered(),
					"available": out.Available(),
				}).Debug("Playing")
			}
		}
	})

	return g.Wait()
}

func fadeOut(cfg *config.Config, out *stream.Output, log logrus.FieldLogger) {
	out.FadeOut()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FadeTimeout)
	defer cancel()

	if err := stream.WaitFaded(ctx, out, cfg.Feed.PollInterval); err != nil {
		log.WithField("timeout", cfg.FadeTimeout).Warn("Fade did not finish in time")
	}
}
