// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audring/audio"
)

const (
	DefaultChunkSize    = 4096
	DefaultPollInterval = 5 * time.Millisecond
)

// Pusher accepts samples with backpressure. *Output implements it.
type Pusher interface {
	Push(samples []float32) (int, error)
}

// Monitor exposes the playback state the Wait helpers poll. *Output
// implements it.
type Monitor interface {
	Active() bool
	Buffered() int
	Faded() bool
}

// FeedOptions tunes Feed. Zero values pick the defaults.
type FeedOptions struct {
	// ChunkSize is the number of samples read from the source at a time.
	ChunkSize int
	// PollInterval is how long to wait before re-pushing after a short
	// write.
	PollInterval time.Duration
	Logger       logrus.FieldLogger
}

func (o FeedOptions) withDefaults() FeedOptions {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

// Feed reads src (downmixed to mono) and pushes it into dst until src is
// exhausted. Samples rejected by a short push are retried after
// PollInterval, so nothing is dropped and order is kept. It returns the
// number of samples delivered. Reaching the end of src is not an error.
func Feed(ctx context.Context, dst Pusher, src audio.Source, opts FeedOptions) (int, error) {
	opts = opts.withDefaults()
	mono := audio.Mono(src)

	log := opts.Logger.WithFields(logrus.Fields{
		"function":    "Feed",
		"sample_rate": src.SampleRate(),
		"channels":    src.Channels(),
	})
	log.Debug("Feeding source")

	buf := make([]float32, opts.ChunkSize)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	wait := func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			return nil
		}
	}

	delivered := 0
	for {
		if err := ctx.Err(); err != nil {
			return delivered, err
		}

		n, rerr := mono.ReadSamples(buf)

		pending := buf[:n]
		for len(pending) > 0 {
			w, err := dst.Push(pending)
			delivered += w
			if err != nil {
				return delivered, fmt.Errorf("push: %w", err)
			}

			pending = pending[w:]
			if len(pending) == 0 {
				break
			}
			if err := wait(); err != nil {
				return delivered, err
			}
		}

		if errors.Is(rerr, io.EOF) {
			log.WithField("delivered", delivered).Info("Source exhausted")
			return delivered, nil
		}
		if rerr != nil {
			log.WithField("error", rerr.Error()).Error("Source read failed")
			return delivered, fmt.Errorf("read source: %w", rerr)
		}
		if n == 0 {
			if err := wait(); err != nil {
				return delivered, err
			}
		}
	}
}

// WaitDrained blocks until everything pushed has been played, the output
// goes inactive, or ctx ends.
func WaitDrained(ctx context.Context, m Monitor, poll time.Duration) error {
	return waitFor(ctx, poll, func() bool {
		return !m.Active() || m.Buffered() == 0
	})
}

// WaitFaded blocks until a requested fade has finished, the output goes
// inactive, or ctx ends.
func WaitFaded(ctx context.Context, m Monitor, poll time.Duration) error {
	return waitFor(ctx, poll, func() bool {
		return !m.Active() || m.Faded()
	})
}

func waitFor(ctx context.Context, poll time.Duration, done func() bool) error {
	if poll <= 0 {
		poll = DefaultPollInterval
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for !done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
