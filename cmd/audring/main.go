// SPDX-License-Identifier: EPL-2.0

// Command audring plays an audio file through a mono real-time output.
//
// The file is decoded, downmixed to mono and pushed into the output's ring
// buffer while the device drains it. On SIGINT or SIGTERM (and at the end
// of the file when fade_on_exit is set) the output fades to silence over
// 20ms before the stream is stopped.
//
// Usage:
//
//	audring [flags] <input.{wav|aif|aiff|mp3|ogg}>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audring/audio"
	"github.com/ik5/audring/formats/aiff"
	"github.com/ik5/audring/formats/mp3"
	"github.com/ik5/audring/formats/vorbis"
	"github.com/ik5/audring/formats/wav"
	"github.com/ik5/audring/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("audring", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML configuration file")
	backend := fs.String("backend", "", "output backend: portaudio, oto or wav")
	wavPath := fs.String("out", "", "file written by the wav backend")
	rate := fs.Int("rate", 0, "output sample rate in Hz (0 uses the file's rate)")
	capacity := fs.Int("capacity", 0, "ring buffer capacity in samples")
	speed := fs.Float64("speed", 0, "render pace multiplier for the wav backend")
	level := fs.String("log-level", "", "log level")
	jsonLogs := fs.Bool("json", false, "log as JSON")
	noFade := fs.Bool("no-fade", false, "stop without fading when the file ends")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: audring [flags] <input.{wav|aif|aiff|mp3|ogg}>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "audring: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	// Flags given explicitly win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Output.Backend = *backend
		case "out":
			cfg.Output.WAVPath = *wavPath
		case "rate":
			cfg.Output.SampleRate = *rate
		case "capacity":
			cfg.Output.Capacity = *capacity
		case "speed":
			cfg.Output.WAVSpeed = *speed
		case "log-level":
			cfg.Logging.Level = *level
		case "json":
			cfg.Logging.JSON = *jsonLogs
		case "no-fade":
			cfg.FadeOnExit = !*noFade
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "audring: %v\n", err)
		return 1
	}

	logger := logrus.New()
	cfg.ApplyLogging(logger)

	inPath := fs.Arg(0)
	log := logger.WithFields(logrus.Fields{
		"function": "main",
		"input":    inPath,
		"backend":  cfg.Output.Backend,
	})

	src, err := openSource(newRegistry(), inPath)
	if err != nil {
		log.WithField("error", err.Error()).Error("Cannot open input")
		return 1
	}
	defer src.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := play(ctx, cfg, newDriver(cfg, logger), src, logger); err != nil {
		log.WithField("error", err.Error()).Error("Playback failed")
		return 1
	}
	return 0
}

func newRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	return reg
}

// openSource decodes path with the decoder registered for its extension.
func openSource(reg *audio.Registry, path string) (audio.Source, error) {
	dec, err := reg.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	src, err := dec.Decode(f)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("decode %s: %w", path, err), f.Close())
	}
	return &fileSource{Source: src, file: f}, nil
}

// fileSource closes the underlying file along with the decoder.
type fileSource struct {
	audio.Source
	file *os.File
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.file.Close())
}
