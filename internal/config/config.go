// SPDX-License-Identifier: EPL-2.0

// Package config holds the audring player configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ik5/audring/ring"
	"github.com/ik5/audring/stream"
)

// Output backends understood by the player.
const (
	BackendPortAudio = "portaudio"
	BackendOto       = "oto"
	BackendWAV       = "wav"
)

// Backends lists the valid values of output.backend.
var Backends = []string{BackendPortAudio, BackendOto, BackendWAV}

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Output     OutputConfig `yaml:"output"`
	Feed       FeedConfig   `yaml:"feed"`
	FadeOnExit bool         `yaml:"fade_on_exit"`

	// FadeTimeout bounds the wait for the fade to finish before stopping.
	FadeTimeout time.Duration `yaml:"fade_timeout"`

	Logging LoggingConfig `yaml:"logging"`
}

type OutputConfig struct {
	Backend string `yaml:"backend"`
	// SampleRate of 0 means use the decoded file's rate.
	SampleRate      int `yaml:"sample_rate"`
	Capacity        int `yaml:"capacity"`
	FramesPerBuffer int `yaml:"frames_per_buffer"`

	// WAVPath is the file written by the wav backend.
	WAVPath string `yaml:"wav_path"`
	// WAVSpeed multiplies the wav backend render pace; 0 means real time.
	WAVSpeed float64 `yaml:"wav_speed"`
}

type FeedConfig struct {
	ChunkSize    int           `yaml:"chunk_size"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Backend:         BackendPortAudio,
			Capacity:        ring.DefaultCapacity,
			FramesPerBuffer: stream.DefaultFramesPerBuffer,
			WAVPath:         "out.wav",
			WAVSpeed:        1,
		},
		Feed: FeedConfig{
			ChunkSize:    stream.DefaultChunkSize,
			PollInterval: stream.DefaultPollInterval,
		},
		FadeOnExit:  true,
		FadeTimeout: time.Second,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over Default and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over Default. Unknown keys are errors.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem found, joined into one error wrapping
// ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(Backends, c.Output.Backend) {
		errs = append(errs, fmt.Errorf("output.backend %q is invalid; valid values: %v", c.Output.Backend, Backends))
	}
	if c.Output.SampleRate < 0 {
		errs = append(errs, fmt.Errorf("output.sample_rate %d must not be negative", c.Output.SampleRate))
	}
	if c.Output.Capacity < 2 {
		errs = append(errs, fmt.Errorf("output.capacity %d must be at least 2", c.Output.Capacity))
	}
	if c.Output.FramesPerBuffer < 1 {
		errs = append(errs, fmt.Errorf("output.frames_per_buffer %d must be positive", c.Output.FramesPerBuffer))
	}
	if c.Output.Backend == BackendWAV && c.Output.WAVPath == "" {
		errs = append(errs, errors.New("output.wav_path is required for the wav backend"))
	}
	if c.Output.WAVSpeed < 0 {
		errs = append(errs, fmt.Errorf("output.wav_speed %.2f must not be negative", c.Output.WAVSpeed))
	}

	if c.Feed.ChunkSize < 1 {
		errs = append(errs, fmt.Errorf("feed.chunk_size %d must be positive", c.Feed.ChunkSize))
	}
	if c.Feed.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("feed.poll_interval %s must be positive", c.Feed.PollInterval))
	}
	if c.FadeTimeout < 0 {
		errs = append(errs, fmt.Errorf("fade_timeout %s must not be negative", c.FadeTimeout))
	}

	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// ApplyLogging sets the level and formatter of logger.
func (c *Config) ApplyLogging(logger *logrus.Logger) {
	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if c.Logging.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
