// SPDX-License-Identifier: EPL-2.0

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendPortAudio, cfg.Output.Backend)
	assert.Equal(t, 32768, cfg.Output.Capacity)
	assert.Equal(t, 256, cfg.Output.FramesPerBuffer)
	assert.Zero(t, cfg.Output.SampleRate)
	assert.True(t, cfg.FadeOnExit)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audring.yaml")
	data := `
output:
  backend: wav
  sample_rate: 48000
  wav_path: /tmp/render.wav
  wav_speed: 0
feed:
  poll_interval: 10ms
fade_timeout: 250ms
logging:
  level: debug
  json: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendWAV, cfg.Output.Backend)
	assert.Equal(t, 48000, cfg.Output.SampleRate)
	assert.Equal(t, "/tmp/render.wav", cfg.Output.WAVPath)
	assert.Zero(t, cfg.Output.WAVSpeed)
	assert.Equal(t, 10*time.Millisecond, cfg.Feed.PollInterval)
	assert.Equal(t, 250*time.Millisecond, cfg.FadeTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)

	// Untouched keys keep their defaults.
	assert.Equal(t, 32768, cfg.Output.Capacity)
	assert.Equal(t, 4096, cfg.Feed.ChunkSize)
	assert.True(t, cfg.FadeOnExit)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFromReader_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := LoadFromReader(strings.NewReader("output:\n  bakend: oto\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bakend")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Output.Backend = "alsa"
	cfg.Output.Capacity = 1
	cfg.Feed.ChunkSize = 0
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)

	msg := err.Error()
	for _, want := range []string{"output.backend", "output.capacity", "feed.chunk_size", "logging.level"} {
		assert.Contains(t, msg, want)
	}
}

func TestValidate_WAVNeedsPath(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Output.Backend = BackendWAV
	cfg.Output.WAVPath = ""

	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestApplyLogging(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Logging = LoggingConfig{Level: "warn", JSON: true}

	var out bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&out)
	cfg.ApplyLogging(logger)

	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.WithField("function", "TestApplyLogging").Warn("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"function":"TestApplyLogging"`)
}
