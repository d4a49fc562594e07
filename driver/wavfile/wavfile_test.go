// SPDX-License-Identifier: EPL-2.0

package wavfile_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audring/driver/wavfile"
	"github.com/ik5/audring/stream"
)

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDriver_RendersOutputToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.wav")
	drv := wavfile.Driver{Path: path, Speed: 50, Logger: quiet()}

	out, err := stream.NewOutput(drv, stream.WithLogger(quiet()))
	if err != nil {
		t.Fatalf("NewOutput() error = %v", err)
	}
	if err := out.Start(8000); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	samples := make([]float32, 1000)
	for i := range samples {
		samples[i] = 0.5
	}
	if n, err := out.Push(samples); err != nil || n != len(samples) {
		t.Fatalf("Push() = %d, %v", n, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := stream.WaitDrained(ctx, out, time.Millisecond); err != nil {
		t.Fatalf("WaitDrained() error = %v", err)
	}
	if _, err := out.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("output is not a valid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}

	if buf.Format.SampleRate != 8000 || buf.Format.NumChannels != 1 {
		t.Errorf("format = %+v, want 8000Hz mono", buf.Format)
	}
	if len(buf.Data) < len(samples) {
		t.Fatalf("wrote %d frames, want at least %d", len(buf.Data), len(samples))
	}
	if len(buf.Data)%stream.DefaultFramesPerBuffer != 0 {
		t.Errorf("wrote %d frames, want whole blocks of %d", len(buf.Data), stream.DefaultFramesPerBuffer)
	}

	// Blocks rendered before the push are silent; the pushed audio then
	// appears in one contiguous run followed by silence.
	start := 0
	for start < len(buf.Data) && buf.Data[start] == 0 {
		start++
	}
	if len(buf.Data)-start < len(samples) {
		t.Fatalf("only %d frames after leading silence, want %d", len(buf.Data)-start, len(samples))
	}
	for i := range samples {
		if got := buf.Data[start+i]; got != 16383 {
			t.Fatalf("frame %d = %d, want 16383", start+i, got)
		}
	}
	for i := start + len(samples); i < len(buf.Data); i++ {
		if buf.Data[i] != 0 {
			t.Fatalf("frame %d = %d after the pushed audio, want silence", i, buf.Data[i])
		}
	}
}

func TestDriver_BadPath(t *testing.T) {
	t.Parallel()

	drv := wavfile.Driver{Path: filepath.Join(t.TempDir(), "missing", "out.wav")}
	out, err := stream.NewOutput(drv, stream.WithLogger(quiet()))
	if err != nil {
		t.Fatal(err)
	}

	err = out.Start(8000)
	if !errors.Is(err, stream.ErrDriverInit) {
		t.Errorf("Start() error = %v, want ErrDriverInit", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Start() error = %v, want wrapped os.ErrNotExist", err)
	}
	if out.Active() {
		t.Error("output active after failed start")
	}
}

func TestDriver_RejectsMultiChannel(t *testing.T) {
	t.Parallel()

	_, err := wavfile.Driver{Path: filepath.Join(t.TempDir(), "x.wav")}.Open(stream.StreamConfig{
		SampleRate:      8000,
		OutputChannels:  2,
		FramesPerBuffer: 256,
	}, func([]float32) {})
	if !errors.Is(err, wavfile.ErrUnsupportedConfig) {
		t.Errorf("Open() error = %v, want ErrUnsupportedConfig", err)
	}
}
