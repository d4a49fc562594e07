// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"io"
	"math"
	"testing"

	"github.com/ik5/audring/audio"
	"github.com/ik5/audring/internal/audiotest"
)

func readAll(t *testing.T, src audio.Source, chunk int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, chunk)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestMono_PassThrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 4, 0.5)
	if got := audio.Mono(src); got != audio.Source(src) {
		t.Errorf("Mono() wrapped a mono source")
	}
}

func TestMonoMixer_Stereo(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 5, func(frame, ch int) float32 {
		if ch == 0 {
			return 0.5
		}
		return -0.25
	})
	m := audio.NewMonoMixer(src)

	if m.Channels() != 1 || m.SampleRate() != 44100 {
		t.Fatalf("format = %d ch @ %d Hz", m.Channels(), m.SampleRate())
	}

	got := readAll(t, m, 2)
	if len(got) != 5 {
		t.Fatalf("read %d frames, want 5", len(got))
	}
	for i, v := range got {
		if v != 0.125 {
			t.Errorf("frame %d = %v, want 0.125", i, v)
		}
	}
}

func TestMonoMixer_MultiChannel(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(48000, 6, 3, func(_, ch int) float32 {
		return float32(ch) / 10
	})

	got := readAll(t, audio.Mono(src), 16)
	if len(got) != 3 {
		t.Fatalf("read %d frames, want 3", len(got))
	}
	for i, v := range got {
		if math.Abs(float64(v)-0.25) > 1e-6 {
			t.Errorf("frame %d = %v, want 0.25", i, v)
		}
	}
}

func TestMonoMixer_PreservesOrder(t *testing.T) {
	t.Parallel()

	src := audiotest.NewCountingSource(8000, 2, 100, 1000)
	got := readAll(t, audio.Mono(src), 7)

	if len(got) != 100 {
		t.Fatalf("read %d frames, want 100", len(got))
	}
	for i, v := range got {
		if want := float32(i) / 1000; v != want {
			t.Fatalf("frame %d = %v, want %v", i, v, want)
		}
	}
}

func TestMonoMixer_PropagatesErrors(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 2, 100, 0.1).FailAfter(10)
	m := audio.Mono(src)

	buf := make([]float32, 64)
	n, err := m.ReadSamples(buf)
	if err != nil || n != 10 {
		t.Fatalf("first read = (%d, %v), want (10, nil)", n, err)
	}
	if _, err := m.ReadSamples(buf); err != audiotest.ErrSourceFailed {
		t.Errorf("second read error = %v, want ErrSourceFailed", err)
	}
}

func TestMonoMixer_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 1)
	if err := audio.Mono(src).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not reach the wrapped source")
	}
}
