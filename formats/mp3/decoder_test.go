// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// chunkReader serves PCM bytes in fixed-size pieces, like go-mp3 does
// when it stops on a frame boundary.
type chunkReader struct {
	data  []byte
	chunk int
	rate  int
	err   error
}

func (c *chunkReader) SampleRate() int { return c.rate }

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		if c.err != nil {
			return 0, c.err
		}
		return 0, io.EOF
	}
	n := min(len(p), c.chunk, len(c.data))
	copy(p, c.data[:n])
	c.data = c.data[n:]
	return n, nil
}

func pcmBytes(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
	}
	return out
}

func TestSource_Format(t *testing.T) {
	t.Parallel()

	src := newSource(&chunkReader{rate: 44100})
	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := newSource(&chunkReader{
		data:  pcmBytes(16384, -16384, 0, -32768),
		chunk: 64,
		rate:  48000,
	})

	dst := make([]float32, 8)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	want := []float32{0.5, -0.5, 0, -1}
	if n != len(want) {
		t.Fatalf("ReadSamples() = %d, want %d", n, len(want))
	}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, dst[i], want[i])
		}
	}

	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_SplitSample(t *testing.T) {
	t.Parallel()

	// Three-byte chunks split every other sample across reads.
	src := newSource(&chunkReader{
		data:  pcmBytes(100, 200, 300, 400),
		chunk: 3,
		rate:  8000,
	})

	var got []float32
	dst := make([]float32, 4)
	for {
		n, err := src.ReadSamples(dst)
		got = append(got, dst[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	want := []float32{100.0 / 32768, 200.0 / 32768, 300.0 / 32768, 400.0 / 32768}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSource_DecodeError(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt frame")
	src := newSource(&chunkReader{err: boom, rate: 44100})

	_, err := src.ReadSamples(make([]float32, 4))
	if !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestSource_EmptyDst(t *testing.T) {
	t.Parallel()

	src := newSource(&chunkReader{data: pcmBytes(1), chunk: 2, rate: 8000})
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("not an mp3 stream")))
	if !errors.Is(err, ErrInvalidStream) {
		t.Errorf("Decode() error = %v, want ErrInvalidStream", err)
	}
}
