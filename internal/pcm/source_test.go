// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// fakeReader hands out ints in PCMBuffer-sized pieces.
type fakeReader struct {
	data []int
	off  int
	err  error
}

func (f *fakeReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := copy(buf.Data, f.data[f.off:])
	f.off += n
	return n, nil
}

func TestSource_ConvertsAndEnds(t *testing.T) {
	t.Parallel()

	r := &fakeReader{data: []int{0, 16384, -16384, -32768, 8192}}
	s := NewSource(r, &goaudio.Format{SampleRate: 22050, NumChannels: 1}, 16)

	if s.SampleRate() != 22050 || s.Channels() != 1 || s.BitDepth() != 16 {
		t.Fatalf("metadata = %d/%d/%d", s.SampleRate(), s.Channels(), s.BitDepth())
	}

	buf := make([]float32, 3)
	n, err := s.ReadSamples(buf)
	if err != nil || n != 3 {
		t.Fatalf("first read = %d, %v", n, err)
	}
	want := []float32{0, 0.5, -0.5}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}

	n, err = s.ReadSamples(buf)
	if n != 2 || err != io.EOF {
		t.Fatalf("second read = %d, %v; want 2, EOF", n, err)
	}
	if buf[0] != -1 || buf[1] != 0.25 {
		t.Errorf("tail = %v", buf[:2])
	}

	n, err = s.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("read after end = %d, %v; want 0, EOF", n, err)
	}
}

func TestSource_24Bit(t *testing.T) {
	t.Parallel()

	s := NewSource(&fakeReader{data: []int{4194304}}, &goaudio.Format{SampleRate: 48000, NumChannels: 1}, 24)

	buf := make([]float32, 4)
	n, _ := s.ReadSamples(buf)
	if n != 1 || buf[0] != 0.5 {
		t.Errorf("ReadSamples() = %d, %v; want 1, 0.5", n, buf[0])
	}
}

func TestSource_ReaderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	s := NewSource(&fakeReader{err: boom}, &goaudio.Format{SampleRate: 8000, NumChannels: 1}, 16)

	_, err := s.ReadSamples(make([]float32, 8))
	if !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want wrapped boom", err)
	}
}

func TestReadSeeker(t *testing.T) {
	t.Parallel()

	br := bytes.NewReader([]byte("abc"))
	rs, err := ReadSeeker(br)
	if err != nil || rs != br {
		t.Errorf("ReadSeeker(bytes.Reader) did not pass through")
	}

	rs, err = ReadSeeker(io.LimitReader(strings.NewReader("hello"), 5))
	if err != nil {
		t.Fatalf("ReadSeeker() error = %v", err)
	}
	if _, err := rs.Seek(1, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	rest, _ := io.ReadAll(rs)
	if string(rest) != "ello" {
		t.Errorf("after seek read %q, want %q", rest, "ello")
	}
}
