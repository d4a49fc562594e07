// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audring/audio"
	"github.com/ik5/audring/utils"
)

// ErrInvalidStream is returned when go-mp3 cannot parse the input.
var ErrInvalidStream = errors.New("invalid mp3 stream")

// go-mp3 always produces 16-bit little-endian stereo.
const (
	outputChannels  = 2
	bytesPerSample  = 2
	defaultReadSize = 8192
)

// mp3Reader is the part of gomp3.Decoder used by source.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec     mp3Reader
	buf     []byte
	pending int // bytes of a split sample carried over from the last Read
}

func newSource(dec mp3Reader) *source {
	return &source{dec: dec, buf: make([]byte, defaultReadSize)}
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return outputChannels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		buf := make([]byte, need)
		copy(buf, s.buf[:s.pending])
		s.buf = buf
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf[s.pending:need])
	n += s.pending

	samples := n / bytesPerSample
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
		dst[i] = utils.Int16ToFloat32(v)
	}

	s.pending = copy(s.buf, s.buf[samples*bytesPerSample:n])

	switch {
	case err == io.EOF:
		return samples, io.EOF
	case err != nil:
		return samples, fmt.Errorf("decode mp3: %w", err)
	}
	return samples, nil
}

type Decoder struct{}

// Decode starts an MP3 stream. The Source is always stereo at the file's
// sample rate.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}

	return newSource(dec), nil
}
