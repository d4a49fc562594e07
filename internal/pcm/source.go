// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer PCM decoders to audio.Source.
package pcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audring/utils"
)

// Reader is the part of the go-audio wav and aiff decoders used here.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer PCM from a Reader into float32 samples.
type Source struct {
	r        Reader
	format   *goaudio.Format
	bitDepth int
	scale    float32
	buf      *goaudio.IntBuffer
	eof      bool
}

func NewSource(r Reader, format *goaudio.Format, bitDepth int) *Source {
	return &Source{
		r:        r,
		format:   format,
		bitDepth: bitDepth,
		scale:    utils.PCMScale(bitDepth),
	}
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Close() error    { return nil }

// ReadSamples fills dst with interleaved samples. A short read from the
// decoder marks the end of the stream.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{
			Format:         s.format,
			Data:           make([]int, len(dst)),
			SourceBitDepth: s.bitDepth,
		}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.r.PCMBuffer(s.buf)
	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v) / s.scale
	}

	switch {
	case err == io.EOF, err == nil && n < len(dst):
		s.eof = true
		if n == 0 {
			return 0, io.EOF
		}
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("read pcm: %w", err)
	}

	return n, nil
}

// ReadSeeker returns r itself when it can seek, otherwise its full
// contents in memory. The go-audio decoders need to seek.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffer input: %w", err)
	}
	return bytes.NewReader(data), nil
}
