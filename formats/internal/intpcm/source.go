// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts go-audio integer PCM decoders to audio.Source.
package intpcm

import (
	"errors"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/crashify/utils"
)

// DefaultBufSize is the preferred read size in samples.
const DefaultBufSize = 4096

// Reader is the part of the go-audio WAV and AIFF decoders used here.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source streams a Reader as float32 samples.
type Source struct {
	dec      Reader
	rate     int
	channels int
	bitDepth int
	buf      *goaudio.IntBuffer
	eof      bool
}

func New(dec Reader, rate, channels, bitDepth int) *Source {
	return &Source{
		dec:      dec,
		rate:     rate,
		channels: channels,
		bitDepth: bitDepth,
		buf: &goaudio.IntBuffer{
			Format:         dec.Format(),
			Data:           make([]int, DefaultBufSize),
			SourceBitDepth: bitDepth,
		},
	}
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return DefaultBufSize }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.PCMToFloat32(v, s.bitDepth)
	}

	switch {
	case errors.Is(err, io.EOF) || (err == nil && n < len(dst)):
		s.eof = true
		return n, io.EOF
	case err != nil:
		return n, err
	}

	return n, nil
}

// Limit returns a Reader that yields at most samples values from r and then
// io.EOF. It hides trailing bytes a container counts outside the audio data,
// such as the RIFF pad byte after an odd-length chunk.
func Limit(r Reader, samples int) Reader {
	return &limited{Reader: r, left: max(samples, 0)}
}

type limited struct {
	Reader
	left int
}

func (l *limited) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if l.left == 0 {
		return 0, io.EOF
	}

	full := buf.Data
	if len(full) > l.left {
		buf.Data = full[:l.left]
	}

	n, err := l.Reader.PCMBuffer(buf)
	buf.Data = full
	l.left -= n

	return n, err
}
