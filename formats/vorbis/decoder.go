// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/crashify/audio"
)

const bufSamples = 4096

// oggReader is the part of oggvorbis.Reader used by source.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read decodes interleaved samples into p and returns the number of
	// values written, always a multiple of Channels.
	Read(p []float32) (int, error)
}

type source struct {
	dec      oggReader
	rate     int
	channels int
	eof      bool
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return bufSamples - bufSamples%s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}

	whole := len(dst) - len(dst)%s.channels
	if whole == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	n, err := s.dec.Read(dst[:whole])
	switch {
	case errors.Is(err, io.EOF):
		s.eof = true
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("vorbis: decode: %w", err)
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}
	if dec.Channels() < 1 || dec.SampleRate() <= 0 {
		return nil, fmt.Errorf("vorbis: invalid stream header: %d channels at %d Hz", dec.Channels(), dec.SampleRate())
	}

	return &source{
		dec:      dec,
		rate:     dec.SampleRate(),
		channels: dec.Channels(),
	}, nil
}
