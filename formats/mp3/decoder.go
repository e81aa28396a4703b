// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/crashify/audio"
)

// go-mp3 always produces interleaved 16-bit little endian stereo.
const (
	outChannels    = 2
	bytesPerSample = 2
	bufSamples     = 4096
)

// pcmReader is the part of gomp3.Decoder used by source.
type pcmReader interface {
	io.Reader
	SampleRate() int
}

type source struct {
	dec     pcmReader
	rate    int
	buf     []byte
	pending []byte // trailing odd byte of the previous read
	eof     bool
}

func newSource(dec pcmReader) *source {
	return &source{
		dec:  dec,
		rate: dec.SampleRate(),
		buf:  make([]byte, bufSamples*bytesPerSample),
	}
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return outChannels }
func (s *source) BufSize() int    { return bufSamples }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	buf := s.buf[:need]

	carried := copy(buf, s.pending)
	s.pending = s.pending[:0]

	n, err := s.dec.Read(buf[carried:])
	n += carried

	samples := n / bytesPerSample
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(buf[i*bytesPerSample:]))) / 32768
	}
	if rest := n % bytesPerSample; rest > 0 {
		s.pending = append(s.pending, buf[n-rest:n]...)
	}

	switch {
	case errors.Is(err, io.EOF):
		s.eof = true
		return samples, io.EOF
	case err != nil:
		return samples, fmt.Errorf("mp3: decode: %w", err)
	}

	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	return newSource(dec), nil
}
