// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// Source is a synthetic audio.Source (structurally; importing audio here
// would create a cycle) that renders a waveform function frame by frame.
type Source struct {
	rate     int
	channels int
	frames   int // total frames to produce
	pos      int // frames produced so far
	wave     func(frame, channel int) float32
	closed   bool
}

// NewSource renders frames frames of wave at rate Hz.
func NewSource(rate, channels, frames int, wave func(frame, channel int) float32) *Source {
	return &Source{
		rate:     rate,
		channels: channels,
		frames:   frames,
		wave:     wave,
	}
}

// NewSilentSource produces zeros.
func NewSilentSource(rate, channels, frames int) *Source {
	return NewSource(rate, channels, frames, func(int, int) float32 { return 0 })
}

// NewSineSource produces a sine at freq Hz on every channel.
func NewSineSource(rate, channels, frames int, freq float64) *Source {
	return NewSource(rate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(rate)))
	})
}

// NewConstantSource produces value on every sample.
func NewConstantSource(rate, channels, frames int, value float32) *Source {
	return NewSource(rate, channels, frames, func(int, int) float32 { return value })
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *Source) Closed() bool { return s.closed }

// Rewind restarts the waveform from frame zero.
func (s *Source) Rewind() { s.pos = 0 }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.wave(s.pos+f, c)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}
