// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/crashify/utils"
)

// Resampler streams src at another sample rate using Catmull-Rom cubic
// interpolation. It keeps the channel count. When downsampling, frames pass
// through a one pole low-pass at the destination Nyquist frequency before
// interpolation. A source already at the destination rate is passed through
// untouched.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // source frames per output frame
	channels int
	bypass   bool

	// window holds the frames at positions -1, 0, +1, +2 around the read
	// position; frac is the offset from window[1] towards window[2].
	window [4][]float32
	real   [4]bool
	frac   float64
	primed bool
	done   bool

	buf      []float32
	bufPos   int
	bufLen   int
	srcEOF   bool
	lowpass  bool
	lpAlpha  float32
	lpState  []float32
	lpSeeded bool
}

// NewResampler returns a Resampler producing dstRate Hz from src.
func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidRate
	}

	channels := max(src.Channels(), 1)
	r := &Resampler{
		src:      src,
		rate:     dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		bypass:   src.SampleRate() == dstRate,
	}
	if r.bypass {
		return r, nil
	}

	size := max(src.BufSize(), channels)
	r.buf = make([]float32, size-size%channels)
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	if r.step > 1 {
		cutoff := float64(dstRate) / 2
		r.lowpass = true
		r.lpAlpha = float32(1 - math.Exp(-2*math.Pi*cutoff/float64(src.SampleRate())))
		r.lpState = make([]float32, channels)
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("audio: close resampler source: %w", err)
	}

	return nil
}

// ReadSamples fills dst with frames at the destination rate. len(dst) must
// be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.bypass {
		return r.src.ReadSamples(dst)
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, r.finish(err)
		}
	}

	frames := len(dst) / r.channels
	for w := range frames {
		for r.frac >= 1 {
			r.frac--
			if err := r.shift(); err != nil {
				return w * r.channels, r.finish(err)
			}
		}
		if !r.real[2] && r.frac > 0 {
			return w * r.channels, r.finish(io.EOF)
		}

		r.interpolate(dst[w*r.channels : (w+1)*r.channels])
		r.frac += r.step
	}

	return len(dst), nil
}

func (r *Resampler) interpolate(out []float32) {
	y0, y1, y2, y3 := r.window[0], r.window[1], r.window[2], r.window[3]
	if !r.real[2] {
		y2 = y1
	}
	if !r.real[3] {
		y3 = y2
	}

	utils.CubicFrame(out, y0, y1, y2, y3, float32(r.frac))
}

// prime loads the first frames; the first one doubles as its own
// predecessor.
func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.pull(r.window[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.window[0], r.window[1])
	r.real[0], r.real[1] = true, true

	for i := 2; i < 4; i++ {
		if r.real[i], err = r.pull(r.window[i]); err != nil {
			return err
		}
	}

	return nil
}

// shift advances the window by one source frame.
func (r *Resampler) shift() error {
	w0 := r.window[0]
	r.window[0], r.window[1], r.window[2] = r.window[1], r.window[2], r.window[3]
	r.window[3] = w0
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]

	if !r.real[1] {
		return io.EOF
	}

	var err error
	r.real[3], err = r.pull(r.window[3])

	return err
}

// pull copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) pull(dst []float32) (bool, error) {
	for r.bufPos >= r.bufLen {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.buf)
		r.bufPos, r.bufLen = 0, n-n%r.channels
		if errors.Is(err, io.EOF) {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("audio: resampler read: %w", err)
		}
	}

	copy(dst, r.buf[r.bufPos:r.bufPos+r.channels])
	r.bufPos += r.channels

	if r.lowpass {
		if !r.lpSeeded {
			copy(r.lpState, dst)
			r.lpSeeded = true
		}
		for c := range dst {
			r.lpState[c] += r.lpAlpha * (dst[c] - r.lpState[c])
			dst[c] = r.lpState[c]
		}
	}

	return true, nil
}

func (r *Resampler) finish(err error) error {
	if errors.Is(err, io.EOF) {
		r.done = true
		return io.EOF
	}

	return err
}
