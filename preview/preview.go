// SPDX-License-Identifier: EPL-2.0

// Package preview plays generated samples through the default audio device
// using github.com/ebitengine/oto/v3.
package preview

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

var (
	ErrInvalidRate  = errors.New("preview: sample rate must be positive")
	ErrRateMismatch = errors.New("preview: output device already opened at another sample rate")
)

// pollInterval is how often playback completion is checked.
const pollInterval = 10 * time.Millisecond

// oto allows a single context per process.
var (
	ctxMu   sync.Mutex
	otoCtx  *oto.Context
	otoRate int
)

func device(rate int) (*oto.Context, error) {
	ctxMu.Lock()
	defer ctxMu.Unlock()

	if otoCtx != nil {
		if otoRate != rate {
			return nil, fmt.Errorf("%w: open at %d Hz, want %d Hz", ErrRateMismatch, otoRate, rate)
		}
		return otoCtx, nil
	}

	c, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("preview: open output device: %w", err)
	}
	<-ready

	otoCtx, otoRate = c, rate

	return c, nil
}

// Play plays a mono buffer once and returns when it has finished or ctx is
// done. The first call opens the output device at sampleRate; later calls
// must use the same rate.
func Play(ctx context.Context, samples []float32, sampleRate int) error {
	if sampleRate <= 0 {
		return ErrInvalidRate
	}
	if len(samples) == 0 {
		return nil
	}

	c, err := device(sampleRate)
	if err != nil {
		return err
	}

	p := c.NewPlayer(bytes.NewReader(encodeFloat32LE(samples)))
	defer p.Close()

	p.Play()

	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			p.Pause()
			return ctx.Err()
		case <-tick.C:
		}
	}

	return p.Err()
}

// encodeFloat32LE lays samples out the way oto.FormatFloat32LE expects.
func encodeFloat32LE(samples []float32) []byte {
	out := make([]byte, 4*len(samples))
	for i, v := range samples {
		if math.IsNaN(float64(v)) {
			v = 0
		}
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}

	return out
}
