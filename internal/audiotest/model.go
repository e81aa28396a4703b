// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"context"
	"sync"
)

// Denoiser is a scripted model. It records every noise level it was called
// with and answers with Predict, or zeros when Predict is nil.
type Denoiser struct {
	Predict func(signal []float32, noiseLevel float64) []float32
	Err     error
	// FailAt makes the call with this 1-based index return Err.
	// Zero means every call returns Err when Err is set.
	FailAt int

	mu     sync.Mutex
	levels []float64
	out    []float32
	block  chan struct{}
	inside chan struct{}
}

// NewBlockingDenoiser returns a zero denoiser whose calls wait on release.
// entered receives one value per call as it starts.
func NewBlockingDenoiser() (d *Denoiser, entered <-chan struct{}, release func()) {
	d = &Denoiser{
		block:  make(chan struct{}),
		inside: make(chan struct{}, 64),
	}
	var once sync.Once

	return d, d.inside, func() { once.Do(func() { close(d.block) }) }
}

func (d *Denoiser) Denoise(_ context.Context, signal []float32, noiseLevel float64) ([]float32, error) {
	d.mu.Lock()
	d.levels = append(d.levels, noiseLevel)
	call := len(d.levels)
	d.mu.Unlock()

	if d.inside != nil {
		d.inside <- struct{}{}
		<-d.block
	}

	if d.Err != nil && (d.FailAt == 0 || d.FailAt == call) {
		return nil, d.Err
	}
	if d.Predict != nil {
		return d.Predict(signal, noiseLevel), nil
	}

	if len(d.out) != len(signal) {
		d.out = make([]float32, len(signal))
	}

	return d.out, nil
}

// Calls returns the number of Denoise calls so far.
func (d *Denoiser) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.levels)
}

// Levels returns the noise levels of every call, in order.
func (d *Denoiser) Levels() []float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]float64(nil), d.levels...)
}

// Classifier returns fixed scores.
type Classifier struct {
	Scores []float32
	Err    error
	calls  int
}

func (c *Classifier) Classify(context.Context, []float32) ([]float32, error) {
	c.calls++
	if c.Err != nil {
		return nil, c.Err
	}

	return c.Scores, nil
}

// Calls returns the number of Classify calls so far.
func (c *Classifier) Calls() int { return c.calls }

// Noise wraps a normal sample source and remembers every buffer it filled.
type Noise struct {
	Src interface{ Fill([]float32) }
	// Value is used for every sample when Src is nil.
	Value float32

	draws [][]float32
}

func (n *Noise) Fill(dst []float32) {
	if n.Src != nil {
		n.Src.Fill(dst)
	} else {
		for i := range dst {
			dst[i] = n.Value
		}
	}
	n.draws = append(n.draws, append([]float32(nil), dst...))
}

// Draws returns copies of every filled buffer, in order.
func (n *Noise) Draws() [][]float32 { return n.draws }

// Last returns the most recently filled buffer.
func (n *Noise) Last() []float32 {
	if len(n.draws) == 0 {
		return nil
	}

	return n.draws[len(n.draws)-1]
}
