// SPDX-License-Identifier: EPL-2.0

package onnx

import (
	"context"

	"github.com/ik5/crashify/diffusion"
)

var denoiserSignature = signature{
	signal: "input",
	level:  "sigma",
	output: "output",
	outLen: diffusion.SignalLength,
}

// Denoiser runs the UNet noise predictor.
type Denoiser struct {
	m *model
}

var _ diffusion.Denoiser = (*Denoiser)(nil)

// NewDenoiser opens the denoiser model at path. Init must have been called.
func NewDenoiser(path string, opts ...Option) (*Denoiser, error) {
	m, err := openModel(path, denoiserSignature, diffusion.SignalLength, newConfig(opts))
	if err != nil {
		return nil, err
	}

	return &Denoiser{m: m}, nil
}

// Denoise predicts the noise in signal at noiseLevel. The returned slice is
// reused by the next call.
func (d *Denoiser) Denoise(ctx context.Context, signal []float32, noiseLevel float64) ([]float32, error) {
	if d == nil || d.m == nil {
		return nil, ErrClosed
	}

	return d.m.run(ctx, signal, noiseLevel)
}

// Close releases the session and its tensors.
func (d *Denoiser) Close() error {
	if d == nil || d.m == nil {
		return nil
	}

	return d.m.close()
}
