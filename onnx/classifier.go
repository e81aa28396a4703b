// SPDX-License-Identifier: EPL-2.0

package onnx

import (
	"context"

	"github.com/ik5/crashify/diffusion"
)

var classifierSignature = signature{
	signal: "audio",
	level:  "noise_scale",
	output: "output",
	outLen: diffusion.NumClasses,
}

// Classifier runs the drum classifier on clean audio; its noise_scale input
// is always zero.
type Classifier struct {
	m *model
}

var _ diffusion.Classifier = (*Classifier)(nil)

// NewClassifier opens the classifier model at path. Init must have been
// called.
func NewClassifier(path string, opts ...Option) (*Classifier, error) {
	m, err := openModel(path, classifierSignature, diffusion.SignalLength, newConfig(opts))
	if err != nil {
		return nil, err
	}

	return &Classifier{m: m}, nil
}

// Classify returns one score per class in kick, hat, snare order.
func (c *Classifier) Classify(ctx context.Context, signal []float32) ([]float32, error) {
	if c == nil || c.m == nil {
		return nil, ErrClosed
	}

	scores, err := c.m.run(ctx, signal, 0)
	if err != nil {
		return nil, err
	}

	return append([]float32(nil), scores...), nil
}

// Close releases the session and its tensors.
func (c *Classifier) Close() error {
	if c == nil || c.m == nil {
		return nil
	}

	return c.m.close()
}
