// SPDX-License-Identifier: EPL-2.0

package diffusion

import "context"

// Fixed dimensions of the shipped models.
const (
	// SampleRate of every signal handled by the engine, in Hz.
	SampleRate = 44100
	// SignalLength is the number of samples in a generated waveform.
	SignalLength = 21000
	// NumClasses is the length of the classifier's score vector.
	NumClasses = 3
)

// Step count bounds. Values outside the recommended range are accepted but
// logged as a warning.
const (
	DefaultSteps        = 10
	MinRecommendedSteps = 5
	MaxRecommendedSteps = 15
)

// Denoiser predicts the noise component of a noisy signal.
type Denoiser interface {
	// Denoise runs the model on signal (length SignalLength) at noiseLevel.
	// It must not modify signal. The returned slice may be owned by the
	// implementation and is only read until the next call.
	Denoise(ctx context.Context, signal []float32, noiseLevel float64) ([]float32, error)
}

// Classifier scores a finished waveform.
type Classifier interface {
	// Classify returns one raw score per class for signal.
	Classify(ctx context.Context, signal []float32) ([]float32, error)
}

// DenoiserFunc adapts a plain function to the Denoiser interface.
type DenoiserFunc func(ctx context.Context, signal []float32, noiseLevel float64) ([]float32, error)

func (f DenoiserFunc) Denoise(ctx context.Context, signal []float32, noiseLevel float64) ([]float32, error) {
	return f(ctx, signal, noiseLevel)
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, signal []float32) ([]float32, error)

func (f ClassifierFunc) Classify(ctx context.Context, signal []float32) ([]float32, error) {
	return f(ctx, signal)
}
