// SPDX-License-Identifier: EPL-2.0

package diffusion

import "github.com/sirupsen/logrus"

// Options configures an Engine.
//
//   - Noise: normal sample source; default NewNoise().
//   - Classifier: when set, every result is classified.
//   - Logger: structured logger; default logrus.StandardLogger().
//   - Observer: called after every state transition of the stepper.
//   - TMin, TMax: schedule time range; default DefaultTMin, DefaultTMax.
type Options struct {
	Noise      NoiseSource
	Classifier Classifier
	Logger     logrus.FieldLogger
	Observer   StepObserver
	TMin       float32
	TMax       float32
}

// Option represents a functional option for configuring an Engine.
type Option func(*Options)

// WithNoise replaces the noise source, typically with NewSeededNoise in tests.
func WithNoise(n NoiseSource) Option {
	return func(o *Options) {
		o.Noise = n
	}
}

// WithClassifier attaches a classifier to the result finalizer.
func WithClassifier(c Classifier) Option {
	return func(o *Options) {
		o.Classifier = c
	}
}

// WithLogger sets the logger used for generation and per-step records.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithObserver registers a callback for every stepper transition.
func WithObserver(fn StepObserver) Option {
	return func(o *Options) {
		o.Observer = fn
	}
}

// WithTimeRange overrides the schedule time range.
// NewEngine rejects ranges outside 0 < tMin < tMax < 1 with ErrInvalidTimeRange.
func WithTimeRange(tMin, tMax float32) Option {
	return func(o *Options) {
		o.TMin = tMin
		o.TMax = tMax
	}
}

func defaultOptions() Options {
	return Options{
		TMin: DefaultTMin,
		TMax: DefaultTMax,
	}
}
