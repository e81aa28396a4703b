// SPDX-License-Identifier: EPL-2.0

package diffusion

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// State is a position in the stepper's state machine.
type State int

const (
	// StateRunning covers the iterations n = N-1 .. 1.
	StateRunning State = iota
	// StateFinal is the closing denoiser pass at sigma_0.
	StateFinal
	// StateDone is reported once the result is ready.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateFinal:
		return "final"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Step describes a completed transition. While running, Buffer is the
// engine's working buffer. After the final pass it is the waveform returned
// in Result. It is nil for StateDone. Observers must neither retain nor
// modify it.
type Step struct {
	State  State
	N      int
	Sigma  float32
	Mean   float32
	Buffer []float32
}

// StepObserver is notified after every stepper transition.
type StepObserver func(Step)

// Result is the outcome of one generation call. The waveform is owned by the
// caller; the engine never touches it again.
type Result struct {
	Waveform       []float32
	Mode           Mode
	Steps          int
	Classified     bool
	Classification Classification
}

// Engine runs reverse diffusion against a Denoiser.
//
// An Engine owns its scratch buffers and noise source and is built once and
// reused across calls. It is not reentrant: a call made while another is in
// flight fails fast with ErrBusy. Generation blocks for N denoiser calls and
// must never run on an audio rendering goroutine; see Worker.
type Engine struct {
	denoiser   Denoiser
	classifier Classifier
	noise      NoiseSource
	log        logrus.FieldLogger
	observer   StepObserver
	tMin, tMax float32

	busy atomic.Bool

	x    []float32 // working buffer
	y    []float32 // prediction
	eps  []float32 // noise scratch
	seed []float32 // fitted copy of the caller's seed
}

// NewEngine creates an engine around d.
func NewEngine(d Denoiser, opts ...Option) (*Engine, error) {
	if d == nil {
		return nil, ErrNilDenoiser
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if !(o.TMin > 0 && o.TMin < o.TMax && o.TMax < 1) {
		return nil, ErrInvalidTimeRange
	}
	if o.Noise == nil {
		o.Noise = NewNoise()
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}

	return &Engine{
		denoiser:   d,
		classifier: o.Classifier,
		noise:      o.Noise,
		log:        o.Logger,
		observer:   o.Observer,
		tMin:       o.TMin,
		tMax:       o.TMax,
		x:          make([]float32, SignalLength),
		y:          make([]float32, SignalLength),
		eps:        make([]float32, SignalLength),
		seed:       make([]float32, SignalLength),
	}, nil
}

// Generate synthesizes a waveform from pure noise.
func (e *Engine) Generate(ctx context.Context, steps int) (Result, error) {
	return e.run(ctx, unconditional{}, steps)
}

// GenerateSeeded resynthesizes seed through the full reverse process.
// seed is truncated or zero padded to SignalLength.
func (e *Engine) GenerateSeeded(ctx context.Context, seed []float32, steps int) (Result, error) {
	if len(seed) == 0 {
		return Result{}, ErrEmptySeed
	}

	return e.runSeeded(ctx, seed, steps, func(s []float32) conditioning {
		return seeded{seed: s}
	})
}

// GenerateInpainted keeps one half of the buffer anchored to seed while the
// other half evolves freely. paintFirstHalf selects the anchored half.
func (e *Engine) GenerateInpainted(ctx context.Context, seed []float32, paintFirstHalf bool, steps int) (Result, error) {
	if len(seed) == 0 {
		return Result{}, ErrEmptySeed
	}

	return e.runSeeded(ctx, seed, steps, func(s []float32) conditioning {
		return inpaint{seed: s, firstHalf: paintFirstHalf}
	})
}

// runSeeded copies seed into engine scratch under the busy guard, so the
// caller's slice is never read while another call is in flight.
func (e *Engine) runSeeded(ctx context.Context, seed []float32, steps int, cond func([]float32) conditioning) (Result, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer e.busy.Store(false)

	n := copy(e.seed, seed)
	clear(e.seed[n:])

	return e.generate(ctx, cond(e.seed), steps)
}

func (e *Engine) run(ctx context.Context, cond conditioning, steps int) (Result, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return Result{}, ErrBusy
	}
	defer e.busy.Store(false)

	return e.generate(ctx, cond, steps)
}

func (e *Engine) generate(ctx context.Context, cond conditioning, steps int) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	sched, err := BuildScheduleRange(steps, e.tMin, e.tMax)
	if err != nil {
		return Result{}, err
	}

	log := e.log.WithFields(logrus.Fields{
		"mode":  cond.mode().String(),
		"steps": steps,
	})
	if steps < MinRecommendedSteps || steps > MaxRecommendedSteps {
		log.WithFields(logrus.Fields{
			"min": MinRecommendedSteps,
			"max": MaxRecommendedSteps,
		}).Warn("step count outside recommended range")
	}

	start := time.Now()
	log.Info("generation started")

	cond.init(e.x, e.noise)

	out, err := e.reverse(ctx, sched, cond, log)
	if err != nil {
		log.WithError(err).Error("generation failed")
		return Result{}, err
	}

	res := Result{
		Waveform: out,
		Mode:     cond.mode(),
		Steps:    steps,
	}

	if e.classifier != nil {
		c, err := Classify(ctx, e.classifier, out)
		if err != nil {
			log.WithError(err).Error("classification failed")
			return Result{}, err
		}
		res.Classified = true
		res.Classification = c
	}

	fields := logrus.Fields{"elapsed": time.Since(start)}
	if res.Classified {
		fields["label"] = res.Classification.Label.String()
		fields["confidence"] = res.Classification.Confidence
	}
	log.WithFields(fields).Info("generation finished")

	e.notify(Step{State: StateDone})

	return res, nil
}

// reverse runs Running(N-1) .. Running(1) followed by the final pass and
// returns a freshly allocated output buffer.
func (e *Engine) reverse(ctx context.Context, s Schedule, cond conditioning, log logrus.FieldLogger) ([]float32, error) {
	x, y, eps := e.x, e.y, e.eps

	for n := s.Steps() - 1; n > 0; n-- {
		if err := e.predict(ctx, x, s.Sigma[n]); err != nil {
			return nil, fmt.Errorf("diffusion: denoise at step %d: %w", n, err)
		}

		ratio, scale, noiseScale := s.coefficients(n)

		e.noise.Fill(eps)
		for i := range x {
			x[i] = float32(ratio*x[i]) + float32(scale*y[i]) + float32(noiseScale*eps[i])
		}

		cond.anchor(x, s.Sigma[n], s.Mean[n], e.noise, eps)

		if err := checkFinite(x, n); err != nil {
			return nil, err
		}

		log.WithFields(logrus.Fields{
			"n":     n,
			"sigma": s.Sigma[n],
			"mean":  s.Mean[n],
		}).Debug("diffusion step")

		e.notify(Step{State: StateRunning, N: n, Sigma: s.Sigma[n], Mean: s.Mean[n], Buffer: x})
	}

	sigma0, mean0 := s.Sigma[0], s.Mean[0]
	if err := e.predict(ctx, x, sigma0); err != nil {
		return nil, fmt.Errorf("diffusion: denoise at final step: %w", err)
	}

	out := make([]float32, len(x))
	for i := range x {
		out[i] = (x[i] - float32(sigma0*y[i])) / mean0
	}

	if err := checkFinite(out, 0); err != nil {
		return nil, err
	}

	e.notify(Step{State: StateFinal, N: 0, Sigma: sigma0, Mean: mean0, Buffer: out})

	return out, nil
}

// predict calls the denoiser on x and copies its prediction into e.y.
func (e *Engine) predict(ctx context.Context, x []float32, sigma float32) error {
	pred, err := e.denoiser.Denoise(ctx, x, float64(sigma))
	if err != nil {
		return err
	}
	if len(pred) != len(e.y) {
		return fmt.Errorf("%w: got %d, want %d", ErrPredictionSize, len(pred), len(e.y))
	}
	copy(e.y, pred)

	return nil
}

func (e *Engine) notify(s Step) {
	if e.observer != nil {
		e.observer(s)
	}
}

func checkFinite(buf []float32, step int) error {
	for i, v := range buf {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return &NumericalError{Step: step, Index: i, Value: v}
		}
	}

	return nil
}
