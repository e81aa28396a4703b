// SPDX-License-Identifier: EPL-2.0

package diffusion

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the engine.
var (
	// ErrInvalidSteps indicates a step count below one.
	ErrInvalidSteps = errors.New("diffusion: step count must be at least 1")

	// ErrInvalidTimeRange indicates a schedule time range outside 0 < tMin < tMax < 1.
	ErrInvalidTimeRange = errors.New("diffusion: time range must satisfy 0 < tMin < tMax < 1")

	// ErrEmptySeed indicates a seeded or inpainting call without seed audio.
	ErrEmptySeed = errors.New("diffusion: seed buffer is empty")

	// ErrNilDenoiser indicates that NewEngine was called without a denoiser.
	ErrNilDenoiser = errors.New("diffusion: denoiser is nil")

	// ErrNilEngine indicates that NewWorker was called without an engine.
	ErrNilEngine = errors.New("diffusion: engine is nil")

	// ErrNilClassifier indicates that Classify was called without a classifier.
	ErrNilClassifier = errors.New("diffusion: classifier is nil")

	// ErrEmptyScores indicates that the classifier returned no scores.
	ErrEmptyScores = errors.New("diffusion: classifier returned no scores")

	// ErrPredictionSize indicates a denoiser prediction of the wrong length.
	ErrPredictionSize = errors.New("diffusion: prediction length does not match signal length")

	// ErrBusy indicates a call on an engine that is already generating.
	ErrBusy = errors.New("diffusion: engine is already running a generation")

	// ErrNumericalInstability indicates NaN or Inf in the working buffer.
	ErrNumericalInstability = errors.New("diffusion: numerical instability")

	// ErrWorkerClosed indicates a job submitted to a worker that has stopped.
	ErrWorkerClosed = errors.New("diffusion: worker is closed")
)

// NumericalError reports the first non-finite sample found after a step.
type NumericalError struct {
	Step  int // diffusion step index, 0 for the final pass
	Index int // sample index in the buffer
	Value float32
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("%v: sample %d is %v after step %d",
		ErrNumericalInstability, e.Index, e.Value, e.Step)
}

func (e *NumericalError) Unwrap() error { return ErrNumericalInstability }
