// SPDX-License-Identifier: EPL-2.0

package diffusion

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Job describes one generation request handed to a Worker.
type Job struct {
	Mode           Mode
	Seed           []float32 // required for ModeSeeded and ModeInpaint
	PaintFirstHalf bool
	Steps          int
}

// Outcome is delivered once per submitted Job.
type Outcome struct {
	Job    Job
	Result Result
	Err    error
}

type request struct {
	ctx  context.Context
	job  Job
	done chan Outcome
}

// Worker serializes jobs onto a single Engine from its own goroutine, so
// callers such as an audio callback never block on the denoiser. Each
// submission gets its own buffered completion channel.
type Worker struct {
	eng  *Engine
	log  logrus.FieldLogger
	jobs chan request

	mu       sync.RWMutex // excludes Submit while drain answers leftovers
	stopOnce sync.Once
	stopped  chan struct{}
}

// NewWorker wraps eng. queue is the number of jobs that may wait while one
// is running.
func NewWorker(eng *Engine, queue int) (*Worker, error) {
	if eng == nil {
		return nil, ErrNilEngine
	}
	if queue < 0 {
		queue = 0
	}

	return &Worker{
		eng:     eng,
		log:     eng.log,
		jobs:    make(chan request, queue),
		stopped: make(chan struct{}),
	}, nil
}

// Run processes jobs until ctx is done or Stop is called. Jobs still queued
// when it returns are answered with ErrWorkerClosed.
func (w *Worker) Run(ctx context.Context) {
	defer w.drain()

	for {
		// stopping wins over queued work
		select {
		case <-ctx.Done():
			return
		case <-w.stopped:
			return
		default:
		}

		select {
		case <-ctx.Done():
			return
		case <-w.stopped:
			return
		case req := <-w.jobs:
			req.done <- w.exec(req)
		}
	}
}

// Stop makes Run return after the job in progress, if any.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopped) })
}

// Submit queues job and returns the channel its Outcome will be sent on.
// It blocks while the queue is full, until ctx is done or the worker stops.
func (w *Worker) Submit(ctx context.Context, job Job) (<-chan Outcome, error) {
	done := make(chan Outcome, 1)
	req := request{ctx: ctx, job: job, done: done}

	w.mu.RLock()
	defer w.mu.RUnlock()

	select {
	case <-w.stopped:
		return nil, ErrWorkerClosed
	default:
	}

	select {
	case w.jobs <- req:
		return done, nil
	case <-w.stopped:
		return nil, ErrWorkerClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (w *Worker) exec(req request) Outcome {
	var (
		res Result
		err error
	)

	switch req.job.Mode {
	case ModeSeeded:
		res, err = w.eng.GenerateSeeded(req.ctx, req.job.Seed, req.job.Steps)
	case ModeInpaint:
		res, err = w.eng.GenerateInpainted(req.ctx, req.job.Seed, req.job.PaintFirstHalf, req.job.Steps)
	default:
		res, err = w.eng.Generate(req.ctx, req.job.Steps)
	}

	if err != nil {
		w.log.WithFields(logrus.Fields{
			"mode":  req.job.Mode.String(),
			"steps": req.job.Steps,
		}).WithError(err).Warn("job failed")
	}

	return Outcome{Job: req.job, Result: res, Err: err}
}

func (w *Worker) drain() {
	w.Stop()

	w.mu.Lock()
	defer w.mu.Unlock()

	for {
		select {
		case req := <-w.jobs:
			req.done <- Outcome{Job: req.job, Err: ErrWorkerClosed}
		default:
			return
		}
	}
}
