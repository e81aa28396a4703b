// SPDX-License-Identifier: EPL-2.0

package diffusion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ik5/crashify/internal/audiotest"
)

func newTestWorker(t *testing.T, eng *Engine, queue int) *Worker {
	t.Helper()

	w, err := NewWorker(eng, queue)
	require.NoError(t, err)

	return w
}

func startWorker(t *testing.T, w *Worker) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestWorker_RunsEveryMode(t *testing.T) {
	t.Parallel()

	den := &audiotest.Denoiser{}
	eng := newTestEngine(t, den, WithNoise(NewSeededNoise(2)))
	w := newTestWorker(t, eng, 4)
	startWorker(t, w)

	seed := make([]float32, SignalLength)
	jobs := []Job{
		{Mode: ModeUnconditional, Steps: 3},
		{Mode: ModeSeeded, Seed: seed, Steps: 4},
		{Mode: ModeInpaint, Seed: seed, PaintFirstHalf: true, Steps: 5},
	}

	var pending []<-chan Outcome
	for _, j := range jobs {
		ch, err := w.Submit(context.Background(), j)
		require.NoError(t, err)
		pending = append(pending, ch)
	}

	for i, ch := range pending {
		out := <-ch
		require.NoError(t, out.Err)
		require.Equal(t, jobs[i].Mode, out.Result.Mode)
		require.Equal(t, jobs[i].Steps, out.Result.Steps)
		require.Len(t, out.Result.Waveform, SignalLength)
	}

	require.Equal(t, 3+4+5, den.Calls())
}

func TestWorker_ReportsJobErrors(t *testing.T) {
	t.Parallel()

	w := newTestWorker(t, newTestEngine(t, &audiotest.Denoiser{}), 1)
	startWorker(t, w)

	ch, err := w.Submit(context.Background(), Job{Mode: ModeSeeded, Steps: 3})
	require.NoError(t, err)
	require.ErrorIs(t, (<-ch).Err, ErrEmptySeed)

	ch, err = w.Submit(context.Background(), Job{Steps: 0})
	require.NoError(t, err)
	require.ErrorIs(t, (<-ch).Err, ErrInvalidSteps)
}

func TestNewWorker_NilEngine(t *testing.T) {
	t.Parallel()

	w, err := NewWorker(nil, 1)
	require.ErrorIs(t, err, ErrNilEngine)
	require.Nil(t, w)
}

func TestWorker_SubmitAfterStop(t *testing.T) {
	t.Parallel()

	w := newTestWorker(t, newTestEngine(t, &audiotest.Denoiser{}), 1)
	w.Stop()
	w.Stop()

	_, err := w.Submit(context.Background(), Job{Steps: 1})
	require.ErrorIs(t, err, ErrWorkerClosed)
}

func TestWorker_DrainsQueuedJobsOnStop(t *testing.T) {
	t.Parallel()

	den, entered, release := audiotest.NewBlockingDenoiser()
	defer release()

	w := newTestWorker(t, newTestEngine(t, den, WithNoise(ZeroNoise{})), 2)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		w.Run(context.Background())
	}()

	running, err := w.Submit(context.Background(), Job{Steps: 1})
	require.NoError(t, err)
	<-entered

	queued, err := w.Submit(context.Background(), Job{Steps: 1})
	require.NoError(t, err)

	w.Stop()
	release()

	require.NoError(t, (<-running).Err, "the job in progress completes")
	require.ErrorIs(t, (<-queued).Err, ErrWorkerClosed)
	<-stopped
	require.Equal(t, 1, den.Calls())
}

func TestWorker_SubmitHonorsContext(t *testing.T) {
	t.Parallel()

	// no Run loop and no queue, so the send can never proceed
	w := newTestWorker(t, newTestEngine(t, &audiotest.Denoiser{}), 0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := w.Submit(ctx, Job{Steps: 1})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWorker_JobContextCancelsGeneration(t *testing.T) {
	t.Parallel()

	w := newTestWorker(t, newTestEngine(t, &audiotest.Denoiser{}), 1)
	startWorker(t, w)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Submit may observe the canceled context first; both outcomes are a
	// cancellation.
	ch, err := w.Submit(ctx, Job{Steps: 3})
	if err != nil {
		require.ErrorIs(t, err, context.Canceled)
		return
	}
	require.ErrorIs(t, (<-ch).Err, context.Canceled)
}
