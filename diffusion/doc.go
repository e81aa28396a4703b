// SPDX-License-Identifier: EPL-2.0

// Package diffusion implements a reverse-diffusion drum sample synthesizer.
//
// The Engine reconstructs a fixed-length waveform (SignalLength samples at
// SampleRate, mono) by repeatedly asking a Denoiser for a prediction and
// applying the closed-form update of a variance-preserving process with a
// cosine noise schedule. The denoiser and the optional Classifier are opaque:
// the package has no dependency on any inference backend.
//
// # Schedule
//
// BuildSchedule(N) returns N+1 (sigma, mean) pairs for times linearly spaced
// in [DefaultTMin, DefaultTMax]:
//
//	sigma(t) = 0.5 * (1 - cos(pi * t))
//	mean(t)  = sqrt(1 - sigma(t)^2)
//
// # Conditioning
//
// Three entry points pick how the working buffer starts and evolves:
//
//	res, err := eng.Generate(ctx, 10)                     // from noise
//	res, err := eng.GenerateSeeded(ctx, seed, 10)         // "drumify"
//	res, err := eng.GenerateInpainted(ctx, seed, true, 10) // "variation"
//
// Inpainting re-anchors one half of the buffer to the seed after every step
// except the last, at the current noise level.
//
// # Stepping
//
// For n = N-1 .. 1 the engine calls the denoiser at sigma_n and updates
//
//	X <- (mean_{n-1}/mean_n) X + scale Y + noise
//
// then a final denoiser pass at sigma_0 yields (X - sigma_0 Y) / mean_0.
// Exactly N denoiser calls are made per generation.
//
// # Concurrency
//
// An Engine is not reentrant. Concurrent calls on the same instance return
// ErrBusy. Run generations off the audio path, for example through a Worker:
//
//	w, err := diffusion.NewWorker(eng, 4)
//	if err != nil {
//	    return err
//	}
//	go w.Run(ctx)
//	done, _ := w.Submit(ctx, diffusion.Job{Steps: 10})
//	out := <-done
//
// # Errors
//
// Invalid input is rejected with sentinel errors (ErrInvalidSteps,
// ErrEmptySeed). Denoiser and classifier failures are wrapped and end the
// call. NaN or Inf in the buffer is reported as a *NumericalError wrapping
// ErrNumericalInstability.
package diffusion
