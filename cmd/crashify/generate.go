// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ik5/crashify"
	"github.com/ik5/crashify/diffusion"
	"github.com/ik5/crashify/internal/config"
	"github.com/ik5/crashify/onnx"
	"github.com/ik5/crashify/preview"
)

func execute(ctx context.Context, cfg config.Config, cmd command, log *logrus.Logger) error {
	opts := crashify.ExportOptions{
		Normalize: cfg.Normalize,
		Fade:      cfg.Fade,
		BitDepth:  cfg.BitDepth,
	}

	if cmd.name == "prepare" {
		return prepare(cmd.input, cmd.output, opts, log)
	}

	var seed []float32
	if cmd.input != "" {
		var err error
		if seed, err = crashify.LoadSeed(cmd.input); err != nil {
			return err
		}
	}

	res, err := generate(ctx, cfg, diffusion.Job{
		Mode:           cmd.mode,
		Seed:           seed,
		PaintFirstHalf: cfg.FirstHalf,
		Steps:          cfg.Steps,
	}, log)
	if err != nil {
		return err
	}

	name := res.Mode.String()
	fields := logrus.Fields{"mode": name, "steps": res.Steps}
	if res.Classified {
		name = res.Classification.Label.String()
		fields["label"] = name
		fields["confidence"] = res.Classification.Confidence
	}

	path, err := outputPath(cfg.OutDir, name)
	if err != nil {
		return err
	}

	if err := crashify.SaveSample(path, res.Waveform, opts); err != nil {
		return err
	}
	fields["path"] = path
	log.WithFields(fields).Info("sample written")

	if cfg.Preview {
		if err := preview.Play(ctx, opts.Shape(res.Waveform), diffusion.SampleRate); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
	}

	return nil
}

// generate loads the models, runs job on a worker and tears everything down.
func generate(ctx context.Context, cfg config.Config, job diffusion.Job, log *logrus.Logger) (diffusion.Result, error) {
	if err := onnx.Init(cfg.ORTLibrary); err != nil {
		return diffusion.Result{}, err
	}
	defer func() {
		if err := onnx.Shutdown(); err != nil {
			log.WithError(err).Warn("onnx shutdown")
		}
	}()

	mopts := []onnx.Option{onnx.WithThreads(cfg.Threads, 1), onnx.WithLogger(log)}

	den, err := onnx.NewDenoiser(cfg.DenoiserPath, mopts...)
	if err != nil {
		return diffusion.Result{}, err
	}
	defer closeLogged(log, "denoiser", den.Close)

	eopts := []diffusion.Option{diffusion.WithLogger(log)}
	if cfg.Seed != 0 {
		eopts = append(eopts, diffusion.WithNoise(diffusion.NewSeededNoise(cfg.Seed)))
	}

	if cfg.ClassifierPath != "" {
		cls, err := onnx.NewClassifier(cfg.ClassifierPath, mopts...)
		switch {
		case errors.Is(err, onnx.ErrModelNotFound):
			log.WithField("path", cfg.ClassifierPath).Warn("classifier not found, samples stay unlabeled")
		case err != nil:
			return diffusion.Result{}, err
		default:
			defer closeLogged(log, "classifier", cls.Close)
			eopts = append(eopts, diffusion.WithClassifier(cls))
		}
	}

	eng, err := diffusion.NewEngine(den, eopts...)
	if err != nil {
		return diffusion.Result{}, err
	}

	w, err := diffusion.NewWorker(eng, cfg.Queue)
	if err != nil {
		return diffusion.Result{}, err
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		w.Run(ctx)
	}()
	defer func() {
		w.Stop()
		<-stopped
	}()

	done, err := w.Submit(ctx, job)
	if err != nil {
		return diffusion.Result{}, err
	}

	out := <-done

	return out.Result, out.Err
}

func prepare(in, out string, opts crashify.ExportOptions, log logrus.FieldLogger) error {
	seed, err := crashify.LoadSeed(in)
	if err != nil {
		return err
	}

	// a seed must reach the engine as loaded
	opts.Normalize = false
	opts.Fade = 0
	if err := crashify.SaveSample(out, seed, opts); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"input":   in,
		"output":  out,
		"samples": len(seed),
	}).Info("seed prepared")

	return nil
}

// outputPath returns out itself when it names a .wav file, otherwise a fresh
// <name>-<uuid>.wav inside the directory out, which is created if needed.
func outputPath(out, name string) (string, error) {
	if strings.EqualFold(filepath.Ext(out), ".wav") {
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("output dir: %w", err)
			}
		}
		return out, nil
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		return "", fmt.Errorf("output dir: %w", err)
	}

	return filepath.Join(out, name+"-"+uuid.NewString()+".wav"), nil
}

func closeLogged(log logrus.FieldLogger, what string, fn func() error) {
	if err := fn(); err != nil {
		log.WithError(err).Warnf("close %s", what)
	}
}
