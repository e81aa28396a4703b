// SPDX-License-Identifier: EPL-2.0

// Package config loads crashify settings from CRASHIFY_* environment
// variables and lets command-line flags override them.
package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration.
type Config struct {
	// Models
	DenoiserPath   string
	ClassifierPath string // empty disables classification
	ORTLibrary     string // ONNX Runtime shared library; empty uses the default lookup
	Threads        int    // intra-op threads per session

	// Generation
	Steps     int
	FirstHalf bool // inpaint the first half in variation mode
	Seed      int64
	Queue     int // jobs that may wait behind the running one

	// Output
	OutDir    string
	Normalize bool
	Fade      time.Duration
	BitDepth  int
	Preview   bool

	// Logging
	LogLevel  string
	LogFormat string // text or json
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		DenoiserPath:   envStr("CRASHIFY_DENOISER", "models/unet.onnx"),
		ClassifierPath: envStr("CRASHIFY_CLASSIFIER", "models/classifier.onnx"),
		ORTLibrary:     envStr("CRASHIFY_ORT_LIB", ""),
		Threads:        envInt("CRASHIFY_THREADS", 1),

		Steps:     envInt("CRASHIFY_STEPS", 10),
		FirstHalf: envBool("CRASHIFY_FIRST_HALF", false),
		Seed:      envInt64("CRASHIFY_SEED", 0),
		Queue:     envInt("CRASHIFY_QUEUE", 4),

		OutDir:    envStr("CRASHIFY_OUT", "."),
		Normalize: envBool("CRASHIFY_NORMALIZE", true),
		Fade:      time.Duration(envFloat("CRASHIFY_FADE_MS", 3) * float64(time.Millisecond)),
		BitDepth:  envInt("CRASHIFY_BIT_DEPTH", 16),
		Preview:   envBool("CRASHIFY_PLAY", false),

		LogLevel:  envStr("CRASHIFY_LOG_LEVEL", "info"),
		LogFormat: envStr("CRASHIFY_LOG_FORMAT", "text"),
	}
}

// RegisterFlags binds every setting to a flag on fs, using the current
// values of c as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.DenoiserPath, "denoiser", c.DenoiserPath, "denoiser ONNX model")
	fs.StringVar(&c.ClassifierPath, "classifier", c.ClassifierPath, "classifier ONNX model, empty to skip classification")
	fs.StringVar(&c.ORTLibrary, "ort-lib", c.ORTLibrary, "path to the ONNX Runtime shared library")
	fs.IntVar(&c.Threads, "threads", c.Threads, "intra-op threads per model session")

	fs.IntVar(&c.Steps, "steps", c.Steps, "number of diffusion steps (5-15 recommended)")
	fs.BoolVar(&c.FirstHalf, "first-half", c.FirstHalf, "variation: keep the first half of the seed instead of the second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "noise seed, 0 for a random one")
	fs.IntVar(&c.Queue, "queue", c.Queue, "number of queued jobs")

	fs.StringVar(&c.OutDir, "out", c.OutDir, "output directory, or a .wav file path")
	fs.BoolVar(&c.Normalize, "normalize", c.Normalize, "peak normalize the output")
	fs.DurationVar(&c.Fade, "fade", c.Fade, "fade in and out length")
	fs.IntVar(&c.BitDepth, "bit-depth", c.BitDepth, "output bit depth, 16 or 24")
	fs.BoolVar(&c.Preview, "play", c.Preview, "play the result after writing it")

	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: trace, debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text or json")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
