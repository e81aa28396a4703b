// SPDX-License-Identifier: EPL-2.0

package config

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"CRASHIFY_DENOISER", "CRASHIFY_CLASSIFIER", "CRASHIFY_ORT_LIB", "CRASHIFY_THREADS",
	"CRASHIFY_STEPS", "CRASHIFY_FIRST_HALF", "CRASHIFY_SEED", "CRASHIFY_QUEUE",
	"CRASHIFY_OUT", "CRASHIFY_NORMALIZE", "CRASHIFY_FADE_MS", "CRASHIFY_BIT_DEPTH",
	"CRASHIFY_PLAY", "CRASHIFY_LOG_LEVEL", "CRASHIFY_LOG_FORMAT",
}

// clearEnv blanks every key; empty values fall back to defaults.
func clearEnv(t *testing.T) {
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	require.Equal(t, Config{
		DenoiserPath:   "models/unet.onnx",
		ClassifierPath: "models/classifier.onnx",
		Threads:        1,
		Steps:          10,
		Queue:          4,
		OutDir:         ".",
		Normalize:      true,
		Fade:           3 * time.Millisecond,
		BitDepth:       16,
		LogLevel:       "info",
		LogFormat:      "text",
	}, cfg)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CRASHIFY_DENOISER", "/m/unet.onnx")
	t.Setenv("CRASHIFY_ORT_LIB", "/usr/lib/libonnxruntime.so")
	t.Setenv("CRASHIFY_STEPS", "12")
	t.Setenv("CRASHIFY_FIRST_HALF", "true")
	t.Setenv("CRASHIFY_SEED", "-42")
	t.Setenv("CRASHIFY_NORMALIZE", "0")
	t.Setenv("CRASHIFY_FADE_MS", "1.5")
	t.Setenv("CRASHIFY_PLAY", "yes") // not a valid bool, keeps the default
	t.Setenv("CRASHIFY_LOG_FORMAT", "json")

	cfg := Load()
	require.Equal(t, "/m/unet.onnx", cfg.DenoiserPath)
	require.Equal(t, "/usr/lib/libonnxruntime.so", cfg.ORTLibrary)
	require.Equal(t, 12, cfg.Steps)
	require.True(t, cfg.FirstHalf)
	require.Equal(t, int64(-42), cfg.Seed)
	require.False(t, cfg.Normalize)
	require.Equal(t, 1500*time.Microsecond, cfg.Fade)
	require.False(t, cfg.Preview)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("CRASHIFY_STEPS", "ten")
	t.Setenv("CRASHIFY_SEED", "0x10")
	t.Setenv("CRASHIFY_FADE_MS", "short")

	cfg := Load()
	require.Equal(t, 10, cfg.Steps)
	require.Zero(t, cfg.Seed)
	require.Equal(t, 3*time.Millisecond, cfg.Fade)
}

func TestRegisterFlagsOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("CRASHIFY_STEPS", "7")

	cfg := Load()
	fs := flag.NewFlagSet("crashify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.RegisterFlags(fs)

	require.Equal(t, "7", fs.Lookup("steps").DefValue, "environment becomes the flag default")

	err := fs.Parse([]string{
		"-steps", "15", "-classifier", "", "-fade", "10ms",
		"-first-half", "-play", "-out", "/tmp/kicks", "variation", "seed.wav",
	})
	require.NoError(t, err)

	require.Equal(t, 15, cfg.Steps)
	require.Empty(t, cfg.ClassifierPath)
	require.Equal(t, 10*time.Millisecond, cfg.Fade)
	require.True(t, cfg.FirstHalf)
	require.True(t, cfg.Preview)
	require.Equal(t, "/tmp/kicks", cfg.OutDir)
	require.Equal(t, []string{"variation", "seed.wav"}, fs.Args())
}
