// SPDX-License-Identifier: EPL-2.0

package crashify

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ik5/crashify/audio"
	"github.com/ik5/crashify/diffusion"
	"github.com/ik5/crashify/formats/wav"
)

// DefaultFade is the fade applied at both ends of an exported sample.
const DefaultFade = 3 * time.Millisecond

// ExportOptions controls how a generated waveform is written.
type ExportOptions struct {
	// Normalize scales the peak to full scale before encoding.
	Normalize bool
	// Fade is the length of the square root fade in and fade out, capped
	// at half the sample. Zero disables fading.
	Fade time.Duration
	// BitDepth of the PCM output, 16 or 24. Zero means 16.
	BitDepth int
}

// DefaultExportOptions normalizes, fades by DefaultFade and writes 16-bit.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Normalize: true,
		Fade:      DefaultFade,
		BitDepth:  16,
	}
}

// Shape returns a copy of samples with normalization and fades applied.
func (o ExportOptions) Shape(samples []float32) []float32 {
	out := append([]float32(nil), samples...)
	if o.Normalize {
		audio.Normalize(out)
	}

	if fade := fadeSamples(o.Fade, len(out)); fade > 0 {
		audio.ApplyFade(out, fade, fade)
	}

	return out
}

func fadeSamples(d time.Duration, n int) int {
	if d <= 0 {
		return 0
	}

	return min(int(d.Seconds()*diffusion.SampleRate), n/2)
}

// WriteSample shapes samples per opts and encodes them as mono WAV at
// diffusion.SampleRate. samples is not modified.
func WriteSample(w io.WriteSeeker, samples []float32, opts ExportOptions) error {
	bitDepth := opts.BitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}

	if err := wav.WriteMono(w, diffusion.SampleRate, bitDepth, opts.Shape(samples)); err != nil {
		return fmt.Errorf("crashify: write sample: %w", err)
	}

	return nil
}

// SaveSample writes samples to a new WAV file at path, replacing any
// existing file.
func SaveSample(path string, samples []float32, opts ExportOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crashify: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("crashify: close %s: %w", path, cerr)
		}
	}()

	return WriteSample(f, samples, opts)
}
