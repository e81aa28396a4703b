// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// Fit returns samples truncated or zero padded to length. The input is
// returned as is when it already has that length.
func Fit(samples []float32, length int) []float32 {
	if len(samples) == length {
		return samples
	}

	out := make([]float32, length)
	copy(out, samples)

	return out
}

// Peak returns the largest absolute sample value.
func Peak(samples []float32) float32 {
	var peak float32
	for _, v := range samples {
		if a := float32(math.Abs(float64(v))); a > peak {
			peak = a
		}
	}

	return peak
}

// Normalize scales samples in place so that the peak is at full scale.
// Silent or non-finite buffers are left untouched.
func Normalize(samples []float32) {
	peak := Peak(samples)
	if peak == 0 || math.IsInf(float64(peak), 0) || math.IsNaN(float64(peak)) {
		return
	}

	for i := range samples {
		samples[i] /= peak
	}
}

// ApplyFade applies a square root fade in over the first fadeIn samples
// and a square root fade out over the last fadeOut samples. Lengths are
// clamped to the buffer.
func ApplyFade(samples []float32, fadeIn, fadeOut int) {
	fadeIn = min(max(fadeIn, 0), len(samples))
	for i := range fadeIn {
		samples[i] *= float32(math.Sqrt(float64(i) / float64(fadeIn)))
	}

	fadeOut = min(max(fadeOut, 0), len(samples))
	start := len(samples) - fadeOut
	for i := range fadeOut {
		samples[start+i] *= float32(math.Sqrt(float64(fadeOut-i) / float64(fadeOut)))
	}
}
