// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// PCMScale is the magnitude of full scale for signed PCM of the given bit
// depth (2^(bits-1)). Unknown depths are treated as 16-bit.
func PCMScale(bitDepth int) float32 {
	switch bitDepth {
	case 8, 16, 24, 32:
		return float32(int64(1) << (bitDepth - 1))
	default:
		return 32768
	}
}

// PCMToFloat32 converts a signed PCM sample to a float in [-1, 1).
func PCMToFloat32(v, bitDepth int) float32 {
	return float32(v) / PCMScale(bitDepth)
}

// Float32ToPCM converts x to a signed PCM sample of the given bit depth,
// rounding to nearest and clamping to the representable range.
func Float32ToPCM(x float32, bitDepth int) int {
	scale := float64(PCMScale(bitDepth))
	if math.IsNaN(float64(x)) {
		return 0
	}

	v := math.Round(float64(x) * scale)
	return int(min(max(v, -scale), scale-1))
}

// Float32ToInt16 is Float32ToPCM for 16-bit samples.
func Float32ToInt16(x float32) int16 {
	return int16(Float32ToPCM(x, 16))
}
