// SPDX-License-Identifier: EPL-2.0

package utils

// CatmullRomWeights returns the weights of four consecutive points for a
// Catmull-Rom spline evaluated at x, the fractional position between the
// second and third point. The weights sum to one.
func CatmullRomWeights(x float32) (w0, w1, w2, w3 float32) {
	x2 := x * x
	x3 := x2 * x

	w0 = 0.5 * (-x3 + 2*x2 - x)
	w1 = 0.5 * (3*x3 - 5*x2 + 2)
	w2 = 0.5 * (-3*x3 + 4*x2 + x)
	w3 = 0.5 * (x3 - x2)

	return w0, w1, w2, w3
}

// CubicFrame interpolates every channel of four consecutive interleaved
// frames into out at position x in [0, 1] between f1 and f2. All frames must
// be at least len(out) long.
func CubicFrame(out, f0, f1, f2, f3 []float32, x float32) {
	w0, w1, w2, w3 := CatmullRomWeights(x)
	for c := range out {
		out[c] = w0*f0[c] + w1*f1[c] + w2*f2[c] + w3*f3[c]
	}
}
