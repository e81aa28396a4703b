// SPDX-License-Identifier: EPL-2.0

package diffusion

// Mode identifies how the working buffer is conditioned.
type Mode int

const (
	// ModeUnconditional starts from pure noise.
	ModeUnconditional Mode = iota
	// ModeSeeded starts from caller audio ("drumify").
	ModeSeeded
	// ModeInpaint starts from noise and re-anchors half of the buffer to the
	// seed after every step ("variation").
	ModeInpaint
)

func (m Mode) String() string {
	switch m {
	case ModeUnconditional:
		return "unconditional"
	case ModeSeeded:
		return "seeded"
	case ModeInpaint:
		return "inpaint"
	default:
		return "unknown"
	}
}

// conditioning supplies the starting buffer and the per-step region rule.
type conditioning interface {
	mode() Mode
	// init fills x with the starting state.
	init(x []float32, noise NoiseSource)
	// anchor runs after the update of step n, for n = N-1 .. 1.
	anchor(x []float32, sigma, mean float32, noise NoiseSource, scratch []float32)
}

type unconditional struct{}

func (unconditional) mode() Mode { return ModeUnconditional }

func (unconditional) init(x []float32, noise NoiseSource) { noise.Fill(x) }

func (unconditional) anchor([]float32, float32, float32, NoiseSource, []float32) {}

type seeded struct {
	seed []float32
}

func (seeded) mode() Mode { return ModeSeeded }

func (c seeded) init(x []float32, _ NoiseSource) { copy(x, c.seed) }

func (seeded) anchor([]float32, float32, float32, NoiseSource, []float32) {}

type inpaint struct {
	seed      []float32
	firstHalf bool
}

func (inpaint) mode() Mode { return ModeInpaint }

func (inpaint) init(x []float32, noise NoiseSource) { noise.Fill(x) }

// anchor overwrites the painted half with the seed diffused to the current
// noise level: mean*seed[i] + sigma*eps[i].
func (c inpaint) anchor(x []float32, sigma, mean float32, noise NoiseSource, scratch []float32) {
	start, end := paintRegion(len(x), c.firstHalf)

	eps := scratch[:end-start]
	noise.Fill(eps)
	for i := start; i < end; i++ {
		x[i] = float32(mean*c.seed[i]) + float32(sigma*eps[i-start])
	}
}

// paintRegion returns the [start, end) range anchored to the seed.
func paintRegion(n int, firstHalf bool) (int, int) {
	mid := n / 2
	if firstHalf {
		return 0, mid
	}

	return mid, n
}
