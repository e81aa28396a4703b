// SPDX-License-Identifier: EPL-2.0

package diffusion

import "math"

// Default bounds of the diffusion time range. Keeping tMin above zero keeps
// mean_0 away from zero, which the final pass divides by.
const (
	DefaultTMin float32 = 0.007
	DefaultTMax float32 = 1.0 - 0.007
)

// Schedule holds the noise level (Sigma) and retained signal (Mean) for every
// step index 0..N. Sigma grows and Mean shrinks with the index.
type Schedule struct {
	Sigma []float32
	Mean  []float32
}

// Steps returns N, the number of denoiser calls the schedule drives.
func (s Schedule) Steps() int { return len(s.Sigma) - 1 }

// BuildSchedule computes the cosine schedule for steps denoiser calls over
// the default time range.
func BuildSchedule(steps int) (Schedule, error) {
	return BuildScheduleRange(steps, DefaultTMin, DefaultTMax)
}

// BuildScheduleRange computes the cosine schedule over [tMin, tMax]:
//
//	t_i     = (tMax - tMin) * i / N + tMin
//	sigma_i = 0.5 * (1 - cos(pi * t_i))
//	mean_i  = sqrt(1 - sigma_i^2)
func BuildScheduleRange(steps int, tMin, tMax float32) (Schedule, error) {
	if steps < 1 {
		return Schedule{}, ErrInvalidSteps
	}
	if !(tMin > 0 && tMin < tMax && tMax < 1) {
		return Schedule{}, ErrInvalidTimeRange
	}

	s := Schedule{
		Sigma: make([]float32, steps+1),
		Mean:  make([]float32, steps+1),
	}
	for i := range steps + 1 {
		t := (tMax-tMin)*float32(i)/float32(steps) + tMin
		s.Sigma[i] = sigmaAt(t)
		s.Mean[i] = meanAt(s.Sigma[i])
	}

	return s, nil
}

func sigmaAt(t float32) float32 {
	return 0.5 * (1 - float32(math.Cos(math.Pi*float64(t))))
}

func meanAt(sigma float32) float32 {
	return float32(math.Sqrt(float64(1 - sigma*sigma)))
}

// coefficients returns the update terms for the transition out of step n:
// ratio multiplies X, scale multiplies the prediction and noiseScale
// multiplies fresh standard normal noise.
func (s Schedule) coefficients(n int) (ratio, scale, noiseScale float32) {
	sig, sigPrev := s.Sigma[n], s.Sigma[n-1]
	m, mPrev := s.Mean[n], s.Mean[n-1]

	ratio = mPrev / m
	scale = float32(m/mPrev*sigPrev*sigPrev/sig) - float32(ratio*sig)

	r := sigPrev * m / (sig * mPrev)
	noiseScale = sigPrev * float32(math.Sqrt(math.Max(0, float64(1-r*r))))

	return ratio, scale, noiseScale
}
