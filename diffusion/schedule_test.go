// SPDX-License-Identifier: EPL-2.0

package diffusion

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildSchedule_Shape(t *testing.T) {
	t.Parallel()

	for _, steps := range []int{1, 2, 5, 10, 15, 50, 200} {
		t.Run(fmt.Sprintf("steps=%d", steps), func(t *testing.T) {
			t.Parallel()

			s, err := BuildSchedule(steps)
			require.NoError(t, err)
			require.Len(t, s.Sigma, steps+1)
			require.Len(t, s.Mean, steps+1)
			require.Equal(t, steps, s.Steps())

			for i := 1; i <= steps; i++ {
				require.GreaterOrEqual(t, s.Sigma[i], s.Sigma[i-1], "sigma must not decrease at %d", i)
				require.LessOrEqual(t, s.Mean[i], s.Mean[i-1], "mean must not increase at %d", i)
			}

			require.Less(t, s.Sigma[0], float32(1e-3), "sigma_0 should be near zero")
			require.Greater(t, s.Sigma[steps], float32(0.999), "sigma_N should be near one")
			require.Greater(t, s.Mean[0], float32(0.999))
			require.Greater(t, s.Mean[steps], float32(0), "mean_N must stay positive")
		})
	}
}

func TestBuildSchedule_MatchesCosineCurve(t *testing.T) {
	t.Parallel()

	const steps = 10
	s, err := BuildSchedule(steps)
	require.NoError(t, err)

	tMin, tMax := 0.007, 0.993
	for i := range steps + 1 {
		tt := (tMax-tMin)*float64(i)/steps + tMin
		sigma := 0.5 * (1 - math.Cos(math.Pi*tt))
		mean := math.Sqrt(1 - sigma*sigma)

		require.InDelta(t, sigma, s.Sigma[i], 1e-6, "sigma[%d]", i)
		require.InDelta(t, mean, s.Mean[i], 1e-4, "mean[%d]", i)
	}
}

func TestBuildSchedule_InvalidSteps(t *testing.T) {
	t.Parallel()

	for _, steps := range []int{0, -1, -100} {
		_, err := BuildSchedule(steps)
		require.ErrorIs(t, err, ErrInvalidSteps)
	}
}

func TestBuildScheduleRange_InvalidRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		tMin, tMax float32
	}{
		{"zero tMin", 0, 0.9},
		{"negative tMin", -0.1, 0.9},
		{"empty range", 0.5, 0.5},
		{"reversed", 0.6, 0.2},
		{"tMax of one", 0.1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := BuildScheduleRange(10, tt.tMin, tt.tMax)
			require.ErrorIs(t, err, ErrInvalidTimeRange)
		})
	}
}

func TestSchedule_Coefficients(t *testing.T) {
	t.Parallel()

	const steps = 10
	s, err := BuildSchedule(steps)
	require.NoError(t, err)

	for n := steps - 1; n > 0; n-- {
		sig, sigPrev := float64(s.Sigma[n]), float64(s.Sigma[n-1])
		m, mPrev := float64(s.Mean[n]), float64(s.Mean[n-1])

		wantRatio := mPrev / m
		wantScale := (m/mPrev)*sigPrev*sigPrev/sig - (mPrev/m)*sig
		r := sigPrev * m / (sig * mPrev)
		wantNoise := sigPrev * math.Sqrt(1-r*r)

		ratio, scale, noise := s.coefficients(n)
		require.InEpsilon(t, wantRatio, ratio, 1e-5, "ratio at %d", n)
		require.InEpsilon(t, wantScale, scale, 1e-4, "scale at %d", n)
		require.InEpsilon(t, wantNoise, noise, 1e-4, "noise at %d", n)
		require.Less(t, r, 1.0, "noise variance must stay positive at %d", n)
	}
}
