// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// ReadN reads at most n samples from src. It stops early at io.EOF, which is
// not returned as an error.
func ReadN(src Source, n int) ([]float32, error) {
	ch := max(src.Channels(), 1)
	size := max(src.BufSize(), ch)
	buf := make([]float32, size-size%ch)
	out := make([]float32, 0, n)

	for len(out) < n {
		// whole frames only; the surplus of the last one is dropped
		want := min(len(buf), n-len(out))
		want += (ch - want%ch) % ch

		got, err := src.ReadSamples(buf[:want])
		out = append(out, buf[:min(got, n-len(out))]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, fmt.Errorf("audio: read: %w", err)
		}
	}

	return out, nil
}

// ToMono resamples src to rate, mixes it down to one channel and returns
// exactly length samples, zero padded when the source is shorter.
// It fails with ErrEmptySource when the source yields nothing.
func ToMono(src Source, rate, length int) ([]float32, error) {
	rs, err := NewResampler(src, rate)
	if err != nil {
		return nil, err
	}

	samples, err := ReadN(NewMonoMixer(rs), length)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrEmptySource
	}

	return Fit(samples, length), nil
}
