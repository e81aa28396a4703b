// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/crashify/utils"
)

// WriteMono encodes samples as a mono PCM WAV at sampleRate. bitDepth must
// be 16 or 24. Samples outside [-1, 1] are clipped.
func WriteMono(w io.WriteSeeker, sampleRate, bitDepth int, samples []float32) error {
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrUnsupportedWavLayout, sampleRate)
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: bitDepth,
	}
	for i, v := range samples {
		buf.Data[i] = utils.Float32ToPCM(v, bitDepth)
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, formatPCM)
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("wav: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: finalize: %w", err)
	}

	return nil
}
