// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/crashify/audio"
	"github.com/ik5/crashify/formats/internal/intpcm"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("wav: read input: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()

	switch dec.WavAudioFormat {
	case formatPCM, formatExtensible:
	default:
		return nil, fmt.Errorf("%w: format tag %#x", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	if dec.NumChans == 0 || dec.SampleRate == 0 || dec.Format() == nil {
		return nil, ErrUnsupportedWavLayout
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	channels := int(dec.NumChans)
	samples := dec.PCMSize / (bitDepth / 8)
	samples -= samples % channels

	pcm := intpcm.Limit(dec, samples)
	if bitDepth == 8 {
		pcm = unsigned8{pcm}
	}

	return intpcm.New(pcm, int(dec.SampleRate), channels, bitDepth), nil
}

// unsigned8 recenters 8-bit WAV samples, which are stored unsigned.
type unsigned8 struct {
	intpcm.Reader
}

func (u unsigned8) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	n, err := u.Reader.PCMBuffer(buf)
	for i := range buf.Data[:n] {
		buf.Data[i] -= 128
	}

	return n, err
}
