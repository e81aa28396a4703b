// SPDX-License-Identifier: EPL-2.0

package crashify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ik5/crashify/audio"
	"github.com/ik5/crashify/diffusion"
	"github.com/ik5/crashify/formats/aiff"
	"github.com/ik5/crashify/formats/mp3"
	"github.com/ik5/crashify/formats/vorbis"
	"github.com/ik5/crashify/formats/wav"
)

// ErrUnsupportedFormat indicates a seed file whose extension has no decoder.
var ErrUnsupportedFormat = errors.New("crashify: unsupported audio format")

var defaultRegistry = sync.OnceValue(func() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{}, ".wav", ".wave")
	reg.Register("aiff", aiff.Decoder{}, ".aiff", ".aif")
	reg.Register("mp3", mp3.Decoder{}, ".mp3")
	reg.Register("vorbis", vorbis.Decoder{}, ".ogg", ".oga")

	return reg
})

// Registry returns the decoder registry used by LoadSeed.
func Registry() *audio.Registry { return defaultRegistry() }

// LoadSeed decodes the audio file at path into a model ready seed: 44.1 kHz
// mono, exactly diffusion.SignalLength samples.
func LoadSeed(path string) ([]float32, error) {
	dec, _, ok := defaultRegistry().ForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("crashify: open seed: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("crashify: decode %s: %w", path, err)
	}

	return LoadSeedFrom(src)
}

// LoadSeedFrom prepares a seed from an open source and closes it.
func LoadSeedFrom(src audio.Source) ([]float32, error) {
	defer src.Close()

	seed, err := audio.ToMono(src, diffusion.SampleRate, diffusion.SignalLength)
	if err != nil {
		return nil, fmt.Errorf("crashify: prepare seed: %w", err)
	}

	return seed, nil
}
