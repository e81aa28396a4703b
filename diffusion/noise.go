// SPDX-License-Identifier: EPL-2.0

package diffusion

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"github.com/seehuhn/mt19937"
)

// NoiseSource fills buffers with i.i.d. standard normal samples.
// Implementations need not be safe for concurrent use; an Engine never
// calls its source from more than one goroutine at a time.
type NoiseSource interface {
	Fill(dst []float32)
}

// gaussian draws normal samples from a Mersenne Twister.
type gaussian struct {
	rng *rand.Rand
}

// NewNoise returns a Mersenne Twister backed source seeded from the
// operating system's entropy pool. Falls back to a fixed seed only if the
// entropy pool cannot be read.
func NewNoise() NoiseSource {
	var b [8]byte
	seed := int64(5489) // reference MT19937 default seed
	if _, err := crand.Read(b[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}

	return NewSeededNoise(seed)
}

// NewSeededNoise returns a deterministic Mersenne Twister backed source.
func NewSeededNoise(seed int64) NoiseSource {
	mt := mt19937.New()
	mt.Seed(seed)

	return &gaussian{rng: rand.New(mt)}
}

func (g *gaussian) Fill(dst []float32) {
	for i := range dst {
		dst[i] = float32(g.rng.NormFloat64())
	}
}

// ZeroNoise is a source that always yields zeros. Useful for checking the
// deterministic part of the update.
type ZeroNoise struct{}

func (ZeroNoise) Fill(dst []float32) { clear(dst) }
