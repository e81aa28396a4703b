// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Source is a pull based stream of interleaved float32 samples in [-1, 1].
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved samples and returns the number
	// of float32 values written, not frames. A final chunk may arrive
	// together with io.EOF.
	ReadSamples(dst []float32) (n int, err error)
	// BufSize is the preferred read size in samples.
	BufSize() int
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format names and file extensions to decoders.
type Registry struct {
	mtx    sync.RWMutex
	codecs map[string]Decoder
	exts   map[string]string // extension -> format
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		exts:   make(map[string]string),
	}
}

// Register adds d under format and makes it reachable from every extension
// in exts (with or without the leading dot, case insensitive).
func (r *Registry) Register(format string, d Decoder, exts ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
	for _, ext := range exts {
		r.exts[normalizeExt(ext)] = format
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[format]
	return d, ok
}

// ForPath returns the decoder registered for the extension of path.
func (r *Registry) ForPath(path string) (Decoder, string, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	format, ok := r.exts[normalizeExt(filepath.Ext(path))]
	if !ok {
		return nil, "", false
	}

	d, ok := r.codecs[format]
	return d, format, ok
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]string, 0, len(r.codecs))
	for f := range r.codecs {
		out = append(out, f)
	}
	slices.Sort(out)

	return out
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
