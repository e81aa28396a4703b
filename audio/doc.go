// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives used to turn arbitrary
// audio files into model ready signals.
//
// Everything is built around Source, a pull based stream of interleaved
// float32 samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders in the formats packages produce a Source; Resampler and
// MonoMixer wrap one and are Sources themselves, so they chain:
//
//	rs, err := audio.NewResampler(src, 44100)
//	if err != nil {
//	    return err
//	}
//	seed, err := audio.ReadN(audio.NewMonoMixer(rs), 21000)
//
// ToMono does exactly that and pads the result to a fixed length.
//
// # Registry
//
// A Registry maps format names and file extensions to decoders:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{}, ".wav", ".wave")
//	dec, format, ok := reg.ForPath("kick.WAV")
//
// # Shaping
//
// Fit, Normalize and ApplyFade work on whole buffers in place and are used
// when exporting generated samples.
//
// # End of stream
//
// ReadSamples returns io.EOF when the stream is finished. The last chunk may
// come with io.EOF, so callers consume n before checking err.
package audio
