// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files through github.com/go-audio/wav.
//
// Decoding accepts integer PCM at 8, 16, 24 or 32 bits, any channel count
// and sample rate, and skips chunks other than fmt and data:
//
//	f, err := os.Open("seed.wav")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := wav.Decoder{}.Decode(f)
//
// Readers that cannot seek are buffered in memory first.
//
// WriteMono encodes a float32 buffer as mono 16 or 24-bit PCM. The encoder
// patches the header sizes on close, so it needs an io.WriteSeeker such as
// an *os.File.
package wav
