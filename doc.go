// SPDX-License-Identifier: EPL-2.0

// Package crashify generates drum one-shots with a diffusion model.
//
// The heavy lifting lives in sub packages:
//   - diffusion: the reverse diffusion engine, conditioning modes and the
//     background Worker
//   - onnx: ONNX Runtime backed denoiser and classifier
//   - audio and formats/...: decoding, resampling and shaping of audio
//   - preview: one-shot playback of a generated buffer
//
// This package glues them for the common file based workflow: load a seed
// from any supported file, run the engine and write the result as WAV.
//
//	seed, err := crashify.LoadSeed("break.ogg")
//	if err != nil {
//	    return err
//	}
//
//	res, err := eng.GenerateSeeded(ctx, seed, diffusion.DefaultSteps)
//	if err != nil {
//	    return err
//	}
//
//	err = crashify.SaveSample("kick.wav", res.Waveform, crashify.DefaultExportOptions())
//
// # Supported seed formats
//
//   - WAV (integer PCM, 8 to 32 bits) via formats/wav
//   - AIFF via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Seeds are resampled to 44.1 kHz, mixed down to mono and cut or zero padded
// to the model's signal length.
package crashify
