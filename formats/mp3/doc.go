// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer III files through
// github.com/hajimehoshi/go-mp3.
//
// The decoder always yields interleaved stereo at the file's sample rate;
// mono files are duplicated on both channels by go-mp3. Use
// audio.NewMonoMixer to fold them back.
package mp3
