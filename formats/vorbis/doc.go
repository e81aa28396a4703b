// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files through
// github.com/jfreymuth/oggvorbis.
//
// Samples come out interleaved at the stream's native rate and channel
// count. Reads are rounded down to whole frames; a buffer smaller than one
// frame is rejected with audio.ErrInvalidDstSize.
package vorbis
