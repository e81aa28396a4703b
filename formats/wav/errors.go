// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("wav: not a WAV file")
	ErrUnsupportedWavLayout = errors.New("wav: unsupported WAV layout")
	ErrUnsupportedEncoding  = errors.New("wav: only integer PCM is supported")
	ErrUnsupportedBitDepth  = errors.New("wav: unsupported bit depth")
)
