// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("audio: dst size must be multiple of channels")
	ErrInvalidRate    = errors.New("audio: sample rate must be positive")
	ErrEmptySource    = errors.New("audio: source produced no samples")
)
