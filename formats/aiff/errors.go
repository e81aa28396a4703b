// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input is not a valid AIFF file.
	ErrNotAiffFile = errors.New("aiff: not an AIFF file")

	// ErrUnsupportedBitDepth indicates a sample size other than 8, 16, 24 or 32 bits.
	ErrUnsupportedBitDepth = errors.New("aiff: unsupported bit depth")

	// ErrUnsupportedAiffLayout indicates a file without channels or sample rate.
	ErrUnsupportedAiffLayout = errors.New("aiff: unsupported AIFF layout")
)
