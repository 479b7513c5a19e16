// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var (
	ErrNotVorbisFile = errors.New("not an ogg vorbis stream")

	// ErrInvalidLayout is returned for streams without a usable sample rate
	// or channel count.
	ErrInvalidLayout = errors.New("invalid vorbis stream layout")
)
