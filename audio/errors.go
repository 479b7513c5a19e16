// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrUnknownFormat is returned by ParseFormat for unrecognised names.
	ErrUnknownFormat = errors.New("unknown sample format")

	// ErrSeekUnsupported is returned by backends that can only rewind.
	ErrSeekUnsupported = errors.New("seek not supported")

	// ErrNotOpen is returned when a backend is used before Open succeeded.
	ErrNotOpen = errors.New("backend not open")

	// ErrInvalidFormat is returned when a backend reports an unusable
	// output format.
	ErrInvalidFormat = errors.New("invalid output format")

	ErrInvalidWhence = errors.New("invalid whence")
	ErrNegativeSeek  = errors.New("negative position")
)
