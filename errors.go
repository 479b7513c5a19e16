// SPDX-License-Identifier: EPL-2.0

package audsniff

import "errors"

var (
	// ErrUnsupportedFormat is returned by Create when no backend claims
	// the stream. The stream is left at offset 0 with its errors cleared.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrShortStream is returned together with ErrUnsupportedFormat when
	// the stream is too short to be classified.
	ErrShortStream = errors.New("stream too short to classify")

	// ErrNoBackend is returned together with ErrUnsupportedFormat when the
	// stream was recognised but the backend for it is not available.
	ErrNoBackend = errors.New("no backend available")

	// ErrOpenFailed wraps the error of a backend that claimed the stream
	// but could not open it.
	ErrOpenFailed = errors.New("backend failed to open stream")

	// ErrFormatRejected is returned when a decoder cannot produce the
	// requested output format.
	ErrFormatRejected = errors.New("output format rejected by decoder")
)
