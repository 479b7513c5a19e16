// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrNotFlacFile = errors.New("not a flac stream")

	// ErrUnsupportedLayout is returned for streams the backend cannot
	// express as interleaved S16.
	ErrUnsupportedLayout = errors.New("unsupported flac stream layout")
)
