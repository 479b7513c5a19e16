// SPDX-License-Identifier: EPL-2.0

package opus

import "errors"

var (
	ErrNotOpusFile = errors.New("not an ogg opus stream")

	// ErrBadChannelCount is returned for OpusHead headers announcing zero
	// or more than two channels.
	ErrBadChannelCount = errors.New("unsupported opus channel count")
)
