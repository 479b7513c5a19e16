// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"fmt"
	"io"
)

// SampleRate is the rate every Opus stream decodes at.
const SampleRate = 48000

const (
	// the OpusHead packet starts right after the first Ogg page header
	headOffset        = 28
	headMagic         = "OpusHead"
	headChannelOffset = headOffset + len(headMagic) + 1
)

// readChannels reads the channel count from the OpusHead packet of the
// first Ogg page. r is rewound to offset 0.
func readChannels(r io.ReadSeeker) (int, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	head := make([]byte, headChannelOffset+1)
	_, err := io.ReadFull(r, head)
	if _, serr := r.Seek(0, io.SeekStart); serr != nil {
		return 0, fmt.Errorf("%w", serr)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotOpusFile, err)
	}

	if string(head[:4]) != "OggS" || string(head[headOffset:headOffset+len(headMagic)]) != headMagic {
		return 0, ErrNotOpusFile
	}

	// libopusfile downmixes anything beyond stereo
	channels := int(head[headChannelOffset])
	switch {
	case channels == 0:
		return 0, ErrBadChannelCount
	case channels > 2:
		channels = 2
	}
	return channels, nil
}
