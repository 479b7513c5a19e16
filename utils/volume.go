// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// ScaleS16 applies a volume in percent to little-endian signed 16-bit PCM
// in place. 100 leaves pcm untouched, 0 silences it. A trailing odd byte is
// ignored.
func ScaleS16(pcm []byte, volume int) {
	if volume >= 100 {
		return
	}
	if volume <= 0 {
		clear(pcm)
		return
	}

	gain := float32(volume) / 100
	for i := 0; i+1 < len(pcm); i += 2 {
		s := int16(binary.LittleEndian.Uint16(pcm[i:]))
		binary.LittleEndian.PutUint16(pcm[i:], uint16(int16(float32(s)*gain)))
	}
}
