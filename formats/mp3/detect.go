// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"io"
)

const (
	// scanLimit bounds how much of the stream IsMP3 looks at
	scanLimit = 64 * 1024
	// minFrames consecutive frame headers are needed to accept a stream
	minFrames = 3

	id3HeaderSize = 10
	headerSize    = 4
)

// Layer III bitrates in kbit/s by bitrate index.
var (
	bitratesV1 = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
	bitratesV2 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}
)

var sampleRates = map[byte][3]int{
	3: {44100, 48000, 32000}, // MPEG-1
	2: {22050, 24000, 16000}, // MPEG-2
	0: {11025, 12000, 8000},  // MPEG-2.5
}

// IsMP3 reports whether r looks like an MPEG Layer III stream. An ID3v2
// tag at the start is skipped, then the first scanLimit bytes are searched
// for a run of consecutive valid frame headers.
//
// The read position of r is left wherever the scan stopped.
func IsMP3(r io.ReadSeeker) bool {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return false
	}

	head := make([]byte, id3HeaderSize)
	n, _ := io.ReadFull(r, head)
	head = head[:n]

	var start int64
	if size, ok := id3Size(head); ok {
		start = id3HeaderSize + size
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return false
	}

	buf, err := io.ReadAll(io.LimitReader(r, scanLimit))
	if err != nil && len(buf) == 0 {
		return false
	}

	return findFrameChain(buf) >= 0
}

// id3Size returns the tag size of an ID3v2 header, excluding the header.
func id3Size(h []byte) (int64, bool) {
	if len(h) < id3HeaderSize || string(h[:3]) != "ID3" {
		return 0, false
	}

	var size int64
	for _, b := range h[6:10] {
		// sizes are syncsafe
		if b&0x80 != 0 {
			return 0, false
		}
		size = size<<7 | int64(b)
	}

	// footer flag
	if h[5]&0x10 != 0 {
		size += id3HeaderSize
	}
	return size, true
}

// findFrameChain returns the offset of the first run of minFrames
// consecutive frame headers in buf, or -1.
func findFrameChain(buf []byte) int {
	for i := 0; i+headerSize <= len(buf); i++ {
		if buf[i] != 0xFF {
			continue
		}

		pos, frames := i, 0
		for frames < minFrames && pos+headerSize <= len(buf) {
			size := frameLength(binary.BigEndian.Uint32(buf[pos:]))
			if size == 0 {
				break
			}
			frames++
			pos += size
		}
		if frames == minFrames {
			return i
		}
	}

	return -1
}

// frameLength validates a Layer III frame header and returns the frame
// size in bytes including the header, or 0 when h is not a valid header.
func frameLength(h uint32) int {
	if h>>21 != 0x7FF {
		return 0
	}

	version := byte(h>>19) & 0x3
	layer := byte(h>>17) & 0x3
	bitrateIndex := (h >> 12) & 0xF
	rateIndex := (h >> 10) & 0x3
	padding := int(h>>9) & 0x1

	// version 1 is reserved, layer 1 is Layer III
	if version == 1 || layer != 1 || rateIndex == 3 {
		return 0
	}

	bitrate := bitratesV1[bitrateIndex]
	coefficient := 144
	if version != 3 {
		bitrate = bitratesV2[bitrateIndex]
		coefficient = 72
	}
	if bitrate == 0 {
		return 0
	}

	rate := sampleRates[version][rateIndex]
	return coefficient*bitrate*1000/rate + padding
}
