// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"

	"github.com/ik5/audsniff/audio"
)

// createWAVFile builds a WAV file with an optional LIST chunk before the
// data chunk. data holds the raw sample bytes.
func createWAVFile(sampleRate, channels, bitsPerSample, formatCode int, data []byte, withList bool) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	blockAlign := numChannels * bits / 8
	byteRate := uint32(sampleRate) * uint32(blockAlign)

	var extra []byte
	if withList {
		// odd sized, so a pad byte follows
		extra = append([]byte("LIST"), 0, 0, 0, 0)
		binary.LittleEndian.PutUint32(extra[4:], 3)
		extra = append(extra, 'a', 'b', 'c', 0)
	}

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(extra)+len(data)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(formatCode))
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	buf.Write(extra)

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)

	return buf.Bytes()
}

// withChunkSize returns a copy of file with the chunk size field at offset
// at replaced by size.
func withChunkSize(file []byte, at int, size uint32) []byte {
	out := append([]byte{}, file...)
	binary.LittleEndian.PutUint32(out[at:], size)
	return out
}

func int16Bytes(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func newStream(data []byte) audio.Stream {
	return audio.NewStream(bytes.NewReader(data), "test.wav")
}
