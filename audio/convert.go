// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"math"

	"github.com/ik5/audsniff/utils"
)

// DecodeSamples converts the PCM bytes in src, encoded as f, into
// normalised float32 samples in dst. It returns the number of samples
// written, bounded by len(dst) and the whole samples available in src.
func DecodeSamples(dst []float32, src []byte, f Format) int {
	size := SampleSize(f)
	n := min(len(dst), len(src)/size)

	le := binary.LittleEndian
	for i := range n {
		b := src[i*size:]
		switch f {
		case S8:
			dst[i] = float32(int8(b[0])) / 128.0
		case U8:
			dst[i] = (float32(b[0]) - 128.0) / 128.0
		case S16:
			dst[i] = float32(int16(le.Uint16(b))) / 32768.0
		case U16:
			dst[i] = (float32(le.Uint16(b)) - 32768.0) / 32768.0
		case S24:
			// sign extend the low 24 bits
			v := int32(le.Uint32(b)<<8) >> 8
			dst[i] = float32(v) / 8388608.0
		case S32:
			dst[i] = float32(float64(int32(le.Uint32(b))) / 2147483648.0)
		case U32:
			dst[i] = float32((float64(le.Uint32(b)) - 2147483648.0) / 2147483648.0)
		case F32:
			dst[i] = math.Float32frombits(le.Uint32(b))
		}
	}

	return n
}

// EncodeSamples converts float32 samples into PCM bytes encoded as f.
// Samples are clamped to [-1, 1]. It returns the number of bytes written.
func EncodeSamples(dst []byte, src []float32, f Format) int {
	size := SampleSize(f)
	n := min(len(src), len(dst)/size)

	le := binary.LittleEndian
	for i := range n {
		x := max(-1, min(1, src[i]))
		b := dst[i*size:]
		switch f {
		case S8:
			b[0] = byte(int8(x * 127.0))
		case U8:
			b[0] = byte(int16(x*127.0) + 128)
		case S16:
			le.PutUint16(b, uint16(utils.Float32ToInt16(x)))
		case U16:
			le.PutUint16(b, uint16(int32(utils.Float32ToInt16(x))+32768))
		case S24:
			le.PutUint32(b, uint32(int32(float64(x)*8388607.0)))
		case S32:
			le.PutUint32(b, uint32(int32(float64(x)*2147483647.0)))
		case U32:
			le.PutUint32(b, uint32(int64(float64(x)*2147483647.0)+2147483648))
		case F32:
			le.PutUint32(b, math.Float32bits(x))
		}
	}

	return n * size
}
