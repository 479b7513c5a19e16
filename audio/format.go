// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Format is the encoding of a single PCM sample produced by a Backend.
// All multi-byte formats are little-endian.
type Format int

const (
	S8 Format = iota
	U8
	S16
	U16
	// S24 is 24-bit signed audio carried in a 4-byte container.
	S24
	S32
	U32
	F32
)

var formatNames = [...]string{
	S8:  "s8",
	U8:  "u8",
	S16: "s16",
	U16: "u16",
	S24: "s24",
	S32: "s32",
	U32: "u32",
	F32: "f32",
}

func (f Format) String() string {
	if f < S8 || f > F32 {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat maps a name as returned by Format.String back to a Format.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if n == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// SampleSize returns the width in bytes of one sample of f.
// It panics when f is not one of the enumerated formats.
func SampleSize(f Format) int {
	switch f {
	case S8, U8:
		return 1
	case S16, U16:
		return 2
	case S24, S32, U32, F32:
		return 4
	}

	panic(fmt.Sprintf("audio: bad sample format %d", int(f)))
}
