// SPDX-License-Identifier: EPL-2.0

package audsniff

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/audsniff/audio"
)

// ResampleToMono16 decodes the rest of dec as mono 16-bit PCM at
// targetRate and returns the samples together with the output rate.
//
// The decoder has to accept the format change, which every decoder
// created with resampling enabled does. Looping is switched off first so
// decoding ends.
//
// Example:
//
//	dec, err := audsniff.New().OpenFile("audio.ogg", true)
//	if err != nil {
//	    return err
//	}
//	defer dec.Close()
//	pcm16, rate, err := audsniff.ResampleToMono16(dec, 8000)
func ResampleToMono16(dec *audio.Decoder, targetRate int) ([]int16, int, error) {
	if !dec.SetFormat(targetRate, audio.S16, 1) {
		return nil, 0, fmt.Errorf("%w: %d Hz s16 mono", ErrFormatRejected, targetRate)
	}

	rate, format, channels := dec.Format()
	if format != audio.S16 || channels != 1 {
		return nil, 0, fmt.Errorf("%w: got %v with %d channels", ErrFormatRejected, format, channels)
	}

	dec.SetLooping(false)
	raw := dec.DecodeAll()

	pcm16 := make([]int16, len(raw)/2)
	for i := range pcm16 {
		pcm16[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
	}

	return pcm16, rate, nil
}
