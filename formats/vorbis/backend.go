// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audsniff/audio"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
	SetPosition(pos int64) error
	Position() int64
	Length() int64
}

// Backend decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis. The
// output is interleaved F32.
type Backend struct {
	dec        oggReader
	sampleRate int
	channels   int
	sampleBuf  []float32 // buffer for reading samples from decoder
	finished   bool
}

// New returns an unopened Backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Open(s audio.Stream) error {
	dec, err := oggvorbis.NewReader(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	return b.attach(dec)
}

func (b *Backend) attach(dec oggReader) error {
	if dec.SampleRate() <= 0 || dec.Channels() <= 0 {
		return ErrInvalidLayout
	}

	b.dec = dec
	b.sampleRate = dec.SampleRate()
	b.channels = dec.Channels()
	b.finished = false
	if b.sampleBuf == nil {
		b.sampleBuf = make([]float32, 4096)
	}
	return nil
}

func (b *Backend) FillBuffer(dst []byte) int {
	if b.dec == nil {
		return -1
	}
	if b.finished {
		return 0
	}

	// Read works in whole frames; keep the request frame aligned
	want := len(dst) / 4 / b.channels * b.channels
	if want == 0 {
		return 0
	}
	if cap(b.sampleBuf) < want {
		b.sampleBuf = make([]float32, want)
	}
	buf := b.sampleBuf[:want]

	var n int
	for n < want {
		read, err := b.dec.Read(buf[n:])
		n += read
		if err == io.EOF {
			b.finished = true
			break
		}
		if err != nil {
			if n == 0 {
				return -1
			}
			break
		}
		if read == 0 {
			break
		}
	}

	for i, v := range buf[:n] {
		binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(v))
	}

	return n * 4
}

func (b *Backend) IsFinished() bool { return b.finished }

// Seek positions the decoder. Offsets are in bytes of decoded output.
func (b *Backend) Seek(offset int64, whence int) error {
	if b.dec == nil {
		return audio.ErrNotOpen
	}

	frameSize := int64(4 * b.channels)

	var frame int64
	switch whence {
	case io.SeekStart:
		frame = offset / frameSize
	case io.SeekCurrent:
		frame = b.dec.Position() + offset/frameSize
	default:
		return audio.ErrInvalidWhence
	}
	if frame < 0 {
		return audio.ErrNegativeSeek
	}

	if err := b.dec.SetPosition(frame); err != nil {
		return fmt.Errorf("%w", err)
	}

	length := b.dec.Length()
	b.finished = length > 0 && frame >= length
	return nil
}

func (b *Backend) Format() (int, audio.Format, int) {
	return b.sampleRate, audio.F32, b.channels
}

// Tell returns the position in bytes of decoded output.
func (b *Backend) Tell() int64 {
	if b.dec == nil {
		return 0
	}
	return b.dec.Position() * int64(4*b.channels)
}

// Ticks returns the playback position in milliseconds.
func (b *Backend) Ticks() int {
	if b.dec == nil {
		return 0
	}
	return int(b.dec.Position() * 1000 / int64(b.sampleRate))
}

func (*Backend) Type() string { return "vorbis" }
