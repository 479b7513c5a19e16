// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audsniff/audio"
)

// pcmReader is the part of gowav.Decoder the backend uses, to allow
// testing.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
	Rewind() error
}

// Backend decodes WAV files through github.com/go-audio/wav. It accepts
// everything that library can read and always produces S16.
type Backend struct {
	dec      pcmReader
	rate     int
	channels int
	bitDepth int

	intBuf   *goaudio.IntBuffer
	finished bool
	samples  int64
}

// New returns an unopened Backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Open(s audio.Stream) error {
	if _, err := scanChunks(s); err != nil {
		return err
	}

	dec := gowav.NewDecoder(s)
	if !dec.IsValidFile() {
		return ErrNotWavFile
	}

	if err := dec.FwdToPCM(); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingDataChunk, err)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return ErrUnsupportedWavLayout
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	b.dec = dec
	b.rate = format.SampleRate
	b.channels = format.NumChannels
	b.bitDepth = int(dec.BitDepth)
	b.intBuf = &goaudio.IntBuffer{Format: format}
	b.finished = false
	b.samples = 0
	return nil
}

func (b *Backend) FillBuffer(dst []byte) int {
	if b.dec == nil {
		return -1
	}
	if b.finished {
		return 0
	}

	want := len(dst) / 2 / b.channels * b.channels
	if want == 0 {
		return 0
	}

	if cap(b.intBuf.Data) < want {
		b.intBuf.Data = make([]int, want)
	}
	b.intBuf.Data = b.intBuf.Data[:want]

	n, err := b.dec.PCMBuffer(b.intBuf)
	if n == 0 {
		b.finished = true
		if err != nil && err != io.EOF {
			return -1
		}
		return 0
	}

	for i, v := range b.intBuf.Data[:n] {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(toInt16(v, b.bitDepth)))
	}
	b.samples += int64(n)

	return n * 2
}

// toInt16 scales a sample of the given bit depth to 16 bits.
func toInt16(v, bitDepth int) int16 {
	switch bitDepth {
	case 8:
		// go-audio keeps 8-bit WAV samples unsigned
		return int16((v - 128) << 8)
	case 24:
		return int16(v >> 8)
	case 32:
		return int16(v >> 16)
	}
	return int16(v)
}

func (b *Backend) IsFinished() bool { return b.finished }

// Seek only supports rewinding to the start.
func (b *Backend) Seek(offset int64, whence int) error {
	if b.dec == nil {
		return audio.ErrNotOpen
	}
	if offset != 0 || whence != io.SeekStart {
		return audio.ErrSeekUnsupported
	}
	if err := b.dec.Rewind(); err != nil {
		return fmt.Errorf("%w", err)
	}
	b.finished = false
	b.samples = 0
	return nil
}

func (b *Backend) Format() (int, audio.Format, int) {
	return b.rate, audio.S16, b.channels
}

// Tell returns the position in bytes of decoded output.
func (b *Backend) Tell() int64 { return b.samples * 2 }

func (*Backend) Type() string { return "wav" }
