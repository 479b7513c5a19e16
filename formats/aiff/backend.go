// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audsniff/audio"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Backend decodes AIFF files through github.com/go-audio/aiff and
// produces S16.
type Backend struct {
	stream audio.Stream
	dec    aiffReader

	sampleRate int
	channels   int
	bitDepth   int

	intBuf   *goaudio.IntBuffer
	finished bool
	samples  int64
}

// New returns an unopened Backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Open(s audio.Stream) error {
	dec, err := openDecoder(s)
	if err != nil {
		return err
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return ErrUnsupportedAiffLayout
	}

	b.stream = s
	b.dec = dec
	b.sampleRate = format.SampleRate
	b.channels = format.NumChannels
	b.bitDepth = int(dec.BitDepth)
	b.intBuf = &goaudio.IntBuffer{Format: format}
	b.finished = false
	b.samples = 0
	return nil
}

func openDecoder(rs io.ReadSeeker) (*aiff.Decoder, error) {
	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	return dec, nil
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
	if err == io.EOF {
		b.finished = true
	}

	for i, v := range b.intBuf.Data[:n] {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(toInt16(v, b.bitDepth)))
	}
	b.samples += int64(n)

	return n * 2
}

// toInt16 scales a signed sample of the given bit depth to 16 bits.
func toInt16(v, bitDepth int) int16 {
	switch {
	case bitDepth < 16:
		return int16(v << (16 - bitDepth))
	case bitDepth > 16:
		return int16(v >> (bitDepth - 16))
	}
	return int16(v)
}

func (b *Backend) IsFinished() bool { return b.finished }

// Seek only supports rewinding to the start, which reparses the header.
func (b *Backend) Seek(offset int64, whence int) error {
	if b.stream == nil {
		return audio.ErrNotOpen
	}
	if offset != 0 || whence != io.SeekStart {
		return audio.ErrSeekUnsupported
	}

	if _, err := b.stream.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	dec, err := openDecoder(b.stream)
	if err != nil {
		return err
	}

	b.dec = dec
	b.finished = false
	b.samples = 0
	return nil
}

func (b *Backend) Format() (int, audio.Format, int) {
	return b.sampleRate, audio.S16, b.channels
}

// Tell returns the position in bytes of decoded output.
func (b *Backend) Tell() int64 { return b.samples * 2 }

func (*Backend) Type() string { return "aiff" }
