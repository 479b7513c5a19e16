// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/audsniff/audio"
)

// frameParser is an interface for flac.Stream to allow testing
type frameParser interface {
	ParseNext() (*frame.Frame, error)
}

// Backend decodes FLAC through github.com/mewkiz/flac and produces S16.
type Backend struct {
	stream audio.Stream
	dec    frameParser

	sampleRate int
	channels   int
	bitDepth   int

	// pending holds the decoded current frame, next is the first sample
	// not yet returned
	pending  []int16
	next     int
	finished bool
	samples  int64
}

// New returns an unopened Backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Open(s audio.Stream) error {
	dec, err := flac.New(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	info := dec.Info
	if err := b.attach(dec, int(info.SampleRate), int(info.NChannels), int(info.BitsPerSample)); err != nil {
		return err
	}

	b.stream = s
	return nil
}

func (b *Backend) attach(dec frameParser, sampleRate, channels, bitDepth int) error {
	if sampleRate <= 0 || channels <= 0 || bitDepth < 4 || bitDepth > 32 {
		return fmt.Errorf("%w: %d Hz, %d channels, %d bits",
			ErrUnsupportedLayout, sampleRate, channels, bitDepth)
	}

	b.dec = dec
	b.sampleRate = sampleRate
	b.channels = channels
	b.bitDepth = bitDepth
	b.pending = b.pending[:0]
	b.next = 0
	b.finished = false
	b.samples = 0
	return nil
}

func (b *Backend) FillBuffer(dst []byte) int {
	if b.dec == nil {
		return -1
	}

	want := len(dst) / 2 / b.channels * b.channels

	var n int
	for n < want {
		if b.next == len(b.pending) {
			if b.finished {
				break
			}
			if err := b.nextFrame(); err != nil {
				if n == 0 {
					return -1
				}
				break
			}
			continue
		}

		c := min(want-n, len(b.pending)-b.next)
		for i, v := range b.pending[b.next : b.next+c] {
			binary.LittleEndian.PutUint16(dst[2*(n+i):], uint16(v))
		}
		b.next += c
		n += c
	}

	b.samples += int64(n)
	return n * 2
}

// nextFrame decodes one frame into pending.
func (b *Backend) nextFrame() error {
	f, err := b.dec.ParseNext()
	if err == io.EOF {
		b.finished = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	if len(f.Subframes) != b.channels {
		return fmt.Errorf("%w: frame with %d channels", ErrUnsupportedLayout, len(f.Subframes))
	}

	bitDepth := b.bitDepth
	if f.BitsPerSample != 0 {
		bitDepth = int(f.BitsPerSample)
	}

	blockSize := len(f.Subframes[0].Samples)
	pending := b.pending[:0]
	for i := range blockSize {
		for _, sub := range f.Subframes {
			pending = append(pending, toInt16(sub.Samples[i], bitDepth))
		}
	}
	b.pending = pending
	b.next = 0
	return nil
}

// toInt16 scales a signed sample of the given bit depth to 16 bits.
func toInt16(v int32, bitDepth int) int16 {
	switch {
	case bitDepth < 16:
		return int16(v << (16 - bitDepth))
	case bitDepth > 16:
		return int16(v >> (bitDepth - 16))
	}
	return int16(v)
}

func (b *Backend) IsFinished() bool { return b.finished && b.next == len(b.pending) }

// Seek only supports rewinding to the start, which parses the stream
// header again.
func (b *Backend) Seek(offset int64, whence int) error {
	if b.dec == nil {
		return audio.ErrNotOpen
	}
	if offset != 0 || whence != io.SeekStart {
		return audio.ErrSeekUnsupported
	}
	if b.stream == nil {
		return audio.ErrSeekUnsupported
	}

	if _, err := b.stream.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	dec, err := flac.New(b.stream)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	return b.attach(dec, b.sampleRate, b.channels, b.bitDepth)
}

func (b *Backend) Format() (int, audio.Format, int) {
	return b.sampleRate, audio.S16, b.channels
}

// Tell returns the position in bytes of decoded output.
func (b *Backend) Tell() int64 { return b.samples * 2 }

func (*Backend) Type() string { return "flac" }
