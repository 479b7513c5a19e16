// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package opus

import (
	"encoding/binary"
	"fmt"
	"io"

	"gopkg.in/hraban/opus.v2"

	"github.com/ik5/audsniff/audio"
)

// pcmStream is an interface for opus.Stream to allow testing
type pcmStream interface {
	Read(pcm []int16) (int, error)
	Close() error
}

// readOnly hides the Close method of the audio stream so that closing the
// opus.Stream does not close it.
type readOnly struct{ io.Reader }

// Backend decodes Ogg Opus through gopkg.in/hraban/opus.v2 and
// libopusfile. The output is S16 at 48 kHz.
type Backend struct {
	stream   audio.Stream
	dec      pcmStream
	channels int

	pcm      []int16
	finished bool
	samples  int64
}

// New returns an unopened Backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Open(s audio.Stream) error {
	channels, err := readChannels(s)
	if err != nil {
		return err
	}

	dec, err := opus.NewStream(readOnly{s})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotOpusFile, err)
	}

	b.stream = s
	b.attach(dec, channels)
	return nil
}

func (b *Backend) attach(dec pcmStream, channels int) {
	b.dec = dec
	b.channels = channels
	b.finished = false
	b.samples = 0
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
	if cap(b.pcm) < want {
		b.pcm = make([]int16, want)
	}
	pcm := b.pcm[:want]

	var n int
	for n < want {
		// Read reports samples per channel
		frames, err := b.dec.Read(pcm[n:])
		n += frames * b.channels
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
		if frames == 0 {
			break
		}
	}

	for i, v := range pcm[:n] {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(v))
	}
	b.samples += int64(n)

	return n * 2
}

func (b *Backend) IsFinished() bool { return b.finished }

// Seek only supports rewinding to the start.
func (b *Backend) Seek(offset int64, whence int) error {
	if b.dec == nil {
		return audio.ErrNotOpen
	}
	if offset != 0 || whence != io.SeekStart || b.stream == nil {
		return audio.ErrSeekUnsupported
	}

	if _, err := b.stream.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	dec, err := opus.NewStream(readOnly{b.stream})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotOpusFile, err)
	}

	_ = b.dec.Close()
	b.attach(dec, b.channels)
	return nil
}

func (b *Backend) Format() (int, audio.Format, int) {
	return SampleRate, audio.S16, b.channels
}

// Tell returns the position in bytes of decoded output.
func (b *Backend) Tell() int64 { return b.samples * 2 }

// Ticks returns the playback position in milliseconds.
func (b *Backend) Ticks() int {
	if b.channels == 0 {
		return 0
	}
	return int(b.samples / int64(b.channels) * 1000 / SampleRate)
}

func (*Backend) Type() string { return "opus" }

// Close releases the libopusfile decoder. The audio stream stays open.
func (b *Backend) Close() error {
	if b.dec == nil {
		return nil
	}

	err := b.dec.Close()
	b.dec = nil
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
