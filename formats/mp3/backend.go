// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audsniff/audio"
)

// go-mp3 always produces 16-bit stereo
const (
	channels  = 2
	frameSize = 2 * channels
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	SampleRate() int
	Length() int64
}

// Backend decodes MPEG-1/2 Layer III through github.com/hajimehoshi/go-mp3.
type Backend struct {
	dec        mp3Reader
	sampleRate int
	pos        int64
	finished   bool
}

// New returns an unopened Backend.
func New() *Backend {
	return &Backend{}
}

// WasInited always reports true; go-mp3 needs no library setup.
func (*Backend) WasInited() bool { return true }

func (b *Backend) Open(s audio.Stream) error {
	dec, err := gomp3.NewDecoder(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return b.attach(dec)
}

func (b *Backend) attach(dec mp3Reader) error {
	if dec.SampleRate() <= 0 {
		return ErrNotMP3File
	}

	b.dec = dec
	b.sampleRate = dec.SampleRate()
	b.pos = 0
	b.finished = false
	return nil
}

func (b *Backend) FillBuffer(dst []byte) int {
	if b.dec == nil {
		return -1
	}
	if b.finished {
		return 0
	}

	want := len(dst) / frameSize * frameSize

	var n int
	for n < want {
		read, err := b.dec.Read(dst[n:want])
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

	b.pos += int64(n)
	return n
}

func (b *Backend) IsFinished() bool { return b.finished }

// Seek positions the decoder. Offsets are in bytes of decoded output and
// are rounded down to whole frames.
func (b *Backend) Seek(offset int64, whence int) error {
	if b.dec == nil {
		return audio.ErrNotOpen
	}

	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = b.pos + offset
	default:
		return audio.ErrInvalidWhence
	}
	if pos < 0 {
		return audio.ErrNegativeSeek
	}
	pos = pos / frameSize * frameSize

	if _, err := b.dec.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	b.pos = pos
	length := b.dec.Length()
	b.finished = length >= 0 && pos >= length
	return nil
}

func (b *Backend) Format() (int, audio.Format, int) {
	return b.sampleRate, audio.S16, channels
}

// Tell returns the position in bytes of decoded output.
func (b *Backend) Tell() int64 { return b.pos }

// Ticks returns the playback position in milliseconds.
func (b *Backend) Ticks() int {
	if b.sampleRate == 0 {
		return 0
	}
	return int(b.pos / frameSize * 1000 / int64(b.sampleRate))
}

func (*Backend) Type() string { return "mp3" }
