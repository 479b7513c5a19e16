// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/audsniff/audio"
)

// PCMBackend is a lightweight decoder for uncompressed PCM WAV files.
// go-audio/wav parses the header and positions the stream; sample data is
// then copied straight into the output buffer instead of going through an
// IntBuffer. 8, 16, 24 and 32 bit files are supported; 24 bit samples are
// widened into the 4-byte S24 container.
type PCMBackend struct {
	stream audio.Stream
	dec    *gowav.Decoder
	// sample bytes of the data chunk from the current position
	data io.Reader

	format   audio.Format
	rate     int
	channels int
	// bytes per sample as stored in the file
	width int

	dataOffset int64
	dataSize   int64
	// bytes of the data chunk consumed so far
	pos int64

	finished bool
	frames   int64
	raw      []byte
}

// NewPCM returns an unopened PCMBackend.
func NewPCM() *PCMBackend {
	return &PCMBackend{}
}

func (b *PCMBackend) Open(s audio.Stream) error {
	chunk, err := scanChunks(s)
	if err != nil {
		return err
	}

	dec := gowav.NewDecoder(s)
	if err := dec.FwdToPCM(); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingDataChunk, err)
	}
	if err := dec.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}
	if dec.PCMChunk == nil {
		return ErrMissingDataChunk
	}

	if dec.WavAudioFormat != formatPCM {
		return ErrOnlyPCMSupported
	}

	format := dec.Format()
	if format.NumChannels <= 0 || format.SampleRate <= 0 {
		return ErrUnsupportedWavLayout
	}

	switch dec.BitDepth {
	case 8:
		b.format, b.width = audio.U8, 1
	case 16:
		b.format, b.width = audio.S16, 2
	case 24:
		b.format, b.width = audio.S24, 3
	case 32:
		b.format, b.width = audio.S32, 4
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	b.stream = s
	b.dec = dec
	b.data = dec.PCMChunk.R
	b.rate = format.SampleRate
	b.channels = format.NumChannels
	b.dataOffset = chunk.offset
	// PCMLen includes the pad byte of an odd sized chunk
	b.dataSize = min(chunk.size, dec.PCMLen())
	b.pos = 0
	b.frames = 0
	b.finished = false
	return nil
}

func (b *PCMBackend) FillBuffer(dst []byte) int {
	if b.stream == nil {
		return -1
	}
	if b.finished {
		return 0
	}

	outFrame := audio.SampleSize(b.format) * b.channels
	inFrame := b.width * b.channels

	frames := int64(len(dst) / outFrame)
	frames = min(frames, (b.dataSize-b.pos)/int64(inFrame))
	if frames <= 0 {
		if b.pos+int64(inFrame) > b.dataSize {
			b.finished = true
		}
		return 0
	}

	want := int(frames) * inFrame
	in := dst[:want]
	if b.width == 3 {
		if cap(b.raw) < want {
			b.raw = make([]byte, want)
		}
		in = b.raw[:want]
	}

	n, err := io.ReadFull(b.data, in)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		b.finished = true
	case err != nil:
		return -1
	}

	got := n / inFrame
	b.pos += int64(got * inFrame)
	b.frames += int64(got)
	if b.pos+int64(inFrame) > b.dataSize {
		b.finished = true
	}

	if b.width == 3 {
		widen24(dst, in[:got*inFrame])
	}

	return got * outFrame
}

// widen24 sign extends packed 24-bit samples into 4-byte containers.
func widen24(dst, src []byte) {
	for i := range len(src) / 3 {
		s := src[i*3 : i*3+3]
		d := dst[i*4 : i*4+4]
		d[0], d[1], d[2] = s[0], s[1], s[2]
		if s[2]&0x80 != 0 {
			d[3] = 0xFF
		} else {
			d[3] = 0
		}
	}
}

func (b *PCMBackend) IsFinished() bool { return b.finished }

// Seek positions the backend at offset bytes of decoded output.
func (b *PCMBackend) Seek(offset int64, whence int) error {
	if b.stream == nil {
		return audio.ErrNotOpen
	}

	outFrame := int64(audio.SampleSize(b.format) * b.channels)
	inFrame := int64(b.width * b.channels)

	var frame int64
	switch whence {
	case io.SeekStart:
		frame = offset / outFrame
	case io.SeekCurrent:
		frame = b.pos/inFrame + offset/outFrame
	default:
		return audio.ErrInvalidWhence
	}
	if frame < 0 {
		return audio.ErrNegativeSeek
	}

	pos := min(frame*inFrame, b.dataSize/inFrame*inFrame)
	if pos == 0 {
		if err := b.dec.Rewind(); err != nil {
			return fmt.Errorf("%w", err)
		}
		b.data = b.dec.PCMChunk.R
	} else {
		if _, err := b.dec.Seek(b.dataOffset+pos, io.SeekStart); err != nil {
			return fmt.Errorf("%w", err)
		}
		b.data = io.LimitReader(b.stream, b.dataSize-pos)
	}

	b.pos = pos
	b.frames = pos / inFrame
	b.finished = b.pos+inFrame > b.dataSize
	return nil
}

func (b *PCMBackend) Format() (int, audio.Format, int) {
	return b.rate, b.format, b.channels
}

// SetFormat only accepts the file's own format.
func (b *PCMBackend) SetFormat(frequency int, format audio.Format, channels int) bool {
	return frequency == b.rate && format == b.format && channels == b.channels
}

// Ticks returns the playback position in seconds.
func (b *PCMBackend) Ticks() int {
	if b.rate == 0 {
		return 0
	}
	return int(b.frames / int64(b.rate))
}

// Tell returns the position in bytes of decoded output.
func (b *PCMBackend) Tell() int64 {
	return b.frames * int64(audio.SampleSize(b.format)*b.channels)
}

func (*PCMBackend) Type() string { return "wav" }
