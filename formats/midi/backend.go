// SPDX-License-Identifier: EPL-2.0

package midi

import (
	"io"
	"math"

	"github.com/ik5/audsniff/audio"
)

const (
	defaultRate     = 44100
	defaultChannels = 2

	minRate = 8000
	maxRate = 192000

	attackMicros  = 5000
	releaseMicros = 50000

	// per voice gain before the velocity is applied
	voiceGain = 0.15
)

// Backend renders standard MIDI files with a small additive sine synth.
// Every non percussion note becomes a sine voice with a short attack and
// release. Pitch changes the playback speed.
type Backend struct {
	song *song

	rate     int
	format   audio.Format
	channels int
	pitch    int

	// pos is the song position in µs
	pos    float64
	next   int   // first note not yet started
	active []int // indices of sounding notes

	mix []float32
}

// New returns an unopened Backend rendering S16 stereo at 44100 Hz.
func New() *Backend {
	return &Backend{
		rate:     defaultRate,
		format:   audio.S16,
		channels: defaultChannels,
		pitch:    100,
	}
}

func (b *Backend) Open(s audio.Stream) error {
	sng, err := parseSong(s)
	if err != nil {
		return err
	}

	b.song = sng
	b.locate(0)
	return nil
}

func (b *Backend) end() float64 {
	return float64(b.song.length + releaseMicros)
}

// locate moves the song position to micros and rebuilds the voice list.
func (b *Backend) locate(micros float64) {
	b.pos = micros
	b.next = 0
	b.active = b.active[:0]
	b.advance()
}

// advance starts due notes and drops finished ones.
func (b *Backend) advance() {
	notes := b.song.notes
	for b.next < len(notes) && float64(notes[b.next].start) <= b.pos {
		if float64(notes[b.next].end+releaseMicros) > b.pos {
			b.active = append(b.active, b.next)
		}
		b.next++
	}

	kept := b.active[:0]
	for _, i := range b.active {
		if float64(notes[i].end+releaseMicros) > b.pos {
			kept = append(kept, i)
		}
	}
	b.active = kept
}

func (b *Backend) FillBuffer(dst []byte) int {
	if b.song == nil {
		return -1
	}

	frameSize := audio.SampleSize(b.format) * b.channels
	frames := len(dst) / frameSize
	step := 1e6 / float64(b.rate) * float64(b.pitch) / 100

	if cap(b.mix) < frames*b.channels {
		b.mix = make([]float32, frames*b.channels)
	}
	mix := b.mix[:0]

	end := b.end()
	for range frames {
		if b.pos >= end {
			break
		}

		b.advance()
		v := b.sample()
		for range b.channels {
			mix = append(mix, v)
		}
		b.pos += step
	}

	return audio.EncodeSamples(dst, mix, b.format)
}

// sample mixes all active voices at the current position.
func (b *Backend) sample() float32 {
	var sum float64
	for _, i := range b.active {
		n := b.song.notes[i]
		t := b.pos - float64(n.start)

		env := 1.0
		if t < attackMicros {
			env = t / attackMicros
		}
		if b.pos > float64(n.end) {
			env *= 1 - (b.pos-float64(n.end))/releaseMicros
		}
		if env <= 0 {
			continue
		}

		freq := 440 * math.Pow(2, (float64(n.key)-69)/12)
		sum += env * voiceGain * float64(n.velocity) / 127 * math.Sin(2*math.Pi*freq*t/1e6)
	}

	return float32(max(-1, min(1, sum)))
}

func (b *Backend) IsFinished() bool {
	return b.song != nil && b.pos >= b.end()
}

// Seek offsets are bytes of output at the original speed.
func (b *Backend) Seek(offset int64, whence int) error {
	if b.song == nil {
		return audio.ErrNotOpen
	}

	frameSize := int64(audio.SampleSize(b.format) * b.channels)
	micros := float64(offset/frameSize) * 1e6 / float64(b.rate)

	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		micros += b.pos
	default:
		return audio.ErrInvalidWhence
	}
	if micros < 0 {
		return audio.ErrNegativeSeek
	}

	b.locate(min(micros, b.end()))
	return nil
}

func (b *Backend) Format() (int, audio.Format, int) {
	return b.rate, b.format, b.channels
}

// SetFormat accepts any rate between 8 and 192 kHz as S16 or F32 with one
// or two channels.
func (b *Backend) SetFormat(frequency int, format audio.Format, channels int) bool {
	if frequency < minRate || frequency > maxRate {
		return false
	}
	if format != audio.S16 && format != audio.F32 {
		return false
	}
	if channels != 1 && channels != 2 {
		return false
	}

	b.rate, b.format, b.channels = frequency, format, channels
	return true
}

// Tell returns the position in bytes of output at the original speed.
func (b *Backend) Tell() int64 {
	frames := int64(b.pos * float64(b.rate) / 1e6)
	return frames * int64(audio.SampleSize(b.format)*b.channels)
}

// Ticks returns the position in MIDI ticks.
func (b *Backend) Ticks() int {
	if b.song == nil {
		return 0
	}
	return int(b.song.ticksAt(int64(b.pos)))
}

func (b *Backend) Pitch() int { return b.pitch }

// SetPitch changes the playback speed in percent.
func (b *Backend) SetPitch(pitch int) bool {
	if pitch <= 0 {
		return false
	}
	b.pitch = pitch
	return true
}

func (*Backend) Type() string { return "midi" }
