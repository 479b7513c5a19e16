// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"io"
	"math"

	"github.com/ik5/audsniff/audio"
)

// MockBackend is a test helper that plays back a fixed PCM payload.
// It implements audio.Backend and a few of the optional capabilities.
type MockBackend struct {
	Rate     int
	Fmt      audio.Format
	Channels int
	Data     []byte

	// MaxChunk limits the bytes produced per FillBuffer call (0 = no limit).
	MaxChunk int
	// Fail makes FillBuffer return -1.
	Fail bool
	// OpenErr and SeekErr are returned by Open and Seek when set.
	OpenErr error
	SeekErr error
	// NotInited makes WasInited report false.
	NotInited bool
	Kind      string

	pos    int
	Opened bool
	Closed bool
	// Fills counts FillBuffer calls.
	Fills int
	// Seeks counts successful Seek calls.
	Seeks int
}

// NewMockBackend creates a mock backend producing data as-is.
func NewMockBackend(rate int, format audio.Format, channels int, data []byte) *MockBackend {
	return &MockBackend{
		Rate:     rate,
		Fmt:      format,
		Channels: channels,
		Data:     data,
	}
}

// NewSilentBackend creates a mock backend producing frames of S16 silence.
func NewSilentBackend(rate, channels, frames int) *MockBackend {
	return newWaveBackend(rate, channels, frames, func(int, int) float32 { return 0 })
}

// NewSineBackend creates a mock backend producing an S16 sine wave.
func NewSineBackend(rate, channels, frames int, frequency float64) *MockBackend {
	return newWaveBackend(rate, channels, frames, func(sample int, channel int) float32 {
		t := float64(sample) / float64(rate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantBackend creates a mock backend producing a constant S16 value.
func NewConstantBackend(rate, channels, frames int, value float32) *MockBackend {
	return newWaveBackend(rate, channels, frames, func(int, int) float32 { return value })
}

func newWaveBackend(rate, channels, frames int, waveform func(sample int, channel int) float32) *MockBackend {
	samples := make([]float32, frames*channels)
	for frame := range frames {
		for ch := range channels {
			samples[frame*channels+ch] = waveform(frame, ch)
		}
	}

	data := make([]byte, len(samples)*2)
	audio.EncodeSamples(data, samples, audio.S16)
	return NewMockBackend(rate, audio.S16, channels, data)
}

func (m *MockBackend) Open(audio.Stream) error {
	if m.OpenErr != nil {
		return m.OpenErr
	}
	m.Opened = true
	return nil
}

func (m *MockBackend) FillBuffer(dst []byte) int {
	m.Fills++
	if m.Fail {
		return -1
	}

	n := len(dst)
	if m.MaxChunk > 0 {
		n = min(n, m.MaxChunk)
	}
	n = copy(dst[:n], m.Data[m.pos:])
	m.pos += n
	return n
}

func (m *MockBackend) IsFinished() bool { return m.pos >= len(m.Data) }

func (m *MockBackend) Seek(offset int64, whence int) error {
	if m.SeekErr != nil {
		return m.SeekErr
	}
	if whence != io.SeekStart || offset < 0 || offset > int64(len(m.Data)) {
		return audio.ErrSeekUnsupported
	}
	m.pos = int(offset)
	m.Seeks++
	return nil
}

func (m *MockBackend) Format() (int, audio.Format, int) {
	return m.Rate, m.Fmt, m.Channels
}

func (m *MockBackend) Tell() int64     { return int64(m.pos) }
func (m *MockBackend) Type() string    { return m.Kind }
func (m *MockBackend) WasInited() bool { return !m.NotInited }

func (m *MockBackend) Close() error {
	m.Closed = true
	return nil
}

// Reset rewinds the payload without counting as a Seek.
func (m *MockBackend) Reset() {
	m.pos = 0
}

// NewStream wraps data in an audio.Stream named name.
func NewStream(data []byte, name string) *audio.ReadSeekStream {
	return audio.NewStream(bytes.NewReader(data), name)
}
