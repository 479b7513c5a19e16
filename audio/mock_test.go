// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
)

// mockBackend is a test helper that plays a fixed payload.
// It implements Backend and nothing else, so the Decoder defaults apply.
type mockBackend struct {
	rate     int
	format   Format
	channels int
	data     []byte

	// maxChunk limits bytes per FillBuffer call (0 = no limit)
	maxChunk int
	// wholeFrames rounds every fill down to complete frames
	wholeFrames bool
	// fail makes FillBuffer return -1
	fail    bool
	seekErr error

	pos   int
	fills int
	seeks int
}

func newMockBackend(data []byte) *mockBackend {
	return &mockBackend{
		rate:     44100,
		format:   S16,
		channels: 2,
		data:     data,
	}
}

// newSineBackend creates a mock backend producing an S16 sine wave.
func newSineBackend(rate, channels, frames int, waveform func(sample int, channel int) float32) *mockBackend {
	samples := make([]float32, frames*channels)
	for f := range frames {
		for c := range channels {
			samples[f*channels+c] = waveform(f, c)
		}
	}
	data := make([]byte, len(samples)*2)
	EncodeSamples(data, samples, S16)

	m := newMockBackend(data)
	m.rate = rate
	m.channels = channels
	return m
}

func (m *mockBackend) Open(Stream) error { return nil }

func (m *mockBackend) FillBuffer(dst []byte) int {
	m.fills++
	if m.fail {
		return -1
	}
	n := len(dst)
	if m.maxChunk > 0 {
		n = min(n, m.maxChunk)
	}
	if m.wholeFrames {
		frame := SampleSize(m.format) * m.channels
		n -= n % frame
	}
	n = copy(dst[:n], m.data[m.pos:])
	m.pos += n
	return n
}

func (m *mockBackend) IsFinished() bool { return m.pos >= len(m.data) }

func (m *mockBackend) Seek(offset int64, whence int) error {
	if m.seekErr != nil {
		return m.seekErr
	}
	if whence != io.SeekStart {
		return errors.New("mock: only SeekStart")
	}
	m.pos = int(offset)
	m.seeks++
	return nil
}

func (m *mockBackend) Format() (int, Format, int) {
	return m.rate, m.format, m.channels
}

// pitchBackend adds the optional capabilities on top of mockBackend.
type pitchBackend struct {
	*mockBackend
	pitch int
	ticks int
}

func (p *pitchBackend) Pitch() int { return p.pitch }

func (p *pitchBackend) SetPitch(pitch int) bool {
	p.pitch = pitch
	return true
}

func (p *pitchBackend) Ticks() int           { return p.ticks }
func (p *pitchBackend) Tell() int64          { return int64(p.pos) }
func (p *pitchBackend) Type() string         { return "mock" }
func (p *pitchBackend) ErrorMessage() string { return "mock message" }
