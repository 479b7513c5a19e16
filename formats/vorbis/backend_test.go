// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audsniff/audio"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate   int
	channels     int
	samples      []float32
	offset       int
	maxRead      int
	returnErrors bool
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	framesRequested := len(buf) / m.channels
	if m.maxRead > 0 {
		framesRequested = min(framesRequested, m.maxRead)
	}
	framesAvailable := (len(m.samples) - m.offset) / m.channels
	samplesToRead := min(framesRequested, framesAvailable) * m.channels

	copy(buf, m.samples[m.offset:m.offset+samplesToRead])
	m.offset += samplesToRead

	if m.offset >= len(m.samples) {
		return samplesToRead, io.EOF
	}
	return samplesToRead, nil
}

func (m *mockOggVorbisReader) SetPosition(pos int64) error {
	if pos > m.Length() {
		return errors.New("position out of range")
	}
	m.offset = int(pos) * m.channels
	return nil
}

func (m *mockOggVorbisReader) Position() int64 { return int64(m.offset / m.channels) }
func (m *mockOggVorbisReader) Length() int64   { return int64(len(m.samples) / m.channels) }

func newMockBackend(t *testing.T, reader *mockOggVorbisReader) *Backend {
	t.Helper()

	b := New()
	if err := b.attach(reader); err != nil {
		t.Fatalf("attach() error = %v", err)
	}
	return b
}

func floats(buf []byte) []float32 {
	out := make([]float32, len(buf)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return out
}

func TestBackend_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("This is not Ogg Vorbis data")},
		{"empty", []byte{}},
		{"ogg page without vorbis", append([]byte("OggS"), make([]byte, 40)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := audio.NewStream(bytes.NewReader(tt.data), "x.ogg")
			if err := New().Open(s); !errors.Is(err, ErrNotVorbisFile) {
				t.Errorf("Open() error = %v, want ErrNotVorbisFile", err)
			}
		})
	}
}

func TestBackend_InvalidLayout(t *testing.T) {
	t.Parallel()

	err := New().attach(&mockOggVorbisReader{sampleRate: 44100})
	if !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("attach() error = %v, want ErrInvalidLayout", err)
	}
}

func TestBackend_Format(t *testing.T) {
	t.Parallel()

	b := newMockBackend(t, &mockOggVorbisReader{sampleRate: 48000, channels: 2})

	rate, format, channels := b.Format()
	if rate != 48000 || format != audio.F32 || channels != 2 {
		t.Errorf("Format() = (%d, %v, %d), want (48000, f32, 2)", rate, format, channels)
	}
	if b.Type() != "vorbis" {
		t.Errorf("Type() = %q, want vorbis", b.Type())
	}
}

func TestBackend_FillBuffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []float32
		bufBytes int
		maxRead  int
		wantN    int
	}{
		{"mono all", 1, []float32{0.1, 0.2, 0.3}, 64, 0, 12},
		{"stereo partial", 2, []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, 16, 0, 16},
		{"frame aligned request", 2, []float32{0.1, 0.2, 0.3, 0.4}, 12, 0, 8},
		{"short reads are joined", 1, []float32{1, 2, 3, 4, 5}, 20, 2, 20},
		{"buffer smaller than a frame", 2, []float32{0.1, 0.2}, 7, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newMockBackend(t, &mockOggVorbisReader{
				sampleRate: 44100,
				channels:   tt.channels,
				samples:    tt.samples,
				maxRead:    tt.maxRead,
			})

			buf := make([]byte, tt.bufBytes)
			n := b.FillBuffer(buf)
			if n != tt.wantN {
				t.Fatalf("FillBuffer() = %d, want %d", n, tt.wantN)
			}
			for i, got := range floats(buf[:n]) {
				if got != tt.samples[i] {
					t.Errorf("sample %d = %v, want %v", i, got, tt.samples[i])
				}
			}
		})
	}
}

func TestBackend_FinishesAtEOF(t *testing.T) {
	t.Parallel()

	b := newMockBackend(t, &mockOggVorbisReader{
		sampleRate: 8000,
		channels:   1,
		samples:    []float32{0.5, 0.5},
	})

	if n := b.FillBuffer(make([]byte, 64)); n != 8 {
		t.Fatalf("FillBuffer() = %d, want 8", n)
	}
	if !b.IsFinished() {
		t.Error("IsFinished() = false after EOF")
	}
	if n := b.FillBuffer(make([]byte, 64)); n != 0 {
		t.Errorf("FillBuffer() after EOF = %d, want 0", n)
	}
}

func TestBackend_ReadError(t *testing.T) {
	t.Parallel()

	b := newMockBackend(t, &mockOggVorbisReader{
		sampleRate:   8000,
		channels:     1,
		samples:      []float32{0.5},
		returnErrors: true,
	})

	if n := b.FillBuffer(make([]byte, 16)); n != -1 {
		t.Errorf("FillBuffer() = %d, want -1", n)
	}
}

func TestBackend_Seek(t *testing.T) {
	t.Parallel()

	samples := []float32{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7}
	b := newMockBackend(t, &mockOggVorbisReader{sampleRate: 1000, channels: 2, samples: samples})

	// frame 2 in output bytes
	if err := b.Seek(16, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if b.Tell() != 16 {
		t.Errorf("Tell() = %d, want 16", b.Tell())
	}
	if b.Ticks() != 2 {
		t.Errorf("Ticks() = %d, want 2", b.Ticks())
	}

	buf := make([]byte, 8)
	b.FillBuffer(buf)
	if got := floats(buf); got[0] != 0.4 || got[1] != 0.5 {
		t.Errorf("samples after seek = %v, want [0.4 0.5]", got)
	}

	if err := b.Seek(-8, io.SeekCurrent); err != nil {
		t.Fatalf("Seek(SeekCurrent) error = %v", err)
	}
	if b.Tell() != 16 {
		t.Errorf("Tell() after relative seek = %d, want 16", b.Tell())
	}

	b.FillBuffer(make([]byte, 64))
	if !b.IsFinished() {
		t.Fatal("IsFinished() = false after draining")
	}
	if err := b.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek(0) error = %v", err)
	}
	if b.IsFinished() {
		t.Error("IsFinished() = true after rewind")
	}
}

func TestBackend_SeekErrors(t *testing.T) {
	t.Parallel()

	if err := New().Seek(0, io.SeekStart); !errors.Is(err, audio.ErrNotOpen) {
		t.Errorf("Seek() before Open error = %v, want ErrNotOpen", err)
	}

	b := newMockBackend(t, &mockOggVorbisReader{sampleRate: 1000, channels: 1, samples: make([]float32, 4)})

	tests := []struct {
		name    string
		offset  int64
		whence  int
		wantErr error
	}{
		{"negative", -4, io.SeekStart, audio.ErrNegativeSeek},
		{"bad whence", 0, io.SeekEnd, audio.ErrInvalidWhence},
	}

	for _, tt := range tests {
		if err := b.Seek(tt.offset, tt.whence); !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: Seek() error = %v, want %v", tt.name, err, tt.wantErr)
		}
	}

	if err := b.Seek(400, io.SeekStart); err == nil {
		t.Error("Seek() past the end error = nil, want error")
	}
}

func TestBackend_NotOpen(t *testing.T) {
	t.Parallel()

	b := New()
	if n := b.FillBuffer(make([]byte, 16)); n != -1 {
		t.Errorf("FillBuffer() = %d, want -1", n)
	}
	if b.Tell() != 0 || b.Ticks() != 0 {
		t.Errorf("Tell() = %d, Ticks() = %d, want 0", b.Tell(), b.Ticks())
	}
}

func BenchmarkBackend_FillBuffer(b *testing.B) {
	reader := &mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: make([]float32, 1<<16)}
	backend := New()
	if err := backend.attach(reader); err != nil {
		b.Fatal(err)
	}
	buf := make([]byte, 4096)

	b.ReportAllocs()

	for b.Loop() {
		if backend.FillBuffer(buf) == 0 {
			_ = backend.Seek(0, io.SeekStart)
		}
	}
}
