// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audsniff/audio"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate   int
	samples      []int16 // interleaved stereo PCM samples
	offset       int     // in bytes
	maxRead      int
	returnErrors bool
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }
func (m *mockMP3Reader) Length() int64   { return int64(len(m.samples) * 2) }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	data := make([]byte, len(m.samples)*2)
	for i, s := range m.samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}

	if m.offset >= len(data) {
		return 0, io.EOF
	}

	if m.maxRead > 0 && len(buf) > m.maxRead {
		buf = buf[:m.maxRead]
	}
	n := copy(buf, data[m.offset:])
	m.offset += n

	if m.offset >= len(data) {
		return n, io.EOF
	}
	return n, nil
}

func (m *mockMP3Reader) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart || offset > m.Length() {
		return 0, errors.New("bad seek")
	}
	m.offset = int(offset)
	return offset, nil
}

func newMockBackend(t *testing.T, reader *mockMP3Reader) *Backend {
	t.Helper()

	b := New()
	if err := b.attach(reader); err != nil {
		t.Fatalf("attach() error = %v", err)
	}
	return b
}

func TestBackend_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("This is not MP3 data")},
		{"empty", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := audio.NewStream(bytes.NewReader(tt.data), "x.mp3")
			if err := New().Open(s); !errors.Is(err, ErrNotMP3File) {
				t.Errorf("Open() error = %v, want ErrNotMP3File", err)
			}
		})
	}
}

func TestBackend_Capabilities(t *testing.T) {
	t.Parallel()

	b := newMockBackend(t, &mockMP3Reader{sampleRate: 22050})

	rate, format, ch := b.Format()
	if rate != 22050 || format != audio.S16 || ch != 2 {
		t.Errorf("Format() = (%d, %v, %d), want (22050, s16, 2)", rate, format, ch)
	}
	if !b.WasInited() {
		t.Error("WasInited() = false")
	}
	if b.Type() != "mp3" {
		t.Errorf("Type() = %q, want mp3", b.Type())
	}

	var _ audio.Initializer = b
	var _ audio.Teller = b
	var _ audio.Ticker = b
}

func TestBackend_FillBuffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		samples  []int16
		bufBytes int
		maxRead  int
		wantN    int
		finished bool
	}{
		{"all", []int16{1, 2, 3, 4}, 64, 0, 8, true},
		{"partial", []int16{1, 2, 3, 4, 5, 6}, 8, 0, 8, false},
		{"frame aligned", []int16{1, 2, 3, 4}, 7, 0, 4, false},
		{"short reads are joined", []int16{1, 2, 3, 4, 5, 6}, 12, 4, 12, true},
		{"too small", []int16{1, 2}, 3, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newMockBackend(t, &mockMP3Reader{sampleRate: 44100, samples: tt.samples, maxRead: tt.maxRead})

			buf := make([]byte, tt.bufBytes)
			n := b.FillBuffer(buf)
			if n != tt.wantN {
				t.Fatalf("FillBuffer() = %d, want %d", n, tt.wantN)
			}
			for i := range n / 2 {
				if got := int16(binary.LittleEndian.Uint16(buf[2*i:])); got != tt.samples[i] {
					t.Errorf("sample %d = %d, want %d", i, got, tt.samples[i])
				}
			}
			if b.IsFinished() != tt.finished {
				t.Errorf("IsFinished() = %v, want %v", b.IsFinished(), tt.finished)
			}
			if b.Tell() != int64(n) {
				t.Errorf("Tell() = %d, want %d", b.Tell(), n)
			}
		})
	}
}

func TestBackend_ReadError(t *testing.T) {
	t.Parallel()

	b := newMockBackend(t, &mockMP3Reader{sampleRate: 44100, samples: []int16{1, 2}, returnErrors: true})

	if n := b.FillBuffer(make([]byte, 16)); n != -1 {
		t.Errorf("FillBuffer() = %d, want -1", n)
	}
}

func TestBackend_Seek(t *testing.T) {
	t.Parallel()

	samples := []int16{10, 11, 20, 21, 30, 31, 40, 41}
	b := newMockBackend(t, &mockMP3Reader{sampleRate: 1000, samples: samples})

	// rounded down to frame 2
	if err := b.Seek(10, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if b.Tell() != 8 {
		t.Errorf("Tell() = %d, want 8", b.Tell())
	}
	if b.Ticks() != 2 {
		t.Errorf("Ticks() = %d, want 2", b.Ticks())
	}

	buf := make([]byte, 4)
	b.FillBuffer(buf)
	if got := int16(binary.LittleEndian.Uint16(buf)); got != 30 {
		t.Errorf("sample after seek = %d, want 30", got)
	}

	if err := b.Seek(-8, io.SeekCurrent); err != nil {
		t.Fatalf("Seek(SeekCurrent) error = %v", err)
	}
	if b.Tell() != 4 {
		t.Errorf("Tell() = %d, want 4", b.Tell())
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

	b := newMockBackend(t, &mockMP3Reader{sampleRate: 1000, samples: make([]int16, 4)})

	if err := b.Seek(-4, io.SeekStart); !errors.Is(err, audio.ErrNegativeSeek) {
		t.Errorf("Seek(-4) error = %v, want ErrNegativeSeek", err)
	}
	if err := b.Seek(0, io.SeekEnd); !errors.Is(err, audio.ErrInvalidWhence) {
		t.Errorf("Seek(SeekEnd) error = %v, want ErrInvalidWhence", err)
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
	if b.Ticks() != 0 {
		t.Errorf("Ticks() = %d, want 0", b.Ticks())
	}
}
