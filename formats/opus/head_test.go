// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// oggOpusHead builds the start of an Ogg Opus stream announcing channels.
func oggOpusHead(channels byte) []byte {
	page := make([]byte, headOffset)
	copy(page, "OggS")
	head := append([]byte(headMagic), 1, channels, 0x38, 0x01)
	return append(page, head...)
}

func TestReadChannels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		want    int
		wantErr error
	}{
		{"mono", oggOpusHead(1), 1, nil},
		{"stereo", oggOpusHead(2), 2, nil},
		{"surround downmixed", oggOpusHead(6), 2, nil},
		{"no channels", oggOpusHead(0), 0, ErrBadChannelCount},
		{"vorbis", append(make([]byte, 29), "vorbis"...), 0, ErrNotOpusFile},
		{"short", []byte("OggS"), 0, ErrNotOpusFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := bytes.NewReader(tt.data)
			got, err := readChannels(r)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("readChannels() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("readChannels() = %d, want %d", got, tt.want)
			}

			if pos, _ := r.Seek(0, io.SeekCurrent); pos != 0 {
				t.Errorf("stream left at %d, want 0", pos)
			}
		})
	}
}
