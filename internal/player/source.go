// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ik5/audsniff/audio"
	"github.com/ik5/audsniff/utils"
)

// maxStalls is the number of empty reads in a row after which a decoder
// that does not report its end is given up on.
const maxStalls = 8

var (
	ErrFormatRejected = errors.New("decoder cannot produce the device format")
	ErrStalled        = errors.New("decoder stopped producing audio")
)

// Source reads S16 PCM from a decoder for an output device.
//
// Read runs on the device goroutine. Control serialises every other access
// to the decoder with it.
type Source struct {
	mu         sync.Mutex
	dec        *audio.Decoder
	rate       int
	frameBytes int
	played     time.Duration
	stalls     int
	done       bool
}

// NewSource prepares dec for a device running at rate with channels.
func NewSource(dec *audio.Decoder, rate, channels int) (*Source, error) {
	if r, f, ch := dec.Format(); r != rate || f != audio.S16 || ch != channels {
		if !dec.SetFormat(rate, audio.S16, channels) {
			return nil, fmt.Errorf("%w: %d Hz s16 with %d channel(s)", ErrFormatRejected, rate, channels)
		}
	}

	return &Source{
		dec:        dec,
		rate:       rate,
		frameBytes: 2 * channels,
	}, nil
}

func (s *Source) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return 0, io.EOF
	}

	n := len(p) - len(p)%s.frameBytes
	if n == 0 {
		return 0, io.ErrShortBuffer
	}

	got := s.dec.Decode(p[:n])
	if got == 0 {
		if s.dec.IsFinished() {
			s.done = true
			return 0, io.EOF
		}

		s.stalls++
		if s.stalls >= maxStalls {
			s.done = true
			return 0, ErrStalled
		}
		// keep the device fed with silence meanwhile
		got = n
	} else {
		s.stalls = 0
	}

	utils.ScaleS16(p[:got], s.dec.Volume())

	d := time.Duration(got/s.frameBytes) * time.Second / time.Duration(s.rate)
	s.played += d
	s.dec.Update(d)

	return got, nil
}

// Played is the amount of audio handed to the device so far.
func (s *Source) Played() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played
}

// Control runs fn with exclusive access to the decoder.
func (s *Source) Control(fn func(dec *audio.Decoder)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.dec)
}
