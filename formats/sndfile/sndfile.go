// SPDX-License-Identifier: EPL-2.0

// Package sndfile is the generic backend for container formats with a
// structural signature: RIFF WAVE, FORM AIFF, Ogg Vorbis and FLAC.
//
// Open looks at the container magic and hands the stream to the matching
// codec package. Everything else is forwarded to that codec backend.
package sndfile

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audsniff/audio"
	"github.com/ik5/audsniff/formats/aiff"
	"github.com/ik5/audsniff/formats/flac"
	"github.com/ik5/audsniff/formats/vorbis"
	"github.com/ik5/audsniff/formats/wav"
)

var ErrUnknownContainer = errors.New("unknown container")

// containers maps a 4 byte container magic to the backend decoding it.
var containers = map[string]audio.Constructor{
	"RIFF": func() audio.Backend { return wav.New() },
	"FORM": func() audio.Backend { return aiff.New() },
	"OggS": func() audio.Backend { return vorbis.New() },
	"fLaC": func() audio.Backend { return flac.New() },
}

// Backend forwards to the codec backend picked by Open.
type Backend struct {
	inner audio.Backend
}

// New returns an unopened Backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Open(s audio.Stream) error {
	magic := make([]byte, 4)
	_, err := io.ReadFull(s, magic)
	if _, serr := s.Seek(0, io.SeekStart); serr != nil {
		return fmt.Errorf("%w", serr)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownContainer, err)
	}

	ctor, ok := containers[string(magic)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownContainer, magic)
	}

	inner := ctor()
	if err := inner.Open(s); err != nil {
		return fmt.Errorf("%w", err)
	}

	b.inner = inner
	return nil
}

// Inner returns the codec backend, nil before Open succeeded.
func (b *Backend) Inner() audio.Backend { return b.inner }

func (b *Backend) FillBuffer(dst []byte) int {
	if b.inner == nil {
		return -1
	}
	return b.inner.FillBuffer(dst)
}

func (b *Backend) IsFinished() bool {
	return b.inner == nil || b.inner.IsFinished()
}

func (b *Backend) Seek(offset int64, whence int) error {
	if b.inner == nil {
		return audio.ErrNotOpen
	}
	return b.inner.Seek(offset, whence)
}

func (b *Backend) Format() (int, audio.Format, int) {
	if b.inner == nil {
		return 0, audio.S16, 0
	}
	return b.inner.Format()
}

func (b *Backend) Tell() int64 {
	if t, ok := b.inner.(audio.Teller); ok {
		return t.Tell()
	}
	return -1
}

func (b *Backend) Ticks() int {
	if t, ok := b.inner.(audio.Ticker); ok {
		return t.Ticks()
	}
	return 0
}

// Type reports the codec, e.g. "wav" or "flac".
func (b *Backend) Type() string {
	if t, ok := b.inner.(audio.Typer); ok {
		return t.Type()
	}
	return "sndfile"
}

func (b *Backend) Close() error {
	if c, ok := b.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
