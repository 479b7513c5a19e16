// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"sort"
	"sync"
)

// Backend is a codec specific decoder. The playback behaviour shared by all
// codecs (pause, looping, padding, fades) lives in Decoder, which wraps a
// Backend.
type Backend interface {
	// Open prepares the backend to decode s. The stream is positioned at
	// offset 0.
	Open(s Stream) error
	// FillBuffer decodes into dst and returns the number of bytes written,
	// or a negative value when decoding failed.
	FillBuffer(dst []byte) int
	// IsFinished reports whether the end of the stream was reached.
	IsFinished() bool
	// Seek moves the decode position. Every backend must support
	// Seek(0, io.SeekStart) once Open succeeded.
	Seek(offset int64, whence int) error
	// Format describes the PCM data FillBuffer produces.
	Format() (frequency int, format Format, channels int)
}

// FormatSetter is implemented by backends that can change their output
// format. SetFormat reports whether the request was accepted.
type FormatSetter interface {
	SetFormat(frequency int, format Format, channels int) bool
}

// Ticker is implemented by backends with a notion of elapsed playback
// ticks (MIDI ticks, seconds, ...).
type Ticker interface {
	Ticks() int
}

// Teller is implemented by backends that can report their position.
type Teller interface {
	Tell() int64
}

// Pitcher is implemented by backends that support pitch changes.
// Pitch is a percentage where 100 is the original pitch.
type Pitcher interface {
	Pitch() int
	SetPitch(pitch int) bool
}

// Typer is implemented by backends that report a music type tag.
type Typer interface {
	Type() string
}

// Initializer is implemented by backends whose construction can fail
// without an error return, e.g. because a library failed to initialise.
type Initializer interface {
	WasInited() bool
}

// ErrorMessenger is implemented by backends carrying a human readable
// error for the user.
type ErrorMessenger interface {
	ErrorMessage() string
}

// Constructor builds a fresh, unopened Backend.
type Constructor func() Backend

// Registry of backend constructors by kind (e.g., "wav", "mp3", "vorbis").
type Registry struct {
	codecs map[string]Constructor

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Constructor),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(kind string, c Constructor) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[kind] = c
}

// Unregister removes kind. Removing an unknown kind is a no-op.
func (r *Registry) Unregister(kind string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	delete(r.codecs, kind)
}

func (r *Registry) Get(kind string) (Constructor, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	c, ok := r.codecs[kind]
	return c, ok && c != nil
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	kinds := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
