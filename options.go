// SPDX-License-Identifier: EPL-2.0

package audsniff

import (
	"log/slog"

	"github.com/ik5/audsniff/audio"
)

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger for classification and decoder diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(f *Factory) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithFastWAV enables or disables the lightweight PCM WAV path. When
// disabled, WAV files go to the generic backend.
func WithFastWAV(enabled bool) Option {
	return func(f *Factory) {
		f.fastWAV = enabled
	}
}

// WithBackend registers ctor for kind, replacing a built-in backend.
func WithBackend(kind string, ctor audio.Constructor) Option {
	return func(f *Factory) {
		f.backends.Register(kind, ctor)
	}
}

// WithoutBackend removes kind, as if it was never built in.
func WithoutBackend(kind string) Option {
	return func(f *Factory) {
		f.backends.Unregister(kind)
		if kind == KindMIDI {
			f.midiFallbacks = nil
		}
	}
}

// WithMIDI sets fallback MIDI backends, tried in order after the one
// registered as KindMIDI.
func WithMIDI(ctors ...audio.Constructor) Option {
	return func(f *Factory) {
		f.midiFallbacks = ctors
	}
}
