// SPDX-License-Identifier: EPL-2.0

package audsniff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/ik5/audsniff/audio"
	"github.com/ik5/audsniff/formats/midi"
	"github.com/ik5/audsniff/formats/mp3"
	"github.com/ik5/audsniff/formats/sndfile"
	"github.com/ik5/audsniff/formats/tracker"
	"github.com/ik5/audsniff/formats/vorbis"
	"github.com/ik5/audsniff/formats/wav"
)

// Backend kinds known to the Factory.
const (
	KindMIDI    = "midi"
	KindOpus    = "opus"
	KindVorbis  = "vorbis"
	KindWAV     = "wav"
	KindSndfile = "sndfile"
	KindTracker = "tracker"
	KindMP3     = "mp3"
)

const (
	// offsets of the codec signature in the first Ogg page
	opusSignatureOffset   = 28
	vorbisSignatureOffset = 29

	wavFormatCodeOffset = 20
	wavFormatPCM        = 1

	minStreamSize = 5
)

// Factory picks the backend for a stream by looking at its content.
//
// Structural signatures are checked first and the expensive MP3 content
// scan runs last. A Factory is not safe for concurrent use of Create.
type Factory struct {
	backends      *audio.Registry
	midiFallbacks []audio.Constructor
	fastWAV       bool
	logger        *slog.Logger

	// mp3Works turns false for good once the MP3 backend failed to
	// initialise.
	mp3Works bool
}

// New returns a Factory with every built-in backend registered except a
// tracker backend, which callers can add with WithBackend.
func New(opts ...Option) *Factory {
	f := &Factory{
		backends: audio.NewRegistry(),
		fastWAV:  true,
		logger:   slog.Default(),
		mp3Works: true,
	}

	f.backends.Register(KindMIDI, func() audio.Backend { return midi.New() })
	f.backends.Register(KindVorbis, func() audio.Backend { return vorbis.New() })
	f.backends.Register(KindWAV, func() audio.Backend { return wav.NewPCM() })
	f.backends.Register(KindSndfile, func() audio.Backend { return sndfile.New() })
	f.backends.Register(KindMP3, func() audio.Backend { return mp3.New() })
	registerOpus(f.backends)

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Kinds lists the available backend kinds.
func (f *Factory) Kinds() []string {
	return f.backends.Kinds()
}

// Create classifies s and returns a decoder for it, opened and ready to
// play. With resample set, the backend is wrapped in an audio.Resampler.
//
// When no backend claims s, Create returns a nil decoder and an error
// matching ErrUnsupportedFormat, and s is at offset 0 with its errors
// cleared. A WMA stream yields a decoder that is already finished and
// explains the problem through ErrorMessage.
func (f *Factory) Create(s audio.Stream, resample bool) (*audio.Decoder, error) {
	// a stream holding nothing but a magic number is no audio either
	head, err := probeAt(s, 0, minStreamSize)
	if err != nil || len(head) < minStreamSize {
		return nil, f.nothing(s, ErrShortStream)
	}
	magic := head[:4]

	log := f.logger.With(slog.String("stream", s.Name()))

	if string(magic) == "MThd" {
		for _, ctor := range f.midiCandidates() {
			dec, err := f.open(s, ctor(), resample)
			if err == nil {
				return dec, nil
			}
			log.Debug("midi backend rejected stream", slog.Any("err", err))
		}
	}

	if string(magic) == "OggS" {
		if ctor, ok := f.backends.Get(KindOpus); ok {
			sig, _ := probeAt(s, opusSignatureOffset, 4)
			if len(sig) == 0 {
				return nil, f.nothing(s, ErrShortStream)
			}
			if string(sig) == "Opus" {
				return f.openOrNothing(s, ctor(), resample)
			}
		}

		if ctor, ok := f.backends.Get(KindVorbis); ok {
			sig, _ := probeAt(s, vorbisSignatureOffset, 4)
			if len(sig) == 0 {
				return nil, f.nothing(s, ErrShortStream)
			}
			if string(sig) == "vorb" {
				return f.openOrNothing(s, ctor(), resample)
			}
		}
	}

	if f.fastWAV && string(magic) == "RIFF" {
		if ctor, ok := f.backends.Get(KindWAV); ok {
			code, _ := probeAt(s, wavFormatCodeOffset, 2)
			if len(code) == 2 && binary.LittleEndian.Uint16(code) == wavFormatPCM {
				return f.openOrNothing(s, ctor(), resample)
			}
		}
	}

	switch string(magic) {
	case "RIFF", "FORM", "OggS", "fLaC":
		ctor, ok := f.backends.Get(KindSndfile)
		if !ok {
			return nil, f.nothing(s, ErrNoBackend)
		}
		return f.openOrNothing(s, ctor(), resample)
	}

	if bytes.Equal(magic, wmaMagic) {
		log.Info("refusing WMA stream")
		dec := audio.NewDecoder(newWMABackend())
		dec.SetLogger(f.logger)
		return dec, nil
	}

	if ctor, ok := f.backends.Get(KindTracker); ok && tracker.IsModule(s.Name()) {
		return f.openOrNothing(s, ctor(), resample)
	}

	if dec := f.tryMP3(s, magic, resample); dec != nil {
		return dec, nil
	}

	return nil, f.nothing(s, ErrUnsupportedFormat)
}

func (f *Factory) midiCandidates() []audio.Constructor {
	var ctors []audio.Constructor
	if ctor, ok := f.backends.Get(KindMIDI); ok {
		ctors = append(ctors, ctor)
	}
	for _, ctor := range f.midiFallbacks {
		if ctor != nil {
			ctors = append(ctors, ctor)
		}
	}
	return ctors
}

// tryMP3 is the last resort. Anything starting with an ID3 tag is trusted,
// everything else has to pass the frame scan.
func (f *Factory) tryMP3(s audio.Stream, magic []byte, resample bool) *audio.Decoder {
	if !f.mp3Works {
		return nil
	}
	ctor, ok := f.backends.Get(KindMP3)
	if !ok {
		return nil
	}

	b := ctor()
	if i, ok := b.(audio.Initializer); ok && !i.WasInited() {
		f.logger.Warn("mp3 backend failed to initialise, skipping it from now on")
		f.mp3Works = false
		return nil
	}

	if !bytes.HasPrefix(magic, []byte("ID3")) {
		found := mp3.IsMP3(s)
		resetStream(s)
		if !found {
			return nil
		}
	}

	dec, err := f.open(s, b, resample)
	if err != nil {
		f.logger.Debug("mp3 backend rejected stream",
			slog.String("stream", s.Name()), slog.Any("err", err))
		return nil
	}
	return dec
}

// open wraps b as requested and opens it on s, which must be at offset 0.
// On failure s is reset for the next candidate.
func (f *Factory) open(s audio.Stream, b audio.Backend, resample bool) (*audio.Decoder, error) {
	if resample {
		b = audio.NewResampler(b)
	}

	dec := audio.NewDecoder(b)
	dec.SetLogger(f.logger)

	if err := dec.Open(s); err != nil {
		_ = dec.Close()
		resetStream(s)
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}

	return dec, nil
}

func (f *Factory) openOrNothing(s audio.Stream, b audio.Backend, resample bool) (*audio.Decoder, error) {
	dec, err := f.open(s, b, resample)
	if err != nil {
		return nil, f.nothing(s, err)
	}
	return dec, nil
}

// nothing resets s and builds the error for an unclaimed stream.
func (f *Factory) nothing(s audio.Stream, cause error) error {
	resetStream(s)

	f.logger.Debug("no decoder for stream",
		slog.String("stream", s.Name()), slog.Any("cause", cause))

	if cause == ErrUnsupportedFormat {
		return ErrUnsupportedFormat
	}
	return fmt.Errorf("%w: %w", ErrUnsupportedFormat, cause)
}

// OpenFile opens path and classifies it. The returned decoder owns the
// file and closes it on Close.
func (f *Factory) OpenFile(path string, resample bool) (*audio.Decoder, error) {
	s, err := audio.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec, err := f.Create(s, resample)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dec.Own(s)
	return dec, nil
}
