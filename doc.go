// SPDX-License-Identifier: EPL-2.0

// Package audsniff picks an audio decoder for a stream by looking at its
// bytes.
//
// A Factory inspects the leading bytes of a seekable stream and, where
// the container is ambiguous, a few fixed offsets deeper in it. It then
// builds exactly one backend from the formats packages, optionally wraps
// it in a resampler, and returns it as an audio.Decoder that is ready to
// play.
//
// # Supported Formats
//
//   - Standard MIDI files via formats/midi
//   - Ogg Opus via formats/opus (needs cgo and libopusfile)
//   - Ogg Vorbis via formats/vorbis
//   - PCM WAV via the fast formats/wav backend
//   - WAV, AIFF, Ogg Vorbis and FLAC via the generic formats/sndfile backend
//   - MP3 via formats/mp3
//   - Tracker modules, when a tracker backend is registered
//
// WMA files are recognised and refused: Create returns a decoder that is
// finished right away and explains why through ErrorMessage.
//
// # Classification Order
//
// First match wins:
//
//  1. Four bytes or less: nothing.
//  2. "MThd": the MIDI backends, in order. A failure falls through.
//  3. "OggS": "Opus" at offset 28, then "vorb" at offset 29.
//  4. "RIFF" with format code 1 at offset 20: the fast WAV backend.
//  5. "RIFF", "FORM", "OggS" or "fLaC": the generic backend, or nothing.
//  6. The WMA signature: the refusing decoder.
//  7. A tracker module extension: the tracker backend.
//  8. MP3, trusted after an ID3 tag and otherwise only after a scan of
//     consecutive frame headers. A backend that fails to initialise is
//     not tried again by the same Factory.
//
// Each probe seeks the stream back to offset 0. When nothing matches, the
// stream is at offset 0 with its error state cleared and Create returns
// ErrUnsupportedFormat.
//
// # Quick Start
//
//	factory := audsniff.New()
//	dec, err := factory.OpenFile("music.ogg", true)
//	if err != nil {
//	    return err
//	}
//	defer dec.Close()
//
//	dec.SetLooping(true)
//	buf := make([]byte, 4096)
//	dec.Decode(buf)
//
// For one-shot conversion, ResampleToMono16 drains a decoder into mono
// 16-bit samples at a given rate.
//
// # Configuring Backends
//
// Backends are registered by kind. Replace or remove them with options:
//
//	factory := audsniff.New(
//	    audsniff.WithFastWAV(false),
//	    audsniff.WithoutBackend(audsniff.KindMP3),
//	    audsniff.WithBackend(audsniff.KindTracker, newTrackerBackend),
//	)
package audsniff
