// SPDX-License-Identifier: EPL-2.0

// Package midi plays standard MIDI files.
//
// Files are parsed with gitlab.com/gomidi/midi/v2/smf, which also resolves
// the tempo map. Every note outside the percussion channel is rendered as
// a sine voice with a 5ms attack and a 50ms release; drums are skipped.
//
// The default output is audio.S16 stereo at 44100 Hz. SetFormat accepts
// other rates between 8 and 192 kHz, audio.F32 and mono.
//
// Position reporting:
//   - Ticks returns the song position in MIDI ticks
//   - Tell and Seek use bytes of output at the original speed
//   - SetPitch changes the playback speed in percent
package midi
