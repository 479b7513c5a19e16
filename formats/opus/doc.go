// SPDX-License-Identifier: EPL-2.0

// Package opus decodes Ogg Opus through gopkg.in/hraban/opus.v2.
//
// The backend needs cgo and libopusfile; without cgo only the header
// helpers are built and the format factory leaves Opus unregistered.
// Output is audio.S16 at 48 kHz, mono or stereo as announced by the
// OpusHead packet. Seeking is limited to rewinding.
package opus
