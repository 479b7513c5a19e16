// SPDX-License-Identifier: EPL-2.0

// Package player plays an audio.Decoder on the default output device
// through ebitengine/oto.
//
// Output is always signed 16-bit little-endian PCM. A Source asks its
// decoder for that format, applies the decoder volume to every block it
// hands to the device and advances an active fade by the played time.
package player
