// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC (Free Lossless Audio Codec) decoding.
//
// This package uses github.com/mewkiz/flac to decode FLAC streams frame by
// frame. Every bit depth between 4 and 32 bits is scaled to audio.S16.
//
//	b := flac.New()
//	if err := b.Open(stream); err != nil {
//	    // Handle error
//	}
//
//	dec := audio.NewDecoder(b)
//
// Seeking is limited to rewinding, which parses the stream header again.
package flac
