// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
// Currently supported:
//   - AIFF (Audio Interchange File Format)
//   - PCM 8, 16, 24 and 32-bit, converted to 16-bit on output
//   - Mono and multi-channel
//   - Any sample rate
//
// # Decoding AIFF Files
//
// Backend implements audio.Backend:
//
//	b := aiff.New()
//	if err := b.Open(stream); err != nil {
//	    // Handle error
//	}
//
//	dec := audio.NewDecoder(b)
//	buf := make([]byte, 4096)
//	n := dec.Decode(buf)
//
// # Output Format
//
// AIFF backend output:
//   - Sample format: audio.S16, whatever the bit depth of the file
//   - Channels: Depends on file (mono or stereo typically)
//   - Sample rate: Depends on file (commonly 44.1kHz or 48kHz)
//
// # Error Handling
//
// The package defines several error types:
//   - ErrNotAiffFile: The input is not a valid AIFF file
//   - ErrUnsupportedBitDepth: Only 8, 16, 24 and 32-bit PCM are handled
//   - ErrUnsupportedAiffLayout: Unsupported AIFF file structure
//
// Example:
//
//	if err := b.Open(stream); errors.Is(err, aiff.ErrNotAiffFile) {
//	    fmt.Println("Not an AIFF file")
//	}
//
// # AIFF vs. WAV
//
// AIFF is similar to WAV but:
//   - Uses big-endian byte order (WAV uses little-endian)
//   - Originated on Apple platforms (WAV on Windows)
//   - Stores sample rate as 80-bit float (WAV uses 32-bit int)
//   - Both are uncompressed PCM formats
//
// The decoder handles all format differences automatically.
//
// # Limitations
//
// Note:
//   - AIFF writing is not supported (decoding only)
//   - AIFF-C compressed files are rejected
//   - Seeking is limited to rewinding, which parses the header again
package aiff
