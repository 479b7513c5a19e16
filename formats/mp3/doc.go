// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio decoding and detection.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
//
// # Supported Formats
//
// The backend supports:
//   - MPEG-1, MPEG-2 and MPEG-2.5 Audio Layer III
//   - Constant and variable bitrates
//   - Files starting with an ID3v2 tag
//
// # Detecting MP3
//
// MP3 has no reliable magic number; a stream is only accepted when a run
// of consecutive frame headers is found:
//
//	if mp3.IsMP3(stream) {
//	    stream.Seek(0, io.SeekStart)
//	    // decode it
//	}
//
// IsMP3 leaves the stream at an arbitrary position.
//
// # Decoding MP3 Files
//
//	b := mp3.New()
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
// MP3 backend output:
//   - Sample format: audio.S16
//   - Channels: 2 (stereo, mono files are duplicated)
//   - Sample rate: Depends on the MP3 file (typically 44.1kHz or 48kHz)
//
// To convert to mono or resample, wrap the backend:
//
//	r := audio.NewResampler(mp3.New())
//	r.SetFormat(8000, audio.S16, 1)
//
// # Limitations
//
// Note:
//   - MP3 writing is not supported (decoding only)
//   - Layer I and II streams are not detected
//   - Seeking is byte accurate on decoded output but rounds to frames
package mp3
