// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
// Vorbis is a free, open-source lossy audio compression format.
//
// # Supported Formats
//
// The decoder supports:
//   - Ogg Vorbis (.ogg files)
//   - Variable bitrates
//   - Mono and stereo
//   - Various sample rates
//
// # Decoding Vorbis Files
//
// Backend implements audio.Backend and is usually created by the format
// factory after it found the "vorbis" signature in the first Ogg page:
//
//	b := vorbis.New()
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
// Vorbis backend output:
//   - Sample format: audio.F32 in range [-1.0, 1.0]
//   - Channels: Depends on file (mono or stereo typically)
//   - Sample rate: Depends on file (commonly 44.1kHz or 48kHz)
//
// # Channel Layout
//
// For stereo files, samples are interleaved:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// To convert to mono, wrap the backend in a resampler:
//
//	r := audio.NewResampler(vorbis.New())
//	r.SetFormat(rate, audio.S16, 1)
//
// # Seeking
//
// Seek offsets are bytes of decoded output and are converted to sample
// frames. Ticks reports the position in milliseconds.
//
// # Performance
//
// The Vorbis decoder:
//   - Streams data efficiently
//   - Minimal allocations during reading
//   - Suitable for real-time playback
//
// # Limitations
//
// Note:
//   - Vorbis encoding is not supported (decoding only)
//   - Reading is frame-based (decode entire frames)
//   - Chained streams are decoded as one logical stream
//
// # Use Cases
//
// Common applications:
//   - Playing Ogg Vorbis files
//   - Converting Vorbis to WAV
//   - Game audio (common format in games)
//   - Audio streaming
//
// # Quality vs. Compression
//
// Vorbis provides excellent quality at various bitrates:
//   - Low quality: ~64 kbps (voice/podcasts)
//   - Standard quality: ~128 kbps (music)
//   - High quality: ~192-256 kbps (archival)
//
// The decoder handles all quality levels transparently.
//
// # Example: Vorbis to WAV Conversion
//
//	f := audsniff.New()
//	dec, _ := f.OpenFile("input.ogg", true)
//	defer dec.Close()
//
//	pcm16, rate, _ := audsniff.ResampleToMono16(dec, 16000)
//
//	wavFile, _ := os.Create("output.wav")
//	wav.WriteWAV16(wavFile, rate, pcm16)
package vorbis
