// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV decoding backends and a WAV writer.
//
// Two backends are offered:
//   - PCMBackend reads the header through github.com/go-audio/wav and
//     copies uncompressed PCM (8, 16, 24 or 32 bit) straight to the
//     output. It is the fast path picked for WAV files with format code 1.
//   - Backend decodes through github.com/go-audio/wav and always produces
//     16-bit output. The generic sndfile backend uses it.
//
// # Decoding
//
//	b := wav.NewPCM()
//	if err := b.Open(stream); err != nil {
//	    return err
//	}
//	rate, format, channels := b.Format()
//
//	dec := audio.NewDecoder(b)
//	buf := make([]byte, 4096)
//	n := dec.Decode(buf)
//
// PCMBackend reports its position through Tell (bytes of output) and
// Ticks (whole seconds), and can seek to any frame.
//
// # Writing
//
// WriteWAV writes interleaved 16-bit samples with a canonical 44-byte
// header; WriteWAV16 is the mono shorthand:
//
//	var buf bytes.Buffer
//	err := wav.WriteWAV(&buf, 44100, 2, samples)
//
// # Errors
//
//   - ErrNotWavFile: no RIFF/WAVE header
//   - ErrOnlyPCMSupported: a compressed format code in the fast path
//   - ErrUnsupportedBitDepth: a sample width other than 8, 16, 24 or 32
//   - ErrUnsupportedWavLayout, ErrMissingDataChunk: broken chunk layout,
//     including chunks that claim more bytes than the file holds
package wav
