// SPDX-License-Identifier: EPL-2.0

// Package audio provides the playback engine shared by all codec backends.
//
// A codec is plugged in as a Backend: it opens a Stream and fills byte
// buffers with PCM data in the format it reports. Everything that is the
// same for every codec lives in Decoder, which wraps a Backend:
//   - pausing, where Decode returns silence without touching the codec
//   - looping, where the backend is rewound and decoding continues in the
//     same call, bounded to a few wraps per call
//   - zero padding, so a buffer handed to Decode is always fully defined
//   - a linear volume fade advanced by Update
//
// # Backends
//
// The required surface of a backend is small:
//
//	type Backend interface {
//	    Open(s Stream) error
//	    FillBuffer(dst []byte) int
//	    IsFinished() bool
//	    Seek(offset int64, whence int) error
//	    Format() (frequency int, format Format, channels int)
//	}
//
// Optional behaviour is discovered with type assertions: FormatSetter,
// Pitcher, Ticker, Teller, Typer, Initializer and ErrorMessenger. A
// Decoder falls back to a neutral answer when the backend lacks one.
//
// # Playback
//
//	dec := audio.NewDecoder(backend)
//	if err := dec.Open(stream); err != nil {
//	    return err
//	}
//	dec.SetLooping(true)
//	dec.SetFade(0, 100, 2*time.Second)
//
//	buf := make([]byte, 4096)
//	for {
//	    dec.Update(frameTime)
//	    dec.Decode(buf)
//	    // hand buf to the output device
//	}
//
// # Resampling
//
// Resampler is itself a Backend. It wraps another backend and converts its
// output rate, sample format and channel count using cubic interpolation,
// and gives pitch control to codecs that have none:
//
//	r := audio.NewResampler(backend)
//	r.SetFormat(16000, audio.S16, 1)
//	dec := audio.NewDecoder(r)
//
// # Sample Formats
//
// Format enumerates the PCM encodings a backend may produce. All are
// little-endian; S24 uses a 4-byte container. DecodeSamples and
// EncodeSamples convert between any of them and float32 samples in
// [-1.0, 1.0].
//
// # Registry
//
// Registry maps a backend kind to a Constructor. Whether a kind is
// registered decides whether it is available at all:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", func() audio.Backend { return wav.NewBackend() })
//	ctor, ok := registry.Get("wav")
package audio
