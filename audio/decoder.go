// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"
)

const (
	// maxLoopDepth bounds how often one Decode call may wrap around a
	// looping stream.
	maxLoopDepth = 10

	// loopWarnLimit stops the depth diagnostic once a decoder looped this
	// many times.
	loopWarnLimit = 50

	decodeAllChunk = 8192
)

// Decoder drives a Backend for one playback session. It adds pausing,
// looping with silence padding, and a fade envelope on top of the codec.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	backend Backend
	logger  *slog.Logger

	paused    bool
	looping   bool
	loopCount int

	// volume and fade state, in percent and milliseconds
	volume    float64
	fadeEnd   float64
	fadeTime  float64
	deltaStep float64

	errorMessage string

	owned []io.Closer
}

// NewDecoder wraps b. The backend still has to be opened with Open unless
// it was opened by the caller already.
func NewDecoder(b Backend) *Decoder {
	return &Decoder{
		backend: b,
		logger:  slog.Default(),
		volume:  100,
	}
}

// SetLogger replaces the logger used for decoder diagnostics.
func (d *Decoder) SetLogger(l *slog.Logger) {
	if l != nil {
		d.logger = l
	}
}

// Backend returns the wrapped backend.
func (d *Decoder) Backend() Backend { return d.backend }

// Open opens the backend on s. A failure is also kept as the decoder's
// error message.
func (d *Decoder) Open(s Stream) error {
	if err := d.backend.Open(s); err != nil {
		d.errorMessage = err.Error()
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Own hands c over to the decoder. Close closes it after the backend,
// typically the file the backend decodes from.
func (d *Decoder) Own(c io.Closer) {
	d.owned = append(d.owned, c)
}

// Close releases the backend when it holds resources, then everything
// handed over with Own.
func (d *Decoder) Close() error {
	var errs []error
	if c, ok := d.backend.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	for _, c := range d.owned {
		errs = append(errs, c.Close())
	}
	d.owned = nil

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (d *Decoder) Pause()         { d.paused = true }
func (d *Decoder) Resume()        { d.paused = false }
func (d *Decoder) IsPaused() bool { return d.paused }

// Decode fills buf with PCM data in the backend's format and returns the
// number of bytes the backend produced. Whatever the backend did not
// produce is zeroed, so buf is always fully defined on return.
//
// While paused, buf is zeroed, the backend is not touched and len(buf) is
// returned. When the backend reaches its end while looping is enabled, it
// is rewound and decoding continues into the rest of buf, at most
// maxLoopDepth times per call.
func (d *Decoder) Decode(buf []byte) int {
	if d.paused {
		clear(buf)
		return len(buf)
	}

	total := 0
	out := buf
	for depth := 0; ; depth++ {
		n := d.backend.FillBuffer(out)
		if n < 0 {
			n = 0
		}
		clear(out[n:])
		total += n

		if d.backend.IsFinished() && d.looping && depth < maxLoopDepth {
			d.loopCount++
			d.Rewind()
			if len(out)-n > 0 {
				out = out[n:]
				continue
			}
		}

		if depth == maxLoopDepth && d.loopCount < loopWarnLimit {
			d.logger.Debug("audio decoder: recursion depth exceeded, probably stream error",
				slog.Int("loop_count", d.loopCount))
		}

		return total
	}
}

// DecodeAll decodes the remaining stream into memory. Looping must be
// disabled or DecodeAll does not return for looping content.
func (d *Decoder) DecodeAll() []byte {
	// Backends only return whole frames, so the request must be a
	// multiple of the frame size or a short read ends the loop early.
	_, format, channels := d.Format()
	frame := max(SampleSize(format)*max(channels, 1), 1)
	chunk := max(decodeAllChunk-decodeAllChunk%frame, frame)

	buf := make([]byte, 0, chunk)

	for !d.IsFinished() {
		start := len(buf)
		buf = slices.Grow(buf, chunk)[:start+chunk]

		read := d.Decode(buf[start:])
		buf = buf[:start+read]
		if read < chunk {
			break
		}
	}

	return buf
}

// Rewind seeks the backend to its start. Backends must support this once
// opened, so a failure panics.
func (d *Decoder) Rewind() {
	if err := d.backend.Seek(0, io.SeekStart); err != nil {
		panic(fmt.Sprintf("audio decoder: rewind failed: %v", err))
	}
}

func (d *Decoder) Seek(offset int64, whence int) error {
	if err := d.backend.Seek(offset, whence); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (d *Decoder) IsFinished() bool { return d.backend.IsFinished() }

// SetFade starts a linear volume fade from begin to end over duration.
// With a non-positive duration or begin == end the volume jumps to end.
func (d *Decoder) SetFade(begin, end int, duration time.Duration) {
	d.fadeTime = 0

	if duration <= 0 || begin == end {
		d.volume = clampVolume(float64(end))
		return
	}

	// The step comes from the requested endpoints. Volume reports the
	// clamped level until the ramp re-enters [0, 100].
	d.volume = float64(begin)
	d.fadeEnd = float64(end)
	d.fadeTime = float64(duration) / float64(time.Millisecond)
	d.deltaStep = (d.fadeEnd - d.volume) / d.fadeTime
}

// Update advances an active fade by delta.
func (d *Decoder) Update(delta time.Duration) {
	if d.fadeTime <= 0 {
		return
	}

	ms := float64(delta) / float64(time.Millisecond)
	d.fadeTime -= ms
	d.volume = clampVolume(d.volume + ms*d.deltaStep)
}

// IsFading reports whether a fade is in progress.
func (d *Decoder) IsFading() bool { return d.fadeTime > 0 }

func (d *Decoder) Volume() int { return int(clampVolume(d.volume)) }

func (d *Decoder) SetVolume(volume int) {
	d.volume = clampVolume(float64(volume))
}

func (d *Decoder) Looping() bool        { return d.looping }
func (d *Decoder) SetLooping(loop bool) { d.looping = loop }

// LoopCount is the number of times the stream wrapped around.
func (d *Decoder) LoopCount() int { return d.loopCount }

// ErrorMessage returns the last open failure or the backend's message,
// or an empty string.
func (d *Decoder) ErrorMessage() string {
	if d.errorMessage != "" {
		return d.errorMessage
	}
	if m, ok := d.backend.(ErrorMessenger); ok {
		return m.ErrorMessage()
	}
	return ""
}

// Type returns the backend's music type tag, if any.
func (d *Decoder) Type() string {
	if t, ok := d.backend.(Typer); ok {
		return t.Type()
	}
	return ""
}

func (d *Decoder) Format() (frequency int, format Format, channels int) {
	return d.backend.Format()
}

// SetFormat requests a different output format. It reports false when
// the backend cannot produce it.
func (d *Decoder) SetFormat(frequency int, format Format, channels int) bool {
	if s, ok := d.backend.(FormatSetter); ok {
		return s.SetFormat(frequency, format, channels)
	}
	return false
}

// Pitch returns the backend's pitch, or 0 when pitch is not supported.
func (d *Decoder) Pitch() int {
	if p, ok := d.backend.(Pitcher); ok {
		return p.Pitch()
	}
	return 0
}

func (d *Decoder) SetPitch(pitch int) bool {
	if p, ok := d.backend.(Pitcher); ok {
		return p.SetPitch(pitch)
	}
	return false
}

// Tell returns the backend position, or -1 when unsupported.
func (d *Decoder) Tell() int64 {
	if t, ok := d.backend.(Teller); ok {
		return t.Tell()
	}
	return -1
}

// Ticks returns the elapsed playback ticks, or 0 when unsupported.
func (d *Decoder) Ticks() int {
	if t, ok := d.backend.(Ticker); ok {
		return t.Ticks()
	}
	return 0
}

func (d *Decoder) WasInited() bool {
	if i, ok := d.backend.(Initializer); ok {
		return i.WasInited()
	}
	return true
}

func clampVolume(v float64) float64 {
	return max(0, min(100, v))
}
