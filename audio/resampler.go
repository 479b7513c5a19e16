// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audsniff/utils"
)

const resampleBufFrames = 4096

// Resampler is a Backend that converts the output of another Backend to a
// different sample rate, sample format or channel count using cubic
// interpolation. It also implements pitch changes for backends that have
// no native pitch support by scaling the resampling ratio.
// Includes basic anti-aliasing filtering when downsampling.
type Resampler struct {
	src Backend

	inRate     int
	inFormat   Format
	inChannels int

	outRate     int
	outFormat   Format
	outChannels int
	outSet      bool

	opened bool
	pitch  int

	// raw source bytes not yet converted, starting at rawOff
	raw    []byte
	rawOff int
	rawEnd int
	inBuf  []float32

	// Ring buffer holding 4 frames for cubic interpolation
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames [4][]float32
	// live counts the real (not duplicated) frames in frames[1:]
	live   int
	primed bool
	pos    float64

	srcEOF bool
	failed bool
	done   bool

	filterState []float32
	filterWarm  bool
	out         []float32
}

// NewResampler wraps src. Until SetFormat is called the output format is
// the source's own format.
func NewResampler(src Backend) *Resampler {
	return &Resampler{
		src:   src,
		pitch: 100,
	}
}

func (r *Resampler) Open(s Stream) error {
	if err := r.src.Open(s); err != nil {
		return fmt.Errorf("%w", err)
	}

	r.inRate, r.inFormat, r.inChannels = r.src.Format()
	if r.inChannels <= 0 || r.inRate <= 0 {
		return fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidFormat, r.inRate, r.inChannels)
	}

	if !r.outSet || !r.channelsCompatible(r.outChannels) {
		r.outRate, r.outFormat, r.outChannels = r.inRate, r.inFormat, r.inChannels
	}

	r.opened = true
	r.raw = make([]byte, resampleBufFrames*SampleSize(r.inFormat)*r.inChannels)
	r.inBuf = make([]float32, r.inChannels)
	r.reset()
	return nil
}

func (r *Resampler) channelsCompatible(ch int) bool {
	return ch == r.inChannels || ch == 1 || r.inChannels == 1
}

func (r *Resampler) reset() {
	r.rawOff, r.rawEnd = 0, 0
	r.srcEOF = false
	r.resetWindow()
}

// resetWindow restarts interpolation without dropping buffered source data.
func (r *Resampler) resetWindow() {
	for i := range r.frames {
		r.frames[i] = make([]float32, r.outChannels)
	}
	r.filterState = make([]float32, r.outChannels)
	r.filterWarm = false
	r.live = 0
	r.primed = false
	r.pos = 0
	r.done = false
}

func (r *Resampler) ratio() float64 {
	return float64(r.inRate) / float64(r.outRate) * float64(r.pitch) / 100.0
}

func (r *Resampler) passthrough() bool {
	return !r.primed && r.rawEnd == r.rawOff && r.ratio() == 1.0 &&
		r.inFormat == r.outFormat && r.inChannels == r.outChannels
}

// readFrame converts the next source frame into dst, which holds
// outChannels samples.
func (r *Resampler) readFrame(dst []float32) bool {
	frameBytes := SampleSize(r.inFormat) * r.inChannels

	for r.rawEnd-r.rawOff < frameBytes {
		if r.srcEOF {
			return false
		}

		rem := copy(r.raw, r.raw[r.rawOff:r.rawEnd])
		r.rawOff, r.rawEnd = 0, rem

		n := r.src.FillBuffer(r.raw[rem:])
		if n <= 0 {
			r.srcEOF = true
			r.failed = n < 0 && !r.src.IsFinished()
			return false
		}
		r.rawEnd += n
		if r.src.IsFinished() {
			r.srcEOF = true
		}
	}

	DecodeSamples(r.inBuf, r.raw[r.rawOff:r.rawOff+frameBytes], r.inFormat)
	r.rawOff += frameBytes

	switch {
	case r.outChannels == r.inChannels:
		copy(dst, r.inBuf)
	case r.outChannels == 1:
		downmix(dst, r.inBuf, r.inChannels)
	default:
		upmix(dst, r.inBuf, r.outChannels)
	}

	// Apply simple low-pass filter if downsampling
	if r.ratio() > 1.0 {
		const filterAlpha = 0.5
		if !r.filterWarm {
			copy(r.filterState, dst)
			r.filterWarm = true
		}
		for c := range r.outChannels {
			// One-pole low-pass: y[n] = alpha * x[n] + (1-alpha) * y[n-1]
			dst[c] = filterAlpha*dst[c] + (1-filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}

	return true
}

// prime fills the interpolation window with the first frames.
func (r *Resampler) prime() bool {
	r.primed = true

	if !r.readFrame(r.frames[1]) {
		r.done = true
		return false
	}
	copy(r.frames[0], r.frames[1])
	r.live = 1

	for i := 2; i < 4; i++ {
		if r.readFrame(r.frames[i]) {
			r.live++
			continue
		}
		// Duplicate last valid frame for remaining slots
		copy(r.frames[i], r.frames[i-1])
	}

	return true
}

// advance shifts the window by one frame.
func (r *Resampler) advance() bool {
	// Shift frames: [0,1,2,3] -> [1,2,3,0]
	first := r.frames[0]
	r.frames[0], r.frames[1], r.frames[2] = r.frames[1], r.frames[2], r.frames[3]
	r.frames[3] = first
	r.live--

	if r.readFrame(r.frames[3]) {
		r.live++
	} else {
		copy(r.frames[3], r.frames[2])
	}

	if r.live <= 0 {
		r.done = true
		return false
	}
	return true
}

func (r *Resampler) FillBuffer(dst []byte) int {
	if !r.opened {
		return -1
	}

	if r.passthrough() {
		return r.src.FillBuffer(dst)
	}

	frameBytes := SampleSize(r.outFormat) * r.outChannels
	framesNeeded := len(dst) / frameBytes
	if framesNeeded == 0 || r.done {
		return 0
	}

	r.failed = false
	if !r.primed && !r.prime() {
		if r.failed {
			return -1
		}
		return 0
	}

	if cap(r.out) < framesNeeded*r.outChannels {
		r.out = make([]float32, framesNeeded*r.outChannels)
	}
	r.out = r.out[:framesNeeded*r.outChannels]

	ratio := r.ratio()
	written := 0

fill:
	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if !r.advance() {
				break fill
			}
		}

		alpha := float32(r.pos)
		base := written * r.outChannels
		for c := range r.outChannels {
			r.out[base+c] = utils.CubicInterpolate(
				r.frames[0][c], r.frames[1][c], r.frames[2][c], r.frames[3][c], alpha)
		}

		written++
		r.pos += ratio
	}

	if written == 0 && r.failed {
		return -1
	}

	return EncodeSamples(dst, r.out[:written*r.outChannels], r.outFormat)
}

func (r *Resampler) IsFinished() bool {
	if !r.primed {
		return r.src.IsFinished()
	}
	return r.done
}

func (r *Resampler) Seek(offset int64, whence int) error {
	if err := r.src.Seek(offset, whence); err != nil {
		return fmt.Errorf("%w", err)
	}
	if r.opened {
		r.reset()
	}
	return nil
}

func (r *Resampler) Format() (int, Format, int) {
	if !r.opened && !r.outSet {
		return r.src.Format()
	}
	return r.outRate, r.outFormat, r.outChannels
}

// SetFormat selects the output format. The channel count must match the
// source, be mono, or the source must be mono.
func (r *Resampler) SetFormat(frequency int, format Format, channels int) bool {
	if frequency <= 0 || channels <= 0 || format < S8 || format > F32 {
		return false
	}
	if r.opened && !r.channelsCompatible(channels) {
		return false
	}

	r.outRate, r.outFormat, r.outChannels = frequency, format, channels
	r.outSet = true
	if r.opened {
		r.resetWindow()
	}
	return true
}

func (r *Resampler) Pitch() int {
	if p, ok := r.src.(Pitcher); ok {
		return p.Pitch()
	}
	return r.pitch
}

// SetPitch prefers the source's native pitch support and falls back to
// resampling.
func (r *Resampler) SetPitch(pitch int) bool {
	if p, ok := r.src.(Pitcher); ok {
		return p.SetPitch(pitch)
	}
	if pitch <= 0 {
		return false
	}
	r.pitch = pitch
	return true
}

func (r *Resampler) Ticks() int {
	if t, ok := r.src.(Ticker); ok {
		return t.Ticks()
	}
	return 0
}

func (r *Resampler) Tell() int64 {
	if t, ok := r.src.(Teller); ok {
		return t.Tell()
	}
	return -1
}

func (r *Resampler) Type() string {
	if t, ok := r.src.(Typer); ok {
		return t.Type()
	}
	return ""
}

func (r *Resampler) WasInited() bool {
	if i, ok := r.src.(Initializer); ok {
		return i.WasInited()
	}
	return true
}

func (r *Resampler) ErrorMessage() string {
	if m, ok := r.src.(ErrorMessenger); ok {
		return m.ErrorMessage()
	}
	return ""
}

func (r *Resampler) Close() error {
	c, ok := r.src.(io.Closer)
	if !ok {
		return nil
	}
	if err := c.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
