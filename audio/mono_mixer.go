// SPDX-License-Identifier: EPL-2.0

package audio

// downmix averages each frame of interleaved src into one sample of dst
// and returns the number of frames written.
func downmix(dst, src []float32, channels int) int {
	if channels == 1 {
		return copy(dst, src)
	}

	frames := min(len(dst), len(src)/channels)

	// Optimize: cache division result
	invChannels := float32(1.0) / float32(channels)

	// Unrolled loop for common cases
	switch channels {
	case 2: // Stereo (most common)
		for f := range frames {
			idx := f << 1 // f * 2
			dst[f] = (src[idx] + src[idx+1]) * 0.5
		}
	case 4: // Quad
		for f := range frames {
			idx := f << 2 // f * 4
			sum := src[idx] + src[idx+1] + src[idx+2] + src[idx+3]
			dst[f] = sum * 0.25
		}
	default: // Generic path
		for f := range frames {
			sum := float32(0)
			baseIdx := f * channels
			for c := range channels {
				sum += src[baseIdx+c]
			}
			dst[f] = sum * invChannels
		}
	}

	return frames
}

// upmix duplicates each mono sample of src across channels in dst and
// returns the number of frames written.
func upmix(dst, src []float32, channels int) int {
	frames := min(len(src), len(dst)/channels)
	for f := range frames {
		base := f * channels
		for c := range channels {
			dst[base+c] = src[f]
		}
	}
	return frames
}
