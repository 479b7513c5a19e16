// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/riff"

	"github.com/ik5/audsniff/audio"
)

const (
	formatPCM = 1

	riffHeaderSize  = 12
	chunkHeaderSize = 8
	minFmtChunkSize = 16
)

// dataChunk locates the sample data of a RIFF/WAVE stream.
type dataChunk struct {
	offset int64
	// size as declared, without the pad byte
	size int64
}

// scanChunks walks the chunk headers up to the data chunk and rejects any
// chunk that claims more bytes than the stream holds. go-audio/wav reads the
// fmt, LIST and smpl chunks into buffers sized from the header, so this runs
// before the decoder sees the stream. The stream is left at offset 0.
func scanChunks(s audio.Stream) (dataChunk, error) {
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return dataChunk{}, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return dataChunk{}, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	p := riff.New(s)
	if err := p.ParseHeaders(); err != nil {
		return dataChunk{}, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if p.Format != riff.WavFormatID {
		return dataChunk{}, ErrNotWavFile
	}

	haveFmt := false
	offset := int64(riffHeaderSize)

	for {
		if offset+chunkHeaderSize > end {
			return dataChunk{}, ErrMissingDataChunk
		}

		id, size, err := p.IDnSize()
		if err != nil {
			return dataChunk{}, fmt.Errorf("%w: %w", ErrMissingDataChunk, err)
		}
		offset += chunkHeaderSize

		if id == riff.DataFormatID {
			if !haveFmt {
				return dataChunk{}, ErrUnsupportedWavLayout
			}
			if _, err := s.Seek(0, io.SeekStart); err != nil {
				return dataChunk{}, fmt.Errorf("%w", err)
			}
			return dataChunk{offset: offset, size: int64(size)}, nil
		}

		n := int64(size)
		if n > end-offset {
			return dataChunk{}, fmt.Errorf("%w: %q chunk of %d bytes at offset %d",
				ErrUnsupportedWavLayout, id[:], n, offset-chunkHeaderSize)
		}
		if id == riff.FmtID {
			if n < minFmtChunkSize {
				return dataChunk{}, ErrUnsupportedWavLayout
			}
			haveFmt = true
		}

		// chunks are padded to an even size
		offset += n + n&1
		if _, err := s.Seek(offset, io.SeekStart); err != nil {
			return dataChunk{}, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
		}
	}
}
