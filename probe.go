// SPDX-License-Identifier: EPL-2.0

package audsniff

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audsniff/audio"
)

// probeAt reads up to n bytes at absolute offset off. Whatever happens,
// s is positioned at offset 0 again when probeAt returns. A short read is
// not an error; the returned slice is just shorter than n.
func probeAt(s io.ReadSeeker, off int64, n int) ([]byte, error) {
	defer rewind(s)

	if _, err := s.Seek(off, io.SeekStart); err != nil {
		return nil, fmt.Errorf("probe seek to %d: %w", off, err)
	}

	buf := make([]byte, n)
	read, err := io.ReadFull(s, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return buf[:read], fmt.Errorf("probe read at %d: %w", off, err)
	}

	return buf[:read], nil
}

func rewind(s io.Seeker) {
	_, _ = s.Seek(0, io.SeekStart)
}

// resetStream clears sticky stream errors and seeks back to offset 0.
func resetStream(s io.ReadSeeker) {
	if c, ok := s.(audio.ErrorClearer); ok {
		c.ClearError()
	}
	rewind(s)
}
