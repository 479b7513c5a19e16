// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Stream is the seekable byte source a Backend decodes from.
// Name is the logical name of the stream, usually a file path; it is only
// used for extension based classification.
type Stream interface {
	io.ReadSeeker
	Name() string
}

// ErrorClearer is implemented by streams that keep sticky end-of-data or
// error state which callers may reset.
type ErrorClearer interface {
	ClearError()
}

// ReadSeekStream adapts an io.ReadSeeker to Stream and records end-of-data
// and read errors until ClearError is called. A successful seek clears the
// end-of-data flag but keeps any read error.
type ReadSeekStream struct {
	rs   io.ReadSeeker
	name string
	pos  int64
	eof  bool
	err  error
}

// NewStream wraps rs. The stream is assumed to be positioned at offset 0.
func NewStream(rs io.ReadSeeker, name string) *ReadSeekStream {
	return &ReadSeekStream{rs: rs, name: name}
}

// OpenFile opens path for reading as a Stream. The caller must Close it.
func OpenFile(path string) (*ReadSeekStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	return NewStream(f, path), nil
}

func (s *ReadSeekStream) Name() string { return s.name }

func (s *ReadSeekStream) Read(p []byte) (int, error) {
	n, err := s.rs.Read(p)
	s.pos += int64(n)
	switch {
	case errors.Is(err, io.EOF):
		s.eof = true
	case err != nil && s.err == nil:
		s.err = err
	}
	return n, err
}

func (s *ReadSeekStream) Seek(offset int64, whence int) (int64, error) {
	pos, err := s.rs.Seek(offset, whence)
	if err != nil {
		if s.err == nil {
			s.err = err
		}
		return pos, fmt.Errorf("%w", err)
	}
	s.pos = pos
	s.eof = false
	return pos, nil
}

// Tell returns the current absolute read offset.
func (s *ReadSeekStream) Tell() int64 { return s.pos }

// EOF reports whether a read hit the end of the data since the last seek
// or ClearError.
func (s *ReadSeekStream) EOF() bool { return s.eof }

// Err returns the first non-EOF error seen since the last ClearError.
func (s *ReadSeekStream) Err() error { return s.err }

func (s *ReadSeekStream) ClearError() {
	s.eof = false
	s.err = nil
}

// Close closes the underlying reader when it implements io.Closer.
func (s *ReadSeekStream) Close() error {
	c, ok := s.rs.(io.Closer)
	if !ok {
		return nil
	}
	if err := c.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
