// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrUnknownFormat, "unknown sample format"},
		{ErrSeekUnsupported, "seek not supported"},
		{ErrNotOpen, "backend not open"},
		{ErrInvalidFormat, "invalid output format"},
		{ErrInvalidWhence, "invalid whence"},
		{ErrNegativeSeek, "negative position"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
			}
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	t.Parallel()

	all := []error{
		ErrUnknownFormat, ErrSeekUnsupported, ErrNotOpen,
		ErrInvalidFormat, ErrInvalidWhence, ErrNegativeSeek,
	}

	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true", a, b)
			}
		}
	}
}

func TestErrors_Wrapped(t *testing.T) {
	t.Parallel()

	_, err := ParseFormat("s12")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat() error = %v, want ErrUnknownFormat", err)
	}

	wrapped := fmt.Errorf("open backend: %w", ErrNotOpen)
	if !errors.Is(wrapped, ErrNotOpen) {
		t.Error("wrapped ErrNotOpen not matched by errors.Is")
	}
}
