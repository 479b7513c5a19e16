// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"
)

func TestSampleSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
		want   int
	}{
		{S8, 1},
		{U8, 1},
		{S16, 2},
		{U16, 2},
		{S24, 4},
		{S32, 4},
		{U32, 4},
		{F32, 4},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			t.Parallel()

			if got := SampleSize(tt.format); got != tt.want {
				t.Errorf("SampleSize(%v) = %d, want %d", tt.format, got, tt.want)
			}
		})
	}
}

func TestSampleSize_PanicsOnUnknown(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{-1, F32 + 1, 42} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("SampleSize(%d) did not panic", int(f))
				}
			}()
			SampleSize(f)
		}()
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for f := S8; f <= F32; f++ {
		got, err := ParseFormat(f.String())
		if err != nil {
			t.Errorf("ParseFormat(%q) error = %v", f.String(), err)
			continue
		}
		if got != f {
			t.Errorf("ParseFormat(%q) = %v, want %v", f.String(), got, f)
		}
	}

	if _, err := ParseFormat("s12"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(s12) error = %v, want ErrUnknownFormat", err)
	}
}

func TestFormat_StringOutOfRange(t *testing.T) {
	t.Parallel()

	if got := Format(99).String(); got != "Format(99)" {
		t.Errorf("Format(99).String() = %q", got)
	}
}
