// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"testing"
)

func TestEncodeDecodeSamples(t *testing.T) {
	t.Parallel()

	src := []float32{0, 0.5, -0.5, 0.999, -1}

	tests := []struct {
		format    Format
		tolerance float64
	}{
		{S8, 1.0 / 64},
		{U8, 1.0 / 64},
		{S16, 1.0 / 16384},
		{U16, 1.0 / 16384},
		{S24, 1e-6},
		{S32, 1e-6},
		{U32, 1e-6},
		{F32, 0},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			t.Parallel()

			buf := make([]byte, len(src)*SampleSize(tt.format))
			if n := EncodeSamples(buf, src, tt.format); n != len(buf) {
				t.Fatalf("EncodeSamples() = %d, want %d", n, len(buf))
			}

			got := make([]float32, len(src))
			if n := DecodeSamples(got, buf, tt.format); n != len(src) {
				t.Fatalf("DecodeSamples() = %d, want %d", n, len(src))
			}

			for i := range src {
				if diff := math.Abs(float64(got[i] - src[i])); diff > tt.tolerance {
					t.Errorf("sample %d: got %v, want %v (diff %v)", i, got[i], src[i], diff)
				}
			}
		})
	}
}

func TestEncodeSamples_Clamps(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 4)
	EncodeSamples(buf, []float32{2, -3}, S16)

	got := make([]float32, 2)
	DecodeSamples(got, buf, S16)

	if got[0] < 0.999 || got[1] > -0.999 {
		t.Errorf("clamped samples = %v, want ≈[1 -1]", got)
	}
}

func TestDecodeSamples_S24SignExtends(t *testing.T) {
	t.Parallel()

	// 0xFF8000 is -32768 as a 24-bit value; the padding byte is ignored.
	src := []byte{0x00, 0x80, 0xFF, 0x7F}
	got := make([]float32, 1)
	DecodeSamples(got, src, S24)

	want := float32(-32768.0 / 8388608.0)
	if got[0] != want {
		t.Errorf("DecodeSamples(S24) = %v, want %v", got[0], want)
	}
}

func TestDecodeSamples_Bounds(t *testing.T) {
	t.Parallel()

	// three bytes only hold one S16 sample
	if n := DecodeSamples(make([]float32, 8), []byte{1, 2, 3}, S16); n != 1 {
		t.Errorf("DecodeSamples() = %d, want 1", n)
	}
	if n := EncodeSamples(make([]byte, 5), []float32{0, 0, 0}, S16); n != 4 {
		t.Errorf("EncodeSamples() = %d, want 4", n)
	}
}
