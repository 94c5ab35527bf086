// ABOUTME: Tests for the linear resampler
// ABOUTME: Covers upsampling, downsampling, and passthrough
package resample

import (
	"testing"
)

func TestConvertUpsampling(t *testing.T) {
	r := New(44100, 48000, 2)

	input := make([]int32, 200)
	for i := range input {
		input[i] = int32(i * 100)
	}

	output := r.Convert(input)

	expectedFrames := int(float64(len(input)/2) * 48000 / 44100)
	if got := len(output) / 2; got != expectedFrames {
		t.Errorf("expected %d frames, got %d", expectedFrames, got)
	}

	allZero := true
	for _, s := range output {
		if s != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Error("output contains only zeros")
	}
}

func TestConvertDownsampling(t *testing.T) {
	r := New(48000, 44100, 2)

	input := make([]int32, 200)
	for i := range input {
		input[i] = int32(i * 100)
	}

	output := r.Convert(input)

	expectedFrames := int(float64(len(input)/2) * 44100 / 48000)
	if got := len(output) / 2; got != expectedFrames {
		t.Errorf("expected %d frames, got %d", expectedFrames, got)
	}
}

func TestConvertSameRate(t *testing.T) {
	r := New(48000, 48000, 2)

	input := make([]int32, 200)
	for i := range input {
		input[i] = int32(i * 100)
	}

	output := r.Convert(input)

	if len(output) != len(input) {
		t.Fatalf("expected %d samples, got %d", len(input), len(output))
	}
	for i := range input {
		if output[i] != input[i] {
			t.Fatalf("sample %d changed from %d to %d", i, input[i], output[i])
		}
	}

	// Same-rate conversion must still copy
	output[0] = 42
	if input[0] == 42 {
		t.Error("Convert aliased its input")
	}
}

func TestConvertInterpolates(t *testing.T) {
	// Doubling the rate should interpolate midpoints on a ramp
	r := New(1000, 2000, 1)

	input := []int32{0, 100, 200, 300}
	output := r.Convert(input)

	if len(output) != 8 {
		t.Fatalf("expected 8 samples, got %d", len(output))
	}
	if output[1] != 50 {
		t.Errorf("expected interpolated value 50, got %d", output[1])
	}
	if output[2] != 100 {
		t.Errorf("expected exact value 100, got %d", output[2])
	}
}

func TestConvertEmpty(t *testing.T) {
	r := New(44100, 48000, 2)
	if got := r.Convert(nil); len(got) != 0 {
		t.Errorf("expected empty output, got %d samples", len(got))
	}
}
