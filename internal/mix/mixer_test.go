// ABOUTME: Tests for the background bed mixer
// ABOUTME: Looping, trimming, fading, gain, and bed conforming behavior
package mix

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/oliverlab/cantor/pkg/audio"
)

var testFormat = audio.Format{SampleRate: 1000, Channels: 2, BitDepth: 16}

func constant(durationMS int64, value int32, format audio.Format) *audio.Buffer {
	buf := audio.Silence(durationMS, format)
	for i := range buf.Samples {
		buf.Samples[i] = value
	}
	return buf
}

func TestMixLengthMatchesForeground(t *testing.T) {
	tests := []struct {
		name  string
		fgMS  int64
		bedMS int64
	}{
		{"bed shorter loops", 25000, 10000},
		{"bed equal", 10000, 10000},
		{"bed longer trims", 8000, 30000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fg := constant(tt.fgMS, 100, testFormat)
			bed := constant(tt.bedMS, 200, testFormat)
			out, err := Mix(fg, bed, Options{FadeOutMS: 0})
			if err != nil {
				t.Fatalf("mix failed: %v", err)
			}
			if got := out.DurationMS(); got != tt.fgMS {
				t.Errorf("expected %d ms, got %d", tt.fgMS, got)
			}
		})
	}
}

func TestMixOverlaysBed(t *testing.T) {
	fg := constant(5000, 100, testFormat)
	bed := constant(2000, 200, testFormat)

	out, err := Mix(fg, bed, Options{FadeOutMS: 0})
	if err != nil {
		t.Fatal(err)
	}
	// Zero-dB gains and no fade leave the sum at every sample, with
	// the bed present across the loop seam.
	for i, s := range out.Samples {
		if s != 300 {
			t.Fatalf("sample %d is %d, expected 300", i, s)
		}
	}
}

func TestMixAppliesGains(t *testing.T) {
	fg := constant(1000, 1000000, testFormat)
	bed := constant(1000, 1000000, testFormat)

	out, err := Mix(fg, bed, Options{ForegroundDB: -6, BackgroundDB: -20, FadeOutMS: 0})
	if err != nil {
		t.Fatal(err)
	}
	// -6 dB is about half, -20 dB is a tenth.
	want := int32(501187 + 100000)
	got := out.Samples[0]
	if got < want-2000 || got > want+2000 {
		t.Errorf("expected about %d, got %d", want, got)
	}
}

func TestMixFadesBedTailOnly(t *testing.T) {
	fg := constant(10000, 100, testFormat)
	bed := constant(10000, 200000, testFormat)

	out, err := Mix(fg, bed, Options{FadeOutMS: 2000})
	if err != nil {
		t.Fatal(err)
	}
	// Well before the fade the bed is at full level.
	if s := out.Samples[0]; s != 200100 {
		t.Errorf("start sample %d, expected 200100", s)
	}
	// At the very end the bed is gone but the foreground remains.
	last := out.Samples[len(out.Samples)-1]
	if last < 100 || last > 300 {
		t.Errorf("end sample %d, expected foreground only", last)
	}
}

func TestMixEmptyBed(t *testing.T) {
	fg := constant(1000, 100, testFormat)

	_, err := Mix(fg, &audio.Buffer{Format: testFormat}, Options{})
	if err == nil {
		t.Fatal("expected error for empty bed")
	}
	var mixErr *MixerError
	if !errors.As(err, &mixErr) {
		t.Fatalf("expected *MixerError, got %T", err)
	}
}

func TestMixFormatMismatch(t *testing.T) {
	fg := constant(1000, 100, testFormat)
	bed := constant(1000, 100, audio.Format{SampleRate: 2000, Channels: 2, BitDepth: 16})

	_, err := Mix(fg, bed, Options{})
	if err == nil {
		t.Fatal("expected error for mismatched bed format")
	}
}

func TestLoadBedMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.mp3")
	_, err := LoadBed(path, testFormat)
	if err == nil {
		t.Fatal("expected error for missing bed")
	}
	var mixErr *MixerError
	if !errors.As(err, &mixErr) {
		t.Fatalf("expected *MixerError, got %T", err)
	}
	if mixErr.Path != path {
		t.Errorf("expected path %q in error, got %q", path, mixErr.Path)
	}
}

func TestConformMonoToStereo(t *testing.T) {
	mono := constant(1000, 500, audio.Format{SampleRate: 1000, Channels: 1, BitDepth: 16})
	out, err := conform(mono, testFormat)
	if err != nil {
		t.Fatal(err)
	}
	if out.Format.Channels != 2 {
		t.Fatalf("expected 2 channels, got %d", out.Format.Channels)
	}
	if out.Frames() != mono.Frames() {
		t.Errorf("frame count changed: %d vs %d", out.Frames(), mono.Frames())
	}
	for i := 0; i < len(out.Samples); i += 2 {
		if out.Samples[i] != out.Samples[i+1] {
			t.Fatalf("frame %d channels differ: %d vs %d", i/2, out.Samples[i], out.Samples[i+1])
		}
	}
}

func TestConformStereoToMono(t *testing.T) {
	stereo := audio.Silence(1000, testFormat)
	for f := 0; f < stereo.Frames(); f++ {
		stereo.Samples[f*2] = 1000
		stereo.Samples[f*2+1] = 3000
	}
	out, err := conform(stereo, audio.Format{SampleRate: 1000, Channels: 1, BitDepth: 16})
	if err != nil {
		t.Fatal(err)
	}
	for f, s := range out.Samples {
		if s != 2000 {
			t.Fatalf("frame %d is %d, expected channel average 2000", f, s)
		}
	}
}

func TestConformResamples(t *testing.T) {
	bed := constant(1000, 700, audio.Format{SampleRate: 500, Channels: 2, BitDepth: 16})
	out, err := conform(bed, testFormat)
	if err != nil {
		t.Fatal(err)
	}
	if out.Format.SampleRate != 1000 {
		t.Fatalf("expected 1000 Hz, got %d", out.Format.SampleRate)
	}
	if got := out.DurationMS(); got != 1000 {
		t.Errorf("resampled duration %d ms, expected 1000", got)
	}
}

func TestConformUnsupportedRemix(t *testing.T) {
	surround := &audio.Buffer{
		Samples: make([]int32, 60),
		Format:  audio.Format{SampleRate: 1000, Channels: 6, BitDepth: 16},
	}
	_, err := conform(surround, testFormat)
	if err == nil {
		t.Fatal("expected error remixing 6 channels")
	}
}
