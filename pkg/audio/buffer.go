// ABOUTME: In-memory PCM buffer and its pure operations
// ABOUTME: Concatenation, slicing, gain, fades, and overlay for track assembly
package audio

import (
	"fmt"
	"math"
)

// Buffer holds decoded PCM audio as interleaved int32 samples in the
// 24-bit range. Operations never mutate the receiver; each returns a
// new buffer so pipeline stages stay independently testable.
type Buffer struct {
	Samples []int32
	Format  Format
}

// Silence returns a buffer of the given duration filled with zero samples.
func Silence(durationMS int64, format Format) *Buffer {
	frames := framesForMS(durationMS, format.SampleRate)
	return &Buffer{
		Samples: make([]int32, frames*format.Channels),
		Format:  format,
	}
}

// Frames returns the number of sample frames (samples per channel).
func (b *Buffer) Frames() int {
	if b.Format.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Format.Channels
}

// DurationMS returns the buffer duration in milliseconds.
func (b *Buffer) DurationMS() int64 {
	if b.Format.SampleRate == 0 {
		return 0
	}
	return int64(b.Frames()) * 1000 / int64(b.Format.SampleRate)
}

// Concat joins buffers in order. All buffers must share sample rate and
// channel count; resampling beforehand is the caller's responsibility.
func Concat(bufs ...*Buffer) (*Buffer, error) {
	if len(bufs) == 0 {
		return nil, fmt.Errorf("concat: no buffers")
	}
	format := bufs[0].Format
	total := 0
	for _, b := range bufs {
		if !b.Format.Equal(format) {
			return nil, fmt.Errorf("concat: format mismatch: %d Hz/%d ch vs %d Hz/%d ch",
				format.SampleRate, format.Channels, b.Format.SampleRate, b.Format.Channels)
		}
		total += len(b.Samples)
	}
	out := make([]int32, 0, total)
	for _, b := range bufs {
		out = append(out, b.Samples...)
	}
	return &Buffer{Samples: out, Format: format}, nil
}

// Gain returns a copy with the given dB adjustment applied. Positive
// values amplify, negative attenuate. Samples clip to the 24-bit range.
func (b *Buffer) Gain(db float64) *Buffer {
	factor := math.Pow(10, db/20)
	out := make([]int32, len(b.Samples))
	for i, s := range b.Samples {
		out[i] = Clamp24(float64(s) * factor)
	}
	return &Buffer{Samples: out, Format: b.Format}
}

// Slice returns the audio between startMS and endMS. Bounds are clamped
// to the buffer; a reversed or out-of-range window yields an empty buffer.
func (b *Buffer) Slice(startMS, endMS int64) *Buffer {
	start := framesForMS(startMS, b.Format.SampleRate) * b.Format.Channels
	end := framesForMS(endMS, b.Format.SampleRate) * b.Format.Channels
	if start < 0 {
		start = 0
	}
	if end > len(b.Samples) {
		end = len(b.Samples)
	}
	if start >= end {
		return &Buffer{Samples: []int32{}, Format: b.Format}
	}
	out := make([]int32, end-start)
	copy(out, b.Samples[start:end])
	return &Buffer{Samples: out, Format: b.Format}
}

// FadeOut returns a copy with a linear fade over the final durationMS.
// A fade longer than the buffer is clipped to the buffer's own length.
func (b *Buffer) FadeOut(durationMS int64) *Buffer {
	out := make([]int32, len(b.Samples))
	copy(out, b.Samples)
	ch := b.Format.Channels
	if ch == 0 {
		return &Buffer{Samples: out, Format: b.Format}
	}
	totalFrames := b.Frames()
	fadeFrames := framesForMS(durationMS, b.Format.SampleRate)
	if fadeFrames > totalFrames {
		fadeFrames = totalFrames
	}
	if fadeFrames <= 0 {
		return &Buffer{Samples: out, Format: b.Format}
	}
	start := totalFrames - fadeFrames
	for f := start; f < totalFrames; f++ {
		gain := float64(totalFrames-f) / float64(fadeFrames)
		for c := 0; c < ch; c++ {
			i := f*ch + c
			out[i] = int32(float64(out[i]) * gain)
		}
	}
	return &Buffer{Samples: out, Format: b.Format}
}

// Overlay sums two equal-length buffers sample-wise, clipping to the
// 24-bit range. Both buffers must share format and length.
func Overlay(a, b *Buffer) (*Buffer, error) {
	if !a.Format.Equal(b.Format) {
		return nil, fmt.Errorf("overlay: format mismatch")
	}
	if len(a.Samples) != len(b.Samples) {
		return nil, fmt.Errorf("overlay: length mismatch: %d vs %d samples", len(a.Samples), len(b.Samples))
	}
	out := make([]int32, len(a.Samples))
	for i := range a.Samples {
		out[i] = Clamp24(float64(a.Samples[i]) + float64(b.Samples[i]))
	}
	return &Buffer{Samples: out, Format: a.Format}, nil
}

func framesForMS(ms int64, sampleRate int) int {
	if ms < 0 {
		return 0
	}
	return int(ms * int64(sampleRate) / 1000)
}
