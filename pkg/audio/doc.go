// ABOUTME: Audio fundamentals package providing core types and buffer operations
// ABOUTME: Defines Format, Buffer and sample conversion functions
// Package audio provides the PCM types and buffer operations the track
// assembly pipeline is built on.
//
// Core types:
//   - Format: sample rate, channel count, bit depth of decoded PCM
//   - Buffer: interleaved int32 samples in the 24-bit range
//
// Buffer operations (Concat, Gain, Slice, FadeOut, Overlay, Silence) are
// pure: each returns a new buffer and leaves its inputs untouched.
//
// Example:
//
//	format := audio.Format{SampleRate: 44100, Channels: 2, BitDepth: 16}
//	gap := audio.Silence(3000, format)
//	track, err := audio.Concat(speech, gap, other)
package audio
