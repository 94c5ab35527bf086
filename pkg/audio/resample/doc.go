// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts whole buffers between sample rates
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation for converting between sample rates.
// Handles both upsampling and downsampling of complete buffers,
// which is all an offline track build needs.
//
// Example:
//
//	r := resample.New(44100, 48000, 2)
//	output := r.Convert(inputSamples)
package resample
