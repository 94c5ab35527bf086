// ABOUTME: Audio file decoding package
// ABOUTME: Decodes MP3, WAV, and FLAC files into PCM buffers
// Package decode turns audio files into PCM buffers.
//
// Format is picked by file extension: .mp3, .wav, and .flac decode
// natively; anything else falls back to an ffmpeg subprocess. All
// decoders return interleaved int32 samples in the 24-bit range at the
// file's native sample rate and channel count.
package decode
