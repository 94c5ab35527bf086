// ABOUTME: Audio type definitions
// ABOUTME: Defines PCM formats and sample conversion helpers
package audio

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Format describes decoded PCM audio.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// Equal reports whether two formats can be combined without conversion.
// Bit depth is ignored: samples are always carried in the 24-bit range.
func (f Format) Equal(other Format) bool {
	return f.SampleRate == other.SampleRate && f.Channels == other.Channels
}

// SampleToInt16 converts an int32 sample to int16 (for 16-bit encoding)
func SampleToInt16(sample int32) int16 {
	return int16(sample >> 8)
}

// SampleFromInt16 converts an int16 sample to int32 (left-justified in 24-bit)
func SampleFromInt16(sample int16) int32 {
	return int32(sample) << 8
}

// Clamp24 clamps a float sample to the 24-bit integer range.
func Clamp24(v float64) int32 {
	if v > Max24Bit {
		return Max24Bit
	}
	if v < Min24Bit {
		return Min24Bit
	}
	return int32(v)
}
