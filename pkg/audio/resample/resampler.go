// ABOUTME: Linear resampler for converting audio sample rates
// ABOUTME: One-shot whole-buffer conversion between arbitrary rates
package resample

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
	}
}

// Convert resamples a complete buffer of interleaved samples at inputRate
// and returns interleaved samples at outputRate. The input is not modified.
func (r *Resampler) Convert(input []int32) []int32 {
	if len(input) == 0 {
		return []int32{}
	}
	if r.inputRate == r.outputRate {
		out := make([]int32, len(input))
		copy(out, input)
		return out
	}

	inputFrames := len(input) / r.channels
	outputFrames := r.OutputFrames(inputFrames)
	output := make([]int32, outputFrames*r.channels)

	pos := 0.0
	outIdx := 0
	for outIdx < outputFrames {
		inputIdx := int(pos)
		if inputIdx >= inputFrames-1 {
			// Hold the final frame instead of extrapolating past the input
			for ch := 0; ch < r.channels; ch++ {
				output[outIdx*r.channels+ch] = input[(inputFrames-1)*r.channels+ch]
			}
			outIdx++
			continue
		}

		frac := pos - float64(inputIdx)
		for ch := 0; ch < r.channels; ch++ {
			sample1 := input[inputIdx*r.channels+ch]
			sample2 := input[(inputIdx+1)*r.channels+ch]
			interpolated := float64(sample1)*(1.0-frac) + float64(sample2)*frac
			output[outIdx*r.channels+ch] = int32(interpolated)
		}

		outIdx++
		pos += r.ratio
	}

	return output
}

// OutputFrames calculates how many output frames a given number of input
// frames produces.
func (r *Resampler) OutputFrames(inputFrames int) int {
	return int(float64(inputFrames) / r.ratio)
}
