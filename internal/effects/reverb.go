// ABOUTME: Schroeder-style reverb stage
// ABOUTME: Parallel damped combs into serial allpass filters, wet/dry mixed
package effects

import (
	"github.com/oliverlab/cantor/pkg/audio"
)

// Comb and allpass delays in milliseconds, mutually prime so the tail
// stays dense rather than ringing at one period.
var (
	reverbCombMS    = []float64{29.7, 37.1, 41.1, 43.7}
	reverbAllpassMS = []float64{5.0, 1.7}
)

const reverbAllpassGain = 0.5

// reverbEffect mixes a decaying tail over the dry signal. roomSize
// scales the comb feedback (longer decay), damping low-passes the
// feedback path (darker tail), wet sets the mix proportion. Output
// duration equals input duration; the tail past the end is dropped.
type reverbEffect struct {
	roomSize float64
	damping  float64
	wet      float64
}

func (e *reverbEffect) name() string { return "reverb" }

func (e *reverbEffect) apply(buf *audio.Buffer) (*audio.Buffer, error) {
	rate := float64(buf.Format.SampleRate)
	ch := buf.Format.Channels
	frames := buf.Frames()
	out := make([]int32, len(buf.Samples))

	feedback := 0.7 + 0.28*e.roomSize

	for c := 0; c < ch; c++ {
		dry := make([]float64, frames)
		for f := 0; f < frames; f++ {
			dry[f] = float64(buf.Samples[f*ch+c])
		}

		// Parallel damped combs
		wet := make([]float64, frames)
		for _, ms := range reverbCombMS {
			d := int(ms / 1000 * rate)
			if d < 1 {
				d = 1
			}
			line := make([]float64, frames)
			filtered := 0.0
			for f := 0; f < frames; f++ {
				delayed := 0.0
				if f >= d {
					delayed = line[f-d]
				}
				filtered = delayed*(1-e.damping) + filtered*e.damping
				line[f] = dry[f] + filtered*feedback
				wet[f] += delayed
			}
		}
		for f := range wet {
			wet[f] /= float64(len(reverbCombMS))
		}

		// Serial allpass diffusion
		for _, ms := range reverbAllpassMS {
			d := int(ms / 1000 * rate)
			if d < 1 {
				d = 1
			}
			line := make([]float64, frames)
			for f := 0; f < frames; f++ {
				delayed := 0.0
				if f >= d {
					delayed = line[f-d]
				}
				line[f] = wet[f] + delayed*reverbAllpassGain
				wet[f] = delayed - reverbAllpassGain*line[f]
			}
		}

		for f := 0; f < frames; f++ {
			out[f*ch+c] = audio.Clamp24((1-e.wet)*dry[f] + e.wet*wet[f])
		}
	}

	return &audio.Buffer{Samples: out, Format: buf.Format}, nil
}
