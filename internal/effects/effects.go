// ABOUTME: Individual signal transforms for the effects chain
// ABOUTME: Speed, distortion, band-limit, delay, and modulation stages
package effects

import (
	"fmt"
	"math"

	"github.com/oliverlab/cantor/pkg/audio"
	"github.com/oliverlab/cantor/pkg/audio/resample"
)

// speedEffect reinterprets the buffer at rate*ratio and conforms it back
// to the original rate. Duration and pitch change together, like slowing
// a tape; there is no independent time-stretch.
type speedEffect struct {
	ratio float64
}

func (e *speedEffect) name() string { return "speed" }

func (e *speedEffect) apply(buf *audio.Buffer) (*audio.Buffer, error) {
	rate := buf.Format.SampleRate
	shifted := int(float64(rate) * e.ratio)
	if shifted <= 0 {
		return nil, fmt.Errorf("ratio %g collapses sample rate", e.ratio)
	}
	r := resample.New(shifted, rate, buf.Format.Channels)
	return &audio.Buffer{
		Samples: r.Convert(buf.Samples),
		Format:  buf.Format,
	}, nil
}

// distortionEffect applies tanh saturation after a drive gain. The
// output is normalized so a full-scale input stays full scale.
type distortionEffect struct {
	driveDB float64
}

func (e *distortionEffect) name() string { return "distortion" }

func (e *distortionEffect) apply(buf *audio.Buffer) (*audio.Buffer, error) {
	drive := math.Pow(10, e.driveDB/20)
	norm := math.Tanh(drive)
	out := make([]int32, len(buf.Samples))
	for i, s := range buf.Samples {
		x := float64(s) / float64(audio.Max24Bit+1)
		out[i] = audio.Clamp24(math.Tanh(x*drive) / norm * float64(audio.Max24Bit))
	}
	return &audio.Buffer{Samples: out, Format: buf.Format}, nil
}

// bandlimitEffect attenuates energy outside [lowHz, highHz] with a
// one-pole high-pass and low-pass pair per channel. A zero cutoff
// disables that side of the band.
type bandlimitEffect struct {
	lowHz  float64
	highHz float64
}

func (e *bandlimitEffect) name() string { return "bandlimit" }

func (e *bandlimitEffect) apply(buf *audio.Buffer) (*audio.Buffer, error) {
	nyquist := float64(buf.Format.SampleRate) / 2
	if e.lowHz >= nyquist {
		return nil, fmt.Errorf("low_hz %g at or above nyquist %g", e.lowHz, nyquist)
	}
	dt := 1.0 / float64(buf.Format.SampleRate)
	ch := buf.Format.Channels
	frames := buf.Frames()

	out := make([]int32, len(buf.Samples))
	copy(out, buf.Samples)

	if e.lowHz > 0 {
		rc := 1.0 / (2 * math.Pi * e.lowHz)
		a := rc / (rc + dt)
		for c := 0; c < ch; c++ {
			prevIn := 0.0
			prevOut := 0.0
			for f := 0; f < frames; f++ {
				i := f*ch + c
				x := float64(out[i])
				y := a * (prevOut + x - prevIn)
				prevIn = x
				prevOut = y
				out[i] = audio.Clamp24(y)
			}
		}
	}

	if e.highHz > 0 && e.highHz < nyquist {
		rc := 1.0 / (2 * math.Pi * e.highHz)
		alpha := dt / (rc + dt)
		for c := 0; c < ch; c++ {
			y := 0.0
			for f := 0; f < frames; f++ {
				i := f*ch + c
				y += alpha * (float64(out[i]) - y)
				out[i] = audio.Clamp24(y)
			}
		}
	}

	return &audio.Buffer{Samples: out, Format: buf.Format}, nil
}

// delayEffect is an echo with decaying feedback, mixed at the given
// proportion. Output duration equals input duration; the tail past the
// end is dropped.
type delayEffect struct {
	seconds  float64
	feedback float64
	mix      float64
}

func (e *delayEffect) name() string { return "delay" }

func (e *delayEffect) apply(buf *audio.Buffer) (*audio.Buffer, error) {
	delayFrames := int(e.seconds * float64(buf.Format.SampleRate))
	if delayFrames < 1 {
		return nil, fmt.Errorf("delay of %gs is under one frame", e.seconds)
	}
	ch := buf.Format.Channels
	frames := buf.Frames()
	out := make([]int32, len(buf.Samples))

	for c := 0; c < ch; c++ {
		line := make([]float64, frames)
		for f := 0; f < frames; f++ {
			i := f*ch + c
			x := float64(buf.Samples[i])
			echoed := 0.0
			if f >= delayFrames {
				echoed = line[f-delayFrames]
			}
			line[f] = x + e.feedback*echoed
			out[i] = audio.Clamp24((1-e.mix)*x + e.mix*echoed)
		}
	}

	return &audio.Buffer{Samples: out, Format: buf.Format}, nil
}

// modulationEffect adds periodic flutter by reading the input through a
// fractional delay swept by a sine LFO.
type modulationEffect struct {
	rateHz float64
	depth  float64
	mix    float64
}

// maximum sweep of the modulation delay line
const modBaseDelayMS = 7.0

func (e *modulationEffect) name() string { return "modulation" }

func (e *modulationEffect) apply(buf *audio.Buffer) (*audio.Buffer, error) {
	rate := float64(buf.Format.SampleRate)
	maxDelay := modBaseDelayMS / 1000 * rate * e.depth
	ch := buf.Format.Channels
	frames := buf.Frames()
	out := make([]int32, len(buf.Samples))

	for c := 0; c < ch; c++ {
		for f := 0; f < frames; f++ {
			i := f*ch + c
			x := float64(buf.Samples[i])

			lfo := (1 + math.Sin(2*math.Pi*e.rateHz*float64(f)/rate)) / 2
			delay := lfo * maxDelay
			pos := float64(f) - delay

			wet := 0.0
			if pos >= 0 {
				idx := int(pos)
				frac := pos - float64(idx)
				s1 := float64(buf.Samples[idx*ch+c])
				s2 := s1
				if idx+1 < frames {
					s2 = float64(buf.Samples[(idx+1)*ch+c])
				}
				wet = s1*(1-frac) + s2*frac
			}

			out[i] = audio.Clamp24((1-e.mix)*x + e.mix*wet)
		}
	}

	return &audio.Buffer{Samples: out, Format: buf.Format}, nil
}
