// ABOUTME: Ordered effects chain applied to the stitched speech track
// ABOUTME: Builds effects from specs and applies them strictly left-to-right
package effects

import (
	"fmt"

	"github.com/oliverlab/cantor/pkg/audio"
)

// Spec names one transform and its parameters. Only the fields for the
// named kind are read; the rest are ignored.
type Spec struct {
	Kind     string
	Ratio    float64 // speed
	DriveDB  float64 // distortion
	LowHz    float64 // bandlimit
	HighHz   float64 // bandlimit
	RoomSize float64 // reverb
	Damping  float64 // reverb
	Wet      float64 // reverb
	Seconds  float64 // delay
	Feedback float64 // delay
	RateHz   float64 // modulation
	Depth    float64 // modulation
	Mix      float64 // delay, modulation
}

// EffectError reports the failing stage of a chain. The whole chain is
// abandoned; there is no partial-effect fallback.
type EffectError struct {
	Stage string
	Err   error
}

func (e *EffectError) Error() string {
	return fmt.Sprintf("effect %s: %v", e.Stage, e.Err)
}

func (e *EffectError) Unwrap() error {
	return e.Err
}

type effect interface {
	name() string
	apply(buf *audio.Buffer) (*audio.Buffer, error)
}

// Chain is an ordered list of effects. Order is the caller's and is
// never rearranged: distortion-then-bandlimit is a different sound than
// bandlimit-then-distortion.
type Chain struct {
	effects []effect
}

// NewChain validates specs and builds the chain. Unknown kinds and
// out-of-range parameters are rejected here, before any audio is touched.
func NewChain(specs []Spec) (*Chain, error) {
	c := &Chain{effects: make([]effect, 0, len(specs))}
	for i, s := range specs {
		e, err := newEffect(s)
		if err != nil {
			return nil, fmt.Errorf("effect %d (%s): %w", i, s.Kind, err)
		}
		c.effects = append(c.effects, e)
	}
	return c, nil
}

// Len returns the number of stages in the chain.
func (c *Chain) Len() int {
	return len(c.effects)
}

// Apply runs the chain left-to-right, each stage consuming the previous
// stage's output. An empty chain is the identity transform.
func (c *Chain) Apply(buf *audio.Buffer) (*audio.Buffer, error) {
	for _, e := range c.effects {
		next, err := e.apply(buf)
		if err != nil {
			return nil, &EffectError{Stage: e.name(), Err: err}
		}
		buf = next
	}
	return buf, nil
}

func newEffect(s Spec) (effect, error) {
	switch s.Kind {
	case "speed":
		if s.Ratio <= 0 {
			return nil, fmt.Errorf("ratio must be positive, got %g", s.Ratio)
		}
		return &speedEffect{ratio: s.Ratio}, nil
	case "distortion":
		if s.DriveDB < 0 {
			return nil, fmt.Errorf("drive_db must be non-negative, got %g", s.DriveDB)
		}
		return &distortionEffect{driveDB: s.DriveDB}, nil
	case "bandlimit":
		if s.LowHz < 0 || s.HighHz < 0 {
			return nil, fmt.Errorf("cutoffs must be non-negative, got low=%g high=%g", s.LowHz, s.HighHz)
		}
		if s.LowHz > 0 && s.HighHz > 0 && s.LowHz >= s.HighHz {
			return nil, fmt.Errorf("low_hz %g must be below high_hz %g", s.LowHz, s.HighHz)
		}
		return &bandlimitEffect{lowHz: s.LowHz, highHz: s.HighHz}, nil
	case "reverb":
		if s.RoomSize < 0 || s.RoomSize > 1 {
			return nil, fmt.Errorf("room_size must be in [0,1], got %g", s.RoomSize)
		}
		if s.Damping < 0 || s.Damping > 1 {
			return nil, fmt.Errorf("damping must be in [0,1], got %g", s.Damping)
		}
		if s.Wet < 0 || s.Wet > 1 {
			return nil, fmt.Errorf("wet must be in [0,1], got %g", s.Wet)
		}
		return &reverbEffect{roomSize: s.RoomSize, damping: s.Damping, wet: s.Wet}, nil
	case "delay":
		if s.Seconds <= 0 {
			return nil, fmt.Errorf("seconds must be positive, got %g", s.Seconds)
		}
		if s.Feedback < 0 || s.Feedback >= 1 {
			return nil, fmt.Errorf("feedback must be in [0,1), got %g", s.Feedback)
		}
		if s.Mix < 0 || s.Mix > 1 {
			return nil, fmt.Errorf("mix must be in [0,1], got %g", s.Mix)
		}
		return &delayEffect{seconds: s.Seconds, feedback: s.Feedback, mix: s.Mix}, nil
	case "modulation":
		if s.RateHz <= 0 {
			return nil, fmt.Errorf("rate_hz must be positive, got %g", s.RateHz)
		}
		if s.Depth < 0 || s.Depth > 1 {
			return nil, fmt.Errorf("depth must be in [0,1], got %g", s.Depth)
		}
		if s.Mix < 0 || s.Mix > 1 {
			return nil, fmt.Errorf("mix must be in [0,1], got %g", s.Mix)
		}
		return &modulationEffect{rateHz: s.RateHz, depth: s.Depth, mix: s.Mix}, nil
	default:
		return nil, fmt.Errorf("unknown effect kind %q", s.Kind)
	}
}
