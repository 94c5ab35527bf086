// ABOUTME: Background bed mixer
// ABOUTME: Loops and trims the bed to the speech length, fades, and overlays
package mix

import (
	"fmt"
	"log"

	"github.com/oliverlab/cantor/pkg/audio"
	"github.com/oliverlab/cantor/pkg/audio/decode"
	"github.com/oliverlab/cantor/pkg/audio/resample"
)

// Options carry the mixer's gain and fade settings. Gains are signed dB
// offsets applied before mixing.
type Options struct {
	ForegroundDB float64
	BackgroundDB float64
	FadeOutMS    int64
}

// MixerError reports an unusable background bed. There is no silent
// fallback; a bed failure aborts the whole build.
type MixerError struct {
	Path string
	Err  error
}

func (e *MixerError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("mixer: %v", e.Err)
	}
	return fmt.Sprintf("mixer: bed %s: %v", e.Path, e.Err)
}

func (e *MixerError) Unwrap() error {
	return e.Err
}

// LoadBed decodes the background bed and conforms it to the target
// format, resampling and up/down-mixing channels as needed.
func LoadBed(path string, target audio.Format) (*audio.Buffer, error) {
	bed, err := decode.File(path)
	if err != nil {
		return nil, &MixerError{Path: path, Err: err}
	}
	conformed, err := conform(bed, target)
	if err != nil {
		return nil, &MixerError{Path: path, Err: err}
	}
	return conformed, nil
}

// Mix overlays the bed onto the foreground:
// gains first, then whole-copy looping when the bed is shorter, a hard
// trim to the foreground's exact length (the loop seam is left audible
// on purpose), a tail fade on the bed only, and a sample-wise overlay.
// The result is exactly as long as the foreground.
func Mix(fg, bed *audio.Buffer, opts Options) (*audio.Buffer, error) {
	if bed == nil || len(bed.Samples) == 0 {
		return nil, &MixerError{Err: fmt.Errorf("empty bed")}
	}
	if !bed.Format.Equal(fg.Format) {
		return nil, &MixerError{Err: fmt.Errorf("bed is %d Hz/%d ch, foreground is %d Hz/%d ch",
			bed.Format.SampleRate, bed.Format.Channels, fg.Format.SampleRate, fg.Format.Channels)}
	}

	fg = fg.Gain(opts.ForegroundDB)
	bed = bed.Gain(opts.BackgroundDB)

	if len(bed.Samples) < len(fg.Samples) {
		copies := (len(fg.Samples) + len(bed.Samples) - 1) / len(bed.Samples)
		log.Printf("Looping bed %d times to cover %d ms", copies, fg.DurationMS())
		parts := make([]*audio.Buffer, copies)
		for i := range parts {
			parts[i] = bed
		}
		looped, err := audio.Concat(parts...)
		if err != nil {
			return nil, &MixerError{Err: err}
		}
		bed = looped
	}

	// Exact-length trim in samples; ms arithmetic could be off by a frame
	trimmed := &audio.Buffer{
		Samples: bed.Samples[:len(fg.Samples)],
		Format:  bed.Format,
	}

	faded := trimmed.FadeOut(opts.FadeOutMS)

	mixed, err := audio.Overlay(fg, faded)
	if err != nil {
		return nil, &MixerError{Err: err}
	}
	return mixed, nil
}

// conform matches a buffer to the target sample rate and channel count.
func conform(buf *audio.Buffer, target audio.Format) (*audio.Buffer, error) {
	out := buf

	if out.Format.Channels != target.Channels {
		remixed, err := remixChannels(out, target.Channels)
		if err != nil {
			return nil, err
		}
		out = remixed
	}

	if out.Format.SampleRate != target.SampleRate {
		r := resample.New(out.Format.SampleRate, target.SampleRate, out.Format.Channels)
		out = &audio.Buffer{
			Samples: r.Convert(out.Samples),
			Format: audio.Format{
				SampleRate: target.SampleRate,
				Channels:   out.Format.Channels,
				BitDepth:   out.Format.BitDepth,
			},
		}
	}

	return out, nil
}

func remixChannels(buf *audio.Buffer, channels int) (*audio.Buffer, error) {
	from := buf.Format.Channels
	frames := buf.Frames()
	format := buf.Format
	format.Channels = channels

	switch {
	case from == 1 && channels == 2:
		out := make([]int32, frames*2)
		for f := 0; f < frames; f++ {
			out[f*2] = buf.Samples[f]
			out[f*2+1] = buf.Samples[f]
		}
		return &audio.Buffer{Samples: out, Format: format}, nil
	case from == 2 && channels == 1:
		out := make([]int32, frames)
		for f := 0; f < frames; f++ {
			out[f] = audio.Clamp24((float64(buf.Samples[f*2]) + float64(buf.Samples[f*2+1])) / 2)
		}
		return &audio.Buffer{Samples: out, Format: format}, nil
	default:
		return nil, fmt.Errorf("cannot remix %d channels to %d", from, channels)
	}
}
