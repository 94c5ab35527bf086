// ABOUTME: Track build orchestration
// ABOUTME: Decode, stitch, effects, background mix, and export in sequence
package builder

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/oliverlab/cantor/internal/config"
	"github.com/oliverlab/cantor/internal/effects"
	"github.com/oliverlab/cantor/internal/episode"
	"github.com/oliverlab/cantor/internal/export"
	"github.com/oliverlab/cantor/internal/mix"
	"github.com/oliverlab/cantor/internal/stitch"
	"github.com/oliverlab/cantor/pkg/audio"
	"github.com/oliverlab/cantor/pkg/audio/decode"
)

// Track is the build artifact: the exported file plus the timeline used
// for show notes.
type Track struct {
	Path    string
	Entries []stitch.TimelineEntry
}

// Build assembles one episode track. Stages run strictly in sequence;
// each stage's output is the next stage's sole input. Any stage failure
// aborts the whole build — a partially narrated episode is worse than a
// failed one.
func Build(cfg *config.Config, ep *episode.Episode) (*Track, error) {
	buildID := uuid.NewString()[:8]
	log.Printf("[%s] Building episode %q (%d groups)", buildID, ep.Name, len(ep.Groups))

	speech, entries, err := Assemble(cfg, ep)
	if err != nil {
		return nil, err
	}

	bedPath, err := ep.ResolveBed()
	if err != nil {
		return nil, &mix.MixerError{Path: ep.Bed, Err: err}
	}
	log.Printf("[%s] Mixing bed %s under %d ms of speech", buildID, bedPath, speech.DurationMS())
	bed, err := mix.LoadBed(bedPath, speech.Format)
	if err != nil {
		return nil, err
	}
	mixed, err := mix.Mix(speech, bed, mix.Options{
		ForegroundDB: cfg.Mix.ForegroundDB,
		BackgroundDB: cfg.Mix.BackgroundDB,
		FadeOutMS:    cfg.Mix.FadeOutMS,
	})
	if err != nil {
		return nil, err
	}

	path, err := export.File(mixed, ep.Output, cfg.Output.Overwrite)
	if err != nil {
		return nil, err
	}
	log.Printf("[%s] Done: %s", buildID, path)
	return &Track{Path: path, Entries: entries}, nil
}

// Assemble produces the post-effects speech track and its timeline
// without touching the bed or the output path. `cantor timeline` uses it
// to preview timestamps without exporting.
func Assemble(cfg *config.Config, ep *episode.Episode) (*audio.Buffer, []stitch.TimelineEntry, error) {
	chain, err := effects.NewChain(effectSpecs(cfg.Effects))
	if err != nil {
		return nil, nil, err
	}

	groups := make([][]*audio.Buffer, len(ep.Groups))
	for i, g := range ep.Groups {
		clips := make([]*audio.Buffer, len(g.Clips))
		for j, path := range g.Clips {
			buf, err := decode.File(path)
			if err != nil {
				return nil, nil, err
			}
			clips[j] = buf
		}
		groups[i] = clips
	}

	speech, entries, err := stitch.Groups(groups, cfg.Mix.IntraGapMS, cfg.Mix.InterGapMS, cfg.Mix.LeadInMS)
	if err != nil {
		return nil, nil, err
	}
	if len(speech.Samples) == 0 {
		return nil, nil, fmt.Errorf("episode %q has no audio", ep.Name)
	}

	stitchedFrames := speech.Frames()
	speech, err = chain.Apply(speech)
	if err != nil {
		return nil, nil, err
	}

	// A speed stage changes the track's duration; keep the reported
	// timestamps aligned with the audio that actually ships.
	if speech.Frames() != stitchedFrames && stitchedFrames > 0 {
		entries = rescaleEntries(entries, stitchedFrames, speech.Frames())
	}

	return speech, entries, nil
}

func rescaleEntries(entries []stitch.TimelineEntry, oldFrames, newFrames int) []stitch.TimelineEntry {
	out := make([]stitch.TimelineEntry, len(entries))
	for i, e := range entries {
		out[i] = stitch.TimelineEntry{
			Group:    e.Group,
			OffsetMS: e.OffsetMS * int64(newFrames) / int64(oldFrames),
		}
	}
	return out
}

func effectSpecs(cfgEffects []config.Effect) []effects.Spec {
	specs := make([]effects.Spec, len(cfgEffects))
	for i, e := range cfgEffects {
		specs[i] = effects.Spec{
			Kind:     e.Kind,
			Ratio:    e.Ratio,
			DriveDB:  e.DriveDB,
			LowHz:    e.LowHz,
			HighHz:   e.HighHz,
			RoomSize: e.RoomSize,
			Damping:  e.Damping,
			Wet:      e.Wet,
			Seconds:  e.Seconds,
			Feedback: e.Feedback,
			RateHz:   e.RateHz,
			Depth:    e.Depth,
			Mix:      e.Mix,
		}
	}
	return specs
}
