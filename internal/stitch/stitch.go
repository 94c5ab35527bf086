// ABOUTME: Segment and group stitcher with timestamp bookkeeping
// ABOUTME: Joins speech clips with silence gaps and records start offsets
package stitch

import (
	"fmt"

	"github.com/oliverlab/cantor/pkg/audio"
)

// TimelineEntry locates one group's start within the assembled track.
type TimelineEntry struct {
	Group    int
	OffsetMS int64
}

// Timestamp returns the entry's offset formatted for show notes.
func (e TimelineEntry) Timestamp() string {
	return FormatTimestamp(e.OffsetMS)
}

// Segments joins clips in order with gapMS of silence between consecutive
// clips (none after the last) and returns the start offset of each clip
// in milliseconds. An empty clip list yields an empty buffer and no
// offsets. All clips must share sample rate and channel count.
func Segments(clips []*audio.Buffer, gapMS int64) (*audio.Buffer, []int64, error) {
	if len(clips) == 0 {
		return &audio.Buffer{Samples: []int32{}}, nil, nil
	}

	format := clips[0].Format
	for i, c := range clips {
		if !c.Format.Equal(format) {
			return nil, nil, fmt.Errorf("stitch: clip %d is %d Hz/%d ch, want %d Hz/%d ch",
				i, c.Format.SampleRate, c.Format.Channels, format.SampleRate, format.Channels)
		}
	}

	gap := audio.Silence(gapMS, format)
	parts := make([]*audio.Buffer, 0, len(clips)*2-1)
	offsets := make([]int64, 0, len(clips))

	cursorFrames := int64(0)
	for i, c := range clips {
		if i > 0 {
			parts = append(parts, gap)
			cursorFrames += int64(gap.Frames())
		}
		offsets = append(offsets, framesToMS(cursorFrames, format.SampleRate))
		parts = append(parts, c)
		cursorFrames += int64(c.Frames())
	}

	buf, err := audio.Concat(parts...)
	if err != nil {
		return nil, nil, err
	}
	return buf, offsets, nil
}

// Groups stitches each group with the intra gap, then joins the group
// buffers with the inter gap, returning one flat buffer plus the absolute
// start offset of every group. leadInMS of silence is prepended before
// the first group and shifts all offsets uniformly.
func Groups(groups [][]*audio.Buffer, intraMS, interMS, leadInMS int64) (*audio.Buffer, []TimelineEntry, error) {
	if len(groups) == 0 {
		return &audio.Buffer{Samples: []int32{}}, nil, nil
	}

	stitched := make([]*audio.Buffer, len(groups))
	var format audio.Format
	haveFormat := false
	for i, clips := range groups {
		buf, _, err := Segments(clips, intraMS)
		if err != nil {
			return nil, nil, fmt.Errorf("group %d: %w", i, err)
		}
		if !haveFormat && len(buf.Samples) > 0 {
			format = buf.Format
			haveFormat = true
		}
		stitched[i] = buf
	}
	if !haveFormat {
		return &audio.Buffer{Samples: []int32{}}, nil, nil
	}
	for i, buf := range stitched {
		if len(buf.Samples) == 0 {
			stitched[i] = &audio.Buffer{Samples: []int32{}, Format: format}
		} else if !buf.Format.Equal(format) {
			return nil, nil, fmt.Errorf("group %d is %d Hz/%d ch, want %d Hz/%d ch",
				i, buf.Format.SampleRate, buf.Format.Channels, format.SampleRate, format.Channels)
		}
	}

	gap := audio.Silence(interMS, format)
	parts := make([]*audio.Buffer, 0, len(stitched)*2)
	entries := make([]TimelineEntry, 0, len(stitched))

	cursorFrames := int64(0)
	if leadInMS > 0 {
		lead := audio.Silence(leadInMS, format)
		parts = append(parts, lead)
		cursorFrames += int64(lead.Frames())
	}
	for i, buf := range stitched {
		if i > 0 {
			parts = append(parts, gap)
			cursorFrames += int64(gap.Frames())
		}
		entries = append(entries, TimelineEntry{Group: i, OffsetMS: framesToMS(cursorFrames, format.SampleRate)})
		parts = append(parts, buf)
		cursorFrames += int64(buf.Frames())
	}

	buf, err := audio.Concat(parts...)
	if err != nil {
		return nil, nil, err
	}
	return buf, entries, nil
}

func framesToMS(frames int64, sampleRate int) int64 {
	return frames * 1000 / int64(sampleRate)
}
