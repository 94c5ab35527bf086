// ABOUTME: Tests for the segment and group stitcher
// ABOUTME: Duration arithmetic, offsets, lead-in shift, and edge cases
package stitch

import (
	"testing"

	"github.com/oliverlab/cantor/pkg/audio"
)

var testFormat = audio.Format{SampleRate: 1000, Channels: 1, BitDepth: 16}

func clip(durationMS int64, value int32) *audio.Buffer {
	buf := audio.Silence(durationMS, testFormat)
	for i := range buf.Samples {
		buf.Samples[i] = value
	}
	return buf
}

func TestSegmentsDuration(t *testing.T) {
	tests := []struct {
		name      string
		durations []int64
		gapMS     int64
		wantMS    int64
	}{
		{"three clips", []int64{1000, 2000, 1500}, 3000, 1000 + 3000 + 2000 + 3000 + 1500},
		{"single clip no gap", []int64{750}, 3000, 750},
		{"zero gap", []int64{100, 200}, 0, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clips := make([]*audio.Buffer, len(tt.durations))
			for i, d := range tt.durations {
				clips[i] = clip(d, int32(i+1))
			}
			buf, offsets, err := Segments(clips, tt.gapMS)
			if err != nil {
				t.Fatalf("stitch failed: %v", err)
			}
			if got := buf.DurationMS(); got != tt.wantMS {
				t.Errorf("expected %d ms, got %d", tt.wantMS, got)
			}
			if len(offsets) != len(clips) {
				t.Errorf("expected %d offsets, got %d", len(clips), len(offsets))
			}
		})
	}
}

func TestSegmentsOffsets(t *testing.T) {
	clips := []*audio.Buffer{clip(1000, 1), clip(2000, 2), clip(500, 3)}

	_, offsets, err := Segments(clips, 3000)
	if err != nil {
		t.Fatal(err)
	}

	want := []int64{0, 4000, 9000}
	for i, w := range want {
		if offsets[i] != w {
			t.Errorf("clip %d: expected offset %d, got %d", i, w, offsets[i])
		}
	}
}

func TestSegmentsNoTrailingSilence(t *testing.T) {
	buf, _, err := Segments([]*audio.Buffer{clip(1000, 7)}, 3000)
	if err != nil {
		t.Fatal(err)
	}
	if last := buf.Samples[len(buf.Samples)-1]; last != 7 {
		t.Errorf("expected last sample from the clip, got %d", last)
	}
}

func TestSegmentsEmpty(t *testing.T) {
	buf, offsets, err := Segments(nil, 3000)
	if err != nil {
		t.Fatalf("empty clip list should not error: %v", err)
	}
	if len(buf.Samples) != 0 {
		t.Errorf("expected zero-length buffer, got %d samples", len(buf.Samples))
	}
	if len(offsets) != 0 {
		t.Errorf("expected no offsets, got %d", len(offsets))
	}
}

func TestSegmentsFormatMismatch(t *testing.T) {
	other := audio.Silence(100, audio.Format{SampleRate: 2000, Channels: 1, BitDepth: 16})
	_, _, err := Segments([]*audio.Buffer{clip(100, 1), other}, 0)
	if err == nil {
		t.Error("expected error for mismatched clip formats")
	}
}

func TestGroupsOffsets(t *testing.T) {
	groups := [][]*audio.Buffer{
		{clip(1000, 1), clip(1000, 1)}, // 1000 + 500 + 1000 = 2500 ms
		{clip(2000, 2)},                // 2000 ms
		{clip(300, 3)},
	}

	buf, entries, err := Groups(groups, 500, 4000, 0)
	if err != nil {
		t.Fatal(err)
	}

	wantOffsets := []int64{0, 6500, 12500}
	wantTotal := int64(12800)

	if got := buf.DurationMS(); got != wantTotal {
		t.Errorf("expected total %d ms, got %d", wantTotal, got)
	}
	if len(entries) != len(groups) {
		t.Fatalf("expected %d entries, got %d", len(groups), len(entries))
	}
	for i, e := range entries {
		if e.Group != i {
			t.Errorf("entry %d has group %d", i, e.Group)
		}
		if e.OffsetMS != wantOffsets[i] {
			t.Errorf("group %d: expected offset %d, got %d", i, wantOffsets[i], e.OffsetMS)
		}
	}
}

func TestGroupsMonotonic(t *testing.T) {
	groups := [][]*audio.Buffer{
		{clip(123, 1)},
		{},
		{clip(45, 2), clip(6, 3)},
		{clip(789, 4)},
	}

	_, entries, err := Groups(groups, 7, 11, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].OffsetMS < entries[i-1].OffsetMS {
			t.Errorf("offsets not monotonic: entry %d at %d after %d",
				i, entries[i].OffsetMS, entries[i-1].OffsetMS)
		}
	}
}

func TestGroupsLeadInShiftsOffsets(t *testing.T) {
	groups := [][]*audio.Buffer{{clip(1000, 1)}, {clip(1000, 2)}}

	_, plain, err := Groups(groups, 0, 2000, 0)
	if err != nil {
		t.Fatal(err)
	}
	_, padded, err := Groups(groups, 0, 2000, 1500)
	if err != nil {
		t.Fatal(err)
	}

	for i := range plain {
		if padded[i].OffsetMS != plain[i].OffsetMS+1500 {
			t.Errorf("group %d: expected shift of 1500 ms, got %d vs %d",
				i, padded[i].OffsetMS, plain[i].OffsetMS)
		}
	}
}

func TestGroupsDeterministic(t *testing.T) {
	groups := [][]*audio.Buffer{
		{clip(333, 1), clip(777, 2)},
		{clip(1234, 3)},
	}

	_, first, err := Groups(groups, 250, 3000, 100)
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := Groups(groups, 250, 3000, 100)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGroupsEmpty(t *testing.T) {
	buf, entries, err := Groups(nil, 100, 200, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf.Samples) != 0 || len(entries) != 0 {
		t.Error("expected empty buffer and no entries")
	}
}
