// ABOUTME: FFmpeg fallback decoder for formats without a native decoder
// ABOUTME: Shells out to ffmpeg and reads raw s16le PCM from its stdout
package decode

import (
	"encoding/binary"
	"fmt"
	"os/exec"

	"github.com/oliverlab/cantor/pkg/audio"
)

const (
	ffmpegSampleRate = 44100
	ffmpegChannels   = 2
)

// decodeFFmpeg decodes any format ffmpeg understands, normalized to
// 44.1 kHz stereo 16-bit.
func decodeFFmpeg(path string) (*audio.Buffer, error) {
	cmd := exec.Command("ffmpeg",
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprint(ffmpegSampleRate),
		"-ac", fmt.Sprint(ffmpegChannels),
		"-loglevel", "error",
		"pipe:1",
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg decode: %w", err)
	}

	if len(out)%2 != 0 {
		out = out[:len(out)-1]
	}

	samples := make([]int32, len(out)/2)
	for i := range samples {
		samples[i] = audio.SampleFromInt16(int16(binary.LittleEndian.Uint16(out[i*2 : i*2+2])))
	}

	return &audio.Buffer{
		Samples: samples,
		Format: audio.Format{
			SampleRate: ffmpegSampleRate,
			Channels:   ffmpegChannels,
			BitDepth:   16,
		},
	}, nil
}
