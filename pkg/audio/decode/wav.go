// ABOUTME: WAV file decoder
// ABOUTME: Decodes PCM WAV files to int32 samples via go-audio
package decode

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"github.com/oliverlab/cantor/pkg/audio"
)

func decodeWAV(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM buffer: %w", err)
	}

	bitDepth := int(decoder.BitDepth)
	samples := make([]int32, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = shiftTo24Bit(int32(s), bitDepth)
	}

	return &audio.Buffer{
		Samples: samples,
		Format: audio.Format{
			SampleRate: buf.Format.SampleRate,
			Channels:   buf.Format.NumChannels,
			BitDepth:   bitDepth,
		},
	}, nil
}
