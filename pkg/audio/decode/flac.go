// ABOUTME: FLAC file decoder
// ABOUTME: Decodes FLAC streams to int32 samples via mewkiz/flac
package decode

import (
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"

	"github.com/oliverlab/cantor/pkg/audio"
)

func decodeFLAC(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	bitDepth := int(info.BitsPerSample)

	var samples []int32
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse FLAC frame: %w", err)
		}
		for i := 0; i < int(frame.BlockSize); i++ {
			for ch := 0; ch < channels; ch++ {
				samples = append(samples, shiftTo24Bit(frame.Subframes[ch].Samples[i], bitDepth))
			}
		}
	}

	return &audio.Buffer{
		Samples: samples,
		Format: audio.Format{
			SampleRate: int(info.SampleRate),
			Channels:   channels,
			BitDepth:   bitDepth,
		},
	}, nil
}

// shiftTo24Bit scales a sample of the given source bit depth into the
// 24-bit range used everywhere downstream.
func shiftTo24Bit(sample int32, bitDepth int) int32 {
	shift := 24 - bitDepth
	if shift > 0 {
		return sample << shift
	}
	if shift < 0 {
		return sample >> -shift
	}
	return sample
}
