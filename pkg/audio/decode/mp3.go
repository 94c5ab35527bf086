// ABOUTME: MP3 file decoder
// ABOUTME: Decodes MP3 files to int32 samples via go-mp3
package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"

	"github.com/oliverlab/cantor/pkg/audio"
)

// decodeMP3 reads a whole MP3 file. go-mp3 always emits 16-bit stereo
// at the file's native sample rate.
func decodeMP3(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}

	data, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to read MP3 samples: %w", err)
	}

	// Drop a trailing odd byte so int16 alignment holds
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}

	samples := make([]int32, len(data)/2)
	for i := range samples {
		sample16 := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = audio.SampleFromInt16(sample16)
	}

	return &audio.Buffer{
		Samples: samples,
		Format: audio.Format{
			SampleRate: decoder.SampleRate(),
			Channels:   2,
			BitDepth:   16,
		},
	}, nil
}
