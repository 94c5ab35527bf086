// ABOUTME: Decoder dispatch and decode error type
// ABOUTME: Routes files to the right decoder by extension
package decode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oliverlab/cantor/pkg/audio"
)

// DecodeError reports a source file that could not be decoded. A decode
// failure is fatal to the build that requested the clip.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// File decodes an audio file into a PCM buffer. The decoder is chosen by
// extension; unknown extensions go through the ffmpeg fallback.
func File(path string) (*audio.Buffer, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	var buf *audio.Buffer
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		buf, err = decodeMP3(path)
	case ".wav":
		buf, err = decodeWAV(path)
	case ".flac":
		buf, err = decodeFLAC(path)
	default:
		buf, err = decodeFFmpeg(path)
	}
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if len(buf.Samples) == 0 {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("no audio samples")}
	}
	return buf, nil
}
