// ABOUTME: Final track exporter
// ABOUTME: Encodes mixed audio to WAV natively or to MP3 via ffmpeg
package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"

	"github.com/oliverlab/cantor/pkg/audio"
)

// ExportError reports an encode or write failure. No partial file is
// left behind: encoding goes to a temporary path renamed on success.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// File encodes the buffer to path. When the path exists and overwrite is
// false the existing file is kept and returned unchanged; that skip is a
// success, not an error. The container is chosen by extension: .wav is
// written natively, everything else goes through ffmpeg.
func File(buf *audio.Buffer, path string, overwrite bool) (string, error) {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			log.Printf("Output exists, skipping export: %s", path)
			return path, nil
		}
	}

	tmp := tempPath(path)
	var err error
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		err = encodeWAV(buf, tmp)
	} else {
		err = encodeFFmpeg(buf, tmp)
	}
	if err != nil {
		os.Remove(tmp)
		return "", &ExportError{Path: path, Err: err}
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", &ExportError{Path: path, Err: err}
	}
	log.Printf("Exported %d ms to %s", buf.DurationMS(), path)
	return path, nil
}

// tempPath keeps the target's extension so ffmpeg can infer the format,
// and a unique suffix so concurrent builds to different outputs in the
// same directory never collide.
func tempPath(path string) string {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s%s", base, uuid.NewString(), ext))
}

func encodeWAV(buf *audio.Buffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, buf.Format.SampleRate, 16, buf.Format.Channels, 1)
	data := make([]int, len(buf.Samples))
	for i, s := range buf.Samples {
		data[i] = int(audio.SampleToInt16(s))
	}
	ib := &gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: buf.Format.Channels,
			SampleRate:  buf.Format.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(ib); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("wav encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("wav finalize: %w", err)
	}
	return f.Close()
}

func encodeFFmpeg(buf *audio.Buffer, path string) error {
	args := []string{
		"-y",
		"-f", "s16le",
		"-ar", fmt.Sprint(buf.Format.SampleRate),
		"-ac", fmt.Sprint(buf.Format.Channels),
		"-i", "pipe:0",
	}
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		args = append(args, "-codec:a", "libmp3lame", "-q:a", "2")
	}
	args = append(args, "-loglevel", "error", path)

	cmd := exec.Command("ffmpeg", args...)
	cmd.Stdin = bytes.NewReader(samplesToBytes(buf.Samples))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("ffmpeg encode: %w: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg encode: %w", err)
	}
	return nil
}

// samplesToBytes converts int32 samples to little-endian 16-bit bytes.
func samplesToBytes(samples []int32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(audio.SampleToInt16(s)))
	}
	return out
}
