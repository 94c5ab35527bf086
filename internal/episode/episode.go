// ABOUTME: Episode manifest describing clips, bed, and output
// ABOUTME: Loads the TOML manifest and resolves a bed from a music directory
package episode

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Episode is the input manifest for one track build. Clip paths point at
// pre-rendered speech files produced upstream; the engine never
// synthesizes audio itself.
type Episode struct {
	Name   string  `toml:"name"`
	Bed    string  `toml:"bed"`
	Output string  `toml:"output"`
	Groups []Group `toml:"group"`
}

// Group is one logical spoken unit: a prayer, a paper summary.
type Group struct {
	Title string   `toml:"title"`
	Clips []string `toml:"clips"`
}

// Load reads and validates an episode manifest.
func Load(path string) (*Episode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read episode manifest: %w", err)
	}
	var ep Episode
	if err := toml.Unmarshal(data, &ep); err != nil {
		return nil, fmt.Errorf("parse episode manifest %s: %w", path, err)
	}
	if err := ep.Validate(); err != nil {
		return nil, fmt.Errorf("episode manifest %s: %w", path, err)
	}
	return &ep, nil
}

// Validate checks the manifest names everything a build needs.
func (e *Episode) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("missing episode name")
	}
	if e.Bed == "" {
		return fmt.Errorf("missing bed path")
	}
	if e.Output == "" {
		return fmt.Errorf("missing output path")
	}
	if len(e.Groups) == 0 {
		return fmt.Errorf("no groups")
	}
	for i, g := range e.Groups {
		for j, c := range g.Clips {
			if c == "" {
				return fmt.Errorf("group %d clip %d has an empty path", i, j)
			}
		}
	}
	return nil
}

// GroupTitle returns the configured title for a group, or a positional
// fallback for manifests that don't name their groups.
func (e *Episode) GroupTitle(i int) string {
	if i >= 0 && i < len(e.Groups) && e.Groups[i].Title != "" {
		return e.Groups[i].Title
	}
	return fmt.Sprintf("Part %d", i+1)
}

var bedExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
}

// ResolveBed returns the bed file to mix under this episode. When Bed is
// a directory, one audio file is picked deterministically by hashing the
// episode name, so rebuilding the same episode always gets the same bed
// while different episodes rotate through the music library.
func (e *Episode) ResolveBed() (string, error) {
	info, err := os.Stat(e.Bed)
	if err != nil {
		return "", fmt.Errorf("bed %s: %w", e.Bed, err)
	}
	if !info.IsDir() {
		return e.Bed, nil
	}

	entries, err := os.ReadDir(e.Bed)
	if err != nil {
		return "", fmt.Errorf("bed dir %s: %w", e.Bed, err)
	}
	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if bedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			candidates = append(candidates, entry.Name())
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("bed dir %s contains no audio files", e.Bed)
	}
	sort.Strings(candidates)

	h := fnv.New32a()
	h.Write([]byte(e.Name))
	pick := candidates[int(h.Sum32())%len(candidates)]
	return filepath.Join(e.Bed, pick), nil
}
