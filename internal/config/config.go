// ABOUTME: Build configuration loaded from TOML
// ABOUTME: Gap, gain, fade, effect, and output settings with defaults
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Config carries every knob a track build reads. Nothing in the pipeline
// consults globals; stages receive what they need from here.
type Config struct {
	Mix     Mix      `toml:"mix"`
	Effects []Effect `toml:"effects"`
	Output  Output   `toml:"output"`
}

// Mix holds stitching gaps and mixer gains.
type Mix struct {
	IntraGapMS   int64   `toml:"intra_gap_ms"`
	InterGapMS   int64   `toml:"inter_gap_ms"`
	LeadInMS     int64   `toml:"lead_in_ms"`
	ForegroundDB float64 `toml:"foreground_db"`
	BackgroundDB float64 `toml:"background_db"`
	FadeOutMS    int64   `toml:"fade_out_ms"`
}

// Effect is one stage of the effects chain. Kind selects the transform;
// only that kind's parameters are read. File order is chain order.
type Effect struct {
	Kind     string  `toml:"kind"`
	Ratio    float64 `toml:"ratio"`
	DriveDB  float64 `toml:"drive_db"`
	LowHz    float64 `toml:"low_hz"`
	HighHz   float64 `toml:"high_hz"`
	RoomSize float64 `toml:"room_size"`
	Damping  float64 `toml:"damping"`
	Wet      float64 `toml:"wet"`
	Seconds  float64 `toml:"seconds"`
	Feedback float64 `toml:"feedback"`
	RateHz   float64 `toml:"rate_hz"`
	Depth    float64 `toml:"depth"`
	Mix      float64 `toml:"mix"`
}

// Output controls the exporter.
type Output struct {
	Overwrite bool `toml:"overwrite"`
}

// Default returns the configuration used when no file overrides it.
// The gap and gain values mirror the build settings the feed has always
// shipped with.
func Default() *Config {
	return &Config{
		Mix: Mix{
			IntraGapMS:   3000,
			InterGapMS:   5000,
			LeadInMS:     0,
			ForegroundDB: -10,
			BackgroundDB: -15,
			FadeOutMS:    5000,
		},
		Output: Output{Overwrite: false},
	}
}

// Load reads a TOML config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot honor. Effect parameters
// are checked later, when the chain is built.
func (c *Config) Validate() error {
	if c.Mix.IntraGapMS < 0 {
		return fmt.Errorf("intra_gap_ms must be non-negative, got %d", c.Mix.IntraGapMS)
	}
	if c.Mix.InterGapMS < 0 {
		return fmt.Errorf("inter_gap_ms must be non-negative, got %d", c.Mix.InterGapMS)
	}
	if c.Mix.LeadInMS < 0 {
		return fmt.Errorf("lead_in_ms must be non-negative, got %d", c.Mix.LeadInMS)
	}
	if c.Mix.FadeOutMS < 0 {
		return fmt.Errorf("fade_out_ms must be non-negative, got %d", c.Mix.FadeOutMS)
	}
	for i, e := range c.Effects {
		if e.Kind == "" {
			return fmt.Errorf("effect %d is missing a kind", i)
		}
	}
	return nil
}

// Sample returns the annotated sample configuration shipped with the
// binary, for `cantor init`.
func Sample() string {
	return sampleConfig
}
