// ABOUTME: Tests for TOML configuration loading
// ABOUTME: Defaults, overrides, validation, and the shipped sample
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cantor.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Mix.IntraGapMS != 3000 {
		t.Errorf("intra gap default %d, expected 3000", cfg.Mix.IntraGapMS)
	}
	if cfg.Mix.InterGapMS != 5000 {
		t.Errorf("inter gap default %d, expected 5000", cfg.Mix.InterGapMS)
	}
	if cfg.Mix.ForegroundDB != -10 {
		t.Errorf("foreground default %g, expected -10", cfg.Mix.ForegroundDB)
	}
	if cfg.Mix.BackgroundDB != -15 {
		t.Errorf("background default %g, expected -15", cfg.Mix.BackgroundDB)
	}
	if cfg.Mix.FadeOutMS != 5000 {
		t.Errorf("fade default %d, expected 5000", cfg.Mix.FadeOutMS)
	}
	if cfg.Output.Overwrite {
		t.Error("overwrite should default to false")
	}
	if len(cfg.Effects) != 0 {
		t.Errorf("expected no default effects, got %d", len(cfg.Effects))
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[mix]
intra_gap_ms = 1500
background_db = -18.5

[[effects]]
kind = "speed"
ratio = 0.85

[[effects]]
kind = "reverb"
room_size = 0.6
wet = 0.25

[output]
overwrite = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Mix.IntraGapMS != 1500 {
		t.Errorf("intra gap %d, expected 1500", cfg.Mix.IntraGapMS)
	}
	// Unset keys keep their defaults.
	if cfg.Mix.InterGapMS != 5000 {
		t.Errorf("inter gap %d, expected default 5000", cfg.Mix.InterGapMS)
	}
	if cfg.Mix.BackgroundDB != -18.5 {
		t.Errorf("background %g, expected -18.5", cfg.Mix.BackgroundDB)
	}
	if len(cfg.Effects) != 2 {
		t.Fatalf("expected 2 effects, got %d", len(cfg.Effects))
	}
	if cfg.Effects[0].Kind != "speed" || cfg.Effects[0].Ratio != 0.85 {
		t.Errorf("first effect wrong: %+v", cfg.Effects[0])
	}
	if cfg.Effects[1].Kind != "reverb" || cfg.Effects[1].Wet != 0.25 {
		t.Errorf("second effect wrong: %+v", cfg.Effects[1])
	}
	if !cfg.Output.Overwrite {
		t.Error("overwrite not loaded")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative gap", "[mix]\nintra_gap_ms = -1\n"},
		{"negative fade", "[mix]\nfade_out_ms = -500\n"},
		{"effect without kind", "[[effects]]\nratio = 0.85\n"},
		{"malformed toml", "[mix\nintra_gap_ms = 3000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("expected load to fail")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSampleParsesAndValidates(t *testing.T) {
	sample := Sample()
	if !strings.Contains(sample, "[mix]") {
		t.Error("sample should document the mix table")
	}

	cfg := Default()
	if err := toml.Unmarshal([]byte(sample), cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config does not validate: %v", err)
	}
}
