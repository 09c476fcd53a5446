package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := DecodeDodge(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultDodgeConfig() {
		t.Errorf("embedded defaults differ from DefaultDodgeConfig():\n%+v\n%+v", cfg, DefaultDodgeConfig())
	}
}

func TestLoadDodgeCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dodge.yaml")
	data := []byte("lanes:\n  count: 6\nobstacles:\n  spawn_period: 0.5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDodge(path)
	if err != nil {
		t.Fatalf("LoadDodge() failed: %v", err)
	}
	if cfg.Lanes.Count != 6 {
		t.Errorf("Lanes.Count = %d, expected 6", cfg.Lanes.Count)
	}
	if cfg.Obstacles.SpawnPeriod != 0.5 {
		t.Errorf("SpawnPeriod = %v, expected 0.5", cfg.Obstacles.SpawnPeriod)
	}
	// Untouched keys keep their defaults
	if cfg.Obstacles.MaxSpeed != DefaultDodgeConfig().Obstacles.MaxSpeed {
		t.Errorf("MaxSpeed = %d, expected default", cfg.Obstacles.MaxSpeed)
	}
}

func TestLoadDodgeMissingCustomPath(t *testing.T) {
	_, err := LoadDodge(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadDodgeBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("lanes: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDodge(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	want := DefaultDodgeConfig()
	want.Scoring.CloseCallEdgeTriggered = true

	data, err := MarshalDodge(want)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeDodge(data)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\n%+v\n%+v", got, want)
	}
}

func TestApplyDodgePreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		period float64
	}{
		{DifficultyEasy, 1.4},
		{DifficultyNormal, 1.0},
		{DifficultyHard, 0.6},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultDodgeConfig()
			ApplyDodgePreset(&cfg, tc.preset)
			if cfg.Obstacles.SpawnPeriod != tc.period {
				t.Errorf("SpawnPeriod = %v, expected %v", cfg.Obstacles.SpawnPeriod, tc.period)
			}
			if cfg.Obstacles.MinSpeed >= cfg.Obstacles.MaxSpeed {
				t.Errorf("preset produced empty speed range %d..%d", cfg.Obstacles.MinSpeed, cfg.Obstacles.MaxSpeed)
			}
		})
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	if ParseDifficultyPreset("hard") != DifficultyHard {
		t.Error("expected hard")
	}
	if ParseDifficultyPreset("fixed") != "" {
		t.Error("unknown preset should map to empty")
	}
}

func TestWorldHasNoWidth(t *testing.T) {
	// Configs written before width was dropped still load.
	cfg, err := DecodeDodge([]byte("world:\n  width: 400\n  height: 800\n"))
	if err != nil {
		t.Fatalf("DecodeDodge() failed: %v", err)
	}
	if cfg.World.Height != 800 {
		t.Errorf("World.Height = %v, expected 800", cfg.World.Height)
	}

	data, err := MarshalDodge(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "width") {
		t.Errorf("marshaled config should not carry a width:\n%s", data)
	}
}
