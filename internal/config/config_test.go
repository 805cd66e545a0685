package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(defaultYAML)
	if err != nil {
		t.Fatalf("parse(embedded) failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded config = %+v, want %+v", cfg, Default())
	}
}

func TestLoadCustomPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "opponent:\n  name: Skynet\n  think_delay: 0s\ndisplay:\n  theme: classic\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Opponent.Name != "Skynet" || cfg.Opponent.ThinkDelay != 0 || cfg.Display.Theme != "classic" {
		t.Errorf("Load() = %+v, overrides not applied", cfg)
	}
	// Untouched keys keep their defaults
	if cfg.Opponent.PlacementAttempts != 100 || cfg.Display.BoardPause != 2500*time.Millisecond {
		t.Errorf("Load() = %+v, defaults lost", cfg)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "opponent: [", "failed to parse"},
		{"bad duration", "opponent:\n  think_delay: soon\n", "failed to parse"},
		{"zero attempts", "opponent:\n  placement_attempts: 0\n", "placement_attempts"},
		{"negative pause", "display:\n  board_pause: -1s\n", "board_pause"},
		{"journal without path", "journal:\n  enabled: true\n  path: \"\"\n", "journal.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			writeFile(t, path, tt.content)

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() without files = %+v, want defaults", cfg)
	}

	writeFile(t, filepath.Join(home, ".shiphunters", "config.yaml"), "player:\n  name: Ana\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Player.Name != "Ana" {
		t.Errorf("Player.Name = %q, want user config value", cfg.Player.Name)
	}

	// A broken user file is skipped
	writeFile(t, filepath.Join(home, ".shiphunters", "config.yaml"), "player: [")
	cfg, err = Load("")
	if err != nil || cfg != Default() {
		t.Errorf("Load() with broken user file = %+v, %v; want defaults", cfg, err)
	}
}
