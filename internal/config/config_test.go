package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	got := embedded()
	want := Default()

	if got != want {
		t.Errorf("embedded YAML differs from Default():\n got  %+v\n want %+v", got, want)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadCustomPathOverridesKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := "physics:\n  gravity: 0.5\nquiz:\n  incorrect_delay: 2s\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("Gravity = %v, expected 0.5", cfg.Physics.Gravity)
	}
	if cfg.Quiz.IncorrectDelay != 2*time.Second {
		t.Errorf("IncorrectDelay = %v, expected 2s", cfg.Quiz.IncorrectDelay)
	}
	// Untouched keys keep their defaults
	if cfg.Pipes.Gap != 110 {
		t.Errorf("Pipes.Gap = %v, expected default 110", cfg.Pipes.Gap)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with a missing custom path should fail")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mod    func(c *Config)
		substr string
	}{
		{"zero spawn rate", func(c *Config) { c.Pipes.SpawnRate = 0 }, "spawn_rate"},
		{"gap swallows band", func(c *Config) { c.Pipes.Gap = 300 }, "fairness band"},
		{"padding eats bird", func(c *Config) { c.Bird.HitboxPadding = 17 }, "hitbox"},
		{"ground outside field", func(c *Config) { c.Playfield.GroundHeight = 480 }, "ground_height"},
		{"no questions", func(c *Config) { c.Generator.Count = 0 }, "generator.count"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mod(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tc.substr) {
				t.Errorf("Validate() error %q should mention %q", err, tc.substr)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/abs/path.db")
	if err != nil || got != "/abs/path.db" {
		t.Errorf("ExpandHome(abs) = %q, %v", got, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/x.db")
	if err != nil || got != filepath.Join(home, "x.db") {
		t.Errorf("ExpandHome(~/x.db) = %q, %v", got, err)
	}
}
