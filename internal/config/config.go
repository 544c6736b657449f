// Package config provides YAML-based configuration loading for Flappy Quiz.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Playfield PlayfieldConfig `yaml:"playfield"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Pipes     PipesConfig     `yaml:"pipes"`
	Bird      BirdConfig      `yaml:"bird"`
	Quiz      QuizConfig      `yaml:"quiz"`
	Generator GeneratorConfig `yaml:"generator"`
	Audio     AudioConfig     `yaml:"audio"`
	Storage   StorageConfig   `yaml:"storage"`
}

// PlayfieldConfig defines the logical canvas.
type PlayfieldConfig struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	GroundHeight int `yaml:"ground_height"`
}

// PhysicsConfig defines bird motion parameters (per frame).
type PhysicsConfig struct {
	Gravity         float64 `yaml:"gravity"`
	JumpStrength    float64 `yaml:"jump_strength"`
	RotationUpDeg   float64 `yaml:"rotation_up_deg"`
	RotationStepDeg float64 `yaml:"rotation_step_deg"`
	RotationMaxDeg  float64 `yaml:"rotation_max_deg"`
}

// PipesConfig defines obstacle parameters.
type PipesConfig struct {
	Speed     float64 `yaml:"speed"`
	SpawnRate int     `yaml:"spawn_rate"` // frames between spawns
	Gap       float64 `yaml:"gap"`
	Width     float64 `yaml:"width"`
	MinHeight float64 `yaml:"min_height"` // fairness band margin
	CapHeight float64 `yaml:"cap_height"`
}

// BirdConfig defines the player sprite and hitbox.
type BirdConfig struct {
	Size          float64 `yaml:"size"`
	HitboxPadding float64 `yaml:"hitbox_padding"`
}

// QuizConfig defines answer feedback timing.
type QuizConfig struct {
	CorrectDelay   time.Duration `yaml:"correct_delay"`
	IncorrectDelay time.Duration `yaml:"incorrect_delay"`
}

// GeneratorConfig defines the question generation collaborator.
type GeneratorConfig struct {
	Source       string        `yaml:"source"` // registry name: gemini, fallback, file
	Model        string        `yaml:"model"`
	Count        int           `yaml:"count"`
	MaxNoteChars int           `yaml:"max_note_chars"`
	APIKeyEnv    string        `yaml:"api_key_env"`
	Timeout      time.Duration `yaml:"timeout"`
}

// AudioConfig defines sound cue output.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

// StorageConfig defines persistence.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// Default returns the built-in configuration, used when the embedded YAML
// cannot be parsed.
func Default() Config {
	return Config{
		Playfield: PlayfieldConfig{Width: 320, Height: 480, GroundHeight: 112},
		Physics: PhysicsConfig{
			Gravity:         0.4,
			JumpStrength:    -6.5,
			RotationUpDeg:   -25,
			RotationStepDeg: 3,
			RotationMaxDeg:  90,
		},
		Pipes: PipesConfig{
			Speed:     3,
			SpawnRate: 70,
			Gap:       110,
			Width:     52,
			MinHeight: 50,
			CapHeight: 26,
		},
		Bird: BirdConfig{Size: 34, HitboxPadding: 6},
		Quiz: QuizConfig{
			CorrectDelay:   time.Second,
			IncorrectDelay: 1500 * time.Millisecond,
		},
		Generator: GeneratorConfig{
			Source:       "gemini",
			Model:        "gemini-2.5-flash",
			Count:        15,
			MaxNoteChars: 10000,
			APIKeyEnv:    "GEMINI_API_KEY",
			Timeout:      45 * time.Second,
		},
		Audio:   AudioConfig{Enabled: false, Volume: 0.6, SampleRate: 44100},
		Storage: StorageConfig{DBPath: "~/.flappyquiz/flappyquiz.db"},
	}
}

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		errs = append(errs, fmt.Errorf("playfield must be positive, got %dx%d", c.Playfield.Width, c.Playfield.Height))
	}
	if c.Playfield.GroundHeight < 0 || c.Playfield.GroundHeight >= c.Playfield.Height {
		errs = append(errs, fmt.Errorf("ground_height %d outside playfield", c.Playfield.GroundHeight))
	}
	if c.Pipes.SpawnRate <= 0 {
		errs = append(errs, fmt.Errorf("pipes.spawn_rate must be positive, got %d", c.Pipes.SpawnRate))
	}
	if c.Pipes.Speed <= 0 || c.Pipes.Width <= 0 || c.Pipes.Gap <= 0 {
		errs = append(errs, errors.New("pipes speed, width and gap must be positive"))
	}
	playable := float64(c.Playfield.Height - c.Playfield.GroundHeight)
	if maxTop := playable - c.Pipes.Gap - c.Pipes.MinHeight; maxTop < c.Pipes.MinHeight {
		errs = append(errs, fmt.Errorf("pipe fairness band is empty: [%g, %g]", c.Pipes.MinHeight, maxTop))
	}
	if c.Bird.Size <= 0 || 2*c.Bird.HitboxPadding >= c.Bird.Size {
		errs = append(errs, fmt.Errorf("bird size %g with padding %g leaves no hitbox", c.Bird.Size, c.Bird.HitboxPadding))
	}
	if c.Quiz.CorrectDelay < 0 || c.Quiz.IncorrectDelay < 0 {
		errs = append(errs, errors.New("quiz delays must not be negative"))
	}
	if c.Generator.Count <= 0 {
		errs = append(errs, fmt.Errorf("generator.count must be positive, got %d", c.Generator.Count))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
