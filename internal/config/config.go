// Package config provides YAML-based game configuration loading and
// preset management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/grid"
)

// SnakeConfig contains all configuration for a game.
type SnakeConfig struct {
	Grid   GridConfig   `yaml:"grid"`
	Snake  PlayerConfig `yaml:"snake"`
	Timing TimingConfig `yaml:"timing"`
	Food   FoodConfig   `yaml:"food"`
}

// GridConfig defines the board.
type GridConfig struct {
	Dimension int     `yaml:"dimension"` // Cells per side
	CellSize  float64 `yaml:"cell_size"` // Display units per cell
}

// PlayerConfig defines the snake at the start of a game.
type PlayerConfig struct {
	InitialLength  int            `yaml:"initial_length"`
	InitialHeading grid.Direction `yaml:"initial_heading"`
}

// TimingConfig defines the tick rate.
type TimingConfig struct {
	TickIntervalMs int `yaml:"tick_interval_ms"`
}

// FoodConfig defines food placement.
type FoodConfig struct {
	AvoidBody bool `yaml:"avoid_body"` // Respawn only on free cells
}

// TickInterval returns the tick interval as a duration.
func (c SnakeConfig) TickInterval() time.Duration {
	return time.Duration(c.Timing.TickIntervalMs) * time.Millisecond
}

// Validate checks the config for values the engine would reject.
func (c SnakeConfig) Validate() error {
	var errs []error
	if c.Grid.Dimension <= 0 {
		errs = append(errs, fmt.Errorf("grid.dimension must be positive, got %d", c.Grid.Dimension))
	}
	if c.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("grid.cell_size must be positive, got %g", c.Grid.CellSize))
	}
	if c.Snake.InitialLength < 1 {
		errs = append(errs, fmt.Errorf("snake.initial_length must be at least 1, got %d", c.Snake.InitialLength))
	}
	if !c.Snake.InitialHeading.Valid() {
		errs = append(errs, errors.New("snake.initial_heading is invalid"))
	}
	if c.Timing.TickIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_interval_ms must be positive, got %d", c.Timing.TickIntervalMs))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// EngineConfig builds engine parameters anchored at (anchorX, anchorY).
func (c SnakeConfig) EngineConfig(anchorX, anchorY float64, seed int64) snake.Config {
	return snake.Config{
		CellSize:       c.Grid.CellSize,
		Dimension:      c.Grid.Dimension,
		AnchorX:        anchorX,
		AnchorY:        anchorY,
		InitialHeading: c.Snake.InitialHeading,
		InitialLength:  c.Snake.InitialLength,
		Seed:           seed,
		FoodAvoidsBody: c.Food.AvoidBody,
	}
}

// Preset represents a named starting length/speed pair.
type Preset string

const (
	PresetClassic Preset = "classic"
	PresetEasy    Preset = "easy"
	PresetHard    Preset = "hard"
)

// Presets lists the known presets in menu order.
func Presets() []Preset {
	return []Preset{PresetClassic, PresetEasy, PresetHard}
}

// ParsePreset validates a preset name. Empty means no preset.
func ParsePreset(s string) (Preset, error) {
	switch p := Preset(s); p {
	case "", PresetClassic, PresetEasy, PresetHard:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown preset %q", s)
}

// Description returns a short human-readable summary of the preset.
func (p Preset) Description() string {
	switch p {
	case PresetClassic:
		return "length 6, 100ms ticks"
	case PresetEasy:
		return "length 3, 150ms ticks"
	case PresetHard:
		return "length 10, 60ms ticks"
	default:
		return ""
	}
}

// ApplyPreset modifies the config based on a preset. Only the starting
// length and tick interval change; the board is left alone.
func ApplyPreset(cfg *SnakeConfig, preset Preset) {
	switch preset {
	case PresetClassic:
		cfg.Snake.InitialLength = 6
		cfg.Timing.TickIntervalMs = 100
	case PresetEasy:
		cfg.Snake.InitialLength = 3
		cfg.Timing.TickIntervalMs = 150
	case PresetHard:
		cfg.Snake.InitialLength = 10
		cfg.Timing.TickIntervalMs = 60
	}
}
