package config

import (
	_ "embed"

	"github.com/vovakirdan/torus-snake/internal/grid"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Dimension: 20,
			CellSize:  1,
		},
		Snake: PlayerConfig{
			InitialLength:  6,
			InitialHeading: grid.Left,
		},
		Timing: TimingConfig{
			TickIntervalMs: 100,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
