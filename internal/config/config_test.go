package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/torus-snake/internal/grid"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultSnakeConfig(), cfg)
}

func TestParsePartialOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("grid:\n  dimension: 48\nsnake:\n  initial_heading: up\n"))
	require.NoError(t, err)

	assert.Equal(t, 48, cfg.Grid.Dimension)
	assert.Equal(t, grid.Up, cfg.Snake.InitialHeading)
	assert.Equal(t, 6, cfg.Snake.InitialLength)
	assert.Equal(t, 100*time.Millisecond, cfg.TickInterval())
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero dimension", "grid:\n  dimension: 0\n"},
		{"negative cell size", "grid:\n  cell_size: -1\n"},
		{"zero length", "snake:\n  initial_length: 0\n"},
		{"bad heading", "snake:\n  initial_heading: sideways\n"},
		{"zero interval", "timing:\n  tick_interval_ms: 0\n"},
		{"not yaml", "grid: [\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timing:\n  tick_interval_ms: 250\nfood:\n  avoid_body: true\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Timing.TickIntervalMs)
	assert.True(t, cfg.Food.AvoidBody)
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultSnakeConfig()
	cfg.Snake.InitialHeading = grid.Down

	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "initial_heading: down")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset   Preset
		length   int
		interval int
	}{
		{PresetClassic, 6, 100},
		{PresetEasy, 3, 150},
		{PresetHard, 10, 60},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			cfg.Grid.Dimension = 33
			ApplyPreset(&cfg, tc.preset)

			assert.Equal(t, tc.length, cfg.Snake.InitialLength)
			assert.Equal(t, tc.interval, cfg.Timing.TickIntervalMs)
			assert.Equal(t, 33, cfg.Grid.Dimension)
			assert.NotEmpty(t, tc.preset.Description())
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, p := range Presets() {
		got, err := ParsePreset(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, Preset(""), got)

	_, err = ParsePreset("nightmare")
	assert.Error(t, err)
}

func TestEngineConfig(t *testing.T) {
	cfg := DefaultSnakeConfig()
	cfg.Food.AvoidBody = true

	ec := cfg.EngineConfig(40, 12, 7)
	assert.Equal(t, 20, ec.Dimension)
	assert.Equal(t, 1.0, ec.CellSize)
	assert.Equal(t, 40.0, ec.AnchorX)
	assert.Equal(t, 12.0, ec.AnchorY)
	assert.Equal(t, int64(7), ec.Seed)
	assert.Equal(t, grid.Left, ec.InitialHeading)
	assert.True(t, ec.FoodAvoidsBody)
}
