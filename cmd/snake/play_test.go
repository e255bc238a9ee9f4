package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/torus-snake/internal/config"
	"github.com/vovakirdan/torus-snake/internal/grid"
)

// newPlayFlags returns a command carrying the play flags, without touching
// the global playCmd.
func newPlayFlags() *cobra.Command {
	cmd := &cobra.Command{Use: "play"}
	cmd.Flags().IntVar(&flagDimension, "dimension", 0, "")
	cmd.Flags().IntVar(&flagLength, "length", 0, "")
	cmd.Flags().StringVar(&flagHeading, "heading", "", "")
	cmd.Flags().IntVar(&flagTickMs, "tick", 0, "")
	cmd.Flags().BoolVar(&flagAvoidBody, "food-avoid-body", false, "")
	return cmd
}

func TestApplyPlayFlagsOnlyChanged(t *testing.T) {
	cmd := newPlayFlags()
	require.NoError(t, cmd.Flags().Set("dimension", "48"))
	require.NoError(t, cmd.Flags().Set("heading", "up"))

	cfg := config.DefaultSnakeConfig()
	require.NoError(t, applyPlayFlags(cmd, &cfg))

	assert.Equal(t, 48, cfg.Grid.Dimension)
	assert.Equal(t, grid.Up, cfg.Snake.InitialHeading)
	assert.Equal(t, config.DefaultSnakeConfig().Snake.InitialLength, cfg.Snake.InitialLength)
	assert.Equal(t, config.DefaultSnakeConfig().Timing.TickIntervalMs, cfg.Timing.TickIntervalMs)
}

func TestApplyPlayFlagsRejectsBadValues(t *testing.T) {
	cmd := newPlayFlags()
	require.NoError(t, cmd.Flags().Set("heading", "sideways"))
	cfg := config.DefaultSnakeConfig()
	assert.Error(t, applyPlayFlags(cmd, &cfg))

	cmd = newPlayFlags()
	require.NoError(t, cmd.Flags().Set("length", "0"))
	cfg = config.DefaultSnakeConfig()
	assert.ErrorContains(t, applyPlayFlags(cmd, &cfg), "initial_length")
}

func TestLoadConfigWithPreset(t *testing.T) {
	flagConfig, flagPreset = "", "hard"
	t.Cleanup(func() { flagPreset = "" })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Snake.InitialLength)
	assert.Equal(t, 60, cfg.Timing.TickIntervalMs)

	flagPreset = "impossible"
	_, err = loadConfig()
	assert.Error(t, err)
}
