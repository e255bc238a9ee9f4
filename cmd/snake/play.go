package main

import (
	"context"
	"os"
	"os/signal"
	"os/user"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/torus-snake/internal/config"
	"github.com/vovakirdan/torus-snake/internal/core"
	"github.com/vovakirdan/torus-snake/internal/grid"
	"github.com/vovakirdan/torus-snake/internal/platform/console"
	"github.com/vovakirdan/torus-snake/internal/platform/tui"
	"github.com/vovakirdan/torus-snake/internal/storage"
)

const (
	backendTea   = "tea"
	backendTcell = "tcell"
)

var (
	flagBackend   string
	flagDimension int
	flagLength    int
	flagHeading   string
	flagTickMs    int
	flagAvoidBody bool
	flagNoRecord  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game directly.

Controls:
  Arrows/WASD/hjkl - Steer (reversing onto yourself is ignored)
  R                - Restart (after game over)
  Esc/B, Q         - Quit

Finished games are recorded to the replay database unless --no-record
is given. Flags override values from the config file and preset.

Examples:
  snake play
  snake play --preset easy
  snake play --dimension 48 --length 6 --heading left
  snake play --backend tcell --tick 80
  snake play --seed 42 --no-record`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", backendTea, "Terminal backend: tea or tcell")
	playCmd.Flags().IntVar(&flagDimension, "dimension", 0, "Board size in cells per side")
	playCmd.Flags().IntVar(&flagLength, "length", 0, "Initial snake length")
	playCmd.Flags().StringVar(&flagHeading, "heading", "", "Initial heading: left, right, up, down")
	playCmd.Flags().IntVar(&flagTickMs, "tick", 0, "Tick interval in milliseconds")
	playCmd.Flags().BoolVar(&flagAvoidBody, "food-avoid-body", false, "Respawn food only on free cells")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the game")
}

// applyPlayFlags overrides config values with flags the user set.
func applyPlayFlags(cmd *cobra.Command, cfg *config.SnakeConfig) error {
	flags := cmd.Flags()
	if flags.Changed("dimension") {
		cfg.Grid.Dimension = flagDimension
	}
	if flags.Changed("length") {
		cfg.Snake.InitialLength = flagLength
	}
	if flags.Changed("heading") {
		d, err := grid.ParseDirection(flagHeading)
		if err != nil {
			return err
		}
		cfg.Snake.InitialHeading = d
	}
	if flags.Changed("tick") {
		cfg.Timing.TickIntervalMs = flagTickMs
	}
	if flags.Changed("food-avoid-body") {
		cfg.Food.AvoidBody = flagAvoidBody
	}
	return cfg.Validate()
}

// playerName labels recorded games with the local user.
func playerName() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

func runPlay(cmd *cobra.Command, _ []string) {
	if flagBackend != backendTea && flagBackend != backendTcell {
		fail("unknown backend %q (want %s or %s)", flagBackend, backendTea, backendTcell)
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	if err := applyPlayFlags(cmd, &cfg); err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := interactiveLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	var store *storage.Store
	if !flagNoRecord {
		store = openStore(logger)
	}

	runErr := playGame(cfg, store, logger, nil)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		closeLog()
		fail("running game: %v", runErr)
	}
}

// playGame runs one live game or replay on the selected backend.
func playGame(cfg config.SnakeConfig, store *storage.Store, logger *log.Logger, replay *storage.Session) error {
	if flagBackend == backendTcell {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		_, err := console.Play(ctx, console.Options{
			Config: cfg,
			Seed:   flagSeed,
			Store:  store,
			Player: playerName(),
			Logger: logger,
			Replay: replay,
		})
		return err
	}

	width, height := terminalSize()
	return tui.Run(tui.GameOptions{
		Config:  cfg,
		Runtime: core.RuntimeConfig{ScreenW: width, ScreenH: height, Seed: flagSeed},
		Store:   store,
		Player:  playerName(),
		Logger:  logger,
		Replay:  replay,
	})
}
