package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/storage"
)

var flagHeadless bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch a recorded game",
	Long: `Play back a recorded game tick for tick. The engine is rebuilt from
the recorded seed and parameters and fed the recorded key presses, so
the game unfolds exactly as it was played.

With --headless the game is simulated without a terminal and the final
state is printed.

Examples:
  snake replay 12
  snake replay 12 --backend tcell
  snake replay 12 --headless`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Simulate without a terminal and print the result")
	replayCmd.Flags().StringVar(&flagBackend, "backend", backendTea, "Terminal backend: tea or tcell")
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail("invalid replay id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening replay database: %v", err)
	}
	sess, err := store.Session(id)
	store.Close()
	if errors.Is(err, storage.ErrNotFound) {
		fail("no replay with id %d", id)
	}
	if err != nil {
		fail("%v", err)
	}

	if flagHeadless {
		printSnapshot(sess, snake.Simulate(sess.EngineConfig(0, 0), sess.Inputs, sess.Ticks))
		return
	}

	logger, closeLog, err := interactiveLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	// Board settings come from the recording; the config only fills in
	// what a replay does not use.
	cfg, err := loadConfig()
	if err != nil {
		closeLog()
		fail("%v", err)
	}
	if err := playGame(cfg, nil, logger, sess); err != nil {
		closeLog()
		fail("running replay: %v", err)
	}
}

func printSnapshot(sess *storage.Session, snap snake.Snapshot) {
	fmt.Printf("Replay %d\n", sess.ID)
	fmt.Println()
	fmt.Printf("  Seed:      %d\n", sess.Seed)
	fmt.Printf("  Board:     %dx%d\n", sess.Dimension, sess.Dimension)
	fmt.Printf("  Start:     length %d, heading %s\n", sess.InitialLength, sess.InitialHeading)
	fmt.Printf("  Inputs:    %d\n", len(sess.Inputs))
	fmt.Println()
	fmt.Printf("  State:     %s\n", snap.State)
	fmt.Printf("  Ticks:     %d\n", snap.Tick)
	fmt.Printf("  Length:    %d (target %d)\n", snap.Length, snap.TargetLength)
	fmt.Printf("  Head:      %s heading %s\n", snap.Head, snap.Heading)
	if snap.State == snake.StateGameOver {
		fmt.Printf("  Score:     %d\n", snap.Score)
	}
	if snap.Tick != sess.Ticks {
		fmt.Printf("\nWarning: recording has %d ticks, replay ran %d\n", sess.Ticks, snap.Tick)
	}
}
