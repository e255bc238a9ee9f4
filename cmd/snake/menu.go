package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/torus-snake/internal/config"
	"github.com/vovakirdan/torus-snake/internal/core"
	"github.com/vovakirdan/torus-snake/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a preset picker and the replay browser",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select. Pick a preset to
play, or Replays to watch recorded games. After a game ends you return
to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  snake menu
  snake menu --config ./my-snake.yaml
  snake menu --db ./replays.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	base, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := interactiveLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store := openStore(logger)
	width, height := terminalSize()

menuLoop:
	for {
		menuResult, err := tui.RunMenu(width, height, store != nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		width, height = menuResult.Width, menuResult.Height

		if menuResult.Quit {
			break
		}

		opts := tui.GameOptions{
			Config:  base,
			Runtime: core.RuntimeConfig{ScreenW: width, ScreenH: height, Seed: flagSeed},
			Store:   store,
			Player:  playerName(),
			Logger:  logger,
		}

		switch menuResult.Item.Kind {
		case tui.MenuItemReplays:
			selected, goBack, rErr := tui.RunReplays(store, width, height)
			if rErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", rErr)
				continue
			}
			if selected == nil {
				if goBack {
					continue
				}
				break menuLoop
			}
			opts.Replay = selected

		default:
			config.ApplyPreset(&opts.Config, menuResult.Item.Preset)
		}

		if err := tui.Run(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
