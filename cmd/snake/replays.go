package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/torus-snake/internal/storage"
)

var flagReplayLimit int

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded games",
	Long: `List the most recent games in the replay database, newest first.

Examples:
  snake replays
  snake replays --limit 50
  snake replays delete 12`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded game",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysDelete,
}

func init() {
	replaysCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Number of games to list")
	replaysCmd.AddCommand(replaysDeleteCmd)
}

func runReplays(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening replay database: %v", err)
	}
	defer store.Close()

	sessions, err := store.RecentSessions(flagReplayLimit)
	if err != nil {
		store.Close()
		fail("retrieving replays: %v", err)
	}

	fmt.Println("Recorded games")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' and finish a game to record one.")
		return
	}

	fmt.Printf("  %-5s  %-12s  %-16s  %-7s  %-5s  %-6s  %s\n", "ID", "Player", "Date", "Board", "Start", "Ticks", "Keys")
	fmt.Printf("  %-5s  %-12s  %-16s  %-7s  %-5s  %-6s  %s\n", "--", "------", "----", "-----", "-----", "-----", "----")

	for _, s := range sessions {
		player := s.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-5d  %-12s  %-16s  %-7s  %-5d  %-6d  %d\n",
			s.ID,
			player,
			s.CreatedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%dx%d", s.Dimension, s.Dimension),
			s.InitialLength,
			s.Ticks,
			s.InputCount,
		)
	}

	fmt.Println()
	fmt.Println("Run 'snake replay <id>' to watch a game.")
}

func runReplaysDelete(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fail("invalid replay id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening replay database: %v", err)
	}
	defer store.Close()

	if err := store.DeleteSession(id); err != nil {
		store.Close()
		if errors.Is(err, storage.ErrNotFound) {
			fail("no replay with id %d", id)
		}
		fail("%v", err)
	}
	fmt.Printf("Deleted replay %d\n", id)
}
