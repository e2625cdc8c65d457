package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cardrunner/internal/platform/tui"
	"github.com/vovakirdan/cardrunner/internal/score"
	"github.com/vovakirdan/cardrunner/internal/storage"
	"github.com/vovakirdan/cardrunner/internal/timer"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
	flagScoresTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show session history",
	Long: `Display the best finished sessions, or the most recent ones, with
aggregate statistics.

Examples:
  cardrunner scores
  cardrunner scores --recent --limit 20
  cardrunner scores --tui
  cardrunner scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of sessions to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show most recent sessions instead of best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all session history")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse history interactively")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearSessions(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Session history cleared.")
		return
	}

	if flagScoresTUI {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil { //#nosec G115 -- file descriptors fit in int
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	title := "Best Sessions"
	query := store.TopSessions
	if flagScoresRecent {
		title = "Recent Sessions"
		query = store.RecentSessions
	}

	sessions, err := query(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'cardrunner play' to set the first record!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-4s  %-8s  %-5s  %-5s  %-6s  %s\n",
		"#", "Points", "Rank", "Reason", "Lives", "Cards", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-4s  %-8s  %-5s  %-5s  %-6s  %s\n",
		"-", "------", "----", "------", "-----", "-----", "----", "----")

	for i, e := range sessions {
		fmt.Printf("  %-4d  %-8d  %-4s  %-8s  %-5d  %-5d  %-6s  %s\n",
			i+1, e.Points, e.Rank, e.Reason, e.LivesLeft, e.CardsUsed,
			timer.Format(e.Duration), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Sessions: %d   Best: %d   Average: %.0f   Total: %d\n",
		stats.Sessions, stats.BestPoints, stats.AvgPoints, stats.TotalPoints)
	fmt.Printf("Ended by time: %d   Ended by lives: %d\n", stats.TimeUps, stats.NoLives)
	fmt.Printf("Record: %d\n", store.GetInt(score.RecordKey, 0))
}
