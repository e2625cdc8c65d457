// cardrunner is the game-flow core of a 2D card platformer, playable in
// the terminal and over SSH.
//
// Usage:
//
//	cardrunner play               - Play a session in the terminal
//	cardrunner serve              - Start SSH server for remote play
//	cardrunner sim                - Run a headless seeded session
//	cardrunner scores             - Show session history and stats
//	cardrunner cards              - List the card catalog and draw chances
//	cardrunner settings           - Show or change audio settings
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible draws
//	--db <path>           - Set database path (default: ~/.cardrunner/cardrunner.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - Override the configured log level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cardrunner",
	Short: "cardrunner - run, fight and play cards against the clock",
	Long: `cardrunner is a timed card platformer session engine. Defeat enemies,
build combos and play cards before the clock runs out.

Available commands:
  play      - Play in the terminal
  serve     - Start SSH server for remote play
  sim       - Run a headless seeded session
  scores    - View session history
  cards     - List the card catalog
  settings  - Show or change audio settings

Examples:
  cardrunner play
  cardrunner play --difficulty hard
  cardrunner serve --ssh :2222
  cardrunner sim --seed 42
  cardrunner scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cardrunner/cardrunner.db", "Path to database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(settingsCmd)
}
