package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardrunner/internal/audio"
	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/game"
	"github.com/vovakirdan/cardrunner/internal/platform/tui"
	"github.com/vovakirdan/cardrunner/internal/sim"
	"github.com/vovakirdan/cardrunner/internal/storage"
	"github.com/vovakirdan/cardrunner/internal/timer"
)

var (
	flagSimSeconds int
	flagBotSeed    int64
	flagSimSave    bool
	flagSimKeepOn  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless seeded session",
	Long: `Run a session without a terminal UI. A seeded bot fights enemies,
takes hits, collects power-ups and plays cards. The same --seed and
--bot-seed always produce the same final state and hash.

Examples:
  cardrunner sim
  cardrunner sim --seed 42 --bot-seed 7
  cardrunner sim --seconds 600 --keep-going
  cardrunner sim --save --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimSeconds, "seconds", 300, "Simulated seconds to run at most")
	simCmd.Flags().Int64Var(&flagBotSeed, "bot-seed", 1, "Seed for bot decisions")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record prefs and history in the database")
	simCmd.Flags().BoolVar(&flagSimKeepOn, "keep-going", false, "Keep ticking after the match ends")
}

func runSim(_ *cobra.Command, _ []string) {
	s := mustLoadSettings()
	logger := newLogger(os.Stderr, s.cfg, "cardrunner-sim")

	rt := runtimeConfig()
	if rt.Seed == 0 {
		rt.Seed = 1 // Reproducible by default
	}

	opts := tui.Options{
		Game:    s.game,
		Catalog: s.catalog,
		Runtime: rt,
		Audio:   audio.LogPlayer{Logger: logger},
		Logger:  logger,
	}

	if flagSimSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		opts.Store = store
	}

	session := tui.NewSession(opts)
	defer session.Close()

	tickRate := rt.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	report := sim.Run(session, sim.Config{
		Ticks:          flagSimSeconds * tickRate,
		TickRate:       tickRate,
		Seed:           flagBotSeed,
		StopOnGameOver: !flagSimKeepOn,
	})

	printReport(report, s.game)
}

func printReport(r sim.Report, cfg game.Config) {
	snap := r.Final
	fmt.Printf("Simulated %d ticks (%.1fs game time)\n", r.Ticks, snap.GameTime)
	fmt.Println()
	fmt.Printf("  %-12s %s\n", "Phase", snap.Phase)
	fmt.Printf("  %-12s %d\n", "Points", snap.Points)
	fmt.Printf("  %-12s %s\n", "Rank", snap.Rank)
	fmt.Printf("  %-12s %d\n", "Record", snap.Record)
	fmt.Printf("  %-12s x%d (combo %d)\n", "Multiplier", snap.Multiplier, snap.Combo)
	fmt.Printf("  %-12s %d/%d\n", "Lives", snap.Lives, cfg.Lives)
	if snap.TimerMode == timer.CountUp {
		fmt.Printf("  %-12s %s\n", "Elapsed", timer.FormatDetailed(snap.Elapsed))
	} else {
		fmt.Printf("  %-12s %s\n", "Remaining", timer.FormatDetailed(snap.Remaining))
	}
	fmt.Printf("  %-12s %d/%d\n", "Cards held", len(snap.Cards), snap.Capacity)
	fmt.Println()
	fmt.Printf("  %-12s %d spawned, %d defeated\n", "Enemies", r.Spawned, r.Defeated)
	fmt.Printf("  %-12s %d\n", "Hits taken", r.Hits)
	fmt.Printf("  %-12s %d\n", "Power-ups", r.PowerUps)
	fmt.Printf("  %-12s %d\n", "Cards used", r.CardsUsed)
	fmt.Printf("  %-12s %d\n", "Combo breaks", r.Breaks)
	fmt.Println()

	if r.Finished {
		fmt.Printf("Match over: %s after %.1fs\n", r.Result.Reason, r.Result.Duration)
	} else {
		fmt.Println("Match still running at tick limit")
	}
	fmt.Printf("State hash: %016x\n", r.Hash)
}
