package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cardrunner/internal/audio"
	"github.com/vovakirdan/cardrunner/internal/platform/tui"
	"github.com/vovakirdan/cardrunner/internal/storage"
)

const (
	minWidth  = 60
	minHeight = 20
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session in the terminal",
	Long: `Start a session in the terminal. The match begins from the menu.

Controls:
  Enter      - Start / play again
  P/Esc      - Pause and resume
  R          - Restart
  M/B        - Back to the menu
  D          - Draw a card
  1-9        - Use the card in that slot
  K / L      - Report a defeated enemy / special enemy
  U          - Report a collected power-up
  X          - Report a hit on the player
  C          - Report a combo-breaking miss
  ?          - Show all keys
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - 5 lives, 4 minutes
  normal - 3 lives, 3 minutes
  hard   - 2 lives, 2 minutes

Logs go to the file named in the config (default ~/.cardrunner/cardrunner.log)
because the HUD owns the terminal.

Examples:
  cardrunner play
  cardrunner play --difficulty easy
  cardrunner play --config ./my-rules.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable the terminal bell")
}

func runPlay(_ *cobra.Command, _ []string) {
	fd := int(os.Stdout.Fd()) //#nosec G115 -- file descriptors fit in int
	if !term.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "Error: play needs an interactive terminal")
		fmt.Fprintln(os.Stderr, "Run 'cardrunner sim' for a headless session.")
		os.Exit(1)
	}
	if w, h, err := term.GetSize(fd); err == nil && (w < minWidth || h < minHeight) {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the HUD needs at least %dx%d\n", w, h, minWidth, minHeight)
	}

	s := mustLoadSettings()

	var logOut io.Writer = io.Discard
	if s.cfg.Log.File != "" {
		f, err := openLogFile(s.cfg.Log.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		} else {
			defer f.Close()
			logOut = f
		}
	}
	logger := newLogger(logOut, s.cfg, "cardrunner")

	// Open storage (optional, game works without it)
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, history disabled", "error", err)
	} else {
		defer func() {
			if cerr := store.Close(); cerr != nil {
				logger.Warn("could not close database", "error", cerr)
			}
		}()
	}

	var prefs audio.Prefs = storage.NewMemoryPrefs()
	if store != nil {
		prefs = store
	}
	sound := audio.LoadSettings(prefs)
	if flagMute {
		sound.EffectsOn = false
	}

	opts := tui.Options{
		Game:    s.game,
		Catalog: s.catalog,
		Runtime: runtimeConfig(),
		Store:   store,
		Audio: audio.Multi{
			audio.LogPlayer{Logger: logger},
			audio.BellPlayer{W: os.Stdout, Settings: sound},
		},
		Logger: logger,
	}

	if err := tui.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
