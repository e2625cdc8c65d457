package tui

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardrunner/internal/audio"
	"github.com/vovakirdan/cardrunner/internal/cards"
	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/game"
	"github.com/vovakirdan/cardrunner/internal/score"
	"github.com/vovakirdan/cardrunner/internal/storage"
)

// Options describe how a host builds its sessions.
type Options struct {
	Game    game.Config
	Catalog *cards.Catalog
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional; prefs fall back to memory and history is dropped
	Audio   audio.Player
	Logger  *log.Logger
}

// NewSession builds a session from opts. A zero seed is replaced with the
// current time.
func NewSession(opts Options) *game.Session {
	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var prefs score.Prefs = storage.NewMemoryPrefs()
	var history game.History
	if opts.Store != nil {
		prefs = opts.Store
		history = HistoryFor(opts.Store)
	}

	return game.NewSession(opts.Game, game.Deps{
		Audio:   opts.Audio,
		Prefs:   prefs,
		History: history,
		Catalog: opts.Catalog,
		RNG:     core.NewSimpleRNG(seed),
		Logger:  opts.Logger,
	})
}

// HistoryFor adapts a store into session history.
func HistoryFor(store *storage.Store) game.History {
	return game.HistoryFunc(func(r game.Result) error {
		_, err := store.SaveSession(storage.SessionEntry{
			SessionID: r.SessionID,
			Points:    r.Points,
			Record:    r.Record,
			Rank:      r.Rank,
			Reason:    r.Reason.String(),
			LivesLeft: r.LivesLeft,
			Duration:  r.Duration,
			CardsUsed: r.CardsUsed,
		})
		return err
	})
}
