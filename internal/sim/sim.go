// Package sim drives a session headlessly with a seeded bot. It backs the
// sim command and replay checks: the same seeds always produce the same
// final snapshot.
package sim

import (
	"github.com/vovakirdan/cardrunner/internal/actor"
	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/game"
)

// Per-tick odds out of 1000.
const (
	attackOdds  = 40
	hitOdds     = 4
	powerUpOdds = 5
	useOdds     = 10
	breakOdds   = 3
	specialOdds = 200 // Chance a spawned enemy is special
)

// Config controls a run.
type Config struct {
	Ticks          int   // Upper bound on ticks
	TickRate       int   // Ticks per simulated second
	Seed           int64 // Bot decisions
	StopOnGameOver bool
}

// DefaultConfig runs up to five simulated minutes at 60 ticks per second.
func DefaultConfig() Config {
	return Config{
		Ticks:          5 * 60 * 60,
		TickRate:       60,
		Seed:           1,
		StopOnGameOver: true,
	}
}

// Report summarises a run.
type Report struct {
	Ticks     int
	Spawned   int
	Defeated  int
	Hits      int
	PowerUps  int
	CardsUsed int
	Breaks    int

	Final    game.Snapshot
	Hash     uint64
	Result   game.Result
	Finished bool // A match ended during the run
}

// Bot makes seeded gameplay reports against a session.
type Bot struct {
	rng   core.RNG
	enemy *actor.Enemy
}

// NewBot creates a bot with its own RNG.
func NewBot(seed int64) *Bot {
	return &Bot{rng: core.NewSimpleRNG(seed)}
}

// Act makes at most one report per kind for this tick.
func (b *Bot) Act(s *game.Session, r *Report) {
	if s.Phase() != core.PhasePlaying {
		return
	}

	if b.enemy == nil || !b.enemy.Alive() {
		special := b.rng.Intn(1000) < specialOdds
		health := 20.0
		if special {
			health = 60
		}
		b.enemy = actor.NewEnemy("grunt", health, special)
		r.Spawned++
	}

	if b.roll(attackOdds) && s.Attack(b.enemy) {
		r.Defeated++
	}
	if b.roll(hitOdds) && s.HitPlayer(0) {
		r.Hits++
	}
	if b.roll(powerUpOdds) && s.PowerUpCollected() > 0 {
		r.PowerUps++
	}
	if b.roll(useOdds) && s.Inventory().Len() > 0 {
		if err := s.UseCard(0); err == nil {
			r.CardsUsed++
		}
	}
	if b.roll(breakOdds) && s.BreakCombo() {
		r.Breaks++
	}
}

func (b *Bot) roll(odds int) bool {
	return b.rng.Intn(1000) < odds
}

// Run starts a match if the session is in the menu and plays it for up to
// cfg.Ticks ticks.
func Run(s *game.Session, cfg Config) Report {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	dt := 1.0 / float64(cfg.TickRate)

	var r Report
	bot := NewBot(cfg.Seed)
	if s.Phase() == core.PhaseMenu {
		s.StartMatch()
	}

	for r.Ticks < cfg.Ticks {
		bot.Act(s, &r)
		s.Tick(dt)
		r.Ticks++

		if s.Phase() == core.PhaseGameOver {
			r.Finished = true
			if cfg.StopOnGameOver {
				break
			}
		}
	}

	r.Final = s.Snapshot()
	r.Hash = r.Final.Hash()
	if res, ok := s.LastResult(); ok {
		r.Result = res
	}
	return r
}
