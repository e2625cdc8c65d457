package game

import (
	"math"

	"github.com/vovakirdan/cardrunner/internal/cards"
	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/timer"
)

// Snapshot captures the visible session state for hosts, replays and
// determinism testing.
type Snapshot struct {
	Tick      uint64
	SessionID string
	Phase     core.Phase
	GameTime  float64
	Lives     int
	Input     bool

	Points     int
	Multiplier int
	Combo      int
	Record     int
	Rank       string
	Objective  int
	Reached    bool

	TimerMode   timer.Mode
	Remaining   float64
	Elapsed     float64
	Limit       float64
	TimerActive bool
	TimerPaused bool

	Health     float64
	MaxHealth  float64
	Shielded   bool
	DamageMult float64
	SpeedMult  float64

	Cards     []cards.Card
	Capacity  int
	Effects   []cards.Effect
	Countdown float64
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Tick:      s.tick,
		SessionID: s.id,
		Phase:     s.Phase(),
		GameTime:  s.clock.Now(),
		Lives:     s.lives,
		Input:     s.inputEnabled,

		Points:     s.score.Points(),
		Multiplier: s.score.Multiplier(),
		Combo:      s.score.Combo(),
		Record:     s.score.Record(),
		Rank:       s.score.Rank(),
		Objective:  s.cfg.ObjectiveScore,
		Reached:    s.objectiveHit,

		TimerMode:   s.timer.Mode(),
		Remaining:   s.timer.Remaining(),
		Elapsed:     s.timer.Elapsed(),
		Limit:       s.timer.Limit(),
		TimerActive: s.timer.Active(),
		TimerPaused: s.timer.Paused(),

		Health:     s.player.Health(),
		MaxHealth:  s.player.MaxHealth(),
		Shielded:   s.player.Invulnerable(),
		DamageMult: s.player.DamageMultiplier(),
		SpeedMult:  s.player.SpeedMultiplier(),

		Cards:     s.inventory.Cards(),
		Capacity:  s.inventory.Capacity(),
		Effects:   s.effects.Effects(),
		Countdown: s.countdown,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
// The session ID is random per match and is left out.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.GameTime)
	h = h*31 + uint64(snap.Lives)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Points)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Multiplier) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Combo)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Record)     //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Remaining)
	h = h*31 + math.Float64bits(snap.Elapsed)
	h = h*31 + math.Float64bits(snap.Health)
	h = h*31 + math.Float64bits(snap.DamageMult)
	h = h*31 + math.Float64bits(snap.SpeedMult)
	h = h*31 + math.Float64bits(snap.Countdown)
	if snap.Input {
		h = h*31 + 1
	}
	if snap.Shielded {
		h = h*31 + 2
	}

	for _, c := range snap.Cards {
		for _, b := range []byte(c.ID) {
			h = h*31 + uint64(b)
		}
	}

	for _, e := range snap.Effects {
		h = h*31 + uint64(e.Kind) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(e.Remaining)
	}

	return h
}
