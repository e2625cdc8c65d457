package game

import (
	"github.com/vovakirdan/cardrunner/internal/actor"
	"github.com/vovakirdan/cardrunner/internal/cards"
	"github.com/vovakirdan/cardrunner/internal/score"
	"github.com/vovakirdan/cardrunner/internal/timer"
)

// PointValues are the base points awarded for gameplay reports.
type PointValues struct {
	Enemy        int
	SpecialEnemy int
	PowerUp      int
}

// CardRules configures the inventory and card drops.
type CardRules struct {
	Capacity   int
	DropChance int // Percent chance a defeated enemy drops a card
	Effects    cards.EffectConfig
}

// Config holds every tunable of a session.
type Config struct {
	Lives             int
	ObjectiveScore    int
	GameOverCountdown float64 // Seconds on the unscaled clock
	AutoReturn        bool    // Return to the menu when the countdown ends
	HitDamage         float64 // Damage of a reported hit with no explicit strength

	Points PointValues
	Timer  timer.Config
	Score  score.Config
	Cards  CardRules
	Player actor.PlayerConfig
}

// DefaultConfig returns the standard session rules.
func DefaultConfig() Config {
	return Config{
		Lives:             3,
		ObjectiveScore:    1000,
		GameOverCountdown: 5,
		AutoReturn:        false,
		HitDamage:         25,
		Points: PointValues{
			Enemy:        100,
			SpecialEnemy: 250,
			PowerUp:      50,
		},
		Timer: timer.DefaultConfig(),
		Score: score.DefaultConfig(),
		Cards: CardRules{
			Capacity:   cards.DefaultCapacity,
			DropChance: 25,
			Effects:    cards.DefaultEffectConfig(),
		},
		Player: actor.DefaultPlayerConfig(),
	}
}
