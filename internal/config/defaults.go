package config

import (
	_ "embed"
)

//go:embed defaults/cardrunner.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when no file and no
// embedded default can be read.
func Default() Config {
	return Config{
		Session: SessionConfig{
			Lives:             3,
			ObjectiveScore:    1000,
			GameOverCountdown: 5,
			AutoReturn:        false,
			HitDamage:         25,
			Points: PointsConfig{
				Enemy:        100,
				SpecialEnemy: 250,
				PowerUp:      50,
			},
		},
		Timer: TimerConfig{
			Mode:     "countdown",
			Limit:    180,
			Urgent:   30,
			Critical: 10,
		},
		Score: ScoreConfig{
			BaseMultiplier: 1,
			MaxMultiplier:  10,
			ComboStep:      5,
			ComboBonusUnit: 25,
			IdleWindow:     5,
			BreakPenalty:   2,
		},
		Cards: CardsConfig{
			Capacity:   6,
			DropChance: 25,
			Effects: EffectsConfig{
				HealAmount:       50,
				DamageMultiplier: 2,
				DamageDuration:   10,
				SpeedMultiplier:  1.5,
				SpeedDuration:    10,
				ShieldDuration:   5,
				BonusTime:        15,
				BonusPoints:      500,
			},
		},
		Player: PlayerConfig{
			MaxHealth:  100,
			AttackBase: 10,
			HitGrace:   1.5,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.cardrunner/cardrunner.log",
		},
	}
}
