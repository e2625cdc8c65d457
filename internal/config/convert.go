package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardrunner/internal/actor"
	"github.com/vovakirdan/cardrunner/internal/cards"
	"github.com/vovakirdan/cardrunner/internal/game"
	"github.com/vovakirdan/cardrunner/internal/score"
	"github.com/vovakirdan/cardrunner/internal/timer"
)

// Validate reports every invalid value in cfg.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Session.Lives < 1 {
		add("session.lives must be at least 1, got %d", c.Session.Lives)
	}
	if c.Session.ObjectiveScore < 0 {
		add("session.objective_score must not be negative, got %d", c.Session.ObjectiveScore)
	}
	if c.Session.GameOverCountdown < 0 {
		add("session.game_over_countdown must not be negative, got %g", c.Session.GameOverCountdown)
	}
	if c.Session.HitDamage < 0 {
		add("session.hit_damage must not be negative, got %g", c.Session.HitDamage)
	}

	if _, ok := timer.ParseMode(c.Timer.Mode); !ok {
		add("timer.mode %q is not countdown or count_up", c.Timer.Mode)
	}
	if c.Timer.Limit < timer.MinLimit {
		add("timer.limit must be at least %g, got %g", timer.MinLimit, c.Timer.Limit)
	}
	if c.Timer.Critical < 0 || c.Timer.Urgent < c.Timer.Critical {
		add("timer thresholds need 0 <= critical <= urgent, got urgent=%g critical=%g", c.Timer.Urgent, c.Timer.Critical)
	}

	if c.Score.BaseMultiplier < 1 {
		add("score.base_multiplier must be at least 1, got %d", c.Score.BaseMultiplier)
	}
	if c.Score.MaxMultiplier < c.Score.BaseMultiplier {
		add("score.max_multiplier %d is below base_multiplier %d", c.Score.MaxMultiplier, c.Score.BaseMultiplier)
	}
	if c.Score.ComboStep < 1 {
		add("score.combo_step must be at least 1, got %d", c.Score.ComboStep)
	}
	if c.Score.IdleWindow <= 0 {
		add("score.idle_window must be positive, got %g", c.Score.IdleWindow)
	}

	if c.Cards.Capacity < 0 {
		add("cards.capacity must not be negative, got %d", c.Cards.Capacity)
	}
	if c.Cards.DropChance < 0 || c.Cards.DropChance > 100 {
		add("cards.drop_chance must be within 0..100, got %d", c.Cards.DropChance)
	}
	seen := make(map[string]bool, len(c.Cards.Catalog))
	for i, cc := range c.Cards.Catalog {
		if cc.ID == "" {
			add("cards.catalog[%d] has no id", i)
		} else if seen[cc.ID] {
			add("cards.catalog[%d] duplicates id %q", i, cc.ID)
		}
		seen[cc.ID] = true
		if _, err := cards.ParseRarity(cc.Rarity); err != nil {
			add("cards.catalog[%d]: %w", i, err)
		}
		if _, err := cards.ParseKind(cc.Kind); err != nil {
			add("cards.catalog[%d]: %w", i, err)
		}
	}

	if c.Player.MaxHealth <= 0 {
		add("player.max_health must be positive, got %g", c.Player.MaxHealth)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		add("log.level: %w", err)
	}

	return errors.Join(errs...)
}

// Game converts cfg into session rules.
func (c Config) Game() (game.Config, error) {
	mode, ok := timer.ParseMode(c.Timer.Mode)
	if !ok {
		return game.Config{}, fmt.Errorf("config: unknown timer mode %q", c.Timer.Mode)
	}

	e := c.Cards.Effects
	return game.Config{
		Lives:             c.Session.Lives,
		ObjectiveScore:    c.Session.ObjectiveScore,
		GameOverCountdown: c.Session.GameOverCountdown,
		AutoReturn:        c.Session.AutoReturn,
		HitDamage:         c.Session.HitDamage,
		Points: game.PointValues{
			Enemy:        c.Session.Points.Enemy,
			SpecialEnemy: c.Session.Points.SpecialEnemy,
			PowerUp:      c.Session.Points.PowerUp,
		},
		Timer: timer.Config{
			Limit:    c.Timer.Limit,
			Urgent:   c.Timer.Urgent,
			Critical: c.Timer.Critical,
			Mode:     mode,
		},
		Score: score.Config{
			BaseMultiplier: c.Score.BaseMultiplier,
			MaxMultiplier:  c.Score.MaxMultiplier,
			ComboStep:      c.Score.ComboStep,
			ComboBonusUnit: c.Score.ComboBonusUnit,
			IdleWindow:     c.Score.IdleWindow,
			BreakPenalty:   c.Score.BreakPenalty,
		},
		Cards: game.CardRules{
			Capacity:   c.Cards.Capacity,
			DropChance: c.Cards.DropChance,
			Effects: cards.EffectConfig{
				HealAmount:       e.HealAmount,
				DamageMultiplier: e.DamageMultiplier,
				DamageDuration:   e.DamageDuration,
				SpeedMultiplier:  e.SpeedMultiplier,
				SpeedDuration:    e.SpeedDuration,
				ShieldDuration:   e.ShieldDuration,
				BonusTime:        e.BonusTime,
				BonusPoints:      e.BonusPoints,
			},
		},
		Player: actor.PlayerConfig{
			MaxHealth:  c.Player.MaxHealth,
			AttackBase: c.Player.AttackBase,
			HitGrace:   c.Player.HitGrace,
		},
	}, nil
}

// Catalog builds the card catalog. An empty list yields the built-in
// catalog.
func (c Config) Catalog() (*cards.Catalog, error) {
	if len(c.Cards.Catalog) == 0 {
		return cards.DefaultCatalog(), nil
	}

	list := make([]cards.Card, 0, len(c.Cards.Catalog))
	for _, cc := range c.Cards.Catalog {
		rarity, err := cards.ParseRarity(cc.Rarity)
		if err != nil {
			return nil, fmt.Errorf("config: card %q: %w", cc.ID, err)
		}
		kind, err := cards.ParseKind(cc.Kind)
		if err != nil {
			return nil, fmt.Errorf("config: card %q: %w", cc.ID, err)
		}
		list = append(list, cards.Card{
			ID:          cc.ID,
			Name:        cc.Name,
			Description: cc.Description,
			Rarity:      rarity,
			Kind:        kind,
			EnergyCost:  cc.EnergyCost,
			Icon:        cc.Icon,
		})
	}
	return cards.NewCatalog(list...), nil
}

// LogLevel returns the configured level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
