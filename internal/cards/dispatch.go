package cards

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnrecognizedEffect is logged when a used card has no handler.
	ErrUnrecognizedEffect = errors.New("cards: unrecognized card effect")
	// ErrNoTarget is returned by a handler whose collaborator is not wired.
	ErrNoTarget = errors.New("cards: effect has no target")
	// ErrEffectRejected is returned when a collaborator refuses the effect.
	ErrEffectRejected = errors.New("cards: effect rejected")
)

// Target is the player-side collaborator card effects act on.
type Target interface {
	Heal(amount float64) float64
	SetDamageMultiplier(m float64)
	SetSpeedMultiplier(m float64)
	SetShielded(on bool)
}

// TimeMutator is the timer entry point card effects may use.
type TimeMutator interface {
	AddTime(d float64) bool
}

// PointMutator is the score entry point card effects may use.
type PointMutator interface {
	AddPoints(base int, countsForCombo bool) int
}

// Context is what an effect handler may touch. Handlers never reach into
// engine state beyond these entry points.
type Context struct {
	Target  Target
	Time    TimeMutator
	Points  PointMutator
	Effects *EffectTracker
}

// Handler applies the effect of one card.
type Handler func(ctx Context, card Card) error

// Registry maps card IDs to effect handlers.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler for a card ID.
// Panics if the ID already has a handler.
func (r *Registry) Register(id string, h Handler) {
	if _, exists := r.handlers[id]; exists {
		panic(fmt.Sprintf("cards: handler %q already registered", id))
	}
	r.handlers[id] = h
}

// Lookup returns the handler for a card ID.
func (r *Registry) Lookup(id string) (Handler, bool) {
	if r == nil {
		return nil, false
	}
	h, ok := r.handlers[id]
	return h, ok
}

// IDs returns the registered card IDs, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EffectConfig tunes the built-in handlers.
type EffectConfig struct {
	HealAmount       float64
	DamageMultiplier float64
	DamageDuration   float64
	SpeedMultiplier  float64
	SpeedDuration    float64
	ShieldDuration   float64
	BonusTime        float64
	BonusPoints      int
}

// DefaultEffectConfig returns the standard effect tunables.
func DefaultEffectConfig() EffectConfig {
	return EffectConfig{
		HealAmount:       50,
		DamageMultiplier: 2,
		DamageDuration:   10,
		SpeedMultiplier:  1.5,
		SpeedDuration:    10,
		ShieldDuration:   5,
		BonusTime:        15,
		BonusPoints:      500,
	}
}

// DefaultHandlers returns a registry with every built-in effect.
func DefaultHandlers(cfg EffectConfig) *Registry {
	r := NewRegistry()

	r.Register("heal", func(ctx Context, _ Card) error {
		if ctx.Target == nil {
			return ErrNoTarget
		}
		ctx.Target.Heal(cfg.HealAmount)
		return nil
	})

	r.Register("power_strike", timedBuff(EffectDamageBoost, cfg.DamageDuration,
		func(t Target) { t.SetDamageMultiplier(cfg.DamageMultiplier) },
		func(t Target) { t.SetDamageMultiplier(1) }))

	r.Register("gust", timedBuff(EffectSpeedBoost, cfg.SpeedDuration,
		func(t Target) { t.SetSpeedMultiplier(cfg.SpeedMultiplier) },
		func(t Target) { t.SetSpeedMultiplier(1) }))

	r.Register("divine_shield", timedBuff(EffectShield, cfg.ShieldDuration,
		func(t Target) { t.SetShielded(true) },
		func(t Target) { t.SetShielded(false) }))

	r.Register("hourglass", func(ctx Context, _ Card) error {
		if ctx.Time == nil {
			return ErrNoTarget
		}
		if !ctx.Time.AddTime(cfg.BonusTime) {
			return ErrEffectRejected
		}
		return nil
	})

	r.Register("treasure", func(ctx Context, _ Card) error {
		if ctx.Points == nil {
			return ErrNoTarget
		}
		ctx.Points.AddPoints(cfg.BonusPoints, false)
		return nil
	})

	return r
}

func timedBuff(kind EffectKind, duration float64, apply, revert func(Target)) Handler {
	return func(ctx Context, _ Card) error {
		if ctx.Target == nil || ctx.Effects == nil {
			return ErrNoTarget
		}
		t := ctx.Target
		ctx.Effects.Apply(kind, duration, func() { apply(t) }, func() { revert(t) })
		return nil
	}
}
