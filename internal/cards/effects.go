package cards

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/events"
)

// EffectKind identifies a timed effect. At most one effect of each kind is
// active at a time.
type EffectKind int

const (
	EffectDamageBoost EffectKind = iota // Outgoing damage multiplied
	EffectSpeedBoost                    // Movement speed multiplied
	EffectShield                        // Incoming damage ignored
)

func (k EffectKind) String() string {
	switch k {
	case EffectDamageBoost:
		return "damage_boost"
	case EffectSpeedBoost:
		return "speed_boost"
	case EffectShield:
		return "shield"
	default:
		return "unknown"
	}
}

// Effect is an active timed effect. Remaining only shrinks when the tracker
// is ticked, so a frozen clock preserves it.
type Effect struct {
	ID        uint64
	Kind      EffectKind
	Remaining float64
	Duration  float64

	revert func()
}

// EffectTracker holds the active timed effects and expires them from Tick.
type EffectTracker struct {
	effects []*Effect
	nextID  uint64

	bus *events.Bus
	log *log.Logger
}

// NewEffectTracker creates an empty tracker.
func NewEffectTracker(bus *events.Bus, logger *log.Logger) *EffectTracker {
	return &EffectTracker{
		bus: bus,
		log: core.Logger(logger),
	}
}

// Apply starts an effect, calling apply now and revert when it expires.
// Re-applying an active kind keeps the original revert and extends the
// remaining time to max(remaining, duration).
func (t *EffectTracker) Apply(kind EffectKind, duration float64, apply, revert func()) {
	if duration <= 0 {
		t.log.Warn("effect with non-positive duration ignored", "effect", kind, "duration", duration)
		return
	}

	for _, e := range t.effects {
		if e.Kind == kind {
			if duration > e.Remaining {
				e.Remaining = duration
			}
			e.Duration = duration
			t.log.Debug("effect refreshed", "effect", kind, "remaining", e.Remaining)
			t.bus.Publish(events.EffectStarted{Effect: kind.String(), Duration: e.Remaining})
			return
		}
	}

	if apply != nil {
		apply()
	}
	t.nextID++
	t.effects = append(t.effects, &Effect{
		ID:        t.nextID,
		Kind:      kind,
		Remaining: duration,
		Duration:  duration,
		revert:    revert,
	})
	t.log.Debug("effect started", "effect", kind, "duration", duration)
	t.bus.Publish(events.EffectStarted{Effect: kind.String(), Duration: duration})
}

// Tick counts every effect down by dt and expires the ones that run out.
// It returns the kinds that expired during this tick.
func (t *EffectTracker) Tick(dt float64) []EffectKind {
	if dt <= 0 || len(t.effects) == 0 {
		return nil
	}

	var expired []*Effect
	active := t.effects[:0]
	for _, e := range t.effects {
		e.Remaining -= dt
		if e.Remaining <= 0 {
			e.Remaining = 0
			expired = append(expired, e)
		} else {
			active = append(active, e)
		}
	}
	t.effects = active

	kinds := make([]EffectKind, 0, len(expired))
	for _, e := range expired {
		t.finish(e)
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// Clear cancels every active effect, reverting each one.
func (t *EffectTracker) Clear() {
	effects := t.effects
	t.effects = nil
	for _, e := range effects {
		t.finish(e)
	}
}

func (t *EffectTracker) finish(e *Effect) {
	if e.revert != nil {
		e.revert()
	}
	t.log.Debug("effect expired", "effect", e.Kind)
	t.bus.Publish(events.EffectExpired{Effect: e.Kind.String()})
}

// Active reports whether an effect of the given kind is running.
func (t *EffectTracker) Active(kind EffectKind) bool {
	return t.Remaining(kind) > 0
}

// Remaining returns the seconds left on an effect, or 0 if inactive.
func (t *EffectTracker) Remaining(kind EffectKind) float64 {
	for _, e := range t.effects {
		if e.Kind == kind {
			return e.Remaining
		}
	}
	return 0
}

// Effects returns a copy of the active effects in start order.
func (t *EffectTracker) Effects() []Effect {
	out := make([]Effect, 0, len(t.effects))
	for _, e := range t.effects {
		c := *e
		c.revert = nil
		out = append(out, c)
	}
	return out
}

// Len returns the number of active effects.
func (t *EffectTracker) Len() int {
	return len(t.effects)
}
