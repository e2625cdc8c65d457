// Package timer implements the match clock: a countdown or count-up timer
// that publishes per-tick updates and one-shot threshold warnings.
package timer

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardrunner/internal/audio"
	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/events"
)

// MinLimit is the limit used when a non-positive one is configured.
const MinLimit = 0.001

// ErrInvalidLimit is logged when a non-positive limit is configured.
var ErrInvalidLimit = errors.New("timer: limit must be positive")

// Mode selects whether the timer counts down to zero or up to its limit.
type Mode int

const (
	Countdown Mode = iota
	CountUp
)

func (m Mode) String() string {
	if m == CountUp {
		return "count_up"
	}
	return "countdown"
}

// ParseMode converts a config string into a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "countdown", "":
		return Countdown, true
	case "count_up", "countup":
		return CountUp, true
	}
	return Countdown, false
}

// Config holds timer tunables. Thresholds only apply in countdown mode.
type Config struct {
	Limit    float64
	Urgent   float64
	Critical float64
	Mode     Mode
}

// DefaultConfig returns a three minute countdown warning at 30s and 10s.
func DefaultConfig() Config {
	return Config{
		Limit:    180,
		Urgent:   30,
		Critical: 10,
		Mode:     Countdown,
	}
}

// Engine is the match timer. It never reads a wall clock; the owner drives it
// with Tick.
type Engine struct {
	mode      Mode
	baseLimit float64
	limit     float64
	remaining float64
	elapsed   float64

	urgent   float64
	critical float64

	active        bool
	paused        bool
	urgentFired   bool
	criticalFired bool

	bus   *events.Bus
	audio audio.Player
	log   *log.Logger
}

// New creates an inactive timer configured with cfg.
// Thresholds that violate urgent > critical >= 0 fall back to the defaults.
func New(cfg Config, bus *events.Bus, player audio.Player, logger *log.Logger) *Engine {
	e := &Engine{
		mode:     cfg.Mode,
		urgent:   cfg.Urgent,
		critical: cfg.Critical,
		bus:      bus,
		audio:    audio.OrNop(player),
		log:      core.Logger(logger),
	}
	if e.critical < 0 || e.urgent <= e.critical {
		d := DefaultConfig()
		e.log.Warn("invalid timer thresholds, using defaults",
			"urgent", cfg.Urgent, "critical", cfg.Critical)
		e.urgent, e.critical = d.Urgent, d.Critical
	}
	e.Configure(cfg.Limit)
	return e
}

// Configure sets a new limit and reinitialises remaining and elapsed time.
// A non-positive limit is clamped to MinLimit and false is returned.
func (e *Engine) Configure(limit float64) bool {
	ok := true
	if limit <= 0 {
		e.log.Warn("timer configuration error", "err", ErrInvalidLimit, "limit", limit, "using", MinLimit)
		limit = MinLimit
		ok = false
	}
	e.baseLimit = limit
	e.limit = limit
	e.rewind()
	return ok
}

func (e *Engine) rewind() {
	e.remaining = e.limit
	e.elapsed = 0
	e.urgentFired = false
	e.criticalFired = false
}

// Start activates the timer. It refuses when already active or when a
// countdown has nothing left to count.
func (e *Engine) Start() bool {
	if e.active {
		e.log.Warn("timer already active")
		return false
	}
	if e.mode == Countdown && e.remaining <= 0 {
		e.log.Warn("timer has no time left, not starting")
		return false
	}
	e.active = true
	e.paused = false
	e.log.Debug("timer started", "mode", e.mode, "limit", e.limit)
	e.bus.Publish(events.TimerStarted{})
	return true
}

// Pause suspends an active timer.
func (e *Engine) Pause() {
	if !e.active || e.paused {
		return
	}
	e.paused = true
	e.bus.Publish(events.TimerPaused{})
}

// Resume continues a paused timer.
func (e *Engine) Resume() {
	if !e.active || !e.paused {
		return
	}
	e.paused = false
	e.bus.Publish(events.TimerResumed{})
}

// Stop deactivates the timer. Stopping an inactive timer publishes nothing.
func (e *Engine) Stop() {
	e.paused = false
	if !e.active {
		return
	}
	e.active = false
	e.log.Debug("timer stopped", "remaining", e.remaining, "elapsed", e.elapsed)
	e.bus.Publish(events.TimerStopped{})
}

// Reset silently deactivates the timer and restores the configured limit,
// dropping any time added or removed during the match.
func (e *Engine) Reset() {
	e.active = false
	e.paused = false
	e.limit = e.baseLimit
	e.rewind()
}

// Tick advances the timer by dt seconds.
func (e *Engine) Tick(dt float64) {
	if dt < 0 {
		e.log.Warn("negative timer delta ignored", "dt", dt)
		return
	}
	if !e.active || e.paused {
		return
	}

	switch e.mode {
	case Countdown:
		e.remaining -= dt
		e.elapsed += dt
		if e.remaining <= 0 {
			e.remaining = 0
			e.elapsed = e.limit
			e.exhaust()
			return
		}
		e.checkThresholds()
	case CountUp:
		e.elapsed += dt
		if e.elapsed >= e.limit {
			e.elapsed = e.limit
			e.remaining = 0
			e.exhaust()
			return
		}
		e.remaining = e.limit - e.elapsed
	}

	e.publishUpdate()
}

// AddTime grants extra time to an active timer. A countdown is capped at its
// limit; a count-up timer has its limit extended instead. Warnings re-arm
// independently once remaining time rises above their threshold.
func (e *Engine) AddTime(d float64) bool {
	if d < 0 {
		e.log.Warn("negative time addition ignored", "delta", d)
		return false
	}
	if !e.active {
		e.log.Debug("add time on inactive timer ignored", "delta", d)
		return false
	}

	switch e.mode {
	case Countdown:
		e.remaining += d
		if e.remaining > e.limit {
			e.remaining = e.limit
		}
	case CountUp:
		e.limit += d
		e.remaining = e.limit - e.elapsed
	}

	if e.remaining > e.urgent {
		e.urgentFired = false
	}
	if e.remaining > e.critical {
		e.criticalFired = false
	}

	e.publishUpdate()
	return true
}

// RemoveTime takes time away from an active countdown. Reaching zero
// exhausts the timer immediately.
func (e *Engine) RemoveTime(d float64) bool {
	if d < 0 {
		e.log.Warn("negative time removal ignored", "delta", d)
		return false
	}
	if e.mode != Countdown || !e.active {
		return false
	}

	e.remaining -= d
	if e.remaining <= 0 {
		e.remaining = 0
		e.exhaust()
		return true
	}
	e.checkThresholds()
	e.publishUpdate()
	return true
}

// checkThresholds fires at most one warning. Critical wins over urgent and
// also latches it so urgent never follows critical.
func (e *Engine) checkThresholds() {
	if e.mode != Countdown {
		return
	}
	if !e.criticalFired && e.remaining <= e.critical {
		e.criticalFired = true
		// Jumping straight past urgent counts as its warning; it is not replayed later.
		e.urgentFired = true
		e.log.Debug("time critical", "remaining", e.remaining)
		e.bus.Publish(events.TimeWarning{Level: events.WarningCritical, Remaining: e.remaining})
		e.audio.PlayCue(audio.CueCritical)
	} else if !e.urgentFired && e.remaining <= e.urgent {
		e.urgentFired = true
		e.log.Debug("time urgent", "remaining", e.remaining)
		e.bus.Publish(events.TimeWarning{Level: events.WarningUrgent, Remaining: e.remaining})
		e.audio.PlayCue(audio.CueUrgent)
	}
}

func (e *Engine) exhaust() {
	e.active = false
	e.paused = false
	e.log.Info("time exhausted", "mode", e.mode, "limit", e.limit)
	e.bus.Publish(events.TimeExhausted{})
	e.audio.PlayCue(audio.CueTimeUp)
}

func (e *Engine) publishUpdate() {
	e.bus.Publish(events.TimeUpdated{Remaining: e.remaining, Elapsed: e.elapsed})
}

// Mode returns the counting direction.
func (e *Engine) Mode() Mode { return e.mode }

// Limit returns the current limit in seconds.
func (e *Engine) Limit() float64 { return e.limit }

// Remaining returns the seconds left before exhaustion.
func (e *Engine) Remaining() float64 { return e.remaining }

// Elapsed returns the seconds counted so far.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// Active reports whether the timer is running or paused.
func (e *Engine) Active() bool { return e.active }

// Paused reports whether an active timer is suspended.
func (e *Engine) Paused() bool { return e.paused }

// UrgentFired reports whether the urgent warning is latched.
func (e *Engine) UrgentFired() bool { return e.urgentFired }

// CriticalFired reports whether the critical warning is latched.
func (e *Engine) CriticalFired() bool { return e.criticalFired }

// Display returns the value a HUD shows: remaining time for a countdown,
// elapsed time for a count-up timer.
func (e *Engine) Display() float64 {
	if e.mode == CountUp {
		return e.elapsed
	}
	return e.remaining
}

// Progress returns how much of the limit has been used, in [0, 1].
func (e *Engine) Progress() float64 {
	if e.limit <= 0 {
		return 1
	}
	p := e.elapsed / e.limit
	if e.mode == Countdown {
		p = 1 - e.remaining/e.limit
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
