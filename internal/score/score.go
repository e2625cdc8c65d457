// Package score tracks points, the combo counter and its multiplier, and the
// persisted best score.
package score

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardrunner/internal/audio"
	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/events"
)

// RecordKey is the preference key holding the best score.
const RecordKey = "record.points"

// Prefs is the persistence the engine needs for the record.
type Prefs interface {
	GetInt(key string, def int) int
	SetInt(key string, value int)
	Flush() error
}

// Raiser is implemented by prefs that can compare and store a maximum in one
// step, so engines sharing a store never lower each other's record.
type Raiser interface {
	RaiseInt(key string, value int) (int, bool)
}

// Config holds scoring tunables.
type Config struct {
	BaseMultiplier int
	MaxMultiplier  int
	ComboStep      int     // Combo increments per multiplier step
	ComboBonusUnit int     // Flat bonus per combo count when combo > 1
	IdleWindow     float64 // Seconds without scoring before the multiplier decays
	BreakPenalty   int     // Multiplier lost when a combo breaks
}

// DefaultConfig returns the standard scoring rules.
func DefaultConfig() Config {
	return Config{
		BaseMultiplier: 1,
		MaxMultiplier:  10,
		ComboStep:      5,
		ComboBonusUnit: 25,
		IdleWindow:     5,
		BreakPenalty:   2,
	}
}

func (c Config) sanitized() Config {
	d := DefaultConfig()
	if c.BaseMultiplier < 1 {
		c.BaseMultiplier = d.BaseMultiplier
	}
	if c.MaxMultiplier < c.BaseMultiplier {
		c.MaxMultiplier = c.BaseMultiplier
	}
	if c.ComboStep < 1 {
		c.ComboStep = d.ComboStep
	}
	if c.ComboBonusUnit < 0 {
		c.ComboBonusUnit = 0
	}
	if c.IdleWindow <= 0 {
		c.IdleWindow = d.IdleWindow
	}
	if c.BreakPenalty < 0 {
		c.BreakPenalty = d.BreakPenalty
	}
	return c
}

// Engine owns the score state of one session.
type Engine struct {
	cfg Config

	points     int
	multiplier int
	combo      int
	record     int
	lastAction float64
	comboBroke bool // Set by BreakCombo, consumed by the next Update

	clock core.Clock
	prefs Prefs
	bus   *events.Bus
	audio audio.Player
	log   *log.Logger
}

// New creates an engine and loads the record from prefs.
// The clock supplies the logical time used for idle decay.
func New(cfg Config, clock core.Clock, prefs Prefs, bus *events.Bus, player audio.Player, logger *log.Logger) *Engine {
	e := &Engine{
		cfg:   cfg.sanitized(),
		clock: clock,
		prefs: prefs,
		bus:   bus,
		audio: audio.OrNop(player),
		log:   core.Logger(logger),
	}
	if prefs != nil {
		e.record = prefs.GetInt(RecordKey, 0)
		if e.record < 0 {
			e.record = 0
		}
	}
	e.multiplier = e.cfg.BaseMultiplier
	e.lastAction = e.now()
	return e
}

func (e *Engine) now() float64 {
	if e.clock == nil {
		return 0
	}
	return e.clock.Now()
}

// AddPoints awards base × multiplier points and returns the total gained,
// including any combo bonus. Negative base values are rejected.
func (e *Engine) AddPoints(base int, countsForCombo bool) int {
	if base < 0 {
		e.log.Warn("negative points rejected", "base", base)
		return 0
	}

	gained := base * e.multiplier
	e.points += gained

	if countsForCombo {
		e.combo++
		if e.combo%e.cfg.ComboStep == 0 && e.multiplier < e.cfg.MaxMultiplier {
			e.multiplier++
			e.log.Debug("multiplier up", "multiplier", e.multiplier, "combo", e.combo)
			e.bus.Publish(events.MultiplierChanged{Multiplier: e.multiplier})
			e.audio.PlayCue(audio.CueMultiplier)
		}
		if e.combo > 1 {
			bonus := e.cfg.ComboBonusUnit * e.combo
			e.points += bonus
			gained += bonus
		}
		e.bus.Publish(events.ComboChanged{Combo: e.combo})
	}

	e.lastAction = e.now()
	e.bus.Publish(events.PointsChanged{Points: e.points, Gained: gained})
	e.audio.PlayCue(audio.CuePoints)
	e.CheckRecord()
	return gained
}

// BreakCombo clears the combo and drops the multiplier by the break penalty.
// Idle decay is skipped on the next Update.
func (e *Engine) BreakCombo() {
	if e.combo == 0 {
		return
	}
	e.combo = 0
	e.multiplier -= e.cfg.BreakPenalty
	if e.multiplier < e.cfg.BaseMultiplier {
		e.multiplier = e.cfg.BaseMultiplier
	}
	e.comboBroke = true
	e.log.Debug("combo broken", "multiplier", e.multiplier)
	e.bus.Publish(events.ComboChanged{Combo: 0})
	e.bus.Publish(events.MultiplierChanged{Multiplier: e.multiplier})
}

// Update applies idle decay: after IdleWindow seconds without scoring the
// multiplier drops by one and the window restarts, so long idle periods
// decay one step per window.
func (e *Engine) Update(now float64) {
	if e.comboBroke {
		e.comboBroke = false
		return
	}
	if now-e.lastAction <= e.cfg.IdleWindow || e.multiplier <= e.cfg.BaseMultiplier {
		return
	}
	e.multiplier--
	e.lastAction = now
	e.log.Debug("multiplier decayed", "multiplier", e.multiplier)
	e.bus.Publish(events.MultiplierChanged{Multiplier: e.multiplier})
}

// CheckRecord persists the current points when they beat the record.
// The stored record is re-read first since other sessions may share prefs.
func (e *Engine) CheckRecord() bool {
	if e.prefs != nil {
		if stored := e.prefs.GetInt(RecordKey, 0); stored > e.record {
			e.record = stored
		}
	}
	if e.points <= e.record {
		return false
	}
	if e.prefs != nil {
		if r, ok := e.prefs.(Raiser); ok {
			best, raised := r.RaiseInt(RecordKey, e.points)
			if !raised {
				e.record = best
				return false
			}
		} else {
			e.prefs.SetInt(RecordKey, e.points)
		}
		if err := e.prefs.Flush(); err != nil {
			e.log.Warn("cannot persist record", "err", err, "record", e.points)
		}
	}
	e.record = e.points
	e.bus.Publish(events.NewRecord{Record: e.record})
	e.audio.PlayCue(audio.CueRecord)
	return true
}

// Reset restores points, combo and multiplier. The record is kept.
func (e *Engine) Reset() {
	e.points = 0
	e.combo = 0
	e.multiplier = e.cfg.BaseMultiplier
	e.comboBroke = false
	e.lastAction = e.now()
	e.bus.Publish(events.PointsChanged{Points: 0})
	e.bus.Publish(events.ComboChanged{Combo: 0})
	e.bus.Publish(events.MultiplierChanged{Multiplier: e.multiplier})
}

// Points returns the current score.
func (e *Engine) Points() int { return e.points }

// Multiplier returns the current multiplier.
func (e *Engine) Multiplier() int { return e.multiplier }

// Combo returns the current combo count.
func (e *Engine) Combo() int { return e.combo }

// Record returns the best score seen.
func (e *Engine) Record() int { return e.record }

// Config returns the rules the engine runs with.
func (e *Engine) Config() Config { return e.cfg }

// Rank returns the letter grade for the current points.
func (e *Engine) Rank() string { return Rank(e.points) }
