// Package events defines the notifications the game-flow core emits and the
// synchronous bus that delivers them to presentation collaborators.
package events

import "github.com/vovakirdan/cardrunner/internal/core"

// Event is a notification published on a Bus.
type Event interface {
	gameEvent()
}

// PhaseChanged is published once per accepted phase transition.
type PhaseChanged struct {
	From core.Phase
	To   core.Phase
}

func (PhaseChanged) gameEvent() {}

// MatchStarted is published after a match has been set up and the timer started.
type MatchStarted struct {
	SessionID string
	Lives     int
	TimeLimit float64
}

func (MatchStarted) gameEvent() {}

// GameOverReason describes why a match ended.
type GameOverReason int

const (
	ReasonTimeUp    GameOverReason = iota // Countdown reached zero
	ReasonNoLives                         // Last life lost
)

func (r GameOverReason) String() string {
	switch r {
	case ReasonTimeUp:
		return "time_up"
	case ReasonNoLives:
		return "no_lives"
	default:
		return "unknown"
	}
}

// GameOver is published when a match ends.
type GameOver struct {
	SessionID string
	Reason    GameOverReason
	Points    int
	Record    int
}

func (GameOver) gameEvent() {}

// CountdownElapsed is published when the game-over screen countdown finishes.
type CountdownElapsed struct{}

func (CountdownElapsed) gameEvent() {}

// LivesChanged is published whenever the lives counter changes.
type LivesChanged struct {
	Lives int
}

func (LivesChanged) gameEvent() {}

// ObjectiveReached is published the first time a match reaches the target score.
type ObjectiveReached struct {
	Points    int
	Objective int
}

func (ObjectiveReached) gameEvent() {}

// PointsChanged carries the new point total.
type PointsChanged struct {
	Points int
	Gained int
}

func (PointsChanged) gameEvent() {}

// ComboChanged carries the new combo count.
type ComboChanged struct {
	Combo int
}

func (ComboChanged) gameEvent() {}

// MultiplierChanged carries the new multiplier.
type MultiplierChanged struct {
	Multiplier int
}

func (MultiplierChanged) gameEvent() {}

// NewRecord is published when the persisted record is beaten.
type NewRecord struct {
	Record int
}

func (NewRecord) gameEvent() {}

// TimerStarted is published when the timer becomes active.
type TimerStarted struct{}

func (TimerStarted) gameEvent() {}

// TimerPaused is published when an active timer is paused.
type TimerPaused struct{}

func (TimerPaused) gameEvent() {}

// TimerResumed is published when a paused timer resumes.
type TimerResumed struct{}

func (TimerResumed) gameEvent() {}

// TimerStopped is published when an active timer is stopped.
type TimerStopped struct{}

func (TimerStopped) gameEvent() {}

// TimeUpdated is published on every tick that did not exhaust the timer.
type TimeUpdated struct {
	Remaining float64
	Elapsed   float64
}

func (TimeUpdated) gameEvent() {}

// WarningLevel identifies a time threshold.
type WarningLevel int

const (
	WarningUrgent WarningLevel = iota
	WarningCritical
)

func (w WarningLevel) String() string {
	if w == WarningCritical {
		return "critical"
	}
	return "urgent"
}

// TimeWarning is published once when remaining time crosses a threshold.
type TimeWarning struct {
	Level     WarningLevel
	Remaining float64
}

func (TimeWarning) gameEvent() {}

// TimeExhausted is published when the timer runs out.
type TimeExhausted struct{}

func (TimeExhausted) gameEvent() {}

// CardAdded is published when a card enters the inventory.
type CardAdded struct {
	CardID string
	Name   string
	Slot   int
}

func (CardAdded) gameEvent() {}

// CardRemoved is published when a card leaves the inventory.
type CardRemoved struct {
	CardID string
	Name   string
}

func (CardRemoved) gameEvent() {}

// CardUsed is published after a card's effect has been dispatched.
type CardUsed struct {
	CardID   string
	Name     string
	Consumed bool
}

func (CardUsed) gameEvent() {}

// InventoryUpdated is published after any change to the inventory contents.
type InventoryUpdated struct {
	Count    int
	Capacity int
}

func (InventoryUpdated) gameEvent() {}

// EffectStarted is published when a timed effect begins or is refreshed.
type EffectStarted struct {
	Effect   string
	Duration float64
}

func (EffectStarted) gameEvent() {}

// EffectExpired is published when a timed effect runs out or is cancelled.
type EffectExpired struct {
	Effect string
}

func (EffectExpired) gameEvent() {}
