// Package game implements the game-flow state machine and the session that
// orchestrates the timer, score, inventory and player around it.
package game

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/events"
)

// Trigger is an event that may move the state machine to another phase.
type Trigger int

const (
	TriggerStartMatch Trigger = iota
	TriggerPause
	TriggerResume
	TriggerTimerExhausted
	TriggerLivesExhausted
	TriggerRestart
	TriggerLoaded
	TriggerReturnToMenu
)

func (t Trigger) String() string {
	switch t {
	case TriggerStartMatch:
		return "StartMatch"
	case TriggerPause:
		return "Pause"
	case TriggerResume:
		return "Resume"
	case TriggerTimerExhausted:
		return "TimerExhausted"
	case TriggerLivesExhausted:
		return "LivesExhausted"
	case TriggerRestart:
		return "Restart"
	case TriggerLoaded:
		return "Loaded"
	case TriggerReturnToMenu:
		return "ReturnToMenu"
	default:
		return "Unknown"
	}
}

type transition struct {
	from    core.Phase
	trigger Trigger
}

var transitions = map[transition]core.Phase{
	{core.PhaseMenu, TriggerStartMatch}:        core.PhasePlaying,
	{core.PhasePlaying, TriggerPause}:          core.PhasePaused,
	{core.PhasePaused, TriggerResume}:          core.PhasePlaying,
	{core.PhasePlaying, TriggerTimerExhausted}: core.PhaseGameOver,
	{core.PhasePlaying, TriggerLivesExhausted}: core.PhaseGameOver,
	{core.PhaseGameOver, TriggerRestart}:       core.PhaseLoading,
	{core.PhaseLoading, TriggerLoaded}:         core.PhaseMenu,
}

// Next returns the phase a trigger leads to from the given phase.
// ReturnToMenu is legal from every phase except Menu itself.
func Next(from core.Phase, t Trigger) (core.Phase, bool) {
	if t == TriggerReturnToMenu {
		return core.PhaseMenu, from != core.PhaseMenu
	}
	to, ok := transitions[transition{from, t}]
	return to, ok
}

// StateMachine owns the current phase. It starts in Menu and has no
// terminal phase.
type StateMachine struct {
	phase   core.Phase
	bus     *events.Bus
	onScale func(frozen bool)
	log     *log.Logger
}

// NewStateMachine creates a machine in Menu. onScale is called with the
// clock binding of every phase entered, and once for Menu at construction.
func NewStateMachine(bus *events.Bus, onScale func(frozen bool), logger *log.Logger) *StateMachine {
	m := &StateMachine{
		phase:   core.PhaseMenu,
		bus:     bus,
		onScale: onScale,
		log:     core.Logger(logger),
	}
	if m.onScale != nil {
		m.onScale(m.phase.Frozen())
	}
	return m
}

// Phase returns the current phase.
func (m *StateMachine) Phase() core.Phase {
	return m.phase
}

// Fire applies a trigger. Triggers that are not legal from the current
// phase change nothing and report false.
func (m *StateMachine) Fire(t Trigger) (core.Phase, bool) {
	to, ok := Next(m.phase, t)
	if !ok {
		m.log.Debug("trigger ignored", "trigger", t, "phase", m.phase)
		return m.phase, false
	}
	m.ChangeState(to)
	return to, true
}

// ChangeState moves to p, rebinds the clock and publishes PhaseChanged.
// Changing to the current phase does nothing.
func (m *StateMachine) ChangeState(p core.Phase) bool {
	if p == m.phase {
		return false
	}
	from := m.phase
	m.phase = p
	if m.onScale != nil {
		m.onScale(p.Frozen())
	}
	m.log.Debug("phase changed", "from", from, "to", p)
	m.bus.Publish(events.PhaseChanged{From: from, To: p})
	return true
}
