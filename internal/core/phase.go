package core

// Phase is the game's current top-level mode.
// Exactly one phase is active at any instant.
type Phase int

const (
	PhaseMenu     Phase = iota // Main menu, clock running
	PhasePlaying               // Active match, clock running
	PhasePaused                // Match suspended, clock frozen
	PhaseGameOver              // Match ended, clock frozen
	PhaseLoading               // Session reload in progress, clock frozen
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "Menu"
	case PhasePlaying:
		return "Playing"
	case PhasePaused:
		return "Paused"
	case PhaseGameOver:
		return "GameOver"
	case PhaseLoading:
		return "Loading"
	default:
		return "Unknown"
	}
}

// Frozen reports whether the gameplay clock is stopped in this phase.
func (p Phase) Frozen() bool {
	switch p {
	case PhasePaused, PhaseGameOver, PhaseLoading:
		return true
	default:
		return false
	}
}
