package core

// Action represents a semantic game action, abstracted from physical key presses.
// Hosts map keys (or scripted inputs) to actions; the session only sees intents.
type Action int

const (
	ActionNone          Action = iota
	ActionStart                // Enter - start a match from the menu
	ActionPause                // P, Escape - pause/unpause the match
	ActionRestart              // R - restart after game over
	ActionMenu                 // M, B - return to the main menu
	ActionQuit                 // Q, Ctrl+C - exit the host
	ActionDraw                 // D - draw a card into the inventory
	ActionUseCard              // 1-9 - use the card in InputFrame.Slot
	ActionDefeatEnemy          // K - report a basic enemy defeat
	ActionDefeatSpecial        // L - report a special enemy defeat
	ActionCollectPowerUp       // U - report a power-up pickup
	ActionTakeHit              // X - report the player being hit
	ActionBreakCombo           // C - report a combo-breaking miss
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionMenu:
		return "Menu"
	case ActionQuit:
		return "Quit"
	case ActionDraw:
		return "Draw"
	case ActionUseCard:
		return "UseCard"
	case ActionDefeatEnemy:
		return "DefeatEnemy"
	case ActionDefeatSpecial:
		return "DefeatSpecial"
	case ActionCollectPowerUp:
		return "CollectPowerUp"
	case ActionTakeHit:
		return "TakeHit"
	case ActionBreakCombo:
		return "BreakCombo"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Slot is the zero-based inventory slot for ActionUseCard.
	Slot int

	// Damage is the hit strength for ActionTakeHit; zero means the host default.
	Damage float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// UseSlot marks ActionUseCard for the given slot.
func (f *InputFrame) UseSlot(slot int) {
	f.Set(ActionUseCard)
	f.Slot = slot
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered this frame.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Slot = 0
	f.Damage = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Slot = f.Slot
	clone.Damage = f.Damage
	return clone
}
