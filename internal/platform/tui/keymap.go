package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cardrunner/internal/core"
)

// KeyMap defines the HUD key bindings.
type KeyMap struct {
	Start         key.Binding
	Pause         key.Binding
	Restart       key.Binding
	Menu          key.Binding
	Quit          key.Binding
	Help          key.Binding
	Draw          key.Binding
	UseCard       key.Binding
	DefeatEnemy   key.Binding
	DefeatSpecial key.Binding
	PowerUp       key.Binding
	TakeHit       key.Binding
	BreakCombo    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Draw, k.UseCard, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Restart, k.Menu},
		{k.Draw, k.UseCard, k.DefeatEnemy, k.DefeatSpecial},
		{k.PowerUp, k.TakeHit, k.BreakCombo},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m", "b"),
			key.WithHelp("m/b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Draw: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "draw card"),
		),
		UseCard: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "use card"),
		),
		DefeatEnemy: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "defeat enemy"),
		),
		DefeatSpecial: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "defeat special"),
		),
		PowerUp: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "power-up"),
		),
		TakeHit: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "take hit"),
		),
		BreakCombo: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "break combo"),
		),
	}
}

// MapKey translates a key message into actions on frame.
// It returns true if the key was a quit request.
func (k KeyMap) MapKey(msg tea.KeyMsg, frame *core.InputFrame) bool {
	switch {
	case key.Matches(msg, k.Quit):
		frame.Set(core.ActionQuit)
		return true
	case key.Matches(msg, k.Start):
		frame.Set(core.ActionStart)
	case key.Matches(msg, k.Pause):
		frame.Set(core.ActionPause)
	case key.Matches(msg, k.Restart):
		frame.Set(core.ActionRestart)
	case key.Matches(msg, k.Menu):
		frame.Set(core.ActionMenu)
	case key.Matches(msg, k.Draw):
		frame.Set(core.ActionDraw)
	case key.Matches(msg, k.UseCard):
		frame.UseSlot(slotForKey(msg.String()))
	case key.Matches(msg, k.DefeatEnemy):
		frame.Set(core.ActionDefeatEnemy)
	case key.Matches(msg, k.DefeatSpecial):
		frame.Set(core.ActionDefeatSpecial)
	case key.Matches(msg, k.PowerUp):
		frame.Set(core.ActionCollectPowerUp)
	case key.Matches(msg, k.TakeHit):
		frame.Set(core.ActionTakeHit)
	case key.Matches(msg, k.BreakCombo):
		frame.Set(core.ActionBreakCombo)
	}
	return false
}

// slotForKey converts "1".."9" into a zero-based slot.
func slotForKey(s string) int {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0
	}
	return int(s[0] - '1')
}
