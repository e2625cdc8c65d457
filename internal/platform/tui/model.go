package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/game"
)

// Model is the Bubble Tea model that hosts one session.
type Model struct {
	session     *game.Session
	keys        KeyMap
	help        help.Model
	table       table.Model
	inputFrame  core.InputFrame
	interval    time.Duration
	dt          float64
	width       int
	height      int
	feed        *feed
	unsubscribe func()
	quitting    bool
}

// NewModel creates a model driving session at the runtime tick rate.
func NewModel(session *game.Session, cfg core.RuntimeConfig) Model {
	f := &feed{}
	h := help.New()
	h.ShowAll = false

	return Model{
		session:     session,
		keys:        DefaultKeyMap(),
		help:        h,
		table:       newInventoryTable(),
		inputFrame:  core.NewInputFrame(),
		interval:    cfg.TickInterval(),
		dt:          cfg.TickDelta(),
		width:       80,
		height:      24,
		feed:        f,
		unsubscribe: session.Bus().Subscribe(f.handle),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records input for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if m.keys.MapKey(msg, &m.inputFrame) {
		m.quitting = true
		m.detach()
		return m, tea.Quit
	}
	return m, nil
}

// handleTick applies the buffered input and advances the session.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	m.session.Step(m.inputFrame, m.dt)
	m.feed.age(m.dt)
	m.inputFrame.Clear()
	m.table.SetRows(inventoryRows(m.session.Inventory().Cards()))

	return m, tickCmd(m.interval)
}

func (m *Model) detach() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.session.Close()
}

// View renders the HUD.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// Session returns the hosted session.
func (m Model) Session() *game.Session { return m.session }

// Notices returns the HUD notices currently shown.
func (m Model) Notices() []string { return m.feed.texts() }

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool { return m.quitting }

// Run starts the Bubble Tea program for a new session.
func Run(opts Options) error {
	session := NewSession(opts)
	model := NewModel(session, opts.Runtime)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok && !fm.quitting {
		fm.detach()
	}
	return err
}
