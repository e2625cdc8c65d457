package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cardrunner/internal/storage"
	"github.com/vovakirdan/cardrunner/internal/timer"
)

// Scoreboard layout constants
const (
	minWidthForStats = 90  // Minimum width to show the stats sidebar
	statsWidth       = 26  // Width of the stats sidebar
	maxSessions      = 100 // Max sessions to load
)

// HistoryView selects which sessions the scoreboard lists.
type HistoryView int

const (
	ViewBest HistoryView = iota
	ViewRecent
)

func (v HistoryView) String() string {
	if v == ViewRecent {
		return "Recent"
	}
	return "Best"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	SwitchView key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.SwitchView, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchView},
		{k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "best/recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// sessionSource is the part of the store the scoreboard reads.
type sessionSource interface {
	TopSessions(limit int) ([]storage.SessionEntry, error)
	RecentSessions(limit int) ([]storage.SessionEntry, error)
	Stats() (*storage.Stats, error)
}

// ScoreboardModel is the Bubble Tea model for the session history screen.
type ScoreboardModel struct {
	source    sessionSource
	view      HistoryView
	sessions  []storage.SessionEntry
	stats     *storage.Stats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	showStats bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(source sessionSource, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		source:    source,
		keys:      DefaultScoreboardKeyMap(),
		help:      h,
		width:     width,
		height:    height,
		showStats: width >= minWidthForStats,
	}

	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Points", Width: 8},
		{Title: "Rank", Width: 4},
		{Title: "Ended", Width: 8},
		{Title: "Time", Width: 5},
		{Title: "Cards", Width: 5},
		{Title: "Date", Width: 12},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the sessions for the current view.
func (m *ScoreboardModel) load() {
	m.sessions, m.stats, m.loadErr = nil, nil, nil
	if m.source != nil {
		query := m.source.TopSessions
		if m.view == ViewRecent {
			query = m.source.RecentSessions
		}
		m.sessions, m.loadErr = query(maxSessions)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.source.Stats()
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current sessions.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(s.Points),
			s.Rank,
			endedLabel(s.Reason),
			timer.Format(s.Duration),
			strconv.Itoa(s.CardsUsed),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

func endedLabel(reason string) string {
	switch reason {
	case "time_up":
		return "time"
	case "no_lives":
		return "lives"
	default:
		return reason
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.SwitchView):
			m.view = 1 - m.view
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showStats = m.width >= minWidthForStats
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("SESSION HISTORY - %s", m.view)
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tablePanel := panelStyle.Render(m.renderTableContent())
	if m.showStats {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tablePanel, "  ", m.renderStats()))
	} else {
		b.WriteString(centerText(tablePanel, m.width))
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderStats renders the aggregate sidebar.
func (m ScoreboardModel) renderStats() string {
	style := panelStyle.Width(statsWidth)
	if m.stats == nil {
		return style.Render("Stats\n" + mutedStyle.Render("none"))
	}

	var sb strings.Builder
	sb.WriteString("Stats\n")
	sb.WriteString(strings.Repeat("-", statsWidth-4))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Sessions  %d\n", m.stats.Sessions)
	fmt.Fprintf(&sb, "Best      %d\n", m.stats.BestPoints)
	fmt.Fprintf(&sb, "Average   %.0f\n", m.stats.AvgPoints)
	fmt.Fprintf(&sb, "By time   %d\n", m.stats.TimeUps)
	fmt.Fprintf(&sb, "By lives  %d", m.stats.NoLives)
	return style.Render(sb.String())
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if m.loadErr != nil {
		return criticalStyle.Render("Could not load history: " + m.loadErr.Error())
	}
	if len(m.sessions) == 0 {
		emptyStyle := mutedStyle.Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nPlay a match to set a record!")
	}
	return m.table.View()
}

// Sessions returns the sessions currently listed.
func (m ScoreboardModel) Sessions() []storage.SessionEntry { return m.sessions }

// CurrentView reports which list is shown.
func (m ScoreboardModel) CurrentView() HistoryView { return m.view }

// centerText pads text so each line is centred in width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// RunScoreboard runs the session history screen.
func RunScoreboard(store *storage.Store, width, height int) error {
	var source sessionSource
	if store != nil {
		source = store
	}
	model := NewScoreboardModel(source, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
