package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cardrunner/internal/cards"
	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/events"
	"github.com/vovakirdan/cardrunner/internal/game"
	"github.com/vovakirdan/cardrunner/internal/timer"
)

const barWidth = 20

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle    = lipgloss.NewStyle().Bold(true)
	urgentStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	criticalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	goodStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

var noticeStyles = map[noticeKind]lipgloss.Style{
	noticeInfo: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	noticeGood: goodStyle,
	noticeWarn: urgentStyle,
	noticeBad:  criticalStyle,
}

func phaseLabel(p core.Phase) string {
	if p == core.PhaseGameOver {
		return "GAME OVER"
	}
	return strings.ToUpper(p.String())
}

func (m Model) render() string {
	snap := m.session.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("CARDRUNNER"))
	b.WriteString("  ")
	b.WriteString(phaseStyle.Render(phaseLabel(snap.Phase)))
	b.WriteString("\n\n")

	switch snap.Phase {
	case core.PhaseMenu:
		b.WriteString(m.renderMenu(snap))
	case core.PhaseGameOver:
		b.WriteString(m.renderGameOver(snap))
	default:
		b.WriteString(m.renderMatch(snap))
	}

	if len(m.feed.notices) > 0 {
		b.WriteString("\n")
		for _, n := range m.feed.notices {
			b.WriteString(noticeStyles[n.kind].Render("» " + n.text))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderMenu(snap game.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Record"), valueStyle.Render(strconv.Itoa(snap.Record)))
	fmt.Fprintf(&b, "%s reach %d points before the clock runs out\n",
		labelStyle.Render("Objective"), snap.Objective)
	b.WriteString("\n")
	b.WriteString(goodStyle.Render("Press enter to start"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderMatch(snap game.Snapshot) string {
	var b strings.Builder

	stat := func(label, value string) string {
		return labelStyle.Render(label) + " " + value
	}
	line := []string{
		stat("Time", m.renderTime(snap)),
		stat("Lives", valueStyle.Render(strings.Repeat("♥", max(snap.Lives, 0)))),
		stat("Points", valueStyle.Render(strconv.Itoa(snap.Points))),
		stat("Mult", valueStyle.Render(fmt.Sprintf("x%d", snap.Multiplier))),
		stat("Combo", valueStyle.Render(strconv.Itoa(snap.Combo))),
		stat("Rank", valueStyle.Render(snap.Rank)),
	}
	b.WriteString(strings.Join(line, "   "))
	b.WriteString("\n")

	objective := 1.0
	if snap.Objective > 0 {
		objective = float64(snap.Points) / float64(snap.Objective)
	}
	objLabel := fmt.Sprintf("%d/%d", snap.Points, snap.Objective)
	if snap.Reached {
		objLabel = goodStyle.Render(objLabel + " reached")
	}
	fmt.Fprintf(&b, "%s %s %s\n", labelStyle.Render("Objective"), bar(objective, barWidth), objLabel)

	health := 0.0
	if snap.MaxHealth > 0 {
		health = snap.Health / snap.MaxHealth
	}
	hp := fmt.Sprintf("%.0f/%.0f", snap.Health, snap.MaxHealth)
	if snap.Shielded {
		hp += " " + goodStyle.Render("shielded")
	}
	fmt.Fprintf(&b, "%s    %s %s\n", labelStyle.Render("Health"), bar(health, barWidth), hp)

	if len(snap.Effects) > 0 {
		parts := make([]string, len(snap.Effects))
		for i, e := range snap.Effects {
			parts[i] = fmt.Sprintf("%s %.1fs", e.Kind, e.Remaining)
		}
		fmt.Fprintf(&b, "%s   %s\n", labelStyle.Render("Effects"), strings.Join(parts, ", "))
	}

	b.WriteString("\n")
	b.WriteString(m.renderInventory(snap))
	b.WriteString("\n")

	if snap.Phase == core.PhasePaused {
		b.WriteString(urgentStyle.Render("Paused. Press p to resume."))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTime colours the clock by the configured thresholds.
func (m Model) renderTime(snap game.Snapshot) string {
	if snap.TimerMode == timer.CountUp {
		return valueStyle.Render(timer.Format(snap.Elapsed) + "/" + timer.Format(snap.Limit))
	}

	text := timer.Format(snap.Remaining)
	cfg := m.session.Config().Timer
	switch {
	case snap.Remaining <= cfg.Critical:
		return criticalStyle.Render(text)
	case snap.Remaining <= cfg.Urgent:
		return urgentStyle.Render(text)
	default:
		return valueStyle.Render(text)
	}
}

func (m Model) renderInventory(snap game.Snapshot) string {
	title := fmt.Sprintf("Cards %d/%d", len(snap.Cards), snap.Capacity)
	if len(snap.Cards) == 0 {
		return panelStyle.Render(title + "\n" + mutedStyle.Render("No cards. Press d to draw."))
	}
	return panelStyle.Render(title + "\n" + m.table.View())
}

func (m Model) renderGameOver(snap game.Snapshot) string {
	var b strings.Builder

	res, ok := m.session.LastResult()
	if ok {
		reason := "Time's up"
		if res.Reason == events.ReasonNoLives {
			reason = "Out of lives"
		}
		b.WriteString(criticalStyle.Render(reason))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "%s  %s\n", labelStyle.Render("Points"), valueStyle.Render(strconv.Itoa(res.Points)))
		fmt.Fprintf(&b, "%s  %s\n", labelStyle.Render("Record"), valueStyle.Render(strconv.Itoa(res.Record)))
		fmt.Fprintf(&b, "%s    %s\n", labelStyle.Render("Rank"), valueStyle.Render(res.Rank))
		fmt.Fprintf(&b, "%s    %s\n", labelStyle.Render("Time"), timer.Format(res.Duration))
		fmt.Fprintf(&b, "%s   %d\n", labelStyle.Render("Cards"), res.CardsUsed)
	}

	b.WriteString("\n")
	if snap.Countdown > 0 && m.session.Config().AutoReturn {
		fmt.Fprintf(&b, "Returning to menu in %ds\n", int(math.Ceil(snap.Countdown)))
	}
	b.WriteString(goodStyle.Render("Press enter or r to play again, m for the menu"))
	b.WriteString("\n")
	return b.String()
}

// bar renders a fraction as a fixed-width progress bar.
func bar(frac float64, width int) string {
	frac = math.Max(0, math.Min(1, frac))
	filled := int(math.Round(frac * float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func newInventoryTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 2},
		{Title: "Card", Width: 18},
		{Title: "Rarity", Width: 10},
		{Title: "Kind", Width: 10},
		{Title: "Cost", Width: 4},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(cards.DefaultCapacity+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t
}

func inventoryRows(list []cards.Card) []table.Row {
	rows := make([]table.Row, len(list))
	for i, c := range list {
		name := c.Name
		if c.Icon != "" {
			name = c.Icon + " " + name
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			name,
			c.Rarity.String(),
			c.Kind.String(),
			strconv.Itoa(c.EnergyCost),
		}
	}
	return rows
}
