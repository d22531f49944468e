// internal/tui/view.go
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/arenaboard/internal/render"
)

var (
	tabStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("244"))
	activeTab   = lipgloss.NewStyle().Padding(0, 1).Bold(true).Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	panelRule   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// View renders the viewer based on its current state.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.state {
	case viewLoading:
		return fmt.Sprintf("\n  %s Loading leaderboard from %s...\n", m.spinner.View(), m.config.BaseURL())
	case viewFailed:
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + m.help.View(m.keys)
	case viewBoard:
		return m.boardView()
	default:
		return "Unknown state"
	}
}

// boardView renders tabs, the active table, the trace panel and help.
func (m *model) boardView() string {
	var b strings.Builder
	b.WriteString(m.tabsView() + "\n\n")

	if m.tableErr != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Could not build table: %v", m.tableErr)))
	} else {
		opts := render.Options{Width: m.width, NoColor: m.config.NoColor}
		if m.secondary {
			b.WriteString(render.SecondaryTable(m.table, opts))
		} else {
			cursor := m.cursor
			opts.Selected = &cursor
			opts.Note = m.config.Note(m.current())
			b.WriteString(render.CompetitionTable(m.table, opts))
		}
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}
	if m.selection != nil {
		b.WriteString("\n" + panelRule.Render(strings.Repeat("─", m.width)) + "\n")
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *model) tabsView() string {
	tabs := make([]string, len(m.tabs))
	for i, id := range m.tabs {
		title := m.dataset.Info[id].DisplayName(id)
		if i == m.active {
			tabs[i] = activeTab.Render(title)
		} else {
			tabs[i] = tabStyle.Render(title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
