package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/render"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateSummary:
		content = render.Summary(m.summary())
	case constants.StateWeeks:
		content = render.Weeks(m.weeks, m.current)
	default:
		content = render.Grid(m.grid, m.hours.Window())
	}

	var status string
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		status,
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	titles := []string{"Grid", "Summary", "Weeks"}
	var tabs []string
	for i, title := range titles {
		if m.state == views[i] {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}

	filter := "All categories"
	if c, ok := m.filterCategory(); ok {
		filter = render.Label(c)
	}
	tabs = append(tabs, filterStyle.Render("["+filter+"]"))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
