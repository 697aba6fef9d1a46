package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/weekgrid/internal/catalog"
	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/models"
	"github.com/julianstephens/weekgrid/internal/render"
)

var views = []constants.SessionState{constants.StateGrid, constants.StateSummary, constants.StateWeeks}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Tab):
			m.state = cycle(m.state, 1)
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = cycle(m.state, -1)
		case key.Matches(msg, m.keys.Prev):
			m.step(catalog.CanNavigatePrev, catalog.Prev, "No earlier weeks with activity")
		case key.Matches(msg, m.keys.Next):
			m.step(catalog.CanNavigateNext, catalog.Next, "No later weeks with activity")
		case key.Matches(msg, m.keys.ActiveHours):
			m.toggleActiveHours()
		case key.Matches(msg, m.keys.Category):
			m.filterIndex = (m.filterIndex + 1) % (len(models.AllCategories()) + 1)
			m.rebuild()
		}
	}
	return m, nil
}

func cycle(s constants.SessionState, delta int) constants.SessionState {
	for i, v := range views {
		if v == s {
			return views[(i+delta+len(views))%len(views)]
		}
	}
	return constants.StateGrid
}

type weekStep func(current time.Time, weeks []models.WeekInfo) (models.WeekInfo, bool)

// step moves to the neighbouring week with activity when can allows it.
func (m *Model) step(can func(time.Time, []models.WeekInfo) bool, next weekStep, blocked string) {
	if !can(m.current, m.weeks) {
		m.status = blocked
		return
	}
	w, ok := next(m.current, m.weeks)
	if !ok {
		m.status = blocked
		return
	}
	m.current = w.WeekStart
	m.rebuild()
}

// toggleActiveHours flips the window and saves it; a failed save is logged
// by the store and the toggle still applies for this session.
func (m *Model) toggleActiveHours() {
	m.hours.Enabled = !m.hours.Enabled
	m.activeHours.Save(m.hours)
	if m.hours.Enabled {
		m.status = "Active hours on (" + render.WindowLabel(m.hours.Window()) + ")"
	} else {
		m.status = "Active hours off"
	}
}
