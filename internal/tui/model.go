// Package tui is the interactive week browser.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/weekgrid/internal/calendar"
	"github.com/julianstephens/weekgrid/internal/catalog"
	"github.com/julianstephens/weekgrid/internal/config"
	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/grid"
	"github.com/julianstephens/weekgrid/internal/models"
	"github.com/julianstephens/weekgrid/internal/stats"
	"github.com/julianstephens/weekgrid/internal/storage"
)

type Model struct {
	store       storage.Provider
	activeHours *config.Store[models.ActiveHoursConfig]
	state       constants.SessionState
	keys        KeyMap
	help        help.Model

	intervals []models.ActivityInterval
	weeks     []models.WeekInfo
	current   time.Time
	// filterIndex 0 shows every category; i > 0 shows AllCategories()[i-1].
	filterIndex int
	hours       models.ActiveHoursConfig
	grid        models.Grid

	status   string
	quitting bool
	width    int
	height   int
}

// NewModel reads every interval once and opens on the latest week with
// activity, or the current week when there is none.
func NewModel(store storage.Provider, activeHours *config.Store[models.ActiveHoursConfig]) (Model, error) {
	intervals, err := store.GetAllIntervals()
	if err != nil {
		return Model{}, fmt.Errorf("failed to read intervals: %w", err)
	}

	weeks := catalog.DeriveAvailableWeeks(intervals)
	current := calendar.WeekStart(time.Now())
	if latest, ok := catalog.DefaultWeek(weeks); ok {
		current = latest.WeekStart
	}

	m := Model{
		store:       store,
		activeHours: activeHours,
		state:       constants.StateGrid,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		intervals:   intervals,
		weeks:       weeks,
		current:     current,
		hours:       activeHours.Load(),
	}
	m.rebuild()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) filterCategory() (models.Category, bool) {
	if m.filterIndex == 0 {
		return "", false
	}
	return models.AllCategories()[m.filterIndex-1], true
}

func (m *Model) rebuild() {
	var filter grid.CategoryFilter
	if c, ok := m.filterCategory(); ok {
		filter = grid.OnlyCategories(c)
	}
	m.grid = grid.BuildFiltered(catalog.IntervalsForWeek(m.intervals, m.current), m.current, filter)
}

func (m Model) summary() models.Summary {
	return stats.Summarize(m.grid, m.hours.Window())
}
