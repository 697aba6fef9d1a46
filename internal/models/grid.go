package models

import (
	"time"

	"github.com/julianstephens/weekgrid/internal/constants"
)

// Segment is the fractional [StartFraction, EndFraction) part of one hour
// occupied by one interval. 0 <= StartFraction < EndFraction <= 1.
type Segment struct {
	StartFraction   float64  `json:"start"`
	EndFraction     float64  `json:"end"`
	Category        Category `json:"category"`
	SubcategoryTier int      `json:"tier"`
	IntervalID      string   `json:"interval_id"`
}

// Span returns EndFraction - StartFraction.
func (s Segment) Span() float64 {
	return s.EndFraction - s.StartFraction
}

// Cell is one hour of one day.
type Cell struct {
	Hour          int       `json:"hour"`      // 0-23
	DayIndex      int       `json:"day_index"` // 0=Sunday ... 6=Saturday
	Date          time.Time `json:"date"`
	Segments      []Segment `json:"segments"`
	TotalCoverage float64   `json:"total_coverage"` // min(1, sum of segment spans)
}

// Grid is the 7x24 matrix of cells for one local calendar week.
type Grid struct {
	WeekStart time.Time                                          `json:"week_start"`
	WeekEnd   time.Time                                          `json:"week_end"`
	Cells     [constants.DaysPerWeek][constants.HoursPerDay]Cell `json:"cells"`
	Label     string                                             `json:"label"`
}

// Cell returns the cell for the given day and hour.
func (g *Grid) Cell(dayIndex, hour int) Cell {
	return g.Cells[dayIndex][hour]
}

// WeekInfo identifies one week that contains activity.
type WeekInfo struct {
	WeekStart time.Time `json:"week_start"`
	Label     string    `json:"label"`
}
