// Package grid renders activity intervals into a 7x24 coverage grid for a
// single local week.
package grid

import (
	"math"
	"time"

	"github.com/julianstephens/weekgrid/internal/calendar"
	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/models"
)

// CategoryFilter decides whether intervals of a category are distributed.
// A nil filter keeps everything.
type CategoryFilter func(models.Category) bool

// OnlyCategories returns a filter keeping the listed categories. With no
// arguments it keeps everything.
func OnlyCategories(categories ...models.Category) CategoryFilter {
	if len(categories) == 0 {
		return nil
	}
	keep := make(map[models.Category]bool, len(categories))
	for _, c := range categories {
		keep[c] = true
	}
	return func(c models.Category) bool {
		return keep[c]
	}
}

// Build populates a fresh grid for the week starting at weekStart.
func Build(intervals []models.ActivityInterval, weekStart time.Time) models.Grid {
	return BuildFiltered(intervals, weekStart, nil)
}

// BuildFiltered is Build restricted to the categories accepted by keep.
func BuildFiltered(intervals []models.ActivityInterval, weekStart time.Time, keep CategoryFilter) models.Grid {
	weekStart = calendar.WeekStart(weekStart)
	weekEnd := calendar.WeekEnd(weekStart)

	g := models.Grid{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Label:     calendar.WeekLabel(weekStart),
	}
	for day := 0; day < constants.DaysPerWeek; day++ {
		date := calendar.DayDate(weekStart, day)
		for hour := 0; hour < constants.HoursPerDay; hour++ {
			g.Cells[day][hour] = models.Cell{
				Hour:     hour,
				DayIndex: day,
				Date:     date,
			}
		}
	}

	for _, iv := range intervals {
		if keep != nil && !keep(iv.Category) {
			continue
		}
		clipped, ok := ClipToWeek(iv.Start(), iv.End(), weekStart, weekEnd)
		if !ok {
			continue
		}
		for _, p := range Distribute(clipped.Start, clipped.End, iv.Category, iv.SubcategoryTier, iv.ID) {
			cell := &g.Cells[p.DayIndex][p.Hour]
			cell.Segments = append(cell.Segments, p.Segment)
		}
	}

	for day := range g.Cells {
		for hour := range g.Cells[day] {
			cell := &g.Cells[day][hour]
			cell.TotalCoverage = coverage(cell.Segments)
		}
	}

	return g
}

// coverage is min(1, sum of spans), never negative.
func coverage(segments []models.Segment) float64 {
	var total float64
	for _, s := range segments {
		total += s.Span()
	}
	return math.Max(0, math.Min(1, total))
}
