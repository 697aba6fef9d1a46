// Package stats derives coverage statistics from a built grid. Every
// function is read-only and returns freshly allocated results.
package stats

import (
	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/models"
)

// OverallCoverage is the mean TotalCoverage across all 168 cells.
func OverallCoverage(g models.Grid) float64 {
	var sum float64
	forEachCell(g, func(c models.Cell) {
		sum += c.TotalCoverage
	})
	return sum / constants.CellsPerWeek
}

// DailyCoverage is the mean TotalCoverage of each day's 24 cells.
func DailyCoverage(g models.Grid) [constants.DaysPerWeek]float64 {
	var daily [constants.DaysPerWeek]float64
	for day := range g.Cells {
		var sum float64
		for _, c := range g.Cells[day] {
			sum += c.TotalCoverage
		}
		daily[day] = sum / constants.HoursPerDay
	}
	return daily
}

// HourlyCoverage is the mean TotalCoverage of each hour across the 7 days.
func HourlyCoverage(g models.Grid) [constants.HoursPerDay]float64 {
	var hourly [constants.HoursPerDay]float64
	for hour := 0; hour < constants.HoursPerDay; hour++ {
		var sum float64
		for day := range g.Cells {
			sum += g.Cells[day][hour].TotalCoverage
		}
		hourly[hour] = sum / constants.DaysPerWeek
	}
	return hourly
}

// PeakHour returns the hour with the highest HourlyCoverage, or -1 when the
// grid has no coverage. Ties go to the earliest hour.
func PeakHour(g models.Grid) int {
	peak, best := -1, 0.0
	for hour, v := range HourlyCoverage(g) {
		if v > best {
			peak, best = hour, v
		}
	}
	return peak
}

// IsHourInWindow reports whether hour lies in [startHour, endHour). When
// startHour >= endHour the window wraps past midnight.
func IsHourInWindow(hour, startHour, endHour int) bool {
	if startHour < endHour {
		return hour >= startHour && hour < endHour
	}
	return hour >= startHour || hour < endHour
}

// ActiveHourCount is the number of hours per day inside the window.
func ActiveHourCount(startHour, endHour int) int {
	if startHour < endHour {
		return endHour - startHour
	}
	return (constants.HoursPerDay - startHour) + endHour
}

// ActiveHoursCoverage is the mean TotalCoverage over in-window cells across
// all seven days, or 0 when the window has no hours.
func ActiveHoursCoverage(g models.Grid, startHour, endHour int) float64 {
	count := ActiveHourCount(startHour, endHour)
	if count == 0 {
		return 0
	}

	var sum float64
	forEachCell(g, func(c models.Cell) {
		if IsHourInWindow(c.Hour, startHour, endHour) {
			sum += c.TotalCoverage
		}
	})
	return sum / float64(count*constants.DaysPerWeek)
}

// CategoryBreakdown returns each category's share of all segment time,
// normalised to sum to 1. It is empty when the grid has no segments.
func CategoryBreakdown(g models.Grid) map[models.Category]float64 {
	spans := categorySpans(g)

	var total float64
	for _, s := range spans {
		total += s
	}
	breakdown := make(map[models.Category]float64, len(spans))
	if total == 0 {
		return breakdown
	}
	for c, s := range spans {
		breakdown[c] = s / total
	}
	return breakdown
}

// CategoryStats reports absolute coverage, active seconds and the number of
// distinct intervals per category.
func CategoryStats(g models.Grid) map[models.Category]models.CategoryStat {
	spans := categorySpans(g)
	runs := make(map[models.Category]map[string]struct{}, len(spans))
	forEachSegment(g, func(s models.Segment) {
		ids, ok := runs[s.Category]
		if !ok {
			ids = make(map[string]struct{})
			runs[s.Category] = ids
		}
		ids[s.IntervalID] = struct{}{}
	})

	result := make(map[models.Category]models.CategoryStat, len(spans))
	for c, span := range spans {
		result[c] = models.CategoryStat{
			Coverage:      span / constants.CellsPerWeek,
			ActiveSeconds: span * constants.SecondsPerHour,
			RunCount:      len(runs[c]),
		}
	}
	return result
}

// TotalActiveSeconds sums TotalCoverage * 3600 over every cell.
func TotalActiveSeconds(g models.Grid) float64 {
	var sum float64
	forEachCell(g, func(c models.Cell) {
		sum += c.TotalCoverage * constants.SecondsPerHour
	})
	return sum
}

// TotalIdleSeconds sums the uncovered part of each cell, restricted to
// in-window hours when the window is enabled.
func TotalIdleSeconds(g models.Grid, window models.ActiveHoursWindow) float64 {
	startHour, endHour, restricted := window.Hours()

	var sum float64
	forEachCell(g, func(c models.Cell) {
		if restricted && !IsHourInWindow(c.Hour, startHour, endHour) {
			return
		}
		sum += (1 - c.TotalCoverage) * constants.SecondsPerHour
	})
	return sum
}

// UniqueIntervalCount counts distinct interval IDs referenced anywhere in
// the grid.
func UniqueIntervalCount(g models.Grid) int {
	ids := make(map[string]struct{})
	forEachSegment(g, func(s models.Segment) {
		ids[s.IntervalID] = struct{}{}
	})
	return len(ids)
}

// Summarize composes every statistic into one report. With the window
// disabled, ActiveHoursCoverage equals OverallCoverage.
func Summarize(g models.Grid, window models.ActiveHoursWindow) models.Summary {
	overall := OverallCoverage(g)

	activeCoverage := overall
	if startHour, endHour, ok := window.Hours(); ok {
		activeCoverage = ActiveHoursCoverage(g, startHour, endHour)
	}

	return models.Summary{
		WeekStart:           g.WeekStart.Format(constants.DateFormat),
		Label:               g.Label,
		OverallCoverage:     overall,
		DailyCoverage:       DailyCoverage(g),
		HourlyCoverage:      HourlyCoverage(g),
		ActiveHoursCoverage: activeCoverage,
		ActiveHoursEnabled:  window.IsEnabled(),
		CategoryBreakdown:   CategoryBreakdown(g),
		CategoryStats:       CategoryStats(g),
		TotalActiveSeconds:  TotalActiveSeconds(g),
		TotalIdleSeconds:    TotalIdleSeconds(g, window),
		UniqueIntervalCount: UniqueIntervalCount(g),
		PeakHour:            PeakHour(g),
	}
}

func categorySpans(g models.Grid) map[models.Category]float64 {
	spans := make(map[models.Category]float64)
	forEachSegment(g, func(s models.Segment) {
		spans[s.Category] += s.Span()
	})
	return spans
}

func forEachCell(g models.Grid, fn func(models.Cell)) {
	for day := range g.Cells {
		for hour := range g.Cells[day] {
			fn(g.Cells[day][hour])
		}
	}
}

func forEachSegment(g models.Grid, fn func(models.Segment)) {
	forEachCell(g, func(c models.Cell) {
		for _, s := range c.Segments {
			fn(s)
		}
	})
}
