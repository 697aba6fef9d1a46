// Package catalog enumerates the weeks that contain activity and supports
// moving between them without building any grid.
package catalog

import (
	"sort"
	"time"

	"github.com/julianstephens/weekgrid/internal/calendar"
	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/grid"
	"github.com/julianstephens/weekgrid/internal/models"
)

// DeriveAvailableWeeks returns every week touched by an interval's start or
// end, most recent first. An interval spanning a week boundary contributes
// both weeks.
func DeriveAvailableWeeks(intervals []models.ActivityInterval) []models.WeekInfo {
	seen := make(map[string]time.Time)
	for _, iv := range intervals {
		for _, t := range []time.Time{iv.Start(), iv.End()} {
			ws := calendar.WeekStart(t)
			seen[weekKey(ws)] = ws
		}
	}

	starts := make([]time.Time, 0, len(seen))
	for _, ws := range seen {
		starts = append(starts, ws)
	}
	sort.Slice(starts, func(i, j int) bool {
		return starts[i].After(starts[j])
	})

	weeks := make([]models.WeekInfo, 0, len(starts))
	for _, ws := range starts {
		weeks = append(weeks, models.WeekInfo{
			WeekStart: ws,
			Label:     calendar.WeekLabel(ws),
		})
	}
	return weeks
}

// DefaultWeek returns the most recent week; ok is false when weeks is empty.
func DefaultWeek(weeks []models.WeekInfo) (models.WeekInfo, bool) {
	if len(weeks) == 0 {
		return models.WeekInfo{}, false
	}
	return weeks[0], true
}

// CanNavigateNext reports whether a more recent week than current exists.
func CanNavigateNext(current time.Time, weeks []models.WeekInfo) bool {
	if len(weeks) == 0 {
		return false
	}
	return !calendar.IsSameWeek(current, weeks[0].WeekStart)
}

// CanNavigatePrev reports whether an older week than current exists.
func CanNavigatePrev(current time.Time, weeks []models.WeekInfo) bool {
	if len(weeks) == 0 {
		return false
	}
	return !calendar.IsSameWeek(current, weeks[len(weeks)-1].WeekStart)
}

// Next returns the closest catalog week more recent than current.
func Next(current time.Time, weeks []models.WeekInfo) (models.WeekInfo, bool) {
	ws := calendar.WeekStart(current)
	for i := len(weeks) - 1; i >= 0; i-- {
		if weeks[i].WeekStart.After(ws) {
			return weeks[i], true
		}
	}
	return models.WeekInfo{}, false
}

// Prev returns the closest catalog week older than current.
func Prev(current time.Time, weeks []models.WeekInfo) (models.WeekInfo, bool) {
	ws := calendar.WeekStart(current)
	for _, w := range weeks {
		if w.WeekStart.Before(ws) {
			return w, true
		}
	}
	return models.WeekInfo{}, false
}

// IntervalsForWeek keeps the intervals that overlap the week beginning at
// weekStart, in their original order.
func IntervalsForWeek(intervals []models.ActivityInterval, weekStart time.Time) []models.ActivityInterval {
	weekStart = calendar.WeekStart(weekStart)
	weekEnd := calendar.WeekEnd(weekStart)

	var result []models.ActivityInterval
	for _, iv := range intervals {
		if _, ok := grid.ClipToWeek(iv.Start(), iv.End(), weekStart, weekEnd); ok {
			result = append(result, iv)
		}
	}
	return result
}

func weekKey(ws time.Time) string {
	return ws.Format(constants.DateFormat)
}
