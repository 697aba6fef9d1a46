package grid

import (
	"time"

	"github.com/julianstephens/weekgrid/internal/calendar"
	"github.com/julianstephens/weekgrid/internal/models"
)

// Placement is a segment tagged with the cell it belongs to.
type Placement struct {
	DayIndex int
	Hour     int
	Segment  models.Segment
}

// Distribute splits [start, end) into per-hour segments. The walk starts at
// the local hour containing start and advances one hour at a time, so it
// crosses midnight and week boundaries without any day arithmetic.
func Distribute(start, end time.Time, category models.Category, tier int, intervalID string) []Placement {
	var placements []Placement

	for hourStart := truncateToHour(start); hourStart.Before(end); hourStart = hourStart.Add(time.Hour) {
		hourEnd := hourStart.Add(time.Hour)

		overlapStart := maxTime(start, hourStart)
		overlapEnd := minTime(end, hourEnd)
		if !overlapEnd.After(overlapStart) {
			continue
		}

		placements = append(placements, Placement{
			DayIndex: calendar.DayIndex(hourStart),
			Hour:     hourStart.In(time.Local).Hour(),
			Segment: models.Segment{
				StartFraction:   hourFraction(overlapStart.Sub(hourStart)),
				EndFraction:     hourFraction(overlapEnd.Sub(hourStart)),
				Category:        category,
				SubcategoryTier: tier,
				IntervalID:      intervalID,
			},
		})
	}

	return placements
}

func truncateToHour(t time.Time) time.Time {
	t = t.In(time.Local)
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), 0, 0, 0, time.Local)
}

func hourFraction(d time.Duration) float64 {
	return d.Seconds() / time.Hour.Seconds()
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
