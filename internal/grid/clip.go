package grid

import "time"

// ClippedInterval is the part of an interval that falls inside one week.
type ClippedInterval struct {
	Start time.Time
	End   time.Time
}

// ClipToWeek clips [start, end) to [weekStart, weekEnd]. ok is false when
// the two do not intersect; an interval ending exactly at weekStart does
// not overlap that week.
func ClipToWeek(start, end, weekStart, weekEnd time.Time) (ClippedInterval, bool) {
	if !end.After(weekStart) || start.After(weekEnd) {
		return ClippedInterval{}, false
	}

	clipped := ClippedInterval{Start: start, End: end}
	if start.Before(weekStart) {
		clipped.Start = weekStart
	}
	if end.After(weekEnd) {
		clipped.End = weekEnd
	}
	return clipped, true
}
