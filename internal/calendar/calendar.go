// Package calendar implements week arithmetic on the observer's local
// calendar. Every function interprets its input in time.Local; there is no
// timezone parameter.
package calendar

import (
	"fmt"
	"time"

	"github.com/julianstephens/weekgrid/internal/constants"
)

// WeekStart returns local Sunday 00:00:00.000 of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.In(time.Local)
	y, m, d := t.Date()
	return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, time.Local)
}

// WeekEnd returns Saturday 23:59:59.999 of the week beginning at weekStart.
func WeekEnd(weekStart time.Time) time.Time {
	weekStart = weekStart.In(time.Local)
	y, m, d := weekStart.Date()
	return time.Date(y, m, d+6, 23, 59, 59, int(999*time.Millisecond), time.Local)
}

// NextWeekStart returns the week start seven calendar days later.
func NextWeekStart(weekStart time.Time) time.Time {
	return weekStart.In(time.Local).AddDate(0, 0, 7)
}

// PrevWeekStart returns the week start seven calendar days earlier.
func PrevWeekStart(weekStart time.Time) time.Time {
	return weekStart.In(time.Local).AddDate(0, 0, -7)
}

// IsSameWeek reports whether a and b fall in the same local week, compared
// by calendar date rather than instant.
func IsSameWeek(a, b time.Time) bool {
	return sameDate(WeekStart(a), WeekStart(b))
}

// DayIndex returns the local day of week, 0=Sunday through 6=Saturday.
func DayIndex(t time.Time) int {
	return int(t.In(time.Local).Weekday())
}

// DayDate returns local midnight of the given day of the week.
func DayDate(weekStart time.Time, dayIndex int) time.Time {
	return weekStart.In(time.Local).AddDate(0, 0, dayIndex)
}

// WeekLabel formats a week as "Jan 2 - Jan 8, 2006", spelling out both
// years when the week straddles New Year.
func WeekLabel(weekStart time.Time) string {
	start := WeekStart(weekStart)
	end := WeekEnd(start)
	if start.Year() != end.Year() {
		return fmt.Sprintf("%s, %d - %s, %d",
			start.Format(constants.WeekLabelFormat), start.Year(),
			end.Format(constants.WeekLabelFormat), end.Year())
	}
	return fmt.Sprintf("%s - %s, %d",
		start.Format(constants.WeekLabelFormat),
		end.Format(constants.WeekLabelFormat),
		end.Year())
}

// ParseWeek parses a YYYY-MM-DD date and returns the start of its week.
func ParseWeek(s string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week date %q: %w", s, err)
	}
	return WeekStart(t), nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
