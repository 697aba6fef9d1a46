package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/weekgrid/internal/constants"
)

// ParseTimestamp accepts RFC 3339 (with or without fractional seconds),
// "YYYY-MM-DD HH:MM:SS" and "YYYY-MM-DDTHH:MM:SS" in local time, or unix
// seconds. The result is always in time.Local.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(time.Local), nil
	}
	for _, layout := range []string{constants.DateTimeFormat, "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(secs) && !math.IsInf(secs, 0) {
		whole, frac := math.Modf(secs)
		return time.Unix(int64(whole), int64(frac*1e9)).In(time.Local), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// ParseDurationSeconds accepts a number of seconds ("5400", "90.5") or a Go
// duration ("1h30m"). Negative and non-finite values are rejected.
func ParseDurationSeconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		d, derr := time.ParseDuration(s)
		if derr != nil {
			return 0, fmt.Errorf("unrecognized duration %q", s)
		}
		secs = d.Seconds()
	}
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("duration %q is not finite", s)
	}
	if secs < 0 {
		return 0, fmt.Errorf("duration %q is negative", s)
	}
	return secs, nil
}

// ParseHour accepts "8", "08" or "08:00" and returns an hour in [0,23].
// Minutes other than zero are rejected.
func ParseHour(s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ":") {
		t, err := time.Parse(constants.TimeFormat, s)
		if err != nil {
			return 0, fmt.Errorf("invalid hour %q", s)
		}
		if t.Minute() != 0 {
			return 0, fmt.Errorf("hour %q must fall on the hour", s)
		}
		return t.Hour(), nil
	}

	h, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid hour %q", s)
	}
	if h < 0 || h >= constants.HoursPerDay {
		return 0, fmt.Errorf("hour %d out of range 0-23", h)
	}
	return h, nil
}

// FormatHour renders an hour of the day as HH:00.
func FormatHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// FormatSeconds renders a duration in seconds as e.g. "3h05m".
func FormatSeconds(secs float64) string {
	d := time.Duration(secs * float64(time.Second)).Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
