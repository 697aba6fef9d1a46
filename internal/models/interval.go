package models

import (
	"math"
	"time"
)

// maxDurationSeconds is the longest duration time.Duration can hold at
// millisecond precision.
const maxDurationSeconds = float64(math.MaxInt64/int64(time.Millisecond)) / 1000

// ActivityInterval is one timed occurrence, described by when it ended and
// how long it lasted.
type ActivityInterval struct {
	ID              string    `json:"id"`
	EndTimestamp    time.Time `json:"end"`
	DurationSeconds float64   `json:"duration"`
	Category        Category  `json:"category"`
	SubcategoryTier int       `json:"tier"`
}

// Start returns EndTimestamp minus the duration, never earlier than the
// zero time.
func (a ActivityInterval) Start() time.Time {
	start := a.EndTimestamp.Add(-a.Duration())
	if zero := (time.Time{}); start.Before(zero) {
		return zero.In(a.EndTimestamp.Location())
	}
	return start
}

// End returns the end timestamp.
func (a ActivityInterval) End() time.Time {
	return a.EndTimestamp
}

// Duration converts DurationSeconds to a time.Duration, truncated to the
// millisecond and saturated at the largest representable duration.
func (a ActivityInterval) Duration() time.Duration {
	if a.DurationSeconds >= maxDurationSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(a.DurationSeconds*1000) * time.Millisecond
}
