package validation

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingID       ConflictType = "missing_id"
	ConflictDuplicateID     ConflictType = "duplicate_id"
	ConflictInvalidDuration ConflictType = "invalid_duration"
	ConflictMissingEnd      ConflictType = "missing_end"
	ConflictFutureEnd       ConflictType = "future_end"
	ConflictUnknownCategory ConflictType = "unknown_category"
	ConflictOverlapping     ConflictType = "overlapping_intervals"
)

// Severity separates data that cannot be gridded from data that merely
// looks suspicious.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Conflict represents a detected problem with one or more intervals
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Description string
	IntervalIDs []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict is an error rather than a warning
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks interval sets for data problems.
type Validator struct {
	now func() time.Time
}

// New creates a new Validator
func New() *Validator {
	return &Validator{now: time.Now}
}

// ValidateIntervals checks every interval and reports problems. Overlaps are
// warnings only: a cell's coverage is clamped, so they never break a grid.
func (v *Validator) ValidateIntervals(intervals []models.ActivityInterval) ValidationResult {
	result := ValidationResult{}
	now := v.now()

	seen := make(map[string]int)
	var unknown []string
	for i, iv := range intervals {
		if iv.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingID,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Interval #%d has no ID", i+1),
			})
		} else {
			seen[iv.ID]++
		}

		if math.IsNaN(iv.DurationSeconds) || math.IsInf(iv.DurationSeconds, 0) || iv.DurationSeconds < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDuration,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Interval %s has an invalid duration (%v seconds)", label(iv, i), iv.DurationSeconds),
				IntervalIDs: ids(iv),
			})
		}

		if iv.EndTimestamp.IsZero() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingEnd,
				Severity:    SeverityError,
				Description: fmt.Sprintf("Interval %s has no end timestamp", label(iv, i)),
				IntervalIDs: ids(iv),
			})
		} else if iv.EndTimestamp.After(now) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureEnd,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("Interval %s ends in the future (%s)", label(iv, i), iv.EndTimestamp.Local().Format(constants.DateTimeFormat)),
				IntervalIDs: ids(iv),
			})
		}

		if iv.Category == models.CategoryUnknown || !iv.Category.Valid() {
			unknown = append(unknown, iv.ID)
		}
	}

	var dupIDs []string
	for id, n := range seen {
		if n > 1 {
			dupIDs = append(dupIDs, id)
		}
	}
	sort.Strings(dupIDs)
	for _, id := range dupIDs {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateID,
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("Interval ID %s appears %d times; the last one wins", id, seen[id]),
			IntervalIDs: []string{id},
		})
	}

	if len(unknown) > 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictUnknownCategory,
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("%d interval(s) have an unrecognized category", len(unknown)),
			IntervalIDs: unknown,
		})
	}

	result.Conflicts = append(result.Conflicts, findOverlaps(intervals)...)
	return result
}

// findOverlaps reports each pair of intervals whose spans intersect.
// Intervals that merely touch do not overlap.
func findOverlaps(intervals []models.ActivityInterval) []Conflict {
	sorted := make([]models.ActivityInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.EndTimestamp.IsZero() || iv.DurationSeconds <= 0 || math.IsNaN(iv.DurationSeconds) || math.IsInf(iv.DurationSeconds, 0) {
			continue
		}
		sorted = append(sorted, iv)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start().Before(sorted[j].Start())
	})

	var conflicts []Conflict
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if !sorted[j].Start().Before(sorted[i].End()) {
				break
			}
			a, b := sorted[i], sorted[j]
			conflicts = append(conflicts, Conflict{
				Type:     ConflictOverlapping,
				Severity: SeverityWarning,
				Description: fmt.Sprintf("Intervals %s and %s overlap on %s",
					a.ID, b.ID, b.Start().Local().Format(constants.DateFormat)),
				IntervalIDs: []string{a.ID, b.ID},
			})
		}
	}
	return conflicts
}

func label(iv models.ActivityInterval, i int) string {
	if iv.ID == "" {
		return fmt.Sprintf("#%d", i+1)
	}
	return iv.ID
}

func ids(iv models.ActivityInterval) []string {
	if iv.ID == "" {
		return nil
	}
	return []string{iv.ID}
}
