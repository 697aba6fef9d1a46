package storage

import (
	"sort"
	"time"

	"github.com/julianstephens/weekgrid/internal/models"
)

// Row is the column form shared by the SQL backends. Times are unix
// milliseconds; Start is derived so range queries can use an index.
type Row struct {
	ID              string
	StartMillis     int64
	EndMillis       int64
	DurationSeconds float64
	Category        string
	SubcategoryTier int
}

// ToRow flattens an interval for storage.
func ToRow(iv models.ActivityInterval) Row {
	return Row{
		ID:              iv.ID,
		StartMillis:     iv.Start().UnixMilli(),
		EndMillis:       iv.End().UnixMilli(),
		DurationSeconds: iv.DurationSeconds,
		Category:        string(iv.Category),
		SubcategoryTier: iv.SubcategoryTier,
	}
}

// Interval rebuilds the model in local time. Category strings written by
// older builds go back through ParseCategory.
func (r Row) Interval() models.ActivityInterval {
	return models.ActivityInterval{
		ID:              r.ID,
		EndTimestamp:    time.UnixMilli(r.EndMillis).In(time.Local),
		DurationSeconds: r.DurationSeconds,
		Category:        models.ParseCategory(r.Category),
		SubcategoryTier: r.SubcategoryTier,
	}
}

// SortIntervals orders intervals by end time, then ID.
func SortIntervals(intervals []models.ActivityInterval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		ei, ej := intervals[i].End(), intervals[j].End()
		if !ei.Equal(ej) {
			return ei.Before(ej)
		}
		return intervals[i].ID < intervals[j].ID
	})
}

// Overlaps reports whether iv ends after from and starts no later than to.
func Overlaps(iv models.ActivityInterval, from, to time.Time) bool {
	return iv.End().After(from) && !iv.Start().After(to)
}
