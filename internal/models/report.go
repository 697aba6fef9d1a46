package models

// CategoryStat aggregates one category over a full week.
type CategoryStat struct {
	Coverage      float64 `json:"coverage"`       // sum of spans / 168
	ActiveSeconds float64 `json:"active_seconds"` // sum of spans * 3600
	RunCount      int     `json:"run_count"`      // distinct interval IDs
}

// Summary is the report produced from a built grid.
type Summary struct {
	WeekStart           string                    `json:"week_start"`
	Label               string                    `json:"label"`
	OverallCoverage     float64                   `json:"overall_coverage"`
	DailyCoverage       [7]float64                `json:"daily_coverage"`
	HourlyCoverage      [24]float64               `json:"hourly_coverage"`
	ActiveHoursCoverage float64                   `json:"active_hours_coverage"`
	ActiveHoursEnabled  bool                      `json:"active_hours_enabled"`
	CategoryBreakdown   map[Category]float64      `json:"category_breakdown"`
	CategoryStats       map[Category]CategoryStat `json:"category_stats"`
	TotalActiveSeconds  float64                   `json:"total_active_seconds"`
	TotalIdleSeconds    float64                   `json:"total_idle_seconds"`
	UniqueIntervalCount int                       `json:"unique_interval_count"`
	PeakHour            int                       `json:"peak_hour"`
}
