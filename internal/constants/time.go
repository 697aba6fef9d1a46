package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat is accepted for local timestamps on import
	DateTimeFormat = "2006-01-02 15:04:05"

	// WeekLabelFormat is the month/day layout used in week labels
	WeekLabelFormat = "Jan 2"
)
