package constants

const (
	// Setting keys
	SettingActiveHours = "active_hours"

	// Default active-hours window, used whenever the stored value is
	// absent or rejected.
	DefaultActiveStartHour = 8
	DefaultActiveEndHour   = 23
	DefaultActiveEnabled   = false
)
