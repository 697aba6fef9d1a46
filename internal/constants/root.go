package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "weekgrid"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/weekgrid/weekgrid.db"
	Version            = "v0.1.0"

	// Grid dimensions
	DaysPerWeek    = 7
	HoursPerDay    = 24
	CellsPerWeek   = DaysPerWeek * HoursPerDay
	SecondsPerHour = 3600

	// Import formats
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Session States
const (
	StateGrid SessionState = iota
	StateSummary
	StateWeeks
)
