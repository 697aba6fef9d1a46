package models

import "github.com/julianstephens/weekgrid/internal/constants"

// ActiveHoursWindow restricts some statistics to a sub-range of the day.
// It is either disabled or enabled with a start and end hour; the zero
// value is disabled. An end hour at or before the start hour wraps past
// midnight.
type ActiveHoursWindow struct {
	enabled   bool
	startHour int
	endHour   int
}

// Disabled returns a window that restricts nothing.
func Disabled() ActiveHoursWindow {
	return ActiveHoursWindow{}
}

// Enabled returns a window covering [startHour, endHour), wrapping when
// endHour <= startHour. Hours are taken modulo 24.
func Enabled(startHour, endHour int) ActiveHoursWindow {
	return ActiveHoursWindow{
		enabled:   true,
		startHour: normalizeHour(startHour),
		endHour:   normalizeHour(endHour),
	}
}

// IsEnabled reports whether the window restricts statistics.
func (w ActiveHoursWindow) IsEnabled() bool {
	return w.enabled
}

// Hours returns the start and end hour; ok is false for a disabled window.
func (w ActiveHoursWindow) Hours() (startHour, endHour int, ok bool) {
	if !w.enabled {
		return 0, 0, false
	}
	return w.startHour, w.endHour, true
}

func normalizeHour(h int) int {
	h %= constants.HoursPerDay
	if h < 0 {
		h += constants.HoursPerDay
	}
	return h
}

// ActiveHoursConfig is the persisted form of the active-hours window. The
// hours are kept while the window is disabled so re-enabling restores them.
type ActiveHoursConfig struct {
	StartHour int  `json:"startHour"`
	EndHour   int  `json:"endHour"`
	Enabled   bool `json:"enabled"`
}

// DefaultActiveHoursConfig is used whenever nothing valid is stored.
func DefaultActiveHoursConfig() ActiveHoursConfig {
	return ActiveHoursConfig{
		StartHour: constants.DefaultActiveStartHour,
		EndHour:   constants.DefaultActiveEndHour,
		Enabled:   constants.DefaultActiveEnabled,
	}
}

// Window converts the persisted form into the variant used by statistics.
func (c ActiveHoursConfig) Window() ActiveHoursWindow {
	if !c.Enabled {
		return Disabled()
	}
	return Enabled(c.StartHour, c.EndHour)
}

// Valid reports whether both hours are within [0,23].
func (c ActiveHoursConfig) Valid() bool {
	return c.StartHour >= 0 && c.StartHour < constants.HoursPerDay &&
		c.EndHour >= 0 && c.EndHour < constants.HoursPerDay
}
