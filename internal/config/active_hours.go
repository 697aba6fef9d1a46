package config

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/models"
)

// Scope groups the coverage view's settings in the backend.
const Scope = "coverage"

// ActiveHours returns the store holding the active-hours window.
func ActiveHours(backend Backend) *Store[models.ActiveHoursConfig] {
	return NewStore(backend, Scope, constants.SettingActiveHours, models.DefaultActiveHoursConfig(), Codec[models.ActiveHoursConfig]{
		Encode: encodeActiveHours,
		Decode: DecodeActiveHours,
	})
}

func encodeActiveHours(c models.ActiveHoursConfig) (string, error) {
	if !c.Valid() {
		return "", fmt.Errorf("active hours out of range: %d-%d", c.StartHour, c.EndHour)
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeActiveHours parses {"startHour":int,"endHour":int,"enabled":bool}.
// The value is rejected as a whole if it is not an object, misses a field,
// has a non-integer or out-of-range hour, or a non-boolean enabled flag.
func DecodeActiveHours(raw string) (models.ActiveHoursConfig, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return models.ActiveHoursConfig{}, fmt.Errorf("malformed active hours: %w", err)
	}
	if fields == nil {
		return models.ActiveHoursConfig{}, fmt.Errorf("malformed active hours: not an object")
	}

	start, err := decodeHour(fields, "startHour")
	if err != nil {
		return models.ActiveHoursConfig{}, err
	}
	end, err := decodeHour(fields, "endHour")
	if err != nil {
		return models.ActiveHoursConfig{}, err
	}

	rawEnabled, ok := fields["enabled"]
	if !ok {
		return models.ActiveHoursConfig{}, fmt.Errorf("active hours missing enabled")
	}
	var enabled bool
	if err := json.Unmarshal(rawEnabled, &enabled); err != nil || string(rawEnabled) == "null" {
		return models.ActiveHoursConfig{}, fmt.Errorf("active hours enabled is not a boolean: %s", rawEnabled)
	}

	return models.ActiveHoursConfig{StartHour: start, EndHour: end, Enabled: enabled}, nil
}

func decodeHour(fields map[string]json.RawMessage, name string) (int, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("active hours missing %s", name)
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil || string(raw) == "null" {
		return 0, fmt.Errorf("active hours %s is not a number: %s", name, raw)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("active hours %s is not an integer: %v", name, f)
	}
	if f < 0 || f >= constants.HoursPerDay {
		return 0, fmt.Errorf("active hours %s out of range: %v", name, f)
	}
	return int(f), nil
}
