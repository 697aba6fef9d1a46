package models

import "strings"

// Category classifies an ActivityInterval. The set is closed; anything not
// recognised by ParseCategory becomes CategoryUnknown.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryStudy    Category = "study"
	CategoryExercise Category = "exercise"
	CategoryLeisure  Category = "leisure"
	CategorySocial   Category = "social"
	CategoryChores   Category = "chores"
	CategoryRest     Category = "rest"
	CategoryUnknown  Category = "unknown"
)

var categoryAliases = map[string]Category{
	"work":      CategoryWork,
	"job":       CategoryWork,
	"focus":     CategoryWork,
	"study":     CategoryStudy,
	"learning":  CategoryStudy,
	"reading":   CategoryStudy,
	"exercise":  CategoryExercise,
	"workout":   CategoryExercise,
	"run":       CategoryExercise,
	"sport":     CategoryExercise,
	"leisure":   CategoryLeisure,
	"hobby":     CategoryLeisure,
	"gaming":    CategoryLeisure,
	"social":    CategorySocial,
	"family":    CategorySocial,
	"friends":   CategorySocial,
	"chores":    CategoryChores,
	"errands":   CategoryChores,
	"housework": CategoryChores,
	"rest":      CategoryRest,
	"nap":       CategoryRest,
	"break":     CategoryRest,
}

// AllCategories returns every category in display order, Unknown last.
func AllCategories() []Category {
	return []Category{
		CategoryWork,
		CategoryStudy,
		CategoryExercise,
		CategoryLeisure,
		CategorySocial,
		CategoryChores,
		CategoryRest,
		CategoryUnknown,
	}
}

// ParseCategory maps a free-form category string onto the closed set.
func ParseCategory(s string) Category {
	if c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c
	}
	return CategoryUnknown
}

// Valid reports whether c is one of the known categories (Unknown included).
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// UnmarshalText normalises decoded values through ParseCategory so JSON and
// YAML input can never produce a category outside the closed set.
func (c *Category) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))
	return nil
}
