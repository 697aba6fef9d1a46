package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekgrid/internal/models"
)

type categoryStyle struct {
	label string
	color lipgloss.Color
}

var categoryStyles = map[models.Category]categoryStyle{
	models.CategoryWork:     {label: "Work", color: lipgloss.Color("33")},
	models.CategoryStudy:    {label: "Study", color: lipgloss.Color("141")},
	models.CategoryExercise: {label: "Exercise", color: lipgloss.Color("41")},
	models.CategoryLeisure:  {label: "Leisure", color: lipgloss.Color("214")},
	models.CategorySocial:   {label: "Social", color: lipgloss.Color("205")},
	models.CategoryChores:   {label: "Chores", color: lipgloss.Color("180")},
	models.CategoryRest:     {label: "Rest", color: lipgloss.Color("67")},
	models.CategoryUnknown:  {label: "Other", color: lipgloss.Color("245")},
}

// Label returns the display name of a category.
func Label(c models.Category) string {
	if s, ok := categoryStyles[c]; ok {
		return s.label
	}
	return categoryStyles[models.CategoryUnknown].label
}

// Color returns the display color of a category.
func Color(c models.Category) lipgloss.Color {
	if s, ok := categoryStyles[c]; ok {
		return s.color
	}
	return categoryStyles[models.CategoryUnknown].color
}

// Dominant returns the category with the largest share of the cell. Ties go
// to the category seen first. ok is false for an empty cell.
func Dominant(cell models.Cell) (models.Category, bool) {
	if len(cell.Segments) == 0 {
		return "", false
	}

	spans := make(map[models.Category]float64)
	var order []models.Category
	for _, seg := range cell.Segments {
		if _, seen := spans[seg.Category]; !seen {
			order = append(order, seg.Category)
		}
		spans[seg.Category] += seg.Span()
	}

	best := order[0]
	for _, c := range order[1:] {
		if spans[c] > spans[best] {
			best = c
		}
	}
	return best, true
}

// Legend renders one colored swatch per category.
func Legend() string {
	var items []string
	for _, c := range models.AllCategories() {
		swatch := lipgloss.NewStyle().Foreground(Color(c)).Render("█")
		items = append(items, swatch+" "+Label(c))
	}
	return strings.Join(items, "  ")
}
