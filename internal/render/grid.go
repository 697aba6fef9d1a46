package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/models"
	"github.com/julianstephens/weekgrid/internal/stats"
	"github.com/julianstephens/weekgrid/internal/utils"
)

const cellWidth = 7

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Width(cellWidth).
			Align(lipgloss.Center)

	hourStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(4)

	activeHourStyle = hourStyle.
			Foreground(lipgloss.Color("214"))

	emptyCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("236"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

var dayNames = [constants.DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Shade maps a coverage value to a block glyph.
func Shade(coverage float64) string {
	switch {
	case coverage <= 0:
		return "·"
	case coverage < 0.25:
		return "░"
	case coverage < 0.5:
		return "▒"
	case coverage < 0.75:
		return "▓"
	default:
		return "█"
	}
}

// Grid renders the week as 24 hour rows by 7 day columns. Hours inside an
// enabled active-hours window are marked with an asterisk.
func Grid(g models.Grid, window models.ActiveHoursWindow) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(g.Label))
	b.WriteString("\n\n")

	header := []string{hourStyle.Render("")}
	for d := 0; d < constants.DaysPerWeek; d++ {
		date := g.Cells[d][0].Date
		header = append(header, headerStyle.Render(fmt.Sprintf("%s %d", dayNames[d], date.Day())))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	start, end, enabled := window.Hours()
	for h := 0; h < constants.HoursPerDay; h++ {
		row := []string{hourLabel(h, enabled && stats.IsHourInWindow(h, start, end))}
		for d := 0; d < constants.DaysPerWeek; d++ {
			row = append(row, renderCell(g.Cells[d][h]))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(Legend())
	if enabled {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("* active hours " + WindowLabel(window)))
	}
	return b.String()
}

func hourLabel(h int, active bool) string {
	if active {
		return activeHourStyle.Render(fmt.Sprintf("%02d*", h))
	}
	return hourStyle.Render(fmt.Sprintf("%02d", h))
}

func renderCell(cell models.Cell) string {
	glyph := strings.Repeat(Shade(cell.TotalCoverage), 3)
	style := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)

	c, ok := Dominant(cell)
	if !ok {
		return style.Inherit(emptyCellStyle).Render(glyph)
	}
	return style.Foreground(Color(c)).Render(glyph)
}

// WindowLabel renders an enabled window as "08:00-23:00" and a disabled
// one as "off".
func WindowLabel(w models.ActiveHoursWindow) string {
	start, end, ok := w.Hours()
	if !ok {
		return "off"
	}
	return fmt.Sprintf("%s-%s", utils.FormatHour(start), utils.FormatHour(end))
}
