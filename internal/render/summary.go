package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekgrid/internal/calendar"
	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/models"
	"github.com/julianstephens/weekgrid/internal/utils"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	currentWeekStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)
)

const barWidth = 20

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// Bar renders f in [0,1] as a fixed-width bar.
func Bar(f float64) string {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	filled := int(f*barWidth + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func line(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

// Summary renders the statistics block for one week.
func Summary(s models.Summary) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Summary: " + s.Label))
	b.WriteString("\n\n")

	b.WriteString(line("Overall", percent(s.OverallCoverage)) + "\n")
	if s.ActiveHoursEnabled {
		b.WriteString(line("Active hours", percent(s.ActiveHoursCoverage)) + "\n")
	}
	b.WriteString(line("Tracked", utils.FormatSeconds(s.TotalActiveSeconds)) + "\n")
	b.WriteString(line("Idle", utils.FormatSeconds(s.TotalIdleSeconds)) + "\n")
	b.WriteString(line("Intervals", fmt.Sprintf("%d", s.UniqueIntervalCount)) + "\n")
	if s.PeakHour >= 0 {
		b.WriteString(line("Peak hour", utils.FormatHour(s.PeakHour)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Daily"))
	b.WriteString("\n")
	for d := 0; d < constants.DaysPerWeek; d++ {
		b.WriteString(line(dayNames[d], Bar(s.DailyCoverage[d])+" "+percent(s.DailyCoverage[d])) + "\n")
	}

	if len(s.CategoryStats) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Categories"))
		b.WriteString("\n")
		for _, c := range sortedCategories(s.CategoryStats) {
			st := s.CategoryStats[c]
			name := lipgloss.NewStyle().Foreground(Color(c)).Width(18).Render(Label(c))
			detail := fmt.Sprintf("%s  %s  %d run(s)", percent(st.Coverage), utils.FormatSeconds(st.ActiveSeconds), st.RunCount)
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, name, valueStyle.Render(detail)) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// sortedCategories orders by coverage, largest first, then display order.
func sortedCategories(m map[models.Category]models.CategoryStat) []models.Category {
	rank := make(map[models.Category]int)
	for i, c := range models.AllCategories() {
		rank[c] = i
	}

	cats := make([]models.Category, 0, len(m))
	for c := range m {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		a, b := m[cats[i]].Coverage, m[cats[j]].Coverage
		if a != b {
			return a > b
		}
		return rank[cats[i]] < rank[cats[j]]
	})
	return cats
}

// Weeks renders the catalog, newest first, marking the current week.
func Weeks(weeks []models.WeekInfo, current time.Time) string {
	if len(weeks) == 0 {
		return mutedStyle.Render("No weeks with activity.")
	}

	var b strings.Builder
	for _, w := range weeks {
		entry := fmt.Sprintf("%s  %s", w.WeekStart.Format(constants.DateFormat), w.Label)
		if !current.IsZero() && calendar.IsSameWeek(w.WeekStart, current) {
			b.WriteString(currentWeekStyle.Render("> " + entry))
		} else {
			b.WriteString("  " + entry)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
