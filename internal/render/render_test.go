package render

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/weekgrid/internal/grid"
	"github.com/julianstephens/weekgrid/internal/models"
	"github.com/julianstephens/weekgrid/internal/stats"
)

var testWeek = time.Date(2024, time.March, 3, 0, 0, 0, 0, time.Local)

func sampleGrid() models.Grid {
	return grid.Build([]models.ActivityInterval{
		{ID: "w", EndTimestamp: time.Date(2024, 3, 4, 11, 0, 0, 0, time.Local), DurationSeconds: 7200, Category: models.CategoryWork},
		{ID: "r", EndTimestamp: time.Date(2024, 3, 5, 14, 15, 0, 0, time.Local), DurationSeconds: 900, Category: models.CategoryRest},
	}, testWeek)
}

func TestLabelAndColor(t *testing.T) {
	for _, c := range models.AllCategories() {
		if Label(c) == "" {
			t.Errorf("Label(%s) is empty", c)
		}
		if Color(c) == "" {
			t.Errorf("Color(%s) is empty", c)
		}
	}
	if Label("bogus") != Label(models.CategoryUnknown) {
		t.Errorf("Label(bogus) = %q, want fallback", Label("bogus"))
	}
	if Color("bogus") != Color(models.CategoryUnknown) {
		t.Errorf("Color(bogus) = %q, want fallback", Color("bogus"))
	}
}

func TestDominant(t *testing.T) {
	tests := []struct {
		name   string
		cell   models.Cell
		want   models.Category
		wantOK bool
	}{
		{name: "empty", cell: models.Cell{}},
		{
			name: "largest span wins",
			cell: models.Cell{Segments: []models.Segment{
				{StartFraction: 0, EndFraction: 0.2, Category: models.CategoryWork},
				{StartFraction: 0.2, EndFraction: 0.9, Category: models.CategoryRest},
			}},
			want:   models.CategoryRest,
			wantOK: true,
		},
		{
			name: "spans summed per category",
			cell: models.Cell{Segments: []models.Segment{
				{StartFraction: 0, EndFraction: 0.3, Category: models.CategoryWork},
				{StartFraction: 0.3, EndFraction: 0.7, Category: models.CategoryRest},
				{StartFraction: 0.7, EndFraction: 1, Category: models.CategoryWork},
			}},
			want:   models.CategoryWork,
			wantOK: true,
		},
		{
			name: "tie goes to first seen",
			cell: models.Cell{Segments: []models.Segment{
				{StartFraction: 0, EndFraction: 0.5, Category: models.CategoryStudy},
				{StartFraction: 0.5, EndFraction: 1, Category: models.CategoryWork},
			}},
			want:   models.CategoryStudy,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Dominant(tt.cell)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Dominant() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestShade(t *testing.T) {
	tests := []struct {
		coverage float64
		want     string
	}{
		{0, "·"},
		{0.1, "░"},
		{0.25, "▒"},
		{0.5, "▓"},
		{0.75, "█"},
		{1, "█"},
	}
	for _, tt := range tests {
		if got := Shade(tt.coverage); got != tt.want {
			t.Errorf("Shade(%v) = %q, want %q", tt.coverage, got, tt.want)
		}
	}
}

func TestGrid(t *testing.T) {
	g := sampleGrid()

	out := Grid(g, models.Disabled())
	for _, want := range []string{g.Label, "Sun 3", "Sat 9", "00", "23", "███", "▒▒▒", "·", "Work"} {
		if !strings.Contains(out, want) {
			t.Errorf("Grid() output missing %q", want)
		}
	}
	if strings.Contains(out, "active hours") {
		t.Error("disabled window should not be described")
	}

	out = Grid(g, models.Enabled(9, 17))
	for _, want := range []string{"09*", "16*", "active hours 09:00-17:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("Grid() with window missing %q", want)
		}
	}
	if strings.Contains(out, "08*") || strings.Contains(out, "17*") {
		t.Error("hours outside the window are marked active")
	}
}

func TestSummary(t *testing.T) {
	g := sampleGrid()
	out := Summary(stats.Summarize(g, models.Enabled(8, 23)))

	for _, want := range []string{"Summary: " + g.Label, "Overall", "Active hours", "Tracked", "2h15m", "Peak hour", "09:00", "Mon", "Work", "Rest", "1 run(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary() output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Work") > strings.Index(out, "Rest") {
		t.Error("categories should be ordered by coverage")
	}

	empty := Summary(stats.Summarize(grid.Build(nil, testWeek), models.Disabled()))
	if strings.Contains(empty, "Peak hour") || strings.Contains(empty, "Active hours") {
		t.Errorf("empty summary shows peak or active hours:\n%s", empty)
	}
}

func TestWeeks(t *testing.T) {
	if got := Weeks(nil, time.Time{}); !strings.Contains(got, "No weeks") {
		t.Errorf("Weeks(nil) = %q", got)
	}

	prev := testWeek.AddDate(0, 0, -7)
	weeks := []models.WeekInfo{
		{WeekStart: testWeek, Label: "Mar 3 - Mar 9, 2024"},
		{WeekStart: prev, Label: "Feb 25 - Mar 2, 2024"},
	}
	out := Weeks(weeks, testWeek.Add(36*time.Hour))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Weeks() produced %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "> 2024-03-03") {
		t.Errorf("current week not marked: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  2024-02-25") {
		t.Errorf("other week = %q", lines[1])
	}
}

func TestBar(t *testing.T) {
	if got := Bar(0); got != strings.Repeat("░", barWidth) {
		t.Errorf("Bar(0) = %q", got)
	}
	if got := Bar(2); got != strings.Repeat("█", barWidth) {
		t.Errorf("Bar(2) = %q", got)
	}
	if got := Bar(0.5); strings.Count(got, "█") != barWidth/2 {
		t.Errorf("Bar(0.5) = %q", got)
	}
}

func TestWindowLabel(t *testing.T) {
	if got := WindowLabel(models.Disabled()); got != "off" {
		t.Errorf("WindowLabel(disabled) = %q, want off", got)
	}
	if got := WindowLabel(models.Enabled(22, 6)); got != "22:00-06:00" {
		t.Errorf("WindowLabel(22,6) = %q", got)
	}
}
