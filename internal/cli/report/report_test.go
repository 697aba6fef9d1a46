package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/weekgrid/internal/cli"
	apperrors "github.com/julianstephens/weekgrid/internal/errors"
	"github.com/julianstephens/weekgrid/internal/models"
	"github.com/julianstephens/weekgrid/internal/storage/sqlite"
)

func setupTestDB(t *testing.T, intervals ...models.ActivityInterval) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	if _, err := store.AddIntervals(intervals); err != nil {
		t.Fatalf("failed to add intervals: %v", err)
	}

	var out bytes.Buffer
	ctx := cli.NewContext(store)
	ctx.Out = &out
	return ctx, &out
}

func at(m time.Month, d, h int) time.Time {
	return time.Date(2024, m, d, h, 0, 0, 0, time.Local)
}

// Two weeks with activity: Mar 3 and Mar 17, 2024.
func sample() []models.ActivityInterval {
	return []models.ActivityInterval{
		{ID: "a", EndTimestamp: at(time.March, 5, 10), DurationSeconds: 3600, Category: models.CategoryWork},
		{ID: "b", EndTimestamp: at(time.March, 6, 20), DurationSeconds: 1800, Category: models.CategoryExercise},
		{ID: "c", EndTimestamp: at(time.March, 19, 9), DurationSeconds: 7200, Category: models.CategoryStudy},
	}
}

func TestWeeksCmd(t *testing.T) {
	ctx, out := setupTestDB(t, sample()...)

	if err := (&WeeksCmd{}).Run(ctx); err != nil {
		t.Fatalf("weeks failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "2024-03-17") || !strings.Contains(got, "2024-03-03") {
		t.Errorf("expected both weeks, got %q", got)
	}
	if strings.Contains(got, "2024-03-10") {
		t.Errorf("week without activity listed: %q", got)
	}
	if strings.Index(got, "2024-03-17") > strings.Index(got, "2024-03-03") {
		t.Errorf("expected newest week first, got %q", got)
	}
}

func TestWeeksCmd_Empty(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&WeeksCmd{}).Run(ctx); !errors.Is(err, apperrors.ErrNoActivity) {
		t.Errorf("expected ErrNoActivity, got %v", err)
	}
}

func TestStatsCmd_JSON(t *testing.T) {
	tests := []struct {
		name       string
		cmd        StatsCmd
		wantWeek   string
		wantCount  int
		wantActive float64
		wantErr    error
	}{
		{
			name:       "defaults to latest week",
			cmd:        StatsCmd{JSON: true},
			wantWeek:   "2024-03-17",
			wantCount:  1,
			wantActive: 7200,
		},
		{
			name:       "explicit week",
			cmd:        StatsCmd{WeekSelector: cli.WeekSelector{Week: "2024-03-06"}, JSON: true},
			wantWeek:   "2024-03-03",
			wantCount:  2,
			wantActive: 5400,
		},
		{
			name:       "prev skips empty week",
			cmd:        StatsCmd{WeekSelector: cli.WeekSelector{Prev: true}, JSON: true},
			wantWeek:   "2024-03-03",
			wantCount:  2,
			wantActive: 5400,
		},
		{
			name:       "category filter",
			cmd:        StatsCmd{WeekSelector: cli.WeekSelector{Week: "2024-03-03"}, Category: []string{"exercise"}, JSON: true},
			wantWeek:   "2024-03-03",
			wantCount:  1,
			wantActive: 1800,
		},
		{
			name:    "next past the end",
			cmd:     StatsCmd{WeekSelector: cli.WeekSelector{Next: true}, JSON: true},
			wantErr: apperrors.ErrNoSuchWeek,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupTestDB(t, sample()...)

			err := tt.cmd.Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("stats failed: %v", err)
			}

			var summary models.Summary
			if err := json.Unmarshal(out.Bytes(), &summary); err != nil {
				t.Fatalf("output is not JSON: %v\n%s", err, out.String())
			}
			if summary.WeekStart != tt.wantWeek {
				t.Errorf("week_start = %s, want %s", summary.WeekStart, tt.wantWeek)
			}
			if summary.UniqueIntervalCount != tt.wantCount {
				t.Errorf("unique intervals = %d, want %d", summary.UniqueIntervalCount, tt.wantCount)
			}
			if summary.TotalActiveSeconds != tt.wantActive {
				t.Errorf("active seconds = %v, want %v", summary.TotalActiveSeconds, tt.wantActive)
			}
		})
	}
}

func TestStatsCmd_Text(t *testing.T) {
	ctx, out := setupTestDB(t, sample()...)
	if err := (&StatsCmd{}).Run(ctx); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out.String(), "Summary:") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestShowCmd(t *testing.T) {
	ctx, out := setupTestDB(t, sample()...)

	if err := (&ShowCmd{WeekSelector: cli.WeekSelector{Week: "2024-03-03"}}).Run(ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out.String(), "Mar 3") {
		t.Errorf("expected week label in output, got %q", out.String())
	}
}

func TestShowCmd_UnknownCategory(t *testing.T) {
	ctx, _ := setupTestDB(t, sample()...)
	if err := (&ShowCmd{Category: []string{"gardening"}}).Run(ctx); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestShowCmd_BadWeek(t *testing.T) {
	ctx, _ := setupTestDB(t, sample()...)
	if err := (&ShowCmd{WeekSelector: cli.WeekSelector{Week: "03/05/2024"}}).Run(ctx); err == nil {
		t.Error("expected error for malformed --week")
	}
}
