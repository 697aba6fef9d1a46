package activity

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/weekgrid/internal/cli"
	"github.com/julianstephens/weekgrid/internal/models"
	"github.com/julianstephens/weekgrid/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
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

	var out bytes.Buffer
	ctx := cli.NewContext(store)
	ctx.Out = &out
	return ctx, &out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

const sampleCSV = `id,end,duration,category,tier
a,2024-03-05 10:00:00,3600,work,0
b,2024-03-05 12:00:00,1800,exercise,1
c,not-a-time,60,work,0
`

func TestImportCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	path := writeFile(t, "week.csv", sampleCSV)

	if err := (&ImportCmd{File: path}).Run(ctx); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	all, err := ctx.Store.GetAllIntervals()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(all))
	}
	if !strings.Contains(out.String(), "skipped record 3") {
		t.Errorf("expected skip report, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Imported 2 interval(s), skipped 1.") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestImportCmd_DryRun(t *testing.T) {
	ctx, out := setupTestDB(t)
	path := writeFile(t, "week.csv", sampleCSV)

	if err := (&ImportCmd{File: path, DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	all, err := ctx.Store.GetAllIntervals()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("dry run wrote %d intervals", len(all))
	}
	if !strings.Contains(out.String(), "2 interval(s) would be imported") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestImportCmd_DuplicateIDsLastWins(t *testing.T) {
	ctx, out := setupTestDB(t)
	path := writeFile(t, "dup.json", `[
		{"id": "x", "end": "2024-03-05T10:00:00", "duration": 60, "category": "work"},
		{"id": "y", "end": "2024-03-05T10:30:00", "duration": 60, "category": "rest"},
		{"id": "x", "end": "2024-03-05T11:00:00", "duration": 120, "category": "study"}
	]`)

	if err := (&ImportCmd{File: path}).Run(ctx); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	all, err := ctx.Store.GetAllIntervals()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(all))
	}
	var x models.ActivityInterval
	for _, iv := range all {
		if iv.ID == "x" {
			x = iv
		}
	}
	if x.Category != models.CategoryStudy || x.DurationSeconds != 120 {
		t.Errorf("x = %+v, want the last occurrence", x)
	}

	got := out.String()
	for _, want := range []string{"x appears 2 times", "Imported 2 interval(s)", "1 duplicate ID(s) resolved"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestLastWriteWins(t *testing.T) {
	in := []models.ActivityInterval{{ID: "a"}, {ID: "b", SubcategoryTier: 1}, {ID: "a", SubcategoryTier: 2}, {ID: "c"}}
	kept, dropped := lastWriteWins(in)
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	var ids []string
	for _, iv := range kept {
		ids = append(ids, iv.ID)
	}
	if strings.Join(ids, ",") != "b,a,c" {
		t.Errorf("kept order = %v, want b,a,c", ids)
	}
	if kept[1].SubcategoryTier != 2 {
		t.Errorf("kept the first a, want the last")
	}
}

func TestImportCmd_UnknownExtension(t *testing.T) {
	ctx, _ := setupTestDB(t)
	path := writeFile(t, "week.txt", sampleCSV)

	if err := (&ImportCmd{File: path}).Run(ctx); err == nil {
		t.Error("expected error for unknown extension")
	}
	if err := (&ImportCmd{File: path, Format: "csv"}).Run(ctx); err != nil {
		t.Errorf("explicit format should override extension: %v", err)
	}
}

func TestDeleteCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	iv := models.ActivityInterval{
		ID:              "a",
		EndTimestamp:    time.Date(2024, time.March, 5, 10, 0, 0, 0, time.Local),
		DurationSeconds: 60,
		Category:        models.CategoryWork,
	}
	if _, err := ctx.Store.AddIntervals([]models.ActivityInterval{iv}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := (&DeleteCmd{ID: "a"}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !strings.Contains(out.String(), "Deleted interval a") {
		t.Errorf("unexpected output %q", out.String())
	}
	if err := (&DeleteCmd{ID: "a"}).Run(ctx); err == nil || !strings.Contains(err.Error(), "interval not found") {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestListCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	path := writeFile(t, "week.csv", sampleCSV)
	if err := (&ImportCmd{File: path}).Run(ctx); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	out.Reset()

	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "09:00 - 10:00") || !strings.Contains(got, "2 interval(s)") {
		t.Errorf("unexpected output %q", got)
	}
}
