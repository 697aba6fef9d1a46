// Package storagetest holds the behaviour every storage.Provider must share.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/weekgrid/internal/config"
	"github.com/julianstephens/weekgrid/internal/models"
	"github.com/julianstephens/weekgrid/internal/storage"
)

// Factory returns an initialized, empty provider. Cleanup is the caller's.
type Factory func(t *testing.T) storage.Provider

func at(day, hour, min int) time.Time {
	return time.Date(2024, time.March, day, hour, min, 0, 0, time.Local)
}

// Run exercises the full Provider contract.
func Run(t *testing.T, newProvider Factory) {
	t.Run("AddAndGetAll", func(t *testing.T) {
		p := newProvider(t)

		in := []models.ActivityInterval{
			{ID: "b", EndTimestamp: at(4, 11, 0), DurationSeconds: 3600, Category: models.CategoryWork, SubcategoryTier: 1},
			{ID: "a", EndTimestamp: at(4, 11, 0), DurationSeconds: 1800, Category: models.CategoryStudy},
			{ID: "c", EndTimestamp: at(3, 8, 30), DurationSeconds: 5400.5, Category: models.CategoryRest},
		}
		n, err := p.AddIntervals(in)
		if err != nil {
			t.Fatalf("AddIntervals() error = %v", err)
		}
		if n != 3 {
			t.Errorf("AddIntervals() = %d, want 3", n)
		}

		got, err := p.GetAllIntervals()
		if err != nil {
			t.Fatalf("GetAllIntervals() error = %v", err)
		}
		wantOrder := []string{"c", "a", "b"}
		if len(got) != len(wantOrder) {
			t.Fatalf("GetAllIntervals() returned %d intervals, want %d", len(got), len(wantOrder))
		}
		for i, id := range wantOrder {
			if got[i].ID != id {
				t.Errorf("interval %d = %s, want %s", i, got[i].ID, id)
			}
		}

		c := got[0]
		if !c.EndTimestamp.Equal(at(3, 8, 30)) {
			t.Errorf("end = %v, want %v", c.EndTimestamp, at(3, 8, 30))
		}
		if c.EndTimestamp.Location() != time.Local {
			t.Errorf("end location = %v, want Local", c.EndTimestamp.Location())
		}
		if c.DurationSeconds != 5400.5 || c.Category != models.CategoryRest {
			t.Errorf("round trip = %+v", c)
		}
		if got[2].SubcategoryTier != 1 {
			t.Errorf("tier = %d, want 1", got[2].SubcategoryTier)
		}
	})

	t.Run("UpsertByID", func(t *testing.T) {
		p := newProvider(t)

		first := models.ActivityInterval{ID: "x", EndTimestamp: at(5, 10, 0), DurationSeconds: 60, Category: models.CategoryWork}
		if _, err := p.AddIntervals([]models.ActivityInterval{first}); err != nil {
			t.Fatal(err)
		}
		second := first
		second.DurationSeconds = 120
		second.Category = models.CategoryLeisure
		if _, err := p.AddIntervals([]models.ActivityInterval{second}); err != nil {
			t.Fatal(err)
		}

		got, err := p.GetAllIntervals()
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d intervals after upsert, want 1", len(got))
		}
		if got[0].DurationSeconds != 120 || got[0].Category != models.CategoryLeisure {
			t.Errorf("upsert kept stale values: %+v", got[0])
		}
	})

	t.Run("AddNothing", func(t *testing.T) {
		p := newProvider(t)
		n, err := p.AddIntervals(nil)
		if err != nil || n != 0 {
			t.Errorf("AddIntervals(nil) = %d, %v", n, err)
		}
		got, err := p.GetAllIntervals()
		if err != nil || len(got) != 0 {
			t.Errorf("GetAllIntervals() on empty store = %v, %v", got, err)
		}
	})

	t.Run("GetIntervalsBetween", func(t *testing.T) {
		p := newProvider(t)

		// Week of Sun Mar 3 2024.
		from := at(3, 0, 0)
		to := time.Date(2024, time.March, 9, 23, 59, 59, int(999*time.Millisecond), time.Local)
		in := []models.ActivityInterval{
			// Ends exactly at the week start: excluded.
			{ID: "before", EndTimestamp: from, DurationSeconds: 3600, Category: models.CategoryRest},
			// Straddles the week start.
			{ID: "straddle", EndTimestamp: at(3, 1, 0), DurationSeconds: 7200, Category: models.CategoryRest},
			{ID: "inside", EndTimestamp: at(6, 12, 0), DurationSeconds: 600, Category: models.CategoryWork},
			// Starts after the week end.
			{ID: "after", EndTimestamp: at(10, 2, 0), DurationSeconds: 3600, Category: models.CategoryWork},
		}
		if _, err := p.AddIntervals(in); err != nil {
			t.Fatal(err)
		}

		got, err := p.GetIntervalsBetween(from, to)
		if err != nil {
			t.Fatalf("GetIntervalsBetween() error = %v", err)
		}
		ids := make([]string, len(got))
		for i, iv := range got {
			ids[i] = iv.ID
		}
		if len(ids) != 2 || ids[0] != "straddle" || ids[1] != "inside" {
			t.Errorf("GetIntervalsBetween() = %v, want [straddle inside]", ids)
		}
	})

	t.Run("DeleteInterval", func(t *testing.T) {
		p := newProvider(t)
		iv := models.ActivityInterval{ID: "gone", EndTimestamp: at(5, 10, 0), DurationSeconds: 60, Category: models.CategoryWork}
		if _, err := p.AddIntervals([]models.ActivityInterval{iv}); err != nil {
			t.Fatal(err)
		}

		if err := p.DeleteInterval("gone"); err != nil {
			t.Fatalf("DeleteInterval() error = %v", err)
		}
		if err := p.DeleteInterval("gone"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeleteInterval() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("Settings", func(t *testing.T) {
		p := newProvider(t)

		if _, ok, err := p.GetSetting("missing"); err != nil || ok {
			t.Errorf("GetSetting(missing) = ok %v, err %v", ok, err)
		}
		if err := p.SetSetting("k", "v1"); err != nil {
			t.Fatal(err)
		}
		if err := p.SetSetting("k", "v2"); err != nil {
			t.Fatal(err)
		}
		if v, ok, err := p.GetSetting("k"); err != nil || !ok || v != "v2" {
			t.Errorf("GetSetting(k) = %q, %v, %v", v, ok, err)
		}
		if err := p.DeleteSetting("k"); err != nil {
			t.Fatal(err)
		}
		if err := p.DeleteSetting("k"); err != nil {
			t.Errorf("deleting an absent setting should succeed, got %v", err)
		}
		if _, ok, _ := p.GetSetting("k"); ok {
			t.Error("setting still present after delete")
		}
	})

	t.Run("ActiveHoursStore", func(t *testing.T) {
		p := newProvider(t)
		store := config.ActiveHours(p)

		if got := store.Load(); got != store.Default() {
			t.Errorf("Load() on fresh provider = %+v", got)
		}
		want := models.ActiveHoursConfig{StartHour: 6, EndHour: 20, Enabled: true}
		store.Save(want)
		if got := config.ActiveHours(p).Load(); got != want {
			t.Errorf("Load() after Save() = %+v, want %+v", got, want)
		}
	})
}
