package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/weekgrid/internal/models"
	"github.com/julianstephens/weekgrid/internal/storage"
)

const selectIntervals = `SELECT id, start_ms, end_ms, duration_seconds, category, subcategory_tier FROM intervals`

func (s *Store) AddIntervals(intervals []models.ActivityInterval) (int, error) {
	if len(intervals) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO intervals (id, start_ms, end_ms, duration_seconds, category, subcategory_tier)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			start_ms = excluded.start_ms,
			end_ms = excluded.end_ms,
			duration_seconds = excluded.duration_seconds,
			category = excluded.category,
			subcategory_tier = excluded.subcategory_tier
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, iv := range intervals {
		r := storage.ToRow(iv)
		if _, err := stmt.Exec(r.ID, r.StartMillis, r.EndMillis, r.DurationSeconds, r.Category, r.SubcategoryTier); err != nil {
			return 0, fmt.Errorf("failed to write interval %s: %w", iv.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(intervals), nil
}

func (s *Store) GetAllIntervals() ([]models.ActivityInterval, error) {
	rows, err := s.db.Query(selectIntervals + ` ORDER BY end_ms, id`)
	if err != nil {
		return nil, err
	}
	return scanIntervals(rows)
}

func (s *Store) GetIntervalsBetween(from, to time.Time) ([]models.ActivityInterval, error) {
	rows, err := s.db.Query(selectIntervals+` WHERE end_ms > ? AND start_ms <= ? ORDER BY end_ms, id`,
		from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return nil, err
	}
	return scanIntervals(rows)
}

func (s *Store) DeleteInterval(id string) error {
	res, err := s.db.Exec("DELETE FROM intervals WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("interval %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func scanIntervals(rows *sql.Rows) ([]models.ActivityInterval, error) {
	defer rows.Close()

	var intervals []models.ActivityInterval
	for rows.Next() {
		var r storage.Row
		if err := rows.Scan(&r.ID, &r.StartMillis, &r.EndMillis, &r.DurationSeconds, &r.Category, &r.SubcategoryTier); err != nil {
			return nil, err
		}
		intervals = append(intervals, r.Interval())
	}
	return intervals, rows.Err()
}
