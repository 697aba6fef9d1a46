package system

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/weekgrid/internal/cli"
	"github.com/julianstephens/weekgrid/internal/config"
	"github.com/julianstephens/weekgrid/internal/storage"
	"github.com/julianstephens/weekgrid/internal/validation"
)

type DoctorCmd struct{}

// check is one diagnostic. Checks that need the database are skipped when
// it cannot be reached.
type check struct {
	name    string
	needsDB bool
	// warnOnly checks never fail the run.
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var doctorChecks = []check{
	{name: "Schema migrations", needsDB: true, run: checkMigrationsComplete},
	{name: "Interval validation", needsDB: true, run: checkValidation},
	{name: "Active-hours setting", needsDB: true, warnOnly: true, run: checkActiveHours},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone(time.Now()) }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range doctorChecks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	// SQL backends also get a round trip.
	if s, ok := ctx.Store.(interface{ GetDB() *sql.DB }); ok {
		db := s.GetDB()
		if db == nil {
			return errors.New("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	pending, err := migrator.PendingMigrations()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if pending > 0 {
		return fmt.Errorf("%d migration(s) pending; run 'weekgrid migrate'", pending)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	intervals, err := ctx.Store.GetAllIntervals()
	if err != nil {
		return fmt.Errorf("failed to read intervals: %w", err)
	}

	result := validation.New().ValidateIntervals(intervals)
	if result.HasErrors() {
		return fmt.Errorf("invalid intervals found:\n%s", result.FormatReport())
	}
	return nil
}

// checkActiveHours flags a stored value that Load would silently replace
// with the default.
func checkActiveHours(ctx *cli.Context) error {
	raw, ok, err := ctx.Store.GetSetting(ctx.ActiveHours.Key())
	if err != nil {
		return fmt.Errorf("failed to read setting: %w", err)
	}
	if !ok {
		return nil
	}
	if _, err := config.DecodeActiveHours(raw); err != nil {
		return fmt.Errorf("stored value is ignored (%v); reset it with 'weekgrid settings active-hours --clear'", err)
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if time.Local == nil || time.Local.String() == "" {
		return errors.New("local timezone is not set")
	}
	return nil
}
