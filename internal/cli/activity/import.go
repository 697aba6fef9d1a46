package activity

import (
	"fmt"

	"github.com/julianstephens/weekgrid/internal/cli"
	"github.com/julianstephens/weekgrid/internal/ingest"
	"github.com/julianstephens/weekgrid/internal/logger"
	"github.com/julianstephens/weekgrid/internal/models"
	"github.com/julianstephens/weekgrid/internal/validation"
)

type ImportCmd struct {
	File   string `arg:"" type:"existingfile" help:"CSV, JSON or YAML file of intervals."`
	Format string `help:"Input format; inferred from the file extension when omitted." enum:",csv,json,yaml" default:""`
	DryRun bool   `help:"Parse and validate without writing anything."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	intervals, report, err := ingest.ReadFile(c.File, c.Format)
	if err != nil {
		return err
	}

	for _, skip := range report.Skipped {
		ctx.Printf("  skipped record %d: %s\n", skip.Record, skip.Reason)
	}

	result := validation.New().ValidateIntervals(intervals)
	if result.HasConflicts() {
		ctx.Println(result.FormatReport())
	}
	if result.HasErrors() {
		return fmt.Errorf("%s contains invalid intervals; nothing imported", c.File)
	}

	intervals, replaced := lastWriteWins(intervals)

	if c.DryRun {
		ctx.Printf("Dry run: %d interval(s) would be imported, %d skipped.\n", report.Accepted, len(report.Skipped))
		return nil
	}

	n, err := ctx.Store.AddIntervals(intervals)
	if err != nil {
		return fmt.Errorf("failed to save intervals: %w", err)
	}
	logger.Info("Imported intervals", "file", c.File, "count", n, "skipped", len(report.Skipped), "replaced", replaced)
	ctx.Printf("Imported %d interval(s), skipped %d.\n", n, len(report.Skipped))
	if replaced > 0 {
		ctx.Printf("%d duplicate ID(s) resolved to their last occurrence.\n", replaced)
	}
	return nil
}

// lastWriteWins keeps the final occurrence of each ID, matching what the
// stores' upsert would leave behind, and reports how many rows it dropped.
func lastWriteWins(intervals []models.ActivityInterval) ([]models.ActivityInterval, int) {
	last := make(map[string]int, len(intervals))
	for i, iv := range intervals {
		last[iv.ID] = i
	}
	if len(last) == len(intervals) {
		return intervals, 0
	}
	kept := make([]models.ActivityInterval, 0, len(last))
	for i, iv := range intervals {
		if last[iv.ID] == i {
			kept = append(kept, iv)
		}
	}
	return kept, len(intervals) - len(kept)
}
