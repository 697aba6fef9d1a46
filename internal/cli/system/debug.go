package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/weekgrid/internal/calendar"
	"github.com/julianstephens/weekgrid/internal/cli"
	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/grid"
)

type DebugCmd struct {
	DBPath       DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpWeek     DebugDumpWeekCmd     `cmd:"" help:"Dump a week's intervals and grid cells as JSON."`
	DumpSettings DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpWeekCmd struct {
	cli.WeekSelector
}

type dumpedCell struct {
	Day      int     `json:"day"`
	Hour     int     `json:"hour"`
	Coverage float64 `json:"coverage"`
	Segments int     `json:"segments"`
}

func (cmd *DebugDumpWeekCmd) Run(ctx *cli.Context) error {
	ws, intervals, _, err := ctx.LoadWeek(cmd.WeekSelector)
	if err != nil {
		return err
	}

	g := grid.Build(intervals, ws)
	var cells []dumpedCell
	for d := 0; d < constants.DaysPerWeek; d++ {
		for h := 0; h < constants.HoursPerDay; h++ {
			cell := g.Cells[d][h]
			if len(cell.Segments) == 0 {
				continue
			}
			cells = append(cells, dumpedCell{Day: d, Hour: h, Coverage: cell.TotalCoverage, Segments: len(cell.Segments)})
		}
	}

	return printJSON(ctx, map[string]any{
		"week_start": ws.Format(constants.DateFormat),
		"week_end":   calendar.WeekEnd(ws).Format(constants.DateTimeFormat),
		"intervals":  intervals,
		"cells":      cells,
	})
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	raw, stored, err := ctx.Store.GetSetting(ctx.ActiveHours.Key())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	return printJSON(ctx, map[string]any{
		ctx.ActiveHours.Key(): map[string]any{
			"stored":    stored,
			"raw":       raw,
			"effective": ctx.ActiveHours.Load(),
		},
	})
}
