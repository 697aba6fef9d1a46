package report

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/weekgrid/internal/cli"
	"github.com/julianstephens/weekgrid/internal/grid"
	"github.com/julianstephens/weekgrid/internal/render"
	"github.com/julianstephens/weekgrid/internal/stats"
)

type StatsCmd struct {
	cli.WeekSelector
	Category []string `short:"c" help:"Only count these categories (repeatable or comma-separated)." placeholder:"NAME"`
	JSON     bool     `help:"Print the summary as JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	filter, err := cli.ParseCategoryFilter(c.Category)
	if err != nil {
		return err
	}

	ws, intervals, _, err := ctx.LoadWeek(c.WeekSelector)
	if err != nil {
		return err
	}

	g := grid.BuildFiltered(intervals, ws, filter)
	summary := stats.Summarize(g, ctx.ActiveHours.Load().Window())

	if c.JSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Println(render.Summary(summary))
	return nil
}
