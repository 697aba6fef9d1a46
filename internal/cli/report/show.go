package report

import (
	"github.com/julianstephens/weekgrid/internal/cli"
	"github.com/julianstephens/weekgrid/internal/grid"
	"github.com/julianstephens/weekgrid/internal/render"
)

type ShowCmd struct {
	cli.WeekSelector
	Category []string `short:"c" help:"Only show these categories (repeatable or comma-separated)." placeholder:"NAME"`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	filter, err := cli.ParseCategoryFilter(c.Category)
	if err != nil {
		return err
	}

	ws, intervals, _, err := ctx.LoadWeek(c.WeekSelector)
	if err != nil {
		return err
	}

	g := grid.BuildFiltered(intervals, ws, filter)
	ctx.Println(render.Grid(g, ctx.ActiveHours.Load().Window()))
	return nil
}
