package activity

import (
	"github.com/julianstephens/weekgrid/internal/cli"
	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/render"
	"github.com/julianstephens/weekgrid/internal/utils"
)

// ListCmd prints the raw intervals overlapping one week.
type ListCmd struct {
	cli.WeekSelector
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	_, intervals, _, err := ctx.LoadWeek(c.WeekSelector)
	if err != nil {
		return err
	}

	for _, iv := range intervals {
		ctx.Printf("%-36s  %s  %s - %s  %6s  %s\n",
			iv.ID,
			iv.Start().Format(constants.DateFormat),
			iv.Start().Format(constants.TimeFormat),
			iv.End().Format(constants.TimeFormat),
			utils.FormatSeconds(iv.DurationSeconds),
			render.Label(iv.Category),
		)
	}
	ctx.Printf("%d interval(s)\n", len(intervals))
	return nil
}
