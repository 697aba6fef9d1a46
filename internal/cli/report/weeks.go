package report

import (
	"fmt"

	"github.com/julianstephens/weekgrid/internal/catalog"
	"github.com/julianstephens/weekgrid/internal/cli"
	apperrors "github.com/julianstephens/weekgrid/internal/errors"
	"github.com/julianstephens/weekgrid/internal/render"
)

type WeeksCmd struct{}

func (c *WeeksCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Store.GetAllIntervals()
	if err != nil {
		return fmt.Errorf("failed to read intervals: %w", err)
	}

	weeks := catalog.DeriveAvailableWeeks(all)
	latest, ok := catalog.DefaultWeek(weeks)
	if !ok {
		return apperrors.ErrNoActivity
	}

	ctx.Println(render.Weeks(weeks, latest.WeekStart))
	return nil
}
