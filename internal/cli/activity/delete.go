package activity

import (
	"errors"
	"fmt"

	"github.com/julianstephens/weekgrid/internal/cli"
	"github.com/julianstephens/weekgrid/internal/storage"
)

type DeleteCmd struct {
	ID string `arg:"" help:"ID of the interval to delete."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteInterval(c.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("interval not found: %s", c.ID)
		}
		return fmt.Errorf("failed to delete interval: %w", err)
	}
	ctx.Printf("Deleted interval %s\n", c.ID)
	return nil
}
