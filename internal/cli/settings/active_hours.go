package settings

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/weekgrid/internal/cli"
	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/models"
	"github.com/julianstephens/weekgrid/internal/utils"
)

type SettingsCmd struct {
	ActiveHours ActiveHoursCmd `cmd:"" help:"Show or change the active-hours window." default:"withargs"`
}

type ActiveHoursCmd struct {
	Enable      bool   `help:"Enable the active-hours window." xor:"toggle"`
	Disable     bool   `help:"Disable the window, keeping its hours." xor:"toggle"`
	Start       string `help:"First active hour (0-23 or HH:00)." placeholder:"HOUR"`
	End         string `help:"Hour the window ends, exclusive (0-23 or HH:00). An end at or before the start wraps past midnight." placeholder:"HOUR"`
	Clear       bool   `help:"Forget the stored window and fall back to the default." xor:"toggle"`
	Interactive bool   `short:"i" help:"Edit the window in an interactive form." xor:"toggle"`
}

func (c *ActiveHoursCmd) Run(ctx *cli.Context) error {
	switch {
	case c.Clear:
		if c.Start != "" || c.End != "" {
			return errors.New("--clear cannot be combined with --start or --end")
		}
		ctx.ActiveHours.Clear()
		ctx.Println("Active hours reset to the default.")
	case c.Interactive:
		cfg, err := runForm(ctx.ActiveHours.Load())
		if err != nil {
			return err
		}
		ctx.ActiveHours.Save(cfg)
	case c.Enable || c.Disable || c.Start != "" || c.End != "":
		cfg, err := c.apply(ctx.ActiveHours.Load())
		if err != nil {
			return err
		}
		ctx.ActiveHours.Save(cfg)
	}

	printActiveHours(ctx, ctx.ActiveHours.Load())
	return nil
}

// apply layers the flags over the current configuration.
func (c *ActiveHoursCmd) apply(cfg models.ActiveHoursConfig) (models.ActiveHoursConfig, error) {
	if c.Start != "" {
		h, err := utils.ParseHour(c.Start)
		if err != nil {
			return cfg, fmt.Errorf("invalid --start: %w", err)
		}
		cfg.StartHour = h
	}
	if c.End != "" {
		h, err := utils.ParseHour(c.End)
		if err != nil {
			return cfg, fmt.Errorf("invalid --end: %w", err)
		}
		cfg.EndHour = h
	}
	if c.Enable {
		cfg.Enabled = true
	}
	if c.Disable {
		cfg.Enabled = false
	}
	return cfg, nil
}

func printActiveHours(ctx *cli.Context, cfg models.ActiveHoursConfig) {
	state := "disabled"
	if cfg.Enabled {
		state = "enabled"
	}
	ctx.Println("Active Hours:")
	ctx.Printf("  State:  %s\n", state)
	ctx.Printf("  Window: %s - %s\n", utils.FormatHour(cfg.StartHour), utils.FormatHour(cfg.EndHour))
}

func hourOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, constants.HoursPerDay)
	for h := 0; h < constants.HoursPerDay; h++ {
		opts = append(opts, huh.NewOption(utils.FormatHour(h), h))
	}
	return opts
}

// NewActiveHoursForm binds a form to cfg; completing the form updates it
// in place.
func NewActiveHoursForm(cfg *models.ActiveHoursConfig) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Restrict statistics to active hours?").
				Value(&cfg.Enabled),
			huh.NewSelect[int]().
				Title("Start hour").
				Options(hourOptions()...).
				Value(&cfg.StartHour),
			huh.NewSelect[int]().
				Title("End hour").
				Description("Exclusive. An end at or before the start wraps past midnight.").
				Options(hourOptions()...).
				Value(&cfg.EndHour),
		),
	)
}

func runForm(current models.ActiveHoursConfig) (models.ActiveHoursConfig, error) {
	cfg := current
	if err := NewActiveHoursForm(&cfg).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return current, errors.New("cancelled")
		}
		return current, fmt.Errorf("form failed: %w", err)
	}
	return cfg, nil
}
