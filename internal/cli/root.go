package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/weekgrid/internal/calendar"
	"github.com/julianstephens/weekgrid/internal/catalog"
	"github.com/julianstephens/weekgrid/internal/config"
	"github.com/julianstephens/weekgrid/internal/constants"
	apperrors "github.com/julianstephens/weekgrid/internal/errors"
	"github.com/julianstephens/weekgrid/internal/grid"
	"github.com/julianstephens/weekgrid/internal/models"
	"github.com/julianstephens/weekgrid/internal/storage"
)

type Context struct {
	Store       storage.Provider
	ActiveHours *config.Store[models.ActiveHoursConfig]
	// Out receives command output; nil means stdout.
	Out io.Writer
}

// NewContext wires the configuration stores to the storage provider.
func NewContext(store storage.Provider) *Context {
	return &Context{
		Store:       store,
		ActiveHours: config.ActiveHours(store),
	}
}

func (c *Context) writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.writer(), args...)
}

// WeekSelector holds the flags shared by commands that look at one week.
type WeekSelector struct {
	Week string `help:"Any date (YYYY-MM-DD) inside the week to show. Defaults to the latest week with activity." placeholder:"DATE"`
	Next bool   `help:"Step to the next week with activity." xor:"step"`
	Prev bool   `help:"Step to the previous week with activity." xor:"step"`
}

// Resolve picks the week start described by the flags. Without --week it
// starts from the latest week in the catalog.
func (s WeekSelector) Resolve(weeks []models.WeekInfo) (time.Time, error) {
	var current time.Time
	if s.Week != "" {
		ws, err := calendar.ParseWeek(s.Week)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --week: %w", err)
		}
		current = ws
	} else {
		latest, ok := catalog.DefaultWeek(weeks)
		if !ok {
			return time.Time{}, apperrors.ErrNoActivity
		}
		current = latest.WeekStart
	}

	switch {
	case s.Next:
		next, ok := catalog.Next(current, weeks)
		if !ok {
			return time.Time{}, fmt.Errorf("%w after %s", apperrors.ErrNoSuchWeek, current.Format(constants.DateFormat))
		}
		return next.WeekStart, nil
	case s.Prev:
		prev, ok := catalog.Prev(current, weeks)
		if !ok {
			return time.Time{}, fmt.Errorf("%w before %s", apperrors.ErrNoSuchWeek, current.Format(constants.DateFormat))
		}
		return prev.WeekStart, nil
	}
	return current, nil
}

// LoadWeek derives the catalog, resolves the selected week and reads the
// intervals overlapping it.
func (c *Context) LoadWeek(sel WeekSelector) (time.Time, []models.ActivityInterval, []models.WeekInfo, error) {
	all, err := c.Store.GetAllIntervals()
	if err != nil {
		return time.Time{}, nil, nil, fmt.Errorf("failed to read intervals: %w", err)
	}

	weeks := catalog.DeriveAvailableWeeks(all)
	ws, err := sel.Resolve(weeks)
	if err != nil {
		return time.Time{}, nil, nil, err
	}

	intervals, err := c.Store.GetIntervalsBetween(ws, calendar.WeekEnd(ws))
	if err != nil {
		return time.Time{}, nil, nil, fmt.Errorf("failed to read week: %w", err)
	}
	return ws, intervals, weeks, nil
}

// ParseCategoryFilter turns --category values into a grid filter. Each value
// may itself be a comma-separated list. Unknown names are rejected rather
// than silently mapped to the fallback category.
func ParseCategoryFilter(values []string) (grid.CategoryFilter, error) {
	var cats []models.Category
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			c := models.ParseCategory(name)
			if c == models.CategoryUnknown && !strings.EqualFold(name, string(models.CategoryUnknown)) {
				return nil, fmt.Errorf("unknown category %q", name)
			}
			cats = append(cats, c)
		}
	}
	return grid.OnlyCategories(cats...), nil
}
