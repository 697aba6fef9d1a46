package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/weekgrid/internal/models"
)

// ErrNotFound is returned when a requested interval does not exist.
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Intervals
	// AddIntervals inserts the intervals, replacing any stored interval with
	// the same ID, and returns how many were written.
	AddIntervals([]models.ActivityInterval) (int, error)
	// GetAllIntervals returns every interval ordered by end time, then ID.
	GetAllIntervals() ([]models.ActivityInterval, error)
	// GetIntervalsBetween returns the intervals that end after from and start
	// no later than to, in the same order as GetAllIntervals.
	GetIntervalsBetween(from, to time.Time) ([]models.ActivityInterval, error)
	DeleteInterval(id string) error

	// Settings, satisfying config.Backend
	GetSetting(key string) (string, bool, error)
	SetSetting(key, value string) error
	DeleteSetting(key string) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by providers with a versioned SQL schema.
type Migrator interface {
	Migrate() (int, error)
	PendingMigrations() (int, error)
}
