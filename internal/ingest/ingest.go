// Package ingest turns exported activity records into intervals. Records
// that cannot be interpreted are skipped and reported, never guessed at.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/logger"
	"github.com/julianstephens/weekgrid/internal/models"
	"github.com/julianstephens/weekgrid/internal/utils"
)

// ErrUnsupportedFormat is returned for formats other than csv, json and yaml.
var ErrUnsupportedFormat = errors.New("unsupported import format")

// Skip records one rejected record. Record is 1-based; for CSV it counts
// data rows, not the header.
type Skip struct {
	Record int
	Reason string
}

// Report summarizes one import.
type Report struct {
	Accepted int
	Skipped  []Skip
}

// record is the format-neutral shape of one input row.
type record struct {
	ID       string
	End      string
	Duration string
	Category string
	Tier     string
}

// DetectFormat infers the format from a file extension.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return constants.FormatCSV, nil
	case ".json":
		return constants.FormatJSON, nil
	case ".yaml", ".yml":
		return constants.FormatYAML, nil
	}
	return "", fmt.Errorf("%w: cannot infer format from %q", ErrUnsupportedFormat, filepath.Base(path))
}

// ReadFile opens path and reads it. An empty format is inferred from the
// file extension.
func ReadFile(path, format string) ([]models.ActivityInterval, Report, error) {
	if format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, Report{}, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, Report{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, format)
}

// Read decodes r in the given format. A structurally broken document is an
// error; individual bad records are skipped and listed in the report.
func Read(r io.Reader, format string) ([]models.ActivityInterval, Report, error) {
	var (
		records []record
		err     error
	)
	switch strings.ToLower(format) {
	case constants.FormatCSV:
		records, err = readCSV(r)
	case constants.FormatJSON:
		records, err = readJSON(r)
	case constants.FormatYAML, "yml":
		records, err = readYAML(r)
	default:
		return nil, Report{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, Report{}, err
	}

	log := logger.With("format", format)
	report := Report{}
	intervals := make([]models.ActivityInterval, 0, len(records))
	for i, rec := range records {
		iv, err := rec.interval()
		if err != nil {
			log.Warn("Skipping record", "record", i+1, "reason", err)
			report.Skipped = append(report.Skipped, Skip{Record: i + 1, Reason: err.Error()})
			continue
		}
		intervals = append(intervals, iv)
	}
	report.Accepted = len(intervals)
	log.Debug("Import decoded", "accepted", report.Accepted, "skipped", len(report.Skipped))

	return intervals, report, nil
}

func (rec record) interval() (models.ActivityInterval, error) {
	end, err := utils.ParseTimestamp(rec.End)
	if err != nil {
		return models.ActivityInterval{}, fmt.Errorf("end: %w", err)
	}
	duration, err := utils.ParseDurationSeconds(rec.Duration)
	if err != nil {
		return models.ActivityInterval{}, fmt.Errorf("duration: %w", err)
	}

	tier := 0
	if t := strings.TrimSpace(rec.Tier); t != "" {
		n, err := strconv.Atoi(t)
		if err != nil || n < 0 {
			return models.ActivityInterval{}, fmt.Errorf("tier: invalid value %q", rec.Tier)
		}
		tier = n
	}

	id := strings.TrimSpace(rec.ID)
	if id == "" {
		id = uuid.New().String()
	}

	return models.ActivityInterval{
		ID:              id,
		EndTimestamp:    end,
		DurationSeconds: duration,
		Category:        models.ParseCategory(rec.Category),
		SubcategoryTier: tier,
	}, nil
}
