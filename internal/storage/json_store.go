package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/julianstephens/weekgrid/internal/errors"
	"github.com/julianstephens/weekgrid/internal/models"
)

const jsonStoreVersion = 1

type Store struct {
	Version   int                                `json:"version"`
	Settings  map[string]string                  `json:"settings"`
	Intervals map[string]models.ActivityInterval `json:"intervals"`
}

// JSONStore keeps everything in a single JSON document, rewritten on every
// mutation. It suits small exports and tests.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Re-running init keeps existing data.
	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.store = &Store{
		Version:   jsonStoreVersion,
		Settings:  make(map[string]string),
		Intervals: make(map[string]models.ActivityInterval),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w at %s", apperrors.ErrNotInitialized, s.path)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if store.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade the application", store.Version, jsonStoreVersion)
	}

	if store.Settings == nil {
		store.Settings = make(map[string]string)
	}
	if store.Intervals == nil {
		store.Intervals = make(map[string]models.ActivityInterval)
	}
	s.store = store
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write then rename so a crash never leaves a truncated file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) AddIntervals(intervals []models.ActivityInterval) (int, error) {
	if err := s.loaded(); err != nil {
		return 0, err
	}
	if len(intervals) == 0 {
		return 0, nil
	}

	for _, iv := range intervals {
		s.store.Intervals[iv.ID] = iv
	}
	if err := s.save(); err != nil {
		return 0, err
	}
	return len(intervals), nil
}

func (s *JSONStore) GetAllIntervals() ([]models.ActivityInterval, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	intervals := make([]models.ActivityInterval, 0, len(s.store.Intervals))
	for _, iv := range s.store.Intervals {
		iv.EndTimestamp = iv.EndTimestamp.In(time.Local)
		iv.Category = models.ParseCategory(string(iv.Category))
		intervals = append(intervals, iv)
	}
	SortIntervals(intervals)
	return intervals, nil
}

func (s *JSONStore) GetIntervalsBetween(from, to time.Time) ([]models.ActivityInterval, error) {
	all, err := s.GetAllIntervals()
	if err != nil {
		return nil, err
	}

	var intervals []models.ActivityInterval
	for _, iv := range all {
		if Overlaps(iv, from, to) {
			intervals = append(intervals, iv)
		}
	}
	return intervals, nil
}

func (s *JSONStore) DeleteInterval(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.store.Intervals[id]; !ok {
		return fmt.Errorf("interval %s: %w", id, ErrNotFound)
	}
	delete(s.store.Intervals, id)
	return s.save()
}

func (s *JSONStore) GetSetting(key string) (string, bool, error) {
	if err := s.loaded(); err != nil {
		return "", false, err
	}
	v, ok := s.store.Settings[key]
	return v, ok, nil
}

func (s *JSONStore) SetSetting(key, value string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Settings[key] = value
	return s.save()
}

func (s *JSONStore) DeleteSetting(key string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.store.Settings[key]; !ok {
		return nil
	}
	delete(s.store.Settings, key)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
