// Package config persists small pieces of user configuration through a
// generic key-value backend. Loads never fail: anything absent or malformed
// is replaced by the documented default. Saves are best-effort and only
// report failures to the logger.
package config

import (
	"fmt"
	"sync"

	"github.com/julianstephens/weekgrid/internal/logger"
)

// Backend is the key-value contract every storage provider satisfies.
type Backend interface {
	// GetSetting returns the stored value; ok is false when the key is absent.
	GetSetting(key string) (value string, ok bool, err error)
	SetSetting(key, value string) error
	DeleteSetting(key string) error
}

// Codec converts a value to and from its stored string form. Decode must
// reject, not repair, anything it cannot fully validate.
type Codec[T any] struct {
	Encode func(T) (string, error)
	Decode func(string) (T, error)
}

// Store is a scoped, typed view over one key of a Backend.
type Store[T any] struct {
	backend Backend
	key     string
	def     T
	codec   Codec[T]
}

// NewStore returns a store for scope.name with the given default.
func NewStore[T any](backend Backend, scope, name string, def T, codec Codec[T]) *Store[T] {
	return &Store[T]{
		backend: backend,
		key:     Key(scope, name),
		def:     def,
		codec:   codec,
	}
}

// Key joins a scope and a name into a backend key.
func Key(scope, name string) string {
	if scope == "" {
		return name
	}
	return fmt.Sprintf("%s.%s", scope, name)
}

// Key returns the backend key this store reads and writes.
func (s *Store[T]) Key() string {
	return s.key
}

// Default returns the value used when nothing valid is stored.
func (s *Store[T]) Default() T {
	return s.def
}

// Load returns the stored value, or the default when it is absent,
// unreadable or fails validation.
func (s *Store[T]) Load() T {
	raw, ok, err := s.backend.GetSetting(s.key)
	if err != nil {
		logger.Warn("Failed to read setting, using default", "key", s.key, "error", err)
		return s.def
	}
	if !ok {
		return s.def
	}

	v, err := s.codec.Decode(raw)
	if err != nil {
		logger.Warn("Rejected stored setting, using default", "key", s.key, "error", err)
		return s.def
	}
	return v
}

// Save stores v. Failures are logged and otherwise ignored.
func (s *Store[T]) Save(v T) {
	raw, err := s.codec.Encode(v)
	if err != nil {
		logger.Warn("Failed to encode setting", "key", s.key, "error", err)
		return
	}
	if err := s.backend.SetSetting(s.key, raw); err != nil {
		logger.Warn("Failed to save setting", "key", s.key, "error", err)
	}
}

// Clear removes the stored value so the next Load returns the default.
// Failures are logged and otherwise ignored.
func (s *Store[T]) Clear() {
	if err := s.backend.DeleteSetting(s.key); err != nil {
		logger.Warn("Failed to clear setting", "key", s.key, "error", err)
	}
}

// MemoryBackend keeps settings in process memory.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (m *MemoryBackend) GetSetting(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryBackend) SetSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryBackend) DeleteSetting(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
