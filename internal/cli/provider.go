package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/weekgrid/internal/constants"
	"github.com/julianstephens/weekgrid/internal/keyring"
	"github.com/julianstephens/weekgrid/internal/logger"
	"github.com/julianstephens/weekgrid/internal/storage"
	"github.com/julianstephens/weekgrid/internal/storage/postgres"
	"github.com/julianstephens/weekgrid/internal/storage/sqlite"
)

// IsConnString reports whether config names a PostgreSQL database rather
// than a file.
func IsConnString(config string) bool {
	return strings.HasPrefix(config, "postgres://") ||
		strings.HasPrefix(config, "postgresql://") ||
		strings.Contains(config, "host=")
}

// ExpandPath resolves a leading ~ against the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// OpenProvider picks a storage backend for config without loading it.
// Connection strings select PostgreSQL, a .json suffix selects the JSON
// store, anything else is a SQLite path.
func OpenProvider(config string) (storage.Provider, error) {
	if IsConnString(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w; store the connection string with 'weekgrid keyring set' instead", err)
			}
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ResolveProvider is OpenProvider for the --config flag: when the flag is
// left at its default and the keyring holds a connection string, that
// database wins.
func ResolveProvider(config string) (storage.Provider, error) {
	if config == constants.DefaultConfigPath {
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			logger.Debug("Using connection string from keyring")
			// Keyring entries may carry credentials, so they skip validation.
			return postgres.New(connStr), nil
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring unavailable, using local storage", "error", err)
		}
	}
	return OpenProvider(config)
}
