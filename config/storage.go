package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// LoadSettings loads the settings file at the given path and returns an
// initialized config. A missing file yields defaults; a malformed file
// yields defaults with a logged warning. Neither is an error: the file is
// regenerated on the next save.
func LoadSettings(path string) *Config {
	if path == "" {
		path = DefaultSettingsFile
	}

	store := DefaultStore()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Unmarshal over defaults: keys missing from the file keep
		// their default values.
		if err := json.Unmarshal(data, &store); err != nil {
			slog.Warn("failed to decode settings file, using defaults", "path", path, "err", err)
			store = DefaultStore()
		}

	case errors.Is(err, os.ErrNotExist):
		// No settings yet, start with defaults.

	default:
		slog.Warn("failed to read settings file, using defaults", "path", path, "err", err)
	}

	c := store.Parse()
	c.path = path
	return c
}

// Save writes the settings to the settings file, pretty-printed.
// The write is a full-file overwrite of a cloned snapshot; the config
// lock is not held during marshaling or the file write.
func (c *Config) Save() error {
	c.lock.Lock()
	snapshot, err := c.Store.Clone()
	c.lock.Unlock()
	if err != nil {
		return fmt.Errorf("snapshot settings: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0o0644); err != nil { //nolint:gosec // no secrets
		return fmt.Errorf("write settings to %s: %w", c.path, err)
	}
	return nil
}

// SetPath sets the settings file path used by Save.
func (c *Config) SetPath(path string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.path = path
}
