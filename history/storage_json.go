package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/pingdeck/pingdeck/probe"
)

// JSONFileStorage is a simple storage implementation using a single json file
// that is read on creation and written when flushed.
type JSONFileStorage struct {
	MemStorage

	filename string
}

// jsonStorageFormat is the format in which the JSONFileStorage stores the reports.
type jsonStorageFormat struct {
	Reports []*probe.Report `json:"reports,omitempty"`
}

// NewJSONFileStorage loads the json file at the given location and returns a new storage.
func NewJSONFileStorage(filename string) (*JSONFileStorage, error) {
	s := &JSONFileStorage{
		filename: filename,
	}

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		var stored jsonStorageFormat
		if err := json.Unmarshal(data, &stored); err != nil {
			return nil, fmt.Errorf("unmarshal json: %w", err)
		}
		s.reports = stored.Reports

	case errors.Is(err, os.ErrNotExist):
		// File does not exist, start empty.

	default:
		return nil, fmt.Errorf("read file %q: %w", s.filename, err)
	}

	return s, nil
}

// Flush writes the storage to file.
func (s *JSONFileStorage) Flush() error {
	s.reportsLock.RLock()
	stored := &jsonStorageFormat{
		Reports: s.reports,
	}
	data, err := json.Marshal(stored)
	s.reportsLock.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal json storage: %w", err)
	}

	err = os.WriteFile(s.filename, data, 0o0644) //nolint:gosec // no secrets
	if err != nil {
		return fmt.Errorf("failed to write json storage to %s: %w", s.filename, err)
	}
	return nil
}
