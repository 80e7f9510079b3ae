package windowstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the state file name used when none is configured.
const DefaultFileName = "window-state.json"

// ErrNoState is returned by Load when nothing has been saved yet.
var ErrNoState = errors.New("no saved window state")

// Store reads and writes the persisted geometry.
type Store interface {
	Load() (*Record, error)
	Save(g Geometry) error
}

// FileStore keeps the geometry as a JSON document on disk.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store for dir/file. An empty file uses DefaultFileName.
func NewFileStore(dir, file string) (*FileStore, error) {
	file = strings.TrimSpace(file)
	if file == "" {
		file = DefaultFileName
	}
	if file != filepath.Base(file) || file == "." || file == ".." {
		return nil, fmt.Errorf("invalid state file name %q", file)
	}
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("state directory is required")
	}
	return &FileStore{path: filepath.Join(dir, file)}, nil
}

// Path returns the full path of the state file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the saved record. A missing file yields ErrNoState; anything that
// is not a JSON object is reported as a parse error.
func (s *FileStore) Load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoState
		}
		return nil, fmt.Errorf("failed to read window state %s: %w", s.path, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse window state %s: %w", s.path, err)
	}
	return &rec, nil
}

// Save writes g, creating the parent directory if needed. The file is
// replaced atomically so a crash mid-write leaves the previous state intact.
func (s *FileStore) Save(g Geometry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode window state: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".window-state-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write window state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write window state: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write window state: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write window state %s: %w", s.path, err)
	}
	return nil
}

// Remove deletes the state file. Removing a missing file is not an error.
func (s *FileStore) Remove() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete window state %s: %w", s.path, err)
	}
	return nil
}
