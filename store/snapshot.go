package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/asknote/asknote-be/types"
	"go.uber.org/zap"
)

// Snapshot is the durable form of the registry and document store, written
// after every mutation batch and reloaded at startup. Timestamps serialize
// as RFC 3339 strings and are parsed back into time values on load.
type Snapshot struct {
	Sessions        []types.ChatSession             `json:"sessions"`
	Documents       map[string]types.DocumentRecord `json:"documents"`
	ActiveSessionID string                          `json:"active_session_id,omitempty"`
}

// SnapshotStore persists and reloads registry snapshots.
type SnapshotStore interface {
	// Load returns the last saved snapshot, or nil when none exists.
	// A corrupt snapshot is reported as an error; callers start empty.
	Load() (*Snapshot, error)

	// Save replaces the stored snapshot.
	Save(snap *Snapshot) error

	// Clear removes the stored snapshot entirely.
	Clear() error
}

var _ SnapshotStore = (*FileSnapshotStore)(nil)

// FileSnapshotStore keeps the snapshot as a single JSON file on disk.
type FileSnapshotStore struct {
	path   string
	logger *zap.SugaredLogger
}

func NewFileSnapshotStore(path string, logger *zap.SugaredLogger) *FileSnapshotStore {
	return &FileSnapshotStore{
		path:   path,
		logger: logger,
	}
}

func (s *FileSnapshotStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snap, nil
}

func (s *FileSnapshotStore) Save(snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	// Write-then-rename so a crash mid-write never corrupts the snapshot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

func (s *FileSnapshotStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
