// Package store maps the in-memory collections onto four independently keyed
// JSON records in the repository.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"time-riches/internal/domain"
	"time-riches/internal/errors"
	"time-riches/internal/logging"
	"time-riches/internal/repository/sqlite"
)

// Record keys. Each collection is stored and loaded independently.
const (
	KeyTasks       = "timeRichesTasks"
	KeyTimeEntries = "timeRichesTimeEntries"
	KeyCategories  = "timeRichesCategories"
	KeySettings    = "timeRichesSettings"
)

// Keys lists the record keys in write order.
var Keys = []string{KeyTasks, KeyTimeEntries, KeyCategories, KeySettings}

// Snapshot is the full persisted state.
type Snapshot struct {
	Tasks       []domain.Task
	TimeEntries []domain.TimeEntry
	Categories  []domain.Category
	Settings    domain.Settings
}

// DefaultSnapshot is what a fresh install starts with.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Tasks:       []domain.Task{},
		TimeEntries: []domain.TimeEntry{},
		Categories:  domain.DefaultCategories(),
		Settings:    domain.DefaultSettings(),
	}
}

// Store reads and writes snapshots through a record repository.
type Store struct {
	repo   sqlite.Repository
	logger *slog.Logger
}

// New creates a Store over repo.
func New(repo sqlite.Repository, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{repo: repo, logger: logger}
}

// Load reads all four records. Absent or null records yield their defaults.
func (s *Store) Load(ctx context.Context) (Snapshot, error) {
	snap := DefaultSnapshot()

	targets := map[string]interface{}{
		KeyTasks:       &snap.Tasks,
		KeyTimeEntries: &snap.TimeEntries,
		KeyCategories:  &snap.Categories,
		KeySettings:    &snap.Settings,
	}

	for _, key := range Keys {
		record, err := s.repo.Get(ctx, key)
		if errors.IsNotFound(err) {
			s.logger.Debug("record absent, using defaults", logging.RecordKey(key))
			continue
		}
		if err != nil {
			return Snapshot{}, err
		}
		if isNull(record.Value) {
			continue
		}
		if err := json.Unmarshal(record.Value, targets[key]); err != nil {
			return Snapshot{}, errors.NewStorageError("decode "+key, err)
		}
	}

	return snap, nil
}

// Save writes the four records in Keys order. The first failing write
// aborts the remaining ones; records already written stay written.
func (s *Store) Save(ctx context.Context, snap Snapshot) error {
	encoded, err := Encode(snap)
	if err != nil {
		return err
	}

	for _, key := range Keys {
		if err := s.repo.Put(ctx, &sqlite.Record{Key: key, Value: encoded[key]}); err != nil {
			s.logger.Error("failed to write record", logging.RecordKey(key), logging.Error(err))
			return err
		}
	}
	return nil
}

// Encode returns the exact bytes Save would write for each key.
func Encode(snap Snapshot) (map[string][]byte, error) {
	values := map[string]interface{}{
		KeyTasks:       nonNil(snap.Tasks),
		KeyTimeEntries: nonNil(snap.TimeEntries),
		KeyCategories:  nonNil(snap.Categories),
		KeySettings:    snap.Settings,
	}

	out := make(map[string][]byte, len(values))
	for _, key := range Keys {
		data, err := json.Marshal(values[key])
		if err != nil {
			return nil, errors.NewStorageError("encode "+key, err)
		}
		out[key] = data
	}
	return out, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func isNull(value []byte) bool {
	trimmed := bytes.TrimSpace(value)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
