package config

import (
	"context"
	"fmt"
	"os"

	"time-riches/internal/repository/sqlite"
)

// CreateRepository opens the SQLite repository at the configured path,
// creating the data directory with the configured permissions.
func CreateRepository(ctx context.Context, config *Config) (sqlite.Repository, error) {
	if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	repo, err := sqlite.New(ctx, config.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository(ctx context.Context) (sqlite.Repository, error) {
	repo, err := sqlite.New(ctx, sqlite.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
