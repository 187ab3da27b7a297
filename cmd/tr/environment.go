package main

import (
	"context"
	"os"

	"time-riches/internal/config"
	"time-riches/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Production Environment = "production"
	Testing    Environment = "testing"
)

// getEnvironment reads TR_ENV, defaulting to production.
func getEnvironment() Environment {
	if Environment(os.Getenv("TR_ENV")) == Testing {
		return Testing
	}
	return Production
}

// createRepository opens the configured database, or an in-memory one when testing.
func createRepository(ctx context.Context, env Environment, cfg *config.Config) (sqlite.Repository, error) {
	if env == Testing {
		return config.CreateTestRepository(ctx)
	}
	return config.CreateRepository(ctx, cfg)
}
