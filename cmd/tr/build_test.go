package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-riches/internal/config"
	"time-riches/internal/domain"
)

func TestGetEnvironment(t *testing.T) {
	t.Setenv("TR_ENV", "testing")
	assert.Equal(t, Testing, getEnvironment())

	t.Setenv("TR_ENV", "")
	assert.Equal(t, Production, getEnvironment())
}

func TestBuilder(t *testing.T) {
	tests := []struct {
		name     string
		autosave bool
	}{
		{name: "with autosave", autosave: true},
		{name: "without autosave", autosave: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			cfg := config.NewConfig()
			cfg.Logging.Level = "error"
			cfg.Autosave.Enabled = tt.autosave

			app, err := newBuilder(Testing)(ctx, cfg)
			require.NoError(t, err)

			task, err := app.API().AddTask(ctx, domain.TaskFields{Title: "Write report"})
			require.NoError(t, err)
			assert.Equal(t, domain.PriorityMedium, task.Priority)
			assert.Equal(t, 1500, app.API().TimerStatus().Remaining)

			assert.NoError(t, app.Close(ctx))
		})
	}
}

func TestBuilder_TimerCategory(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewConfig()
	cfg.Logging.Level = "error"
	cfg.Autosave.Enabled = false
	cfg.Timer.Category = "study"

	app, err := newBuilder(Testing)(ctx, cfg)
	require.NoError(t, err)
	defer app.Close(ctx)

	assert.Equal(t, "study", app.API().TimerStatus().CategoryID)
}
