package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv("TR_DEBUG", "")
	assert.False(t, DebugEnabled())

	t.Setenv("TR_DEBUG", "1")
	assert.True(t, DebugEnabled())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestNew_JSONFormat(t *testing.T) {
	t.Setenv("TR_DEBUG", "")
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("phase completed", Phase("work"), Seconds(1500))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "phase completed", line["msg"])
	assert.Equal(t, "work", line[KeyPhase])
	assert.Equal(t, float64(1500), line[KeySeconds])
}

func TestNew_DebugOverride(t *testing.T) {
	t.Setenv("TR_DEBUG", "1")
	var buf bytes.Buffer
	logger := New(&buf, "error", "text")

	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestFieldHelpers(t *testing.T) {
	cases := []struct {
		attr slog.Attr
		key  string
		val  string
	}{
		{TaskID("t1"), KeyTaskID, "t1"},
		{EntryID("e1"), KeyEntryID, "e1"},
		{Phase("break"), KeyPhase, "break"},
		{TimerState("running"), KeyTimerState, "running"},
		{RecordKey("timeRichesTasks"), KeyRecordKey, "timeRichesTasks"},
		{Operation("save"), KeyOperation, "save"},
		{Path("/tmp/x.db"), KeyPath, "/tmp/x.db"},
		{Error(errors.New("boom")), KeyError, "boom"},
		{Error(nil), KeyError, ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.key, c.attr.Key)
		assert.Equal(t, c.val, c.attr.Value.String())
	}
}

type groupedErr struct{}

func (groupedErr) Error() string { return "grouped" }

func (groupedErr) LogValue() slog.Value {
	return slog.GroupValue(slog.String("code", "X"))
}

func TestError_UsesLogValuer(t *testing.T) {
	attr := Error(groupedErr{})

	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, slog.KindGroup, attr.Value.Resolve().Kind())
}
