package logging

import (
	"errors"
	"log/slog"
)

// Canonical log field names shared across packages.
const (
	KeyTaskID     = "task_id"
	KeyEntryID    = "entry_id"
	KeyPhase      = "phase"
	KeyTimerState = "timer_state"
	KeyRecordKey  = "record_key"
	KeySeconds    = "seconds"
	KeyOperation  = "operation"
	KeyPath       = "path"
	KeyError      = "error"
)

func TaskID(id string) slog.Attr      { return slog.String(KeyTaskID, id) }
func EntryID(id string) slog.Attr     { return slog.String(KeyEntryID, id) }
func Phase(p string) slog.Attr        { return slog.String(KeyPhase, p) }
func TimerState(s string) slog.Attr   { return slog.String(KeyTimerState, s) }
func RecordKey(k string) slog.Attr    { return slog.String(KeyRecordKey, k) }
func Seconds(n int) slog.Attr         { return slog.Int(KeySeconds, n) }
func Operation(op string) slog.Attr   { return slog.String(KeyOperation, op) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	// Structured errors log as a group.
	var lv slog.LogValuer
	if errors.As(err, &lv) {
		return slog.Any(KeyError, lv)
	}
	return slog.String(KeyError, err.Error())
}
