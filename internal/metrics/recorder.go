// Package metrics provides observability hooks for the task model, the focus
// timer and persistence. The Noop recorder is the default; a Prometheus
// recorder is wired when a metrics address is configured.
package metrics

import "time"

// Mutation labels for IncTaskMutation.
const (
	MutationAdd    = "add"
	MutationUpdate = "update"
	MutationDelete = "delete"
)

// Recorder defines observability hooks. Implementations must tolerate nil receivers.
type Recorder interface {
	IncTaskMutation(op string)
	IncPhaseCompleted(phase string)
	IncNotificationFailure()
	ObserveSave(d time.Duration, success bool)
	IncAutosave(success bool)
	SetTimerRunning(running bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncTaskMutation(string)          {}
func (NoopRecorder) IncPhaseCompleted(string)        {}
func (NoopRecorder) IncNotificationFailure()         {}
func (NoopRecorder) ObserveSave(time.Duration, bool) {}
func (NoopRecorder) IncAutosave(bool)                {}
func (NoopRecorder) SetTimerRunning(bool)            {}

// OrNoop returns r, or a NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
