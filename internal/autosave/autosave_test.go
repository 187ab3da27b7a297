package autosave

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-riches/internal/metrics"
)

type countingFlusher struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (c *countingFlusher) Flush(context.Context) error {
	c.calls.Add(1)
	if c.fail.Load() {
		return stderrors.New("disk full")
	}
	return nil
}

func TestAutosaver_FlushesPeriodically(t *testing.T) {
	flusher := &countingFlusher{}
	a, err := New(flusher, 20*time.Millisecond)
	require.NoError(t, err)

	a.Start()
	assert.Eventually(t, func() bool { return flusher.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, a.Stop(context.Background()))
	after := flusher.calls.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, after, flusher.calls.Load())
}

func TestAutosaver_StopPerformsFinalFlush(t *testing.T) {
	flusher := &countingFlusher{}
	a, err := New(flusher, time.Hour)
	require.NoError(t, err)

	a.Start()
	require.NoError(t, a.Stop(context.Background()))
	assert.Equal(t, int32(1), flusher.calls.Load())
}

func TestAutosaver_FailuresAreCounted(t *testing.T) {
	flusher := &countingFlusher{}
	flusher.fail.Store(true)
	recorder := metrics.NewPrometheusRecorder(prom.NewRegistry())

	a, err := New(flusher, time.Hour, WithRecorder(recorder))
	require.NoError(t, err)
	a.Start()

	err = a.Stop(context.Background())
	assert.Error(t, err)
}

func TestNew_DefaultInterval(t *testing.T) {
	a, err := New(&countingFlusher{}, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, a.Interval())
	a.Start()
	require.NoError(t, a.Stop(context.Background()))
}

type deadlineFlusher struct {
	left chan time.Duration
}

func (d *deadlineFlusher) Flush(ctx context.Context) error {
	if deadline, ok := ctx.Deadline(); ok {
		select {
		case d.left <- time.Until(deadline):
		default:
		}
	}
	return nil
}

func TestAutosaver_WithTimeoutBoundsFlush(t *testing.T) {
	flusher := &deadlineFlusher{left: make(chan time.Duration, 1)}
	a, err := New(flusher, 20*time.Millisecond, WithTimeout(time.Minute))
	require.NoError(t, err)

	a.Start()
	defer a.Stop(context.Background())

	select {
	case left := <-flusher.left:
		assert.Greater(t, left, 30*time.Second)
		assert.LessOrEqual(t, left, time.Minute)
	case <-time.After(2 * time.Second):
		t.Fatal("no periodic flush ran")
	}
}
