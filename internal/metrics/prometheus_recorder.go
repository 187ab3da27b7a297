package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "time_riches"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	taskMutations        *prom.CounterVec
	phasesCompleted      *prom.CounterVec
	notificationFailures prom.Counter
	saveDuration         *prom.HistogramVec
	autosaves            *prom.CounterVec
	timerRunning         prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		taskMutations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "task_mutations_total",
			Help:      "Task mutations by operation",
		}, []string{"op"}),
		phasesCompleted: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "timer_phases_completed_total",
			Help:      "Completed pomodoro phases by phase",
		}, []string{"phase"}),
		notificationFailures: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Phase completion notifications that could not be delivered",
		}),
		saveDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "save_duration_seconds",
			Help:      "Duration of full snapshot writes",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
		autosaves: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "autosaves_total",
			Help:      "Periodic flushes by result",
		}, []string{"result"}),
		timerRunning: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "timer_running",
			Help:      "1 while the focus timer is counting down",
		}),
	}
	reg.MustRegister(pr.taskMutations, pr.phasesCompleted, pr.notificationFailures, pr.saveDuration, pr.autosaves, pr.timerRunning)
	return pr
}

func (p *PrometheusRecorder) IncTaskMutation(op string) {
	if p == nil {
		return
	}
	p.taskMutations.WithLabelValues(op).Inc()
}

func (p *PrometheusRecorder) IncPhaseCompleted(phase string) {
	if p == nil {
		return
	}
	p.phasesCompleted.WithLabelValues(phase).Inc()
}

func (p *PrometheusRecorder) IncNotificationFailure() {
	if p == nil {
		return
	}
	p.notificationFailures.Inc()
}

func (p *PrometheusRecorder) ObserveSave(d time.Duration, success bool) {
	if p == nil {
		return
	}
	p.saveDuration.WithLabelValues(resultLabel(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncAutosave(success bool) {
	if p == nil {
		return
	}
	p.autosaves.WithLabelValues(resultLabel(success)).Inc()
}

func (p *PrometheusRecorder) SetTimerRunning(running bool) {
	if p == nil {
		return
	}
	if running {
		p.timerRunning.Set(1)
		return
	}
	p.timerRunning.Set(0)
}

// MetricsPath is where HTTPHandler serves the registry.
const MetricsPath = "/metrics"

// HTTPHandler serves reg at MetricsPath. Scrapes are counted on reg itself
// and give up after five seconds; every other path is a 404.
func HTTPHandler(reg *prom.Registry) http.Handler {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	scrape := promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		Registry:          reg,
		Timeout:           5 * time.Second,
	})
	mux := http.NewServeMux()
	mux.Handle(MetricsPath, promhttp.InstrumentMetricHandler(reg, scrape))
	return mux
}
