package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for roster pipeline runs.
type Metrics struct {
	// Runs by outcome: "ok", "configuration", "transport", "schema", "error"
	Runs *prometheus.CounterVec

	// Full run latency including the feed download
	RunLatency prometheus.Histogram

	// Records by fate: "kept", "dropped" (blank name), "undated"
	Records *prometheus.CounterVec

	// Groups produced by the last successful run
	Groups prometheus.Gauge
}

// New registers the pipeline metrics on reg. Pass prometheus.DefaultRegisterer
// for the process-wide registry.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_pipeline_runs_total",
			Help: "Total pipeline runs by outcome",
		}, []string{"outcome"}),

		RunLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "roster_pipeline_run_duration_seconds",
			Help:    "Duration of a pipeline run including the feed download",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		Records: f.NewCounterVec(prometheus.CounterOpts{
			Name: "roster_records_total",
			Help: "Feed rows processed by fate",
		}, []string{"fate"}),

		Groups: f.NewGauge(prometheus.GaugeOpts{
			Name: "roster_groups",
			Help: "Month groups produced by the last successful run",
		}),
	}
}

// ObserveRun records the outcome and duration of a run.
func (m *Metrics) ObserveRun(outcome string, d time.Duration) {
	if m != nil {
		m.Runs.WithLabelValues(outcome).Inc()
		m.RunLatency.Observe(d.Seconds())
	}
}

// AddRecords counts processed rows by fate.
func (m *Metrics) AddRecords(kept, dropped, undated int) {
	if m != nil {
		m.Records.WithLabelValues("kept").Add(float64(kept))
		m.Records.WithLabelValues("dropped").Add(float64(dropped))
		m.Records.WithLabelValues("undated").Add(float64(undated))
	}
}

// SetGroups records the number of groups of the latest run.
func (m *Metrics) SetGroups(n int) {
	if m != nil {
		m.Groups.Set(float64(n))
	}
}
