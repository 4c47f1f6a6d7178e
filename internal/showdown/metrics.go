package showdown

import (
	"strings"

	"github.com/lox/showdown/poker"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the simulator's Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	runouts     prometheus.Counter
	runs        prometheus.Counter
	duration    prometheus.Histogram
}

// NewMetrics creates and registers the simulator collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "showdown",
			Name:      "evaluations_total",
			Help:      "Hands evaluated, by resulting category.",
		}, []string{"category"}),
		runouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "showdown",
			Name:      "runouts_total",
			Help:      "Board runouts dealt by the simulator.",
		}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "showdown",
			Name:      "runs_total",
			Help:      "Completed simulator runs.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "showdown",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a simulator run.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	m.registry.MustRegister(m.evaluations, m.runouts, m.runs, m.duration)
	return m
}

// Registry exposes the registry for gathering or serving.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current metrics in the node_exporter textfile
// format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// observe folds a finished worker's tallies into the collectors.
func (m *Metrics) observe(runouts int, categories [poker.NumCategories]int) {
	if m == nil {
		return
	}
	m.runouts.Add(float64(runouts))
	for _, c := range poker.Categories() {
		if n := categories[c.Strength()]; n > 0 {
			m.evaluations.WithLabelValues(CategoryLabel(c)).Add(float64(n))
		}
	}
}

func (m *Metrics) observeRun(seconds float64) {
	if m == nil {
		return
	}
	m.runs.Inc()
	m.duration.Observe(seconds)
}

// CategoryLabel returns the metric label for a category, e.g. "full_house".
func CategoryLabel(c poker.HandCategory) string {
	return strings.ReplaceAll(strings.ToLower(c.String()), " ", "_")
}
