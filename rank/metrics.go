package rank

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricSolvesTotal     = "teamrank_solves_total"
	MetricSolveIterations = "teamrank_solve_iterations"
	MetricSolveDuration   = "teamrank_solve_duration_seconds"
	MetricSinkTeams       = "teamrank_sink_teams"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics contains Prometheus collectors for ranking runs.
// All operations are safe for concurrent use.
type Metrics struct {
	solves     *prometheus.CounterVec
	iterations *prometheus.HistogramVec
	duration   *prometheus.HistogramVec
	sinks      *prometheus.GaugeVec
}

// NewMetrics creates the collectors. They are not registered; call Register.
func NewMetrics() *Metrics {
	return &Metrics{
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricSolvesTotal,
				Help: "Total number of ranking computations by transform and status",
			},
			[]string{"transform", "status"},
		),
		iterations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricSolveIterations,
				Help:    "Power iterations needed to reach the tolerance, by transform",
				Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
			},
			[]string{"transform"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricSolveDuration,
				Help:    "Wall time of build + solve in seconds, by transform",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"transform"},
		),
		sinks: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: MetricSinkTeams,
				Help: "Teams without recorded loss mass in the latest computation, by transform",
			},
			[]string{"transform"},
		),
	}
}

// Register registers all collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.solves,
		m.iterations,
		m.duration,
		m.sinks,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// observeSuccess records a completed computation.
func (m *Metrics) observeSuccess(transform string, iterations, sinks int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.solves.WithLabelValues(transform, StatusSuccess).Inc()
	m.iterations.WithLabelValues(transform).Observe(float64(iterations))
	m.duration.WithLabelValues(transform).Observe(elapsed.Seconds())
	m.sinks.WithLabelValues(transform).Set(float64(sinks))
}

// observeFailure records a failed computation.
func (m *Metrics) observeFailure(transform string) {
	if m == nil {
		return
	}
	m.solves.WithLabelValues(transform, StatusFailure).Inc()
}
